package handler

import (
	"fmt"
	"net/http"

	"smartinvoice/internal/middleware"
	"smartinvoice/internal/model"
	"smartinvoice/internal/service"
	"smartinvoice/pkg/response"

	"github.com/gin-gonic/gin"
)

// FallbackHeader is set on PDF export responses that carry the HTML print view instead.
const FallbackHeader = "X-Export-Fallback"

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/preview", h.Preview)

	export := router.Group("/api/export")
	{
		export.POST("/pdf", h.ExportPDF)
		export.GET("/history.xlsx", h.ExportHistory)
	}
}

// Preview paginates an invoice for on-screen display
// @Summary      Preview invoice
// @Description  Splits the invoice into pages and returns the formatted print model in the request locale
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        lang     query     string         false  "Locale (en or ms)"
// @Param        payload  body      model.Invoice  true   "Invoice"
// @Success      200      {object}  response.Response{data=service.PreviewResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/preview [post]
func (h *ExportHandler) Preview(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.exportService.Preview(inv, middleware.LocaleFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ExportPDF renders an invoice as a PDF download
// @Summary      Export PDF
// @Description  Renders the invoice as an A4 PDF. If rendering fails the printable HTML page is returned and X-Export-Fallback is set
// @Tags         export
// @Accept       json
// @Produce      application/pdf
// @Produce      text/html
// @Param        lang     query     string         false  "Locale (en or ms)"
// @Param        payload  body      model.Invoice  true   "Invoice"
// @Success      200      {file}    file
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/export/pdf [post]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.exportService.PDF(c.Request.Context(), inv, middleware.LocaleFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if res.Fallback {
		c.Header(FallbackHeader, "true")
	}
	sendFile(c, res)
}

// ExportHistory downloads the saved invoices as a spreadsheet
// @Summary      Export history
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        lang  query     string  false  "Locale (en or ms)"
// @Success      200   {file}    file
// @Failure      500   {object}  response.Response
// @Router       /api/export/history.xlsx [get]
func (h *ExportHandler) ExportHistory(c *gin.Context) {
	res, err := h.exportService.HistoryWorkbook(c.Request.Context(), middleware.LocaleFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	sendFile(c, res)
}

func sendFile(c *gin.Context, res service.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Body)
}
