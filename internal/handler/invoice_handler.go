package handler

import (
	"errors"
	"net/http"

	"smartinvoice/internal/model"
	"smartinvoice/internal/service"
	"smartinvoice/pkg/pagination"
	"smartinvoice/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	draft := router.Group("/api/draft")
	{
		draft.GET("", h.GetDraft)
		draft.PUT("", h.SaveDraft)
	}

	invoices := router.Group("/api/invoices")
	{
		invoices.POST("/new", h.NewInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PUT("/:id", h.SaveInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.POST("/:id/load", h.LoadInvoice)
	}
}

// GetDraft returns the working draft
// @Summary      Get draft
// @Description  Returns the working draft, seeding a sample invoice on first use
// @Tags         draft
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Invoice}
// @Failure      500  {object}  response.Response
// @Router       /api/draft [get]
func (h *InvoiceHandler) GetDraft(c *gin.Context) {
	inv, err := h.invoiceService.CurrentDraft(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, inv))
}

// SaveDraft stores the working draft
// @Summary      Save draft
// @Description  Replaces the working draft; the history copy is updated after a short quiet period
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        payload  body      model.Invoice  true  "Invoice"
// @Success      200      {object}  response.Response{data=model.Invoice}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/draft [put]
func (h *InvoiceHandler) SaveDraft(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.invoiceService.SaveDraft(c.Request.Context(), inv)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, saved))
}

// NewInvoice starts the next invoice
// @Summary      New invoice
// @Description  Starts a new draft with the next number, keeping sender, branding, currency and tax rate
// @Tags         invoices
// @Produce      json
// @Success      201  {object}  response.Response{data=model.Invoice}
// @Failure      500  {object}  response.Response
// @Router       /api/invoices/new [post]
func (h *InvoiceHandler) NewInvoice(c *gin.Context) {
	inv, err := h.invoiceService.NewInvoice(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, inv))
}

// ListInvoices returns saved invoices, newest first
// @Summary      List history
// @Description  Retrieves a paginated list of saved invoices, optionally filtered by number or client
// @Tags         invoices
// @Produce      json
// @Param        q      query     string  false  "Match invoice number or client name"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]service.HistoryEntry,meta=pagination.Meta}
// @Failure      500    {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	p := pagination.Parse(c)
	page, err := h.invoiceService.ListHistory(c.Request.Context(), service.HistoryFilter{
		Query: p.Query,
		Page:  p.Page,
		Limit: p.Limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, page.Items, pagination.NewMeta(p, page.Total)))
}

// GetInvoice returns one saved invoice
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=model.Invoice}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, inv))
}

// SaveInvoice upserts an invoice into history
// @Summary      Save invoice
// @Description  Replaces the saved invoice with the same id, or adds it to the top of the history
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Invoice ID"
// @Param        payload  body      model.Invoice  true  "Invoice"
// @Success      200      {object}  response.Response{data=model.Invoice}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) SaveInvoice(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	if inv.ID == "" {
		inv.ID = id
	}
	if inv.ID != id {
		badRequest(c, errors.New("id in path and body differ"))
		return
	}
	saved, err := h.invoiceService.SaveInvoice(c.Request.Context(), inv)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, saved))
}

// DeleteInvoice removes a saved invoice
// @Summary      Delete invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": c.Param("id")}))
}

// LoadInvoice makes a saved invoice the working draft
// @Summary      Load invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=model.Invoice}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/load [post]
func (h *InvoiceHandler) LoadInvoice(c *gin.Context) {
	inv, err := h.invoiceService.LoadInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, inv))
}
