package handler

import (
	"net/http"

	"smartinvoice/internal/service"
	"smartinvoice/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	assistantService service.AssistantService
}

func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	assistant := router.Group("/api/assistant")
	{
		assistant.POST("", h.Modify)
		assistant.GET("/:id/messages", h.Messages)
	}
}

// Modify applies a natural-language instruction to an invoice
// @Summary      Ask the assistant
// @Description  Sends the invoice and instruction to the model and returns the merged invoice with the changed fields. On failure the invoice is unchanged
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AssistantRequest  true  "Invoice and instruction"
// @Success      200      {object}  response.Response{data=service.AssistantResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /api/assistant [post]
func (h *AssistantHandler) Modify(c *gin.Context) {
	var req service.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.assistantService.Modify(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Messages returns the conversation held for an invoice
// @Summary      Assistant conversation
// @Tags         assistant
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=[]assistant.Message}
// @Router       /api/assistant/{id}/messages [get]
func (h *AssistantHandler) Messages(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.assistantService.Conversation(c.Param("id"))))
}
