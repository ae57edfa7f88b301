package handler

import (
	"errors"
	"log"
	"net/http"

	"smartinvoice/internal/assistant"
	"smartinvoice/internal/model"
	"smartinvoice/internal/repository"
	"smartinvoice/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, response.Fail(http.StatusUnprocessableEntity, "invalid_invoice", err.Error(),
			gin.H{"field": ve.Field, "reason": ve.Reason}))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Fail(http.StatusNotFound, "not_found", err.Error(), nil))
	case errors.Is(err, assistant.ErrBusy):
		c.JSON(http.StatusConflict, response.Fail(http.StatusConflict, "busy", err.Error(), nil))
	case errors.Is(err, assistant.ErrEmptyInstruction):
		c.JSON(http.StatusBadRequest, response.Fail(http.StatusBadRequest, "empty_instruction", err.Error(), nil))
	case errors.Is(err, assistant.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, response.Fail(http.StatusUnprocessableEntity, "assistant_validation", err.Error(), nil))
	case errors.Is(err, assistant.ErrTransport):
		c.JSON(http.StatusBadGateway, response.Fail(http.StatusBadGateway, "assistant_unavailable", err.Error(), nil))
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal server error"))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}
