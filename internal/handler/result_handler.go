package handler

import (
	"net/http"

	"github.com/edumetrics/assess-backend/internal/response"
	"github.com/edumetrics/assess-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ResultHandler exposes persisted results to administrators.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// HistoryByEmail godoc
// GET /api/v1/admin/results?email=...
func (h *ResultHandler) HistoryByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	summary, err := h.resultService.HistoryByEmail(c.Request.Context(), email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
