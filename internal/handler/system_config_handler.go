package handler

import (
	"net/http"

	"github.com/edumetrics/assess-backend/internal/response"
	"github.com/edumetrics/assess-backend/internal/service"
	"github.com/edumetrics/assess-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// SystemConfigHandler exposes deployment settings.
type SystemConfigHandler struct {
	configService *service.SystemConfigService
}

// NewSystemConfigHandler creates a new SystemConfigHandler.
func NewSystemConfigHandler(configService *service.SystemConfigService) *SystemConfigHandler {
	return &SystemConfigHandler{configService: configService}
}

type setConfigRequest struct {
	Key   string `json:"key" binding:"required,min=1,max=100"`
	Value string `json:"value" binding:"required,max=2000"`
}

// GetPublic godoc
// GET /api/v1/public/settings
func (h *SystemConfigHandler) GetPublic(c *gin.Context) {
	settings, err := h.configService.GetPublic(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// Set godoc
// PUT /api/v1/admin/settings
func (h *SystemConfigHandler) Set(c *gin.Context) {
	var req setConfigRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.configService.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"key": req.Key})
}
