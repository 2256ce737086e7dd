package handler

import (
	"errors"
	"net/http"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/response"
	"github.com/edumetrics/assess-backend/internal/service"
	"github.com/edumetrics/assess-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles account creation.
type RegistrationHandler struct {
	regService *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(regService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

// Register godoc
// POST /api/v1/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	identity, err := h.regService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"identity": identity})
}
