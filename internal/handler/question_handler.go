package handler

import (
	"net/http"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/response"
	"github.com/edumetrics/assess-backend/internal/service"
	"github.com/edumetrics/assess-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// QuestionHandler handles admin question bank management.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Create godoc
// POST /api/v1/admin/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// ListBySubject godoc
// GET /api/v1/admin/questions?subject=...
func (h *QuestionHandler) ListBySubject(c *gin.Context) {
	subject := c.Query("subject")
	if subject == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	questions, err := h.questionService.ListBySubject(c.Request.Context(), subject)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
