package handler

import (
	"errors"
	"net/http"

	"github.com/edumetrics/assess-backend/internal/middleware"
	"github.com/edumetrics/assess-backend/internal/response"
	"github.com/edumetrics/assess-backend/internal/service"
	"github.com/edumetrics/assess-backend/internal/session"
	"github.com/edumetrics/assess-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestHandler exposes the test-taking session to the presentation layer.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// answerRequest selects an option for one question.
type answerRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Option     int    `json:"option" binding:"min=0"`
}

// markRequest toggles the review flag for one question.
type markRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
}

// navigateRequest moves the cursor to an absolute question index.
type navigateRequest struct {
	Index int `json:"index" binding:"min=0"`
}

// Start godoc
// POST /api/v1/test/start
// Begins a fresh session; an active one is discarded and replaced.
func (h *TestHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.testService.Start(c.Request.Context(), claims.Identity())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": state})
}

// State godoc
// GET /api/v1/test/state
func (h *TestHandler) State(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.testService.State(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveTest)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": state})
}

// Answer godoc
// POST /api/v1/test/answer
func (h *TestHandler) Answer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req answerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.testService.SelectAnswer(claims.UserID, questionID, req.Option); err != nil {
		h.failMutation(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": true})
}

// Mark godoc
// POST /api/v1/test/mark
func (h *TestHandler) Mark(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req markRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	marked, err := h.testService.ToggleMark(claims.UserID, questionID)
	if err != nil {
		h.failMutation(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": marked})
}

// Navigate godoc
// POST /api/v1/test/navigate
func (h *TestHandler) Navigate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req navigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.testService.NavigateTo(claims.UserID, req.Index); err != nil {
		h.failMutation(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"index": req.Index})
}

// Next godoc
// POST /api/v1/test/next
func (h *TestHandler) Next(c *gin.Context) {
	h.step(c, h.testService.Next)
}

// Prev godoc
// POST /api/v1/test/prev
func (h *TestHandler) Prev(c *gin.Context) {
	h.step(c, h.testService.Prev)
}

// End godoc
// POST /api/v1/test/end
// Abandons the session without submitting. State stays readable.
func (h *TestHandler) End(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.testService.End(claims.UserID); err != nil {
		h.failMutation(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ended": true})
}

// Submit godoc
// POST /api/v1/test/submit
// Scores the session, persists one result per subject and ends it.
func (h *TestHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	results, err := h.testService.Submit(c.Request.Context(), claims.Identity())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrAuthRequired):
			response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		case errors.Is(err, service.ErrNoSession):
			response.Fail(c, http.StatusNotFound, response.ErrNoActiveTest)
		default:
			// Persistence failure: the session is still open for retry.
			response.Fail(c, http.StatusBadGateway, response.ErrSubmitFailed)
		}
		return
	}

	scores := make(map[string]int, len(results))
	for _, r := range results {
		scores[r.Subject] = r.Score
	}
	response.Success(c, http.StatusOK, gin.H{"scores": scores, "subjects": len(results)})
}

func (h *TestHandler) step(c *gin.Context, move func(int) error) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := move(claims.UserID); err != nil {
		h.failMutation(c, err)
		return
	}

	state, err := h.testService.State(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"index": state.Current})
}

func (h *TestHandler) failMutation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveTest)
	case errors.Is(err, session.ErrNotActive):
		response.Fail(c, http.StatusConflict, response.ErrTestNotActive)
	case errors.Is(err, session.ErrIndexOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrIndexOutOfRange)
	case errors.Is(err, session.ErrOptionOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrOptionOutOfRange)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
