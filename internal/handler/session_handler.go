package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hbing/bingsprint/internal/model"
	"github.com/hbing/bingsprint/internal/response"
	"github.com/hbing/bingsprint/internal/service"
	"github.com/hbing/bingsprint/internal/validator"
)

type SessionHandler struct {
	examService *service.ExamService
}

func NewSessionHandler(examService *service.ExamService) *SessionHandler {
	return &SessionHandler{examService: examService}
}

// Create godoc
// POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var sess *model.ExamSession
	var err error
	if model.SessionMode(req.Mode) == model.ModeReview {
		sess, err = h.examService.StartReview()
	} else {
		sess, err = h.examService.StartExam()
	}
	if err != nil {
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sess.View())
}

// Get godoc
// GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.examService.Get(id)
	if err != nil {
		failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetQuestion godoc
// GET /api/v1/sessions/:id/question
func (h *SessionHandler) GetQuestion(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.examService.CurrentQuestion(id)
	if err != nil {
		failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Answer godoc
// POST /api/v1/sessions/:id/answer
func (h *SessionHandler) Answer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.examService.RecordAnswer(id, req.Index, model.OptionLetter(req.Letter)); err != nil {
		failSession(c, err)
		return
	}

	view, err := h.examService.Get(id)
	if err != nil {
		failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Advance godoc
// POST /api/v1/sessions/:id/advance
func (h *SessionHandler) Advance(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req model.AdvanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.examService.Advance(id, req.Delta)
	if err != nil {
		failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Submit godoc
// POST /api/v1/sessions/:id/submit
func (h *SessionHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	report, err := h.examService.Submit(id)
	if err != nil {
		failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// sessionID parses the :id route parameter, failing the request on bad input.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// failSession maps service errors onto API error codes.
func failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrSessionSubmitted):
		response.Fail(c, http.StatusConflict, response.ErrSessionSubmitted)
	case errors.Is(err, service.ErrBankEmpty):
		response.Fail(c, http.StatusConflict, response.ErrBankEmpty)
	case errors.Is(err, service.ErrReviewSetEmpty):
		response.Fail(c, http.StatusConflict, response.ErrReviewSetEmpty)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
