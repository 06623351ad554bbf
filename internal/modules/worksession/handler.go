package worksession

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"giglog/internal/middleware"
	"giglog/internal/pkg/response"
)

type Handler struct {
	svc *Service
	log *logrus.Logger
}

func NewHandler(svc *Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/work-sessions/start", h.Start)
	rg.GET("/work-sessions/active", h.Active)
	rg.POST("/work-sessions/:id/pause", h.Pause)
	rg.POST("/work-sessions/:id/resume", h.Resume)
	rg.POST("/work-sessions/:id/complete", h.Complete)
	rg.POST("/work-sessions/:id/report", h.MarkReported)
	rg.DELETE("/work-sessions/:id", h.Delete)
	rg.GET("/jobs/:id/work-sessions", h.ListByJob)
}

func (h *Handler) Start(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.svc.Start(c.Request.Context(), userID, req.JobID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, session)
}

func (h *Handler) Active(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	session, err := h.svc.Active(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

func (h *Handler) Pause(c *gin.Context) {
	h.transition(c, h.svc.Pause)
}

func (h *Handler) Resume(c *gin.Context) {
	h.transition(c, h.svc.Resume)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

func (h *Handler) MarkReported(c *gin.Context) {
	h.transition(c, h.svc.MarkReported)
}

func (h *Handler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid work session id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, sessionID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "work session deleted"})
}

func (h *Handler) ListByJob(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid job id")
		return
	}

	sessions, err := h.svc.ListByJob(c.Request.Context(), userID, jobID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sessions)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error)) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid work session id")
		return
	}

	session, err := op(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "WORK_SESSION_NOT_FOUND", "work session not found")
	case errors.Is(err, ErrJobNotFound):
		response.Error(c, http.StatusNotFound, "JOB_NOT_FOUND", "job not found")
	case errors.Is(err, ErrAlreadyRunning):
		response.Error(c, http.StatusConflict, "SESSION_ALREADY_RUNNING", err.Error())
	case errors.Is(err, ErrNotRunning),
		errors.Is(err, ErrStillRunning),
		errors.Is(err, ErrAlreadyPaused),
		errors.Is(err, ErrNotPaused):
		response.Error(c, http.StatusConflict, "INVALID_SESSION_STATE", err.Error())
	default:
		h.log.WithError(err).Error("work session request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
