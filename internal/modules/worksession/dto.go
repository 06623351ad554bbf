package worksession

import (
	"github.com/google/uuid"

	"giglog/internal/domain"
)

type StartRequest struct {
	JobID uuid.UUID `json:"job_id" binding:"required"`
}

// SessionView is a work session plus its worked time, computed at response
// time so running sessions tick.
type SessionView struct {
	*domain.WorkSession
	WorkedSeconds int64 `json:"worked_seconds"`
}
