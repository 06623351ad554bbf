package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkSession tracks time spent on a job. Paused time accumulates in
// seconds; worked duration is (end - start) minus paused time.
type WorkSession struct {
	ID                        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                    uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	JobID                     uuid.UUID  `gorm:"type:uuid;index;not null" json:"job_id"`
	StartTime                 *time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime                   *time.Time `gorm:"column:end_time" json:"end_time"`
	IsRunning                 bool       `gorm:"column:is_running;not null;default:false" json:"is_running"`
	AccumulatedPausedDuration int64      `gorm:"column:accumulated_paused_duration;not null;default:0" json:"accumulated_paused_duration"`
	PausedAt                  *time.Time `gorm:"column:paused_at" json:"paused_at"`
	TimeReported              bool       `gorm:"column:time_reported;not null;default:false" json:"time_reported"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

func (WorkSession) TableName() string { return "work_sessions" }

func (s *WorkSession) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// WorkedSeconds returns the session's worked time through `until`,
// excluding paused periods. Completed sessions use their end time instead.
func (s *WorkSession) WorkedSeconds(until time.Time) int64 {
	if s.StartTime == nil {
		return 0
	}
	end := until
	if s.EndTime != nil {
		end = *s.EndTime
	}
	paused := s.AccumulatedPausedDuration
	if s.PausedAt != nil && s.EndTime == nil {
		paused += int64(until.Sub(*s.PausedAt).Seconds())
	}
	worked := int64(end.Sub(*s.StartTime).Seconds()) - paused
	if worked < 0 {
		return 0
	}
	return worked
}
