package worksession

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"giglog/internal/domain"
	"giglog/internal/repository"
)

type Service struct {
	sessions *repository.WorkSessionRepository
	jobs     *repository.JobRepository
	now      func() time.Time
}

func NewService(sessions *repository.WorkSessionRepository, jobs *repository.JobRepository) *Service {
	return &Service{sessions: sessions, jobs: jobs, now: time.Now}
}

// NewServiceWithClock is intended for tests that need a controlled clock.
func NewServiceWithClock(sessions *repository.WorkSessionRepository, jobs *repository.JobRepository, now func() time.Time) *Service {
	return &Service{sessions: sessions, jobs: jobs, now: now}
}

// Start opens a running session on a job. A user can have at most one
// running session at a time.
func (s *Service) Start(ctx context.Context, userID, jobID uuid.UUID) (*SessionView, error) {
	exists, err := s.jobs.ExistsForUser(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	if _, err := s.sessions.FindActive(ctx, userID); err == nil {
		return nil, ErrAlreadyRunning
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	start := s.now()
	session := &domain.WorkSession{
		UserID:    userID,
		JobID:     jobID,
		StartTime: &start,
		IsRunning: true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Pause stops the clock on a running session without ending it.
func (s *Service) Pause(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsRunning {
		return nil, ErrNotRunning
	}
	if session.PausedAt != nil {
		return nil, ErrAlreadyPaused
	}

	pausedAt := s.now()
	session.PausedAt = &pausedAt
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Resume restarts a paused session, folding the pause into the accumulated
// paused duration.
func (s *Service) Resume(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsRunning {
		return nil, ErrNotRunning
	}
	if session.PausedAt == nil {
		return nil, ErrNotPaused
	}

	session.AccumulatedPausedDuration += int64(s.now().Sub(*session.PausedAt).Seconds())
	session.PausedAt = nil
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Complete ends a running session. A session paused at completion time has
// the live pause folded in first so paused time never counts as worked.
func (s *Service) Complete(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsRunning {
		return nil, ErrNotRunning
	}

	end := s.now()
	if session.PausedAt != nil {
		session.AccumulatedPausedDuration += int64(end.Sub(*session.PausedAt).Seconds())
		session.PausedAt = nil
	}
	session.EndTime = &end
	session.IsRunning = false
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Active returns the user's running session, or ErrNotFound when the clock
// is not running.
func (s *Service) Active(ctx context.Context, userID uuid.UUID) (*SessionView, error) {
	session, err := s.sessions.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.view(session), nil
}

func (s *Service) ListByJob(ctx context.Context, userID, jobID uuid.UUID) ([]SessionView, error) {
	exists, err := s.jobs.ExistsForUser(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	sessions, err := s.sessions.ListByJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	views := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, *s.view(&sessions[i]))
	}
	return views, nil
}

// MarkReported flags a completed session as reported to the company.
func (s *Service) MarkReported(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRunning {
		return nil, ErrStillRunning
	}

	session.TimeReported = true
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *Service) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	deleted, err := s.sessions.Delete(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	session, err := s.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *Service) view(session *domain.WorkSession) *SessionView {
	return &SessionView{
		WorkSession:   session,
		WorkedSeconds: session.WorkedSeconds(s.now()),
	}
}
