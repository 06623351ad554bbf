package worksession

import "errors"

var (
	ErrNotFound       = errors.New("work session not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrAlreadyRunning = errors.New("a work session is already running")
	ErrNotRunning     = errors.New("work session is not running")
	ErrStillRunning   = errors.New("work session is still running")
	ErrAlreadyPaused  = errors.New("work session is already paused")
	ErrNotPaused      = errors.New("work session is not paused")
)
