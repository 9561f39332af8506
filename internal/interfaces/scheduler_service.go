package interfaces

import "time"

// DailySummaryJob is the name the broadcast job is registered under.
const DailySummaryJob = "daily_summary"

// JobStatus describes a registered scheduler job.
type JobStatus struct {
	Name      string     `json:"name"`
	Schedule  string     `json:"schedule"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	IsRunning bool       `json:"is_running"`
	LastError string     `json:"last_error,omitempty"`
}

// SchedulerService runs registered jobs on cron schedules.
type SchedulerService interface {
	// RegisterJob adds a named job. Must be called before Start.
	RegisterJob(name string, schedule string, handler func() error) error

	// Start begins dispatching registered jobs.
	Start() error

	// Stop halts the scheduler.
	Stop() error

	// IsRunning returns true while the scheduler is active.
	IsRunning() bool

	// GetJobStatus returns the status of a registered job.
	GetJobStatus(name string) (*JobStatus, error)
}
