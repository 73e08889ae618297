package domain

import "time"

// RunRecord is the persisted trace of one orchestrated algorithm run. The
// Result and Data payloads are stored as sanitized JSON: the run store
// never sees ±Inf or NaN.
type RunRecord struct {
	ID               string
	AlgorithmTag     string
	Parameters       map[string]any
	Data             map[string]any
	Status           RunStatus
	Result           map[string]any
	Error            string
	ExecutionSeconds float64
	StartedAt        time.Time
	CompletedAt      *time.Time
	UserID           string
}

// ScheduleRow is one persisted schedule entry.
type ScheduleRow struct {
	ID            int64
	ProjectID     int
	ClassroomID   int
	TimeslotID    int
	IsMakeup      bool
	InstructorIDs []int
}
