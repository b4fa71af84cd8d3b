package tasks

import "time"

// State is the status of a task.
type State string

const (
	Pending   State = "pending"
	Completed State = "completed"
)

// Task is the on-disk structure of one task file.
type Task struct {
	Name        string    `json:"name"`
	Status      State     `json:"status"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
}
