package model

import "time"

// SessionStatus represents the state of a learning session.
type SessionStatus string

const (
	// SessionStatusActive indicates the session is in progress.
	SessionStatusActive SessionStatus = "active"
	// SessionStatusCompleted indicates every flow item was walked through.
	SessionStatusCompleted SessionStatus = "completed"
	// SessionStatusAbandoned indicates the session ended before completion.
	SessionStatusAbandoned SessionStatus = "abandoned"
)

// Session is a progress snapshot of one walk through a task package. It
// records where the learner is in the flattened flow, not the flow itself:
// flow items are rebuilt from the document on every load.
type Session struct {
	ID            string
	TaskID        string
	TaskTitle     string
	Status        SessionStatus
	FlowIndex     int
	ItemCount     int
	AnsweredCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}
