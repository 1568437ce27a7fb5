package storage

import (
	"context"

	"github.com/slok/linguaflow/internal/model"
)

// TaskRepository supplies the raw task document. The document is delivered
// whole, once per session: a failed fetch is terminal for that session and
// recoverable only by retrying the entire load.
type TaskRepository interface {
	GetTaskPackage(ctx context.Context) (*model.TaskPackage, error)
}

// SessionRepository is the interface for session progress persistence.
type SessionRepository interface {
	CreateSession(ctx context.Context, s model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context) ([]model.Session, error)
	UpdateSession(ctx context.Context, s model.Session) error
	DeleteSession(ctx context.Context, id string) error
}
