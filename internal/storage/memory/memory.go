package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.SessionRepository.
type Repository struct {
	sessions map[string]model.Session
	mu       sync.RWMutex
	logger   log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		sessions: make(map[string]model.Session),
		logger:   cfg.Logger,
	}, nil
}

// CreateSession creates a new session in the repository.
func (r *Repository) CreateSession(ctx context.Context, s model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; ok {
		return fmt.Errorf("session with id %s: %w", s.ID, model.ErrAlreadyExists)
	}

	r.sessions[s.ID] = s
	r.logger.Debugf("Created session in repository: %s", s.ID)

	return nil
}

// GetSession retrieves a session by ID.
func (r *Repository) GetSession(ctx context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, model.ErrNotFound)
	}

	// Return a copy.
	sessionCopy := session
	return &sessionCopy, nil
}

// ListSessions returns all sessions ordered by creation time, newest first.
func (r *Repository) ListSessions(ctx context.Context) ([]model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}

	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			if sessions[j].CreatedAt.After(sessions[i].CreatedAt) {
				sessions[i], sessions[j] = sessions[j], sessions[i]
			}
		}
	}

	return sessions, nil
}

// UpdateSession replaces an existing session.
func (r *Repository) UpdateSession(ctx context.Context, s model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; !ok {
		return fmt.Errorf("session %s: %w", s.ID, model.ErrNotFound)
	}

	r.sessions[s.ID] = s
	r.logger.Debugf("Updated session in repository: %s", s.ID)

	return nil
}

// DeleteSession removes a session by ID.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, model.ErrNotFound)
	}

	delete(r.sessions, id)
	r.logger.Debugf("Deleted session from repository: %s", id)

	return nil
}
