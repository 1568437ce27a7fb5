package sessionlist

import (
	"context"
	"fmt"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage"
)

// ServiceConfig is the configuration for the session list service.
type ServiceConfig struct {
	Repository storage.SessionRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists stored sessions with optional filtering.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new session list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// StatusFilter is an optional filter to only show sessions with this status.
	StatusFilter *model.SessionStatus
}

// Run lists all sessions, optionally filtered by status.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Session, error) {
	s.logger.Debugf("listing sessions with filter: %v", req.StatusFilter)

	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list sessions: %w", err)
	}

	if req.StatusFilter != nil {
		filtered := make([]model.Session, 0, len(sessions))
		for _, sess := range sessions {
			if sess.Status == *req.StatusFilter {
				filtered = append(filtered, sess)
			}
		}
		sessions = filtered
	}

	s.logger.Debugf("found %d sessions", len(sessions))
	return sessions, nil
}
