package sessionremove

import (
	"context"
	"fmt"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/storage"
)

// ServiceConfig is the configuration for the session remove service.
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

// Service removes stored sessions.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new session remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the remove request parameters.
type Request struct {
	SessionID string
}

// Run removes the session.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	if err := s.repo.DeleteSession(ctx, req.SessionID); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	s.logger.Infof("Session %s removed", req.SessionID)
	return nil
}
