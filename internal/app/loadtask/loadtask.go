package loadtask

import (
	"context"
	"fmt"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage"
)

// ServiceConfig is the configuration for the load service.
type ServiceConfig struct {
	Repository storage.TaskRepository
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

// Service loads a task package document. A load failure is terminal for the
// session: no partial state is kept, the caller retries the whole load.
type Service struct {
	repo   storage.TaskRepository
	logger log.Logger
}

// NewService creates a new load service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Run loads the task package.
func (s *Service) Run(ctx context.Context) (*model.TaskPackage, error) {
	task, err := s.repo.GetTaskPackage(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load task package: %w", err)
	}

	s.logger.Debugf("Loaded task %q: %d phases", task.ID, len(task.Phases))
	return task, nil
}
