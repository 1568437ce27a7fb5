package flattentask

import (
	"context"
	"fmt"

	"github.com/slok/linguaflow/internal/flow"
	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
)

// ServiceConfig is the configuration for the flatten service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service flattens a task package into its navigable flow.
type Service struct {
	logger log.Logger
}

// NewService creates a new flatten service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// Request represents the flatten request parameters.
type Request struct {
	Task model.TaskPackage
}

// Response is the flattened flow plus derived counts.
type Response struct {
	GuidanceItems []model.PhaseGuidanceItem
	FlowItems     []model.FlowItem

	// ItemsByKind counts flow items per kind.
	ItemsByKind map[model.FlowKind]int
	// ItemsByPhase counts flow items per phase index, one slot per phase.
	ItemsByPhase []int
}

// Run flattens the task package.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	guidanceItems, flowItems := flow.Flatten(req.Task)

	itemsByKind := map[model.FlowKind]int{}
	itemsByPhase := make([]int, len(req.Task.Phases))
	for _, item := range flowItems {
		itemsByKind[item.Kind()]++
		if p := item.Ref().PhaseIndex; p < len(itemsByPhase) {
			itemsByPhase[p]++
		}
	}

	s.logger.Debugf("Flattened task %q: %d flow items, %d guidance items", req.Task.ID, len(flowItems), len(guidanceItems))

	return &Response{
		GuidanceItems: guidanceItems,
		FlowItems:     flowItems,
		ItemsByKind:   itemsByKind,
		ItemsByPhase:  itemsByPhase,
	}, nil
}
