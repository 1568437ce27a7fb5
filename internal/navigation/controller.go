// Package navigation implements the state machine that walks a flattened
// task flow one discrete event at a time, interleaving phase guidance
// between phases.
package navigation

import (
	"fmt"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
)

// Screen is what the presentation layer should be rendering.
type Screen string

const (
	// ScreenWelcome is the initial screen, before a session starts.
	ScreenWelcome Screen = "welcome"
	// ScreenLoading is shown by the driver while the task document is being
	// fetched. The controller itself is built after the load, so it never
	// transitions through it.
	ScreenLoading Screen = "loading"
	// ScreenPhaseGuidance shows the interstitial guidance of one phase.
	ScreenPhaseGuidance Screen = "phase_guidance"
	// ScreenQuestion shows the flow item at the current flow index.
	ScreenQuestion Screen = "question"
	// ScreenComplete is the terminal screen, after the last flow item.
	ScreenComplete Screen = "complete"
)

// ControllerConfig is the configuration for the navigation controller.
type ControllerConfig struct {
	// Task is the loaded task package the flow was flattened from.
	Task model.TaskPackage
	// GuidanceItems is the flattener's phase guidance list.
	GuidanceItems []model.PhaseGuidanceItem
	// FlowItems is the flattener's ordered flow item list.
	FlowItems []model.FlowItem
	Logger    log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "navigation.Controller"})
	return nil
}

// Controller advances over one flatten result. It owns the flow items for
// the duration of one task session and is driven by discrete external
// events (start, answer recorded, continue) arriving one at a time: it is
// not safe for concurrent use and doesn't need to be.
//
// The flow index only ever moves forward, there is no backward navigation
// and no skipping. A phase's guidance is shown at most once per session,
// exactly when transitioning into that phase's first flow item.
type Controller struct {
	task          model.TaskPackage
	guidanceItems []model.PhaseGuidanceItem
	flowItems     []model.FlowItem
	logger        log.Logger

	screen        Screen
	flowIndex     int
	guidanceIndex int
	answered      bool
}

// NewController creates a navigation controller positioned at the welcome
// screen.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{
		task:          cfg.Task,
		guidanceItems: cfg.GuidanceItems,
		flowItems:     cfg.FlowItems,
		logger:        cfg.Logger,
		screen:        ScreenWelcome,
	}, nil
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen { return c.screen }

// FlowIndex returns the current position in the flow item list.
func (c *Controller) FlowIndex() int { return c.flowIndex }

// Items returns the flow items the controller navigates.
func (c *Controller) Items() []model.FlowItem { return c.flowItems }

// Answered reports whether the current question item has a recorded answer.
// Used to gate the continue affordance.
func (c *Controller) Answered() bool { return c.answered }

// CurrentItem returns the flow item at the current index. Only meaningful
// on the question screen.
func (c *Controller) CurrentItem() (model.FlowItem, bool) {
	if c.screen != ScreenQuestion || c.flowIndex < 0 || c.flowIndex >= len(c.flowItems) {
		return nil, false
	}
	return c.flowItems[c.flowIndex], true
}

// CurrentGuidance returns the guidance item being shown. Only meaningful on
// the phase guidance screen.
func (c *Controller) CurrentGuidance() (model.PhaseGuidanceItem, bool) {
	if c.screen != ScreenPhaseGuidance || c.guidanceIndex < 0 || c.guidanceIndex >= len(c.guidanceItems) {
		return model.PhaseGuidanceItem{}, false
	}
	return c.guidanceItems[c.guidanceIndex], true
}

// Start begins the session: phase 0's guidance when it has one, otherwise
// the first flow item of phase 0. A task with no flow items at all
// completes immediately.
func (c *Controller) Start() error {
	if c.screen != ScreenWelcome {
		return fmt.Errorf("start is only valid from the welcome screen (on %q): %w", c.screen, model.ErrNotValid)
	}

	if len(c.task.Phases) > 0 && c.task.Phases[0].Guidance != nil {
		c.screen = ScreenPhaseGuidance
		c.guidanceIndex = c.guidanceIndexForPhase(0)
		c.logger.Debugf("Session started at phase 0 guidance")
		return nil
	}

	if len(c.flowItems) == 0 {
		c.screen = ScreenComplete
		c.logger.Debugf("Session started on an empty flow, completing")
		return nil
	}

	c.enterFlowAt(c.firstFlowIndexForPhase(0))
	c.logger.Debugf("Session started at flow index %d", c.flowIndex)
	return nil
}

// ContinueFromGuidance leaves the phase guidance screen, jumping to the
// first flow item of the phase just shown. A phase with guidance but no
// flow items is an authoring error: the controller falls back to index 0
// rather than failing.
func (c *Controller) ContinueFromGuidance() error {
	if c.screen != ScreenPhaseGuidance {
		return fmt.Errorf("no phase guidance is pending (on %q): %w", c.screen, model.ErrNotValid)
	}

	guidance, _ := c.CurrentGuidance()
	c.enterFlowAt(c.firstFlowIndexForPhase(guidance.PhaseIndex))
	return nil
}

// RecordAnswer marks the current question item as answered, unlocking the
// continue affordance. Non-question items drive completion through their
// own interaction and don't record answers.
func (c *Controller) RecordAnswer() error {
	item, ok := c.CurrentItem()
	if !ok {
		return fmt.Errorf("no current flow item (on %q): %w", c.screen, model.ErrNotValid)
	}
	if item.Kind() != model.FlowKindQuestion {
		return fmt.Errorf("current item %q takes no answer: %w", item.Kind(), model.ErrNotValid)
	}

	c.answered = true
	return nil
}

// ContinueFromFlow advances past the current flow item: to the complete
// screen after the last item, to the next phase's guidance when one is
// pending, otherwise to the next item.
func (c *Controller) ContinueFromFlow() error {
	item, ok := c.CurrentItem()
	if !ok {
		return fmt.Errorf("no current flow item (on %q): %w", c.screen, model.ErrNotValid)
	}

	if item.Kind() == model.FlowKindQuestion && !c.answered {
		return fmt.Errorf("current question has no recorded answer: %w", model.ErrNotValid)
	}

	if c.flowIndex == len(c.flowItems)-1 {
		c.screen = ScreenComplete
		c.logger.Debugf("Flow exhausted at index %d, session complete", c.flowIndex)
		return nil
	}

	next := c.flowItems[c.flowIndex+1]
	if next.Ref().PhaseIndex != item.Ref().PhaseIndex {
		nextPhase := item.Ref().PhaseIndex + 1
		if nextPhase < len(c.task.Phases) && c.task.Phases[nextPhase].Guidance != nil {
			c.screen = ScreenPhaseGuidance
			c.guidanceIndex = c.guidanceIndexForPhase(nextPhase)
			c.logger.Debugf("Entering phase %d guidance", nextPhase)
			return nil
		}
	}

	c.enterFlowAt(c.flowIndex + 1)
	return nil
}

// Restart discards all session state and returns to the welcome screen. The
// caller is expected to flatten again before the next start.
func (c *Controller) Restart() error {
	if c.screen != ScreenComplete && c.screen != ScreenWelcome {
		return fmt.Errorf("restart is only valid when complete (on %q): %w", c.screen, model.ErrNotValid)
	}

	c.screen = ScreenWelcome
	c.flowIndex = 0
	c.guidanceIndex = 0
	c.answered = false
	return nil
}

func (c *Controller) enterFlowAt(index int) {
	c.flowIndex = index
	c.answered = false
	c.screen = ScreenQuestion
}

// firstFlowIndexForPhase returns the index of the phase's first flow item,
// or 0 when the phase produced none.
func (c *Controller) firstFlowIndexForPhase(phaseIndex int) int {
	for i, item := range c.flowItems {
		if item.Ref().PhaseIndex == phaseIndex {
			return i
		}
	}
	return 0
}

func (c *Controller) guidanceIndexForPhase(phaseIndex int) int {
	for i, g := range c.guidanceItems {
		if g.PhaseIndex == phaseIndex {
			return i
		}
	}
	return 0
}
