// Package runtask drives a full interactive walk through a task package on
// a terminal: it loads the document, flattens it, and feeds the navigation
// controller with the discrete events read from stdin. It is a minimal
// stand-in for a real presentation layer, just enough to exhaust a flow.
package runtask

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/linguaflow/internal/flow"
	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/navigation"
	"github.com/slok/linguaflow/internal/storage"
)

// ServiceConfig is the configuration for the run service.
type ServiceConfig struct {
	TaskRepository storage.TaskRepository
	// SessionRepository persists progress snapshots. Optional: nil disables
	// persistence.
	SessionRepository storage.SessionRepository
	Stdin             io.Reader
	Stdout            io.Writer
	Logger            log.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

func (c *ServiceConfig) defaults() error {
	if c.TaskRepository == nil {
		return fmt.Errorf("task repository is required")
	}
	if c.Stdin == nil {
		return fmt.Errorf("stdin is required")
	}
	if c.Stdout == nil {
		return fmt.Errorf("stdout is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	if c.Now == nil {
		c.Now = func() time.Time { return time.Now().UTC() }
	}
	if c.NewID == nil {
		c.NewID = func() string {
			return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String()
		}
	}

	return nil
}

// Service runs one interactive session.
type Service struct {
	taskRepo    storage.TaskRepository
	sessionRepo storage.SessionRepository
	out         *renderer
	in          *bufio.Scanner
	logger      log.Logger
	now         func() time.Time
	newID       func() string
}

// NewService creates a new run service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		taskRepo:    cfg.TaskRepository,
		sessionRepo: cfg.SessionRepository,
		out:         &renderer{w: cfg.Stdout},
		in:          bufio.NewScanner(cfg.Stdin),
		logger:      cfg.Logger,
		now:         cfg.Now,
		newID:       cfg.NewID,
	}, nil
}

// Request represents the run request parameters.
type Request struct{}

// Response is the finished (or abandoned) session.
type Response struct {
	Session model.Session
}

// errInputClosed signals stdin was exhausted mid-session.
var errInputClosed = fmt.Errorf("input closed")

// Run loads, flattens and walks the task until completion or until input
// ends. The returned session reflects the final progress.
func (s *Service) Run(ctx context.Context) (*Response, error) {
	s.out.line("Loading task...")

	task, err := s.taskRepo.GetTaskPackage(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load task package: %w", err)
	}

	guidanceItems, flowItems := flow.Flatten(*task)

	ctrl, err := navigation.NewController(navigation.ControllerConfig{
		Task:          *task,
		GuidanceItems: guidanceItems,
		FlowItems:     flowItems,
		Logger:        s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create navigation controller: %w", err)
	}

	now := s.now()
	session := model.Session{
		ID:        s.newID(),
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Status:    model.SessionStatusActive,
		ItemCount: len(flowItems),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.sessionRepo != nil {
		if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
			return nil, fmt.Errorf("could not create session: %w", err)
		}
	}

	s.out.title(task.Title)
	if task.Description != "" {
		s.out.line(task.Description)
	}

	if err := ctrl.Start(); err != nil {
		return nil, fmt.Errorf("could not start session: %w", err)
	}

	err = s.walk(ctx, task, ctrl, &session)
	switch {
	case err == nil:
		now := s.now()
		session.Status = model.SessionStatusCompleted
		session.CompletedAt = &now
		s.out.line("")
		s.out.title("Task complete")
		s.out.line("You walked through all phases.")
	case err == errInputClosed || ctx.Err() != nil:
		session.Status = model.SessionStatusAbandoned
		s.logger.Infof("Session %s abandoned at flow index %d", session.ID, session.FlowIndex)
	default:
		return nil, err
	}

	session.FlowIndex = ctrl.FlowIndex()
	session.UpdatedAt = s.now()
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	return &Response{Session: session}, nil
}

// walk advances the controller until the complete screen.
func (s *Service) walk(ctx context.Context, task *model.TaskPackage, ctrl *navigation.Controller, session *model.Session) error {
	for ctrl.Screen() != navigation.ScreenComplete {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch ctrl.Screen() {
		case navigation.ScreenPhaseGuidance:
			guidance, ok := ctrl.CurrentGuidance()
			if !ok {
				return fmt.Errorf("phase guidance screen without guidance: %w", model.ErrNotValid)
			}
			s.out.phaseGuidance(guidance)
			if !s.waitContinue() {
				return errInputClosed
			}
			if err := ctrl.ContinueFromGuidance(); err != nil {
				return err
			}

		case navigation.ScreenQuestion:
			item, ok := ctrl.CurrentItem()
			if !ok {
				return fmt.Errorf("question screen without flow item: %w", model.ErrNotValid)
			}
			if err := s.presentItem(task, ctrl, item, session); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unexpected screen %q: %w", ctrl.Screen(), model.ErrNotValid)
		}

		session.FlowIndex = ctrl.FlowIndex()
		session.UpdatedAt = s.now()
		if err := s.persist(ctx, *session); err != nil {
			return err
		}
	}

	return nil
}

// presentItem renders one flow item, runs its interaction and raises the
// continue event once the item is fully handled.
func (s *Service) presentItem(task *model.TaskPackage, ctrl *navigation.Controller, item model.FlowItem, session *model.Session) error {
	switch it := item.(type) {
	case model.QuestionItem:
		if !s.presentQuestion(task, it) {
			return errInputClosed
		}
		if err := ctrl.RecordAnswer(); err != nil {
			return err
		}
		session.AnsweredCount++

	case model.Phase4SubtaskItem:
		if !s.presentSubtask(task, it) {
			return errInputClosed
		}

	case model.Phase5SentenceItem:
		s.out.sentenceExercise(it)
		if !s.waitContinue() {
			return errInputClosed
		}

	case model.Phase5PhraseClozeItem:
		if !s.presentCloze(it) {
			return errInputClosed
		}

	case model.Phase6RoleplayItem:
		if !s.presentRoleplay(task, it) {
			return errInputClosed
		}
	}

	return ctrl.ContinueFromFlow()
}

// persist stores a session snapshot when persistence is enabled.
func (s *Service) persist(ctx context.Context, session model.Session) error {
	if s.sessionRepo == nil {
		return nil
	}
	if err := s.sessionRepo.UpdateSession(ctx, session); err != nil {
		return fmt.Errorf("could not persist session progress: %w", err)
	}
	return nil
}

// readLine reads one input line, false when input is exhausted.
func (s *Service) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// waitContinue blocks until the learner presses enter.
func (s *Service) waitContinue() bool {
	s.out.prompt("[enter to continue] ")
	_, ok := s.readLine()
	return ok
}
