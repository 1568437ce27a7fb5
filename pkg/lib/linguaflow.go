package lib

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/slok/linguaflow/internal/app/checktask"
	"github.com/slok/linguaflow/internal/app/flattentask"
	"github.com/slok/linguaflow/internal/app/sessionlist"
	"github.com/slok/linguaflow/internal/app/sessionremove"
	"github.com/slok/linguaflow/internal/conventions"
	"github.com/slok/linguaflow/internal/flow"
	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/navigation"
	"github.com/slok/linguaflow/internal/storage"
	taskio "github.com/slok/linguaflow/internal/storage/io"
	"github.com/slok/linguaflow/internal/storage/remote"
	"github.com/slok/linguaflow/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use ~/.linguaflow/linguaflow.db for session storage.
type Config struct {
	// DBPath is the SQLite database path for stored sessions.
	// Default: ~/.linguaflow/linguaflow.db.
	DBPath string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// HTTPClient is used to fetch task packages from http(s) URLs.
	// Default: http.Client with a 30s timeout.
	HTTPClient *http.Client
}

func (c *Config) defaults() error {
	if c.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DBPath = conventions.DBPath(filepath.Join(home, conventions.DefaultDataDir))
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for working with task packages.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	sessionRepo storage.SessionRepository
	httpClient  *http.Client
	logger      log.Logger
	closeFn     func() error
}

// New creates a new SDK client backed by a SQLite session database.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return &Client{
		sessionRepo: repo,
		httpClient:  cfg.HTTPClient,
		logger:      cfg.Logger,
		closeFn:     repo.Close,
	}, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// LoadTask loads a task package from a local file path or an http(s) URL.
//
// Local files are decoded as YAML when the extension is .yaml or .yml, JSON
// otherwise. URLs are always fetched as JSON.
func (c *Client) LoadTask(ctx context.Context, source string) (*model.TaskPackage, error) {
	var repo storage.TaskRepository

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		r, err := remote.NewTaskHTTPRepository(remote.TaskHTTPRepositoryConfig{
			URL:    source,
			Client: c.httpClient,
			Logger: c.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create HTTP task repository: %w", err)
		}
		repo = r
	} else {
		absPath, err := filepath.Abs(source)
		if err != nil {
			return nil, fmt.Errorf("could not resolve task file path: %w", err)
		}
		dir, file := filepath.Split(absPath)
		repo = taskio.NewTaskFileRepository(os.DirFS(dir), file)
	}

	task, err := repo.GetTaskPackage(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load task package: %w", err)
	}

	return task, nil
}

// Flow is the flattened rendering of a task package: the ordered flow items
// plus the per-phase guidance interstitials.
type Flow struct {
	// GuidanceItems are the phase guidance interstitials, in phase order.
	GuidanceItems []PhaseGuidanceItem
	// Items are the ordered flow items the learner walks through.
	Items []FlowItem
	// ItemsByKind counts flow items per kind.
	ItemsByKind map[FlowKind]int
	// ItemsByPhase counts flow items per phase index, one slot per phase.
	ItemsByPhase []int
}

// Flatten flattens a task package into its ordered flow. Flattening is pure
// and deterministic: the same document always yields the same flow.
func (c *Client) Flatten(ctx context.Context, task TaskPackage) (*Flow, error) {
	svc, err := flattentask.NewService(flattentask.ServiceConfig{Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create flatten service: %w", err)
	}

	resp, err := svc.Run(ctx, flattentask.Request{Task: task})
	if err != nil {
		return nil, fmt.Errorf("could not flatten task: %w", err)
	}

	return &Flow{
		GuidanceItems: resp.GuidanceItems,
		Items:         resp.FlowItems,
		ItemsByKind:   resp.ItemsByKind,
		ItemsByPhase:  resp.ItemsByPhase,
	}, nil
}

// Check runs integrity checks against a task package and returns the results,
// one per check. A result with [CheckStatusError] means the document would
// misbehave at runtime (dangling references, unanswerable questions).
func (c *Client) Check(ctx context.Context, task TaskPackage) ([]CheckResult, error) {
	svc, err := checktask.NewService(checktask.ServiceConfig{Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create check service: %w", err)
	}

	results, err := svc.Run(ctx, checktask.Request{Task: task})
	if err != nil {
		return nil, fmt.Errorf("could not check task: %w", err)
	}

	return results, nil
}

// NewSession flattens the task and returns a navigation controller positioned
// on the welcome screen. The controller holds no reference to the client and
// does not persist progress: drive it from a single goroutine.
func (c *Client) NewSession(task TaskPackage) (*SessionController, error) {
	guidanceItems, flowItems := flow.Flatten(task)

	ctrl, err := navigation.NewController(navigation.ControllerConfig{
		Task:          task,
		GuidanceItems: guidanceItems,
		FlowItems:     flowItems,
		Logger:        c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create navigation controller: %w", err)
	}

	return ctrl, nil
}

// ListSessions returns stored sessions, newest first. A nil status filter
// returns all sessions.
func (c *Client) ListSessions(ctx context.Context, statusFilter *SessionStatus) ([]Session, error) {
	svc, err := sessionlist.NewService(sessionlist.ServiceConfig{
		Repository: c.sessionRepo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	sessions, err := svc.Run(ctx, sessionlist.Request{StatusFilter: statusFilter})
	if err != nil {
		return nil, fmt.Errorf("could not list sessions: %w", err)
	}

	return sessions, nil
}

// RemoveSession removes a stored session by ID. Returns [ErrNotFound] if the
// session does not exist.
func (c *Client) RemoveSession(ctx context.Context, sessionID string) error {
	svc, err := sessionremove.NewService(sessionremove.ServiceConfig{
		Repository: c.sessionRepo,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, sessionremove.Request{SessionID: sessionID}); err != nil {
		return fmt.Errorf("could not remove session: %w", err)
	}

	return nil
}
