package remote

import (
	"context"
	"fmt"
	stdio "io"
	"net/http"
	"time"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	taskio "github.com/slok/linguaflow/internal/storage/io"
)

// TaskHTTPRepositoryConfig is the configuration for the HTTP task repository.
type TaskHTTPRepositoryConfig struct {
	// URL serves the task package as a single whole JSON document.
	URL    string
	Client *http.Client
	Logger log.Logger
}

func (c *TaskHTTPRepositoryConfig) defaults() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.TaskHTTP"})
	return nil
}

// TaskHTTPRepository fetches a task package document over HTTP. One
// request-response exchange per load, no streaming and no partial
// documents: any failure is terminal for the session and recovered by
// retrying the whole load.
type TaskHTTPRepository struct {
	url    string
	client *http.Client
	logger log.Logger
}

// NewTaskHTTPRepository creates a new HTTP-backed task repository.
func NewTaskHTTPRepository(cfg TaskHTTPRepositoryConfig) (*TaskHTTPRepository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &TaskHTTPRepository{
		url:    cfg.URL,
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// GetTaskPackage fetches and decodes the task document.
func (r *TaskHTTPRepository) GetTaskPackage(ctx context.Context) (*model.TaskPackage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	r.logger.Debugf("Fetching task document from %s", r.url)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching task document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching task document: unexpected status %d", resp.StatusCode)
	}

	data, err := stdio.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading task document: %w", err)
	}

	task, err := taskio.DecodeJSON(data)
	if err != nil {
		return nil, err
	}

	r.logger.Debugf("Fetched task %q (%d phases)", task.ID, len(task.Phases))
	return task, nil
}
