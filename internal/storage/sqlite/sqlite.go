package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.SessionRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// DB exposes the underlying database connection.
func (r *Repository) DB() *sql.DB { return r.db }

// CreateSession creates a new session in the repository.
func (r *Repository) CreateSession(ctx context.Context, s model.Session) error {
	var completedAt *int64
	if s.CompletedAt != nil {
		u := s.CompletedAt.Unix()
		completedAt = &u
	}

	query := `
		INSERT INTO sessions (
			id, task_id, task_title, status,
			flow_index, item_count, answered_count,
			created_at, updated_at, completed_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		s.ID,
		s.TaskID,
		s.TaskTitle,
		s.Status,
		s.FlowIndex,
		s.ItemCount,
		s.AnsweredCount,
		s.CreatedAt.Unix(),
		s.UpdatedAt.Unix(),
		completedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert session: %w", err)
	}

	r.logger.Debugf("Created session in repository: %s", s.ID)
	return nil
}

// GetSession retrieves a session by ID.
func (r *Repository) GetSession(ctx context.Context, id string) (*model.Session, error) {
	query := sessionSelect + ` WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	return session, nil
}

// ListSessions returns all sessions ordered by creation time, newest first.
func (r *Repository) ListSessions(ctx context.Context) ([]model.Session, error) {
	query := sessionSelect + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate sessions: %w", err)
	}

	return sessions, nil
}

// UpdateSession replaces an existing session.
func (r *Repository) UpdateSession(ctx context.Context, s model.Session) error {
	var completedAt *int64
	if s.CompletedAt != nil {
		u := s.CompletedAt.Unix()
		completedAt = &u
	}

	query := `
		UPDATE sessions SET
			task_id = ?, task_title = ?, status = ?,
			flow_index = ?, item_count = ?, answered_count = ?,
			updated_at = ?, completed_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(
		ctx,
		query,
		s.TaskID,
		s.TaskTitle,
		s.Status,
		s.FlowIndex,
		s.ItemCount,
		s.AnsweredCount,
		s.UpdatedAt.Unix(),
		completedAt,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", s.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated session in repository: %s", s.ID)
	return nil
}

// DeleteSession removes a session by ID.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted session from repository: %s", id)
	return nil
}

const sessionSelect = `
	SELECT id, task_id, task_title, status,
		flow_index, item_count, answered_count,
		created_at, updated_at, completed_at
	FROM sessions
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*model.Session, error) {
	var s model.Session
	var createdAt, updatedAt int64
	var completedAt *int64

	err := row.Scan(
		&s.ID,
		&s.TaskID,
		&s.TaskTitle,
		&s.Status,
		&s.FlowIndex,
		&s.ItemCount,
		&s.AnsweredCount,
		&createdAt,
		&updatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	s.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	if completedAt != nil {
		t := time.Unix(*completedAt, 0).UTC()
		s.CompletedAt = &t
	}

	return &s, nil
}
