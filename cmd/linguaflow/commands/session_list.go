package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/linguaflow/internal/app/sessionlist"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/printer"
	"github.com/slok/linguaflow/internal/storage/sqlite"
)

// SessionListCommand lists stored sessions.
type SessionListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	statusFilter string
	format       string
}

// NewSessionListCommand returns the session list command.
func NewSessionListCommand(rootCmd *RootCommand, sessionCmd *kingpin.CmdClause) *SessionListCommand {
	c := &SessionListCommand{rootCmd: rootCmd}

	c.Cmd = sessionCmd.Command("list", "List stored sessions.")
	c.Cmd.Flag("status", "Filter by status (active, completed, abandoned).").StringVar(&c.statusFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c SessionListCommand) Name() string { return c.Cmd.FullCommand() }

func (c SessionListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Parse status filter if provided.
	var statusFilter *model.SessionStatus
	if c.statusFilter != "" {
		status := model.SessionStatus(strings.ToLower(c.statusFilter))
		switch status {
		case model.SessionStatusActive, model.SessionStatusCompleted, model.SessionStatusAbandoned:
			statusFilter = &status
		default:
			return fmt.Errorf("invalid status filter: %s (must be: active, completed, abandoned)", c.statusFilter)
		}
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	svc, err := sessionlist.NewService(sessionlist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	sessions, err := svc.Run(ctx, sessionlist.Request{
		StatusFilter: statusFilter,
	})
	if err != nil {
		return fmt.Errorf("could not list sessions: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintSessionList(sessions); err != nil {
		return fmt.Errorf("could not print session list: %w", err)
	}

	return nil
}
