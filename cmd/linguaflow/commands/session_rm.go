package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/linguaflow/internal/app/sessionremove"
	"github.com/slok/linguaflow/internal/printer"
	"github.com/slok/linguaflow/internal/storage/sqlite"
)

// SessionRmCommand removes a stored session.
type SessionRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
}

// NewSessionRmCommand returns the session rm command.
func NewSessionRmCommand(rootCmd *RootCommand, sessionCmd *kingpin.CmdClause) *SessionRmCommand {
	c := &SessionRmCommand{rootCmd: rootCmd}

	c.Cmd = sessionCmd.Command("rm", "Remove a stored session.")
	c.Cmd.Arg("session-id", "Session ID.").Required().StringVar(&c.sessionID)

	return c
}

func (c SessionRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c SessionRmCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	svc, err := sessionremove.NewService(sessionremove.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, sessionremove.Request{SessionID: c.sessionID}); err != nil {
		return fmt.Errorf("could not remove session: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintMessage(fmt.Sprintf("Removed session: %s", c.sessionID)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
