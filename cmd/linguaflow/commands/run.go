package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/linguaflow/internal/app/runtask"
	"github.com/slok/linguaflow/internal/storage"
	"github.com/slok/linguaflow/internal/storage/sqlite"
)

// RunCommand walks a task interactively on the terminal.
type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	source string
	noSave bool
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Walk a task interactively on the terminal.")
	c.Cmd.Arg("source", "Task package file path or http(s) URL.").Required().StringVar(&c.source)
	c.Cmd.Flag("no-save", "Do not persist session progress.").BoolVar(&c.noSave)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	taskRepo, err := newTaskRepository(c.rootCmd, c.source)
	if err != nil {
		return err
	}

	var sessionRepo storage.SessionRepository
	if !c.noSave {
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: c.rootCmd.DBPath,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("could not create repository: %w", err)
		}
		defer repo.Close()
		sessionRepo = repo
	}

	svc, err := runtask.NewService(runtask.ServiceConfig{
		TaskRepository:    taskRepo,
		SessionRepository: sessionRepo,
		Stdin:             c.rootCmd.Stdin,
		Stdout:            c.rootCmd.Stdout,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("could not create run service: %w", err)
	}

	resp, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not run task: %w", err)
	}

	logger.Debugf("Session %s finished with status %s", resp.Session.ID, resp.Session.Status)
	return nil
}
