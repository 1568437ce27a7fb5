package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/linguaflow/internal/app/checktask"
	"github.com/slok/linguaflow/internal/app/loadtask"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/printer"
)

// CheckCommand runs integrity checks against a task package.
type CheckCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	source string
	format string
}

// NewCheckCommand returns the check command.
func NewCheckCommand(rootCmd *RootCommand, app *kingpin.Application) *CheckCommand {
	c := &CheckCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("check", "Run integrity checks against a task package.")
	c.Cmd.Arg("source", "Task package file path or http(s) URL.").Required().StringVar(&c.source)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c CheckCommand) Name() string { return c.Cmd.FullCommand() }

func (c CheckCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newTaskRepository(c.rootCmd, c.source)
	if err != nil {
		return err
	}

	loadSvc, err := loadtask.NewService(loadtask.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create load service: %w", err)
	}

	task, err := loadSvc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not load task: %w", err)
	}

	checkSvc, err := checktask.NewService(checktask.ServiceConfig{
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create check service: %w", err)
	}

	results, err := checkSvc.Run(ctx, checktask.Request{Task: *task})
	if err != nil {
		return fmt.Errorf("could not check task: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintChecks(results); err != nil {
		return fmt.Errorf("could not print checks: %w", err)
	}

	if model.HasErrors(results) {
		return fmt.Errorf("task has integrity errors")
	}

	return nil
}
