package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/linguaflow/internal/app/flattentask"
	"github.com/slok/linguaflow/internal/app/loadtask"
	"github.com/slok/linguaflow/internal/printer"
)

// InfoCommand prints a summary of a task package.
type InfoCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	source string
	format string
}

// NewInfoCommand returns the info command.
func NewInfoCommand(rootCmd *RootCommand, app *kingpin.Application) *InfoCommand {
	c := &InfoCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("info", "Show a summary of a task package.")
	c.Cmd.Arg("source", "Task package file path or http(s) URL.").Required().StringVar(&c.source)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c InfoCommand) Name() string { return c.Cmd.FullCommand() }

func (c InfoCommand) Run(ctx context.Context) error {
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

	flattenSvc, err := flattentask.NewService(flattentask.ServiceConfig{
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create flatten service: %w", err)
	}

	resp, err := flattenSvc.Run(ctx, flattentask.Request{Task: *task})
	if err != nil {
		return fmt.Errorf("could not flatten task: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	summary := printer.TaskSummary{
		Task:         *task,
		FlowItems:    len(resp.FlowItems),
		Guidances:    len(resp.GuidanceItems),
		ItemsByKind:  resp.ItemsByKind,
		ItemsByPhase: resp.ItemsByPhase,
	}

	if err := p.PrintSummary(summary); err != nil {
		return fmt.Errorf("could not print summary: %w", err)
	}

	return nil
}
