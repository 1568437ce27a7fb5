package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/linguaflow/internal/app/flattentask"
	"github.com/slok/linguaflow/internal/app/loadtask"
	"github.com/slok/linguaflow/internal/printer"
)

// FlattenCommand flattens a task package and prints its flow items.
type FlattenCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	source string
	format string
}

// NewFlattenCommand returns the flatten command.
func NewFlattenCommand(rootCmd *RootCommand, app *kingpin.Application) *FlattenCommand {
	c := &FlattenCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("flatten", "Flatten a task package into its ordered flow items.")
	c.Cmd.Arg("source", "Task package file path or http(s) URL.").Required().StringVar(&c.source)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c FlattenCommand) Name() string { return c.Cmd.FullCommand() }

func (c FlattenCommand) Run(ctx context.Context) error {
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

	if err := p.PrintFlow(resp.FlowItems); err != nil {
		return fmt.Errorf("could not print flow: %w", err)
	}

	return nil
}
