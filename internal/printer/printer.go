package printer

import "github.com/slok/linguaflow/internal/model"

// TaskSummary is the derived overview of a loaded task package.
type TaskSummary struct {
	Task         model.TaskPackage
	FlowItems    int
	Guidances    int
	ItemsByKind  map[model.FlowKind]int
	ItemsByPhase []int
}

// Printer knows how to print task flow information in different formats.
type Printer interface {
	PrintSummary(summary TaskSummary) error
	PrintFlow(items []model.FlowItem) error
	PrintChecks(results []model.CheckResult) error
	PrintSessionList(sessions []model.Session) error
	PrintMessage(msg string) error
}
