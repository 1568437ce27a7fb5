package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/slok/linguaflow/internal/model"
)

// TablePrinter prints task flow information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintSummary prints a task package overview.
func (t *TablePrinter) PrintSummary(summary TaskSummary) error {
	task := summary.Task

	fmt.Fprintf(t.writer, "Title:       %s\n", task.Title)
	fmt.Fprintf(t.writer, "ID:          %s\n", task.ID)
	fmt.Fprintf(t.writer, "Version:     %s\n", task.Version)
	fmt.Fprintf(t.writer, "Language:    %s (native %s)\n", task.TaskModelLanguage, task.NativeLanguage)
	fmt.Fprintf(t.writer, "Scene:       %s\n", task.TaskModel.PhysicalScene)
	fmt.Fprintf(t.writer, "Roles:       %d\n", len(task.TaskModel.Roles))
	fmt.Fprintf(t.writer, "Dialogues:   %d\n", len(task.TaskModel.Dialogues))
	fmt.Fprintf(t.writer, "Phases:      %d\n", len(task.Phases))
	fmt.Fprintf(t.writer, "Flow items:  %d\n", summary.FlowItems)
	fmt.Fprintf(t.writer, "Guidances:   %d\n", summary.Guidances)

	for i, count := range summary.ItemsByPhase {
		phaseType := ""
		if i < len(task.Phases) {
			phaseType = string(task.Phases[i].Type)
		}
		fmt.Fprintf(t.writer, "  phase %d (%s): %d items\n", i, phaseType, count)
	}

	return nil
}

// PrintFlow prints the flattened flow, one row per item.
func (t *TablePrinter) PrintFlow(items []model.FlowItem) error {
	if len(items) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "#\tKIND\tPHASE\tSTEP\tDETAIL")

	for i, item := range items {
		ref := item.Ref()
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", i, item.Kind(), ref.PhaseIndex, ref.StepIndex, flowItemDetail(item))
	}

	return nil
}

// PrintChecks prints the integrity check report.
func (t *TablePrinter) PrintChecks(results []model.CheckResult) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CHECK\tSTATUS\tMESSAGE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Status, r.Message)
	}
	tw.Flush()

	ok, warnings, errors := model.CountByStatus(results)
	fmt.Fprintf(t.writer, "\n%d ok, %d warnings, %d errors\n", ok, warnings, errors)

	return nil
}

// PrintSessionList prints sessions in a table format.
func (t *TablePrinter) PrintSessionList(sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTASK\tSTATUS\tPROGRESS\tUPDATED")

	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\n", s.ID, s.TaskTitle, s.Status, s.FlowIndex+1, s.ItemCount, TimeAgo(s.UpdatedAt))
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

// flowItemDetail renders the kind-specific part of a flow row.
func flowItemDetail(item model.FlowItem) string {
	switch it := item.(type) {
	case model.QuestionItem:
		detail := truncate(it.Question.Stem.Text, 40)
		if it.Group != nil {
			detail = fmt.Sprintf("[%s %d/%d] %s", it.Group.ItemType, it.Group.ItemIndex, it.Group.ItemCount, detail)
		}
		return detail
	case model.Phase4SubtaskItem:
		return fmt.Sprintf("subtask %d dialogue=%s", it.SubtaskIndex, it.Subtask.DialogueID)
	case model.Phase5SentenceItem:
		if it.Sentence == "" {
			return "(empty)"
		}
		return truncate(it.Sentence, 40)
	case model.Phase5PhraseClozeItem:
		return fmt.Sprintf("%s round=%d %s", it.PhraseID, it.RoundIndex, truncate(it.Sentence, 30))
	case model.Phase6RoleplayItem:
		return fmt.Sprintf("dialogue=%s difficulty=%s", it.Roleplay.DialogueID, it.Roleplay.Difficulty)
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimRight(string(runes[:max]), " ") + "..."
}
