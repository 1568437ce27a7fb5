package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/linguaflow/internal/model"
)

// JSONPrinter prints task flow information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// summaryOutput represents the task overview output.
type summaryOutput struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Version      string         `json:"version"`
	Language     string         `json:"language"`
	Native       string         `json:"native_language"`
	Phases       int            `json:"phases"`
	FlowItems    int            `json:"flow_items"`
	Guidances    int            `json:"guidance_items"`
	ItemsByKind  map[string]int `json:"items_by_kind"`
	ItemsByPhase []int          `json:"items_by_phase"`
}

// flowItemOutput represents one flattened flow item.
type flowItemOutput struct {
	Index      int    `json:"index"`
	Kind       string `json:"kind"`
	PhaseIndex int    `json:"phase_index"`
	StepIndex  int    `json:"step_index"`

	QuestionIndex *int   `json:"question_index,omitempty"`
	GroupType     string `json:"group_type,omitempty"`
	GroupIndex    int    `json:"group_index,omitempty"`
	GroupCount    int    `json:"group_count,omitempty"`
	SubtaskIndex  *int   `json:"subtask_index,omitempty"`
	SentenceIndex *int   `json:"sentence_index,omitempty"`
	Sentence      string `json:"sentence,omitempty"`
	PhraseID      string `json:"phrase_id,omitempty"`
	RoundIndex    *int   `json:"round_index,omitempty"`
	Answer        string `json:"answer,omitempty"`
	DialogueID    string `json:"dialogue_id,omitempty"`
}

// checkOutput represents one integrity check result.
type checkOutput struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// sessionOutput represents one stored session.
type sessionOutput struct {
	ID            string     `json:"id"`
	TaskID        string     `json:"task_id"`
	TaskTitle     string     `json:"task_title"`
	Status        string     `json:"status"`
	FlowIndex     int        `json:"flow_index"`
	ItemCount     int        `json:"item_count"`
	AnsweredCount int        `json:"answered_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintSummary prints the task overview in JSON format.
func (j *JSONPrinter) PrintSummary(summary TaskSummary) error {
	byKind := make(map[string]int, len(summary.ItemsByKind))
	for k, v := range summary.ItemsByKind {
		byKind[string(k)] = v
	}

	output := summaryOutput{
		ID:           summary.Task.ID,
		Title:        summary.Task.Title,
		Version:      summary.Task.Version,
		Language:     summary.Task.TaskModelLanguage,
		Native:       summary.Task.NativeLanguage,
		Phases:       len(summary.Task.Phases),
		FlowItems:    summary.FlowItems,
		Guidances:    summary.Guidances,
		ItemsByKind:  byKind,
		ItemsByPhase: summary.ItemsByPhase,
	}

	return j.encode(output)
}

// PrintFlow prints the flattened flow in JSON format.
func (j *JSONPrinter) PrintFlow(items []model.FlowItem) error {
	outputs := make([]flowItemOutput, 0, len(items))
	for i, item := range items {
		out := flowItemOutput{
			Index:      i,
			Kind:       string(item.Kind()),
			PhaseIndex: item.Ref().PhaseIndex,
			StepIndex:  item.Ref().StepIndex,
		}

		switch it := item.(type) {
		case model.QuestionItem:
			qi := it.QuestionIndex
			out.QuestionIndex = &qi
			if it.Group != nil {
				out.GroupType = it.Group.ItemType
				out.GroupIndex = it.Group.ItemIndex
				out.GroupCount = it.Group.ItemCount
			}
		case model.Phase4SubtaskItem:
			si := it.SubtaskIndex
			out.SubtaskIndex = &si
			out.DialogueID = it.Subtask.DialogueID
		case model.Phase5SentenceItem:
			si := it.SentenceIndex
			out.SentenceIndex = &si
			out.Sentence = it.Sentence
		case model.Phase5PhraseClozeItem:
			ri := it.RoundIndex
			out.RoundIndex = &ri
			out.PhraseID = it.PhraseID
			out.Sentence = it.Sentence
			out.Answer = it.Answer
		case model.Phase6RoleplayItem:
			out.DialogueID = it.Roleplay.DialogueID
		}

		outputs = append(outputs, out)
	}

	return j.encode(outputs)
}

// PrintChecks prints the integrity check report in JSON format.
func (j *JSONPrinter) PrintChecks(results []model.CheckResult) error {
	outputs := make([]checkOutput, 0, len(results))
	for _, r := range results {
		outputs = append(outputs, checkOutput{ID: r.ID, Status: string(r.Status), Message: r.Message})
	}

	return j.encode(outputs)
}

// PrintSessionList prints sessions in JSON format.
func (j *JSONPrinter) PrintSessionList(sessions []model.Session) error {
	outputs := make([]sessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out := sessionOutput{
			ID:            s.ID,
			TaskID:        s.TaskID,
			TaskTitle:     s.TaskTitle,
			Status:        string(s.Status),
			FlowIndex:     s.FlowIndex,
			ItemCount:     s.ItemCount,
			AnsweredCount: s.AnsweredCount,
			CreatedAt:     s.CreatedAt.UTC(),
			UpdatedAt:     s.UpdatedAt.UTC(),
		}
		if s.CompletedAt != nil {
			utcTime := s.CompletedAt.UTC()
			out.CompletedAt = &utcTime
		}
		outputs = append(outputs, out)
	}

	return j.encode(outputs)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
