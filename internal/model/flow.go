package model

// FlowKind discriminates the flow item variants.
type FlowKind string

const (
	FlowKindQuestion          FlowKind = "question"
	FlowKindPhase4Subtask     FlowKind = "phase4_subtask"
	FlowKindPhase5Sentence    FlowKind = "phase5_sentence"
	FlowKindPhase5PhraseCloze FlowKind = "phase5_phrase_cloze"
	FlowKindPhase6Roleplay    FlowKind = "phase6_roleplay"
)

// FlowRef points a flow item back at the phase and step it came from.
type FlowRef struct {
	PhaseIndex int
	StepIndex  int
}

// Ref implements FlowItem for every variant embedding FlowRef.
func (r FlowRef) Ref() FlowRef { return r }

// FlowItem is one navigable unit of the flattened task. Items are derived
// fresh on every flatten, never mutated and never persisted.
type FlowItem interface {
	Ref() FlowRef
	Kind() FlowKind

	sealedFlowItem()
}

// GroupLabel positions a question inside a per-entity group ("word 2 of 5").
// Only attached when the source mapping has more than one key, a "1 of 1"
// label carries no information.
type GroupLabel struct {
	ItemType  string
	ItemIndex int // 1-based position of the entity key.
	ItemCount int
}

// QuestionItem presents one multiple-choice question.
type QuestionItem struct {
	FlowRef
	QuestionIndex int
	Question      Question
	Group         *GroupLabel
}

func (i QuestionItem) Kind() FlowKind  { return FlowKindQuestion }
func (i QuestionItem) sealedFlowItem() {}

// Phase4SubtaskItem presents one guided subtask dialogue. Turn-by-turn
// pacing belongs to the presentation layer, driven by the referenced
// dialogue and the entry's distractors.
type Phase4SubtaskItem struct {
	FlowRef
	SubtaskIndex int
	Subtask      Phase4SubtaskEntry
}

func (i Phase4SubtaskItem) Kind() FlowKind  { return FlowKindPhase4Subtask }
func (i Phase4SubtaskItem) sealedFlowItem() {}

// Phase5SentenceItem presents one sentence-ordering exercise.
type Phase5SentenceItem struct {
	FlowRef
	SentenceIndex int
	Sentence      string
}

func (i Phase5SentenceItem) Kind() FlowKind  { return FlowKindPhase5Sentence }
func (i Phase5SentenceItem) sealedFlowItem() {}

// Phase5PhraseClozeItem presents one cloze round of a phrase drill.
type Phase5PhraseClozeItem struct {
	FlowRef
	PhraseID   string
	RoundIndex int // 0-based round within the phrase's sentences.
	Sentence   string
	Answer     string
	TextHint   string
	AudioHint  string
}

func (i Phase5PhraseClozeItem) Kind() FlowKind  { return FlowKindPhase5PhraseCloze }
func (i Phase5PhraseClozeItem) sealedFlowItem() {}

// Phase6RoleplayItem presents the step's first roleplay entry. Later
// difficulty variants in the same step are not navigated.
type Phase6RoleplayItem struct {
	FlowRef
	Roleplay Phase6RoleplayEntry
}

func (i Phase6RoleplayItem) Kind() FlowKind  { return FlowKindPhase6Roleplay }
func (i Phase6RoleplayItem) sealedFlowItem() {}

// PhaseGuidanceItem is the interstitial guidance shown once before a phase's
// first flow item.
type PhaseGuidanceItem struct {
	PhaseIndex int
	Phase      Phase
}
