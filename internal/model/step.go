package model

// StepType identifies one of the ten step variants.
type StepType string

const (
	StepTypePhase1TaskEntry StepType = "phase1_task_entry"
	StepTypePhase2Warmup    StepType = "phase2_warmup"
	StepTypePhase3Words     StepType = "phase3_words"
	StepTypePhase3Phrases   StepType = "phase3_phrases"
	StepTypePhase3Sentences StepType = "phase3_sentences"
	StepTypePhase4Subtasks  StepType = "phase4_subtasks"
	StepTypePhase5Words     StepType = "phase5_words"
	StepTypePhase5Phrases   StepType = "phase5_phrases"
	StepTypePhase5Sentences StepType = "phase5_sentences"
	StepTypePhase6Roleplay  StepType = "phase6_roleplay"
)

// QuestionGroups maps a tlt id to its question list, in document order.
type QuestionGroups = OrderedMap[[]Question]

// Step is the closed set of step variants a phase can contain. The flattener
// switches exhaustively over the concrete types, so adding a variant is a
// compile-time-visible change.
type Step interface {
	Meta() StepMeta
	Type() StepType

	sealedStep()
}

// StepMeta carries the fields shared by every step variant.
type StepMeta struct {
	ID       string
	Guidance *Guidance
}

// Meta implements Step for every variant embedding StepMeta.
func (m StepMeta) Meta() StepMeta { return m }

// Phase1TaskEntryStep introduces the task with entry questions.
type Phase1TaskEntryStep struct {
	StepMeta
	CallToActionText string
	EntryQuestions   []Question
}

func (s Phase1TaskEntryStep) Type() StepType { return StepTypePhase1TaskEntry }
func (s Phase1TaskEntryStep) sealedStep()    {}

// Phase2WarmupStep holds warmup questions.
type Phase2WarmupStep struct {
	StepMeta
	WarmupQuestions []Question
}

func (s Phase2WarmupStep) Type() StepType { return StepTypePhase2Warmup }
func (s Phase2WarmupStep) sealedStep()    {}

// Phase3WordsStep teaches words through per-word question groups.
type Phase3WordsStep struct {
	StepMeta
	WordQuestions *QuestionGroups
}

func (s Phase3WordsStep) Type() StepType { return StepTypePhase3Words }
func (s Phase3WordsStep) sealedStep()    {}

// Phase3PhrasesStep teaches phrases through per-phrase question groups.
type Phase3PhrasesStep struct {
	StepMeta
	PhraseQuestions *QuestionGroups
}

func (s Phase3PhrasesStep) Type() StepType { return StepTypePhase3Phrases }
func (s Phase3PhrasesStep) sealedStep()    {}

// Phase3SentencesStep teaches sentences through per-sentence question groups.
type Phase3SentencesStep struct {
	StepMeta
	SentenceQuestions *QuestionGroups
}

func (s Phase3SentencesStep) Type() StepType { return StepTypePhase3Sentences }
func (s Phase3SentencesStep) sealedStep()    {}

// Phase4SubtaskEntry is one guided subtask dialogue practice: the learner
// plays one of the allowed roles through the referenced dialogue, picking the
// right line against the distractors attached to their turns.
type Phase4SubtaskEntry struct {
	SubtaskID         string
	AllowedRoles      []string
	DialogueID        string
	DialogDistractors []DialogDistractor
}

// DialogDistractor is the wrong-answer option set for one dialogue turn,
// addressed by turn index.
type DialogDistractor struct {
	Index   int
	Options []DistractorOption
}

// DistractorOption is one incorrect line choice.
type DistractorOption struct {
	ID   string
	Text string
}

// Phase4SubtasksStep practices subtask dialogues.
type Phase4SubtasksStep struct {
	StepMeta
	Subtasks []Phase4SubtaskEntry
}

func (s Phase4SubtasksStep) Type() StepType { return StepTypePhase4Subtasks }
func (s Phase4SubtasksStep) sealedStep()    {}

// Phase5WordsStep reviews words, same grouping as phase 3.
type Phase5WordsStep struct {
	StepMeta
	WordQuestions *QuestionGroups
}

func (s Phase5WordsStep) Type() StepType { return StepTypePhase5Words }
func (s Phase5WordsStep) sealedStep()    {}

// PhraseCloze is a fill-in-the-blank drill for one phrase: each sentence is
// one round, all sharing the same answer.
type PhraseCloze struct {
	Sentences []string
	Answer    string
	TextHint  string
	AudioHint string
}

// Phase5PhrasesStep reviews phrases, preferring cloze rounds and falling
// back to question groups when no clozes are present.
type Phase5PhrasesStep struct {
	StepMeta
	PhraseQuestions *QuestionGroups
	PhraseClozes    *OrderedMap[PhraseCloze]
}

func (s Phase5PhrasesStep) Type() StepType { return StepTypePhase5Phrases }
func (s Phase5PhrasesStep) sealedStep()    {}

// Phase5SentencesStep reviews sentences as ordering exercises.
type Phase5SentencesStep struct {
	StepMeta
	Sentences []string
}

func (s Phase5SentencesStep) Type() StepType { return StepTypePhase5Sentences }
func (s Phase5SentencesStep) sealedStep()    {}

// Phase6RoleplayEntry is a free roleplay over a dialogue, with per-turn
// hints instead of choices.
type Phase6RoleplayEntry struct {
	AllowedRoles []string
	DialogueID   string
	Difficulty   Difficulty
	DialogHints  []DialogHint
}

// DialogHint is the hint text for one dialogue turn, addressed by turn index.
type DialogHint struct {
	Index int
	Text  string
}

// Phase6RoleplayStep closes the task with free roleplay.
type Phase6RoleplayStep struct {
	StepMeta
	Roleplays []Phase6RoleplayEntry
}

func (s Phase6RoleplayStep) Type() StepType { return StepTypePhase6Roleplay }
func (s Phase6RoleplayStep) sealedStep()    {}
