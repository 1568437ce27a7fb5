package model

// TaskPackage is the root document of a language-learning task: one task
// model (the phase-0 content library) plus the ordered phases the learner
// walks through. Loaded once per session and read-only afterwards.
type TaskPackage struct {
	Version           string
	ID                string
	Title             string
	Description       string
	TaskModelLanguage string
	NativeLanguage    string
	TaskModel         TaskModel
	Phases            []Phase
	Translations      map[string]Translation
}

// Translation is an optional native-language rendering of a piece of task
// text, keyed by translation key on the package. Sparse: not all text has one.
type Translation struct {
	Native string
	IPA    string
}

// PhaseType identifies one of the six task phases.
type PhaseType string

const (
	PhaseType1 PhaseType = "phase1"
	PhaseType2 PhaseType = "phase2"
	PhaseType3 PhaseType = "phase3"
	PhaseType4 PhaseType = "phase4"
	PhaseType5 PhaseType = "phase5"
	PhaseType6 PhaseType = "phase6"
)

// Guidance explains the intent of a phase, step or question to the learner.
type Guidance struct {
	Purpose     string
	Description string
}

// Phase is one ordered stage of the task. Its guidance, when present, is
// shown once as an interstitial before the phase's first flow item.
type Phase struct {
	Type     PhaseType
	Guidance *Guidance
	Steps    []Step
}
