package lib

import (
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/navigation"
)

// Sentinel errors returned by the SDK. Inspect with [errors.Is].
var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = model.ErrNotFound
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = model.ErrAlreadyExists
	// ErrNotValid is returned on invalid input or an invalid operation.
	ErrNotValid = model.ErrNotValid
)

// TaskPackage is the root task document: one task model plus ordered phases.
type TaskPackage = model.TaskPackage

// TaskModel is the phase-0 content library of a task package.
type TaskModel = model.TaskModel

// Phase is one ordered stage of a task.
type Phase = model.Phase

// Guidance explains the intent of a phase, step or question.
type Guidance = model.Guidance

// Question is one multiple-choice exercise.
type Question = model.Question

// FlowKind discriminates the flow item variants.
type FlowKind = model.FlowKind

// Flow item kinds.
const (
	FlowKindQuestion          = model.FlowKindQuestion
	FlowKindPhase4Subtask     = model.FlowKindPhase4Subtask
	FlowKindPhase5Sentence    = model.FlowKindPhase5Sentence
	FlowKindPhase5PhraseCloze = model.FlowKindPhase5PhraseCloze
	FlowKindPhase6Roleplay    = model.FlowKindPhase6Roleplay
)

// FlowItem is one atomic unit of a flattened task flow.
type FlowItem = model.FlowItem

// QuestionItem is a flow item wrapping one question.
type QuestionItem = model.QuestionItem

// Phase4SubtaskItem is a flow item wrapping one phase-4 subtask exercise.
type Phase4SubtaskItem = model.Phase4SubtaskItem

// Phase5SentenceItem is a flow item wrapping one phase-5 sentence exercise.
type Phase5SentenceItem = model.Phase5SentenceItem

// Phase5PhraseClozeItem is a flow item wrapping one phase-5 cloze round.
type Phase5PhraseClozeItem = model.Phase5PhraseClozeItem

// Phase6RoleplayItem is a flow item wrapping one phase-6 roleplay exercise.
type Phase6RoleplayItem = model.Phase6RoleplayItem

// PhaseGuidanceItem is a per-phase guidance interstitial.
type PhaseGuidanceItem = model.PhaseGuidanceItem

// CheckStatus is the severity of an integrity check result.
type CheckStatus = model.CheckStatus

// Integrity check severities.
const (
	CheckStatusOK      = model.CheckStatusOK
	CheckStatusWarning = model.CheckStatusWarning
	CheckStatusError   = model.CheckStatusError
)

// CheckResult is the outcome of one integrity check.
type CheckResult = model.CheckResult

// SessionStatus represents the lifecycle state of a stored session.
type SessionStatus = model.SessionStatus

// Session lifecycle states.
const (
	// SessionStatusActive indicates the session is in progress.
	SessionStatusActive = model.SessionStatusActive
	// SessionStatusCompleted indicates the learner reached the end of the flow.
	SessionStatusCompleted = model.SessionStatusCompleted
	// SessionStatusAbandoned indicates the session ended before completion.
	SessionStatusAbandoned = model.SessionStatusAbandoned
)

// Session represents stored session progress returned by the SDK.
//
// This is a read-only snapshot of the session state at the time of the API call.
type Session = model.Session

// SessionController drives one learner session through a flattened flow.
// Returned by [Client.NewSession].
type SessionController = navigation.Controller

// Screen identifies what a session controller is currently presenting.
type Screen = navigation.Screen

// Session screens.
const (
	ScreenWelcome       = navigation.ScreenWelcome
	ScreenLoading       = navigation.ScreenLoading
	ScreenPhaseGuidance = navigation.ScreenPhaseGuidance
	ScreenQuestion      = navigation.ScreenQuestion
	ScreenComplete      = navigation.ScreenComplete
)
