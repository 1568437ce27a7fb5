package model

// TaskModel is the content library every step references by id: roles,
// target learning tokens, subtasks, dialogues and media assets. It is the
// single source of truth, steps hold identifiers into it, never copies.
type TaskModel struct {
	PhysicalScene      string
	Industry           string
	Roles              []Role
	TLTs               TLTs
	BehavioralChain    []string
	Subtasks           []Subtask
	Dialogues          []Dialogue
	Assets             AssetLibrary
	CompletionCriteria CompletionCriteria
	CultureModel       string
	FeedbackPrinciples []string
}

// Role is a conversation participant (e.g. waiter, customer).
type Role struct {
	ID          string
	Title       string
	Description string
}

// TLTs are the target learning tokens the task is built around, keyed by
// token id. Each mapping's keys are unique within it.
type TLTs struct {
	Words     map[string]string
	Phrases   map[string]string
	Sentences map[string]string
}

// Subtask is a goal-oriented slice of the task scenario.
type Subtask struct {
	ID          string
	Title       string
	Goal        string
	Description string
}

// DialogueScope tells whether a dialogue covers a single subtask or the
// whole task.
type DialogueScope string

const (
	DialogueScopeSubtask  DialogueScope = "subtask"
	DialogueScopeFullTask DialogueScope = "full_task"
)

// Difficulty grades a dialogue variant.
type Difficulty string

const (
	DifficultyA Difficulty = "a"
	DifficultyB Difficulty = "b"
	DifficultyC Difficulty = "c"
)

// Dialogue is an ordered exchange of turns between roles.
type Dialogue struct {
	ID         string
	Scope      DialogueScope
	SubtaskID  string
	Difficulty Difficulty
	Turns      []DialogueTurn
}

// DialogueTurn is one line of a dialogue. Role must match a role id in
// TaskModel.Roles and AudioAssetID, when set, must resolve in the asset
// library.
type DialogueTurn struct {
	Role         string
	Text         string
	AudioAssetID string
}

// AssetLibrary holds media assets deduplicated by id.
type AssetLibrary struct {
	Images map[string]ImageAsset
	Audios map[string]AudioAsset
}

// ImageAsset is an image resolved by url or inline data.
type ImageAsset struct {
	Prompt string
	URL    string
	Base64 string
}

// Empty returns true when the asset has neither a URL nor inline data, the
// consumer should fall back to a placeholder.
func (a ImageAsset) Empty() bool { return a.URL == "" && a.Base64 == "" }

// AudioAsset is an audio clip resolved by url or inline data.
type AudioAsset struct {
	Prompt string
	URL    string
	Base64 string
}

// Empty returns true when the asset has neither a URL nor inline data.
func (a AudioAsset) Empty() bool { return a.URL == "" && a.Base64 == "" }

// CompletionCriteria is scoring metadata, opaque to the flow engine.
type CompletionCriteria struct {
	PassScore  float64
	Dimensions []string
}

// Dialogue returns the dialogue with the given id.
func (m TaskModel) Dialogue(id string) (Dialogue, bool) {
	for _, d := range m.Dialogues {
		if d.ID == id {
			return d, true
		}
	}
	return Dialogue{}, false
}

// RoleTitle returns the display title for a role id, falling back to the id
// itself when the role is unknown.
func (m TaskModel) RoleTitle(roleID string) string {
	for _, r := range m.Roles {
		if r.ID == roleID || r.Title == roleID {
			return r.Title
		}
	}
	return roleID
}

// ImageAsset resolves an image asset id in the library.
func (m TaskModel) ImageAsset(id string) (ImageAsset, bool) {
	a, ok := m.Assets.Images[id]
	return a, ok
}

// AudioAsset resolves an audio asset id in the library.
func (m TaskModel) AudioAsset(id string) (AudioAsset, bool) {
	a, ok := m.Assets.Audios[id]
	return a, ok
}
