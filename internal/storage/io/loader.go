package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slok/linguaflow/internal/model"
)

// TaskFileRepository loads a task package document from a file, JSON or
// YAML by extension. The document is read whole on every load.
type TaskFileRepository struct {
	fs   fs.FS
	path string
}

// NewTaskFileRepository creates a new file-backed task repository.
func NewTaskFileRepository(filesystem fs.FS, path string) *TaskFileRepository {
	return &TaskFileRepository{fs: filesystem, path: path}
}

// GetTaskPackage loads the task document and returns the decoded domain model.
func (r *TaskFileRepository) GetTaskPackage(ctx context.Context) (*model.TaskPackage, error) {
	data, err := fs.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("reading task document: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if strings.HasSuffix(r.path, ".yaml") || strings.HasSuffix(r.path, ".yml") {
		return DecodeYAML(data)
	}
	return DecodeJSON(data)
}

// DecodeJSON decodes a JSON task package document.
func DecodeJSON(data []byte) (*model.TaskPackage, error) {
	var doc taskPackageDTO
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON task document: %w", err)
	}
	return doc.toModel()
}

// DecodeYAML decodes a YAML task package document.
func DecodeYAML(data []byte) (*model.TaskPackage, error) {
	var doc taskPackageDTO
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML task document: %w", err)
	}
	return doc.toModel()
}

// orderedDTO decodes a JSON/YAML object keeping its key order. The grouped
// question mappings are flattened in document order, so decoding them into a
// plain Go map would scramble the flow.
type orderedDTO[V any] struct {
	keys   []string
	values map[string]V
}

func (o *orderedDTO[V]) UnmarshalJSON(data []byte) error {
	o.keys = nil
	o.values = map[string]V{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil { // JSON null.
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected a string key, got %v", keyTok)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding value of %q: %w", key, err)
		}

		if _, exists := o.values[key]; !exists {
			o.keys = append(o.keys, key)
		}
		o.values[key] = value
	}

	_, err = dec.Token() // Closing brace.
	return err
}

func (o *orderedDTO[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got yaml kind %d", node.Kind)
	}

	o.keys = nil
	o.values = map[string]V{}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value

		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("decoding value of %q: %w", key, err)
		}

		if _, exists := o.values[key]; !exists {
			o.keys = append(o.keys, key)
		}
		o.values[key] = value
	}

	return nil
}

type taskPackageDTO struct {
	Version           string                    `json:"version" yaml:"version"`
	ID                string                    `json:"id" yaml:"id"`
	Title             string                    `json:"title" yaml:"title"`
	Description       string                    `json:"description" yaml:"description"`
	TaskModelLanguage string                    `json:"taskModelLanguage" yaml:"taskModelLanguage"`
	NativeLanguage    string                    `json:"nativeLanguage" yaml:"nativeLanguage"`
	TaskModel         taskModelDTO              `json:"taskModel" yaml:"taskModel"`
	Phases            []phaseDTO                `json:"phases" yaml:"phases"`
	Translations      map[string]translationDTO `json:"translations" yaml:"translations"`
}

type translationDTO struct {
	Native string `json:"native" yaml:"native"`
	IPA    string `json:"ipa" yaml:"ipa"`
}

type taskModelDTO struct {
	PhysicalScene      string                   `json:"physicalScene" yaml:"physicalScene"`
	Industry           string                   `json:"industry" yaml:"industry"`
	Roles              []roleDTO                `json:"roles" yaml:"roles"`
	TLTs               tltsDTO                  `json:"tlts" yaml:"tlts"`
	BehavioralChain    []string                 `json:"behavioralChain" yaml:"behavioralChain"`
	Subtasks           []subtaskDTO             `json:"subtasks" yaml:"subtasks"`
	Dialogues          []dialogueDTO            `json:"dialogues" yaml:"dialogues"`
	Assets             assetLibraryDTO          `json:"assets" yaml:"assets"`
	CompletionCriteria completionCriteriaDTO    `json:"completionCriteria" yaml:"completionCriteria"`
	CultureModel       string                   `json:"cultureModel" yaml:"cultureModel"`
	FeedbackPrinciples []string                 `json:"feedbackPrinciples" yaml:"feedbackPrinciples"`
}

type roleDTO struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type tltsDTO struct {
	Words     map[string]string `json:"words" yaml:"words"`
	Phrases   map[string]string `json:"phrases" yaml:"phrases"`
	Sentences map[string]string `json:"sentences" yaml:"sentences"`
}

type subtaskDTO struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Goal        string `json:"goal" yaml:"goal"`
	Description string `json:"description" yaml:"description"`
}

type dialogueDTO struct {
	ID         string            `json:"id" yaml:"id"`
	Scope      string            `json:"scope" yaml:"scope"`
	SubtaskID  string            `json:"subtaskId" yaml:"subtaskId"`
	Difficulty string            `json:"difficulty" yaml:"difficulty"`
	Turns      []dialogueTurnDTO `json:"turns" yaml:"turns"`
}

type dialogueTurnDTO struct {
	Role         string `json:"role" yaml:"role"`
	Text         string `json:"text" yaml:"text"`
	AudioAssetID string `json:"audioAssetId" yaml:"audioAssetId"`
}

type assetLibraryDTO struct {
	Images map[string]assetDTO `json:"images" yaml:"images"`
	Audios map[string]assetDTO `json:"audios" yaml:"audios"`
}

type assetDTO struct {
	Prompt string `json:"prompt" yaml:"prompt"`
	URL    string `json:"url" yaml:"url"`
	Base64 string `json:"base64" yaml:"base64"`
}

type completionCriteriaDTO struct {
	PassScore  float64  `json:"passScore" yaml:"passScore"`
	Dimensions []string `json:"dimensions" yaml:"dimensions"`
}

type guidanceDTO struct {
	Purpose     string `json:"purpose" yaml:"purpose"`
	Description string `json:"description" yaml:"description"`
}

type phaseDTO struct {
	Type     string       `json:"type" yaml:"type"`
	Guidance *guidanceDTO `json:"guidance" yaml:"guidance"`
	Steps    []stepDTO    `json:"steps" yaml:"steps"`
}

// stepDTO is the union of every step variant's payload, discriminated by
// the type field.
type stepDTO struct {
	ID       string       `json:"id" yaml:"id"`
	Type     string       `json:"type" yaml:"type"`
	Guidance *guidanceDTO `json:"guidance" yaml:"guidance"`

	CallToActionText  string                       `json:"callToActionText" yaml:"callToActionText"`
	EntryQuestions    []questionDTO                `json:"entryQuestions" yaml:"entryQuestions"`
	WarmupQuestions   []questionDTO                `json:"warmupQuestions" yaml:"warmupQuestions"`
	WordQuestions     *orderedDTO[[]questionDTO]   `json:"wordQuestions" yaml:"wordQuestions"`
	PhraseQuestions   *orderedDTO[[]questionDTO]   `json:"phraseQuestions" yaml:"phraseQuestions"`
	SentenceQuestions *orderedDTO[[]questionDTO]   `json:"sentenceQuestions" yaml:"sentenceQuestions"`
	Subtasks          []subtaskEntryDTO            `json:"subtasks" yaml:"subtasks"`
	PhraseClozes      *orderedDTO[phraseClozeDTO]  `json:"phraseClozes" yaml:"phraseClozes"`
	Sentences         []string                     `json:"sentences" yaml:"sentences"`
	Roleplays         []roleplayEntryDTO           `json:"roleplays" yaml:"roleplays"`
}

type questionDTO struct {
	Type                 string            `json:"type" yaml:"type"`
	Guidance             *guidanceDTO      `json:"guidance" yaml:"guidance"`
	Stem                 questionStemDTO   `json:"stem" yaml:"stem"`
	Options              []questionOptDTO  `json:"options" yaml:"options"`
	CorrectOptionIndexes []int             `json:"correctOptionIndexes" yaml:"correctOptionIndexes"`
	Hint                 string            `json:"hint" yaml:"hint"`
}

type questionStemDTO struct {
	Text         string `json:"text" yaml:"text"`
	AudioAssetID string `json:"audioAssetId" yaml:"audioAssetId"`
	ImageAssetID string `json:"imageAssetId" yaml:"imageAssetId"`
}

type questionOptDTO struct {
	Text         string `json:"text" yaml:"text"`
	AudioAssetID string `json:"audioAssetId" yaml:"audioAssetId"`
	ImageAssetID string `json:"imageAssetId" yaml:"imageAssetId"`
	Explanation  string `json:"explanation" yaml:"explanation"`
}

type subtaskEntryDTO struct {
	SubtaskID         string                `json:"subtaskId" yaml:"subtaskId"`
	AllowedRoles      []string              `json:"allowedRoles" yaml:"allowedRoles"`
	DialogueID        string                `json:"dialogueId" yaml:"dialogueId"`
	DialogDistractors []dialogDistractorDTO `json:"dialogDistractors" yaml:"dialogDistractors"`
}

type dialogDistractorDTO struct {
	Index   int                   `json:"index" yaml:"index"`
	Options []distractorOptionDTO `json:"options" yaml:"options"`
}

type distractorOptionDTO struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

type phraseClozeDTO struct {
	Sentences []string `json:"sentences" yaml:"sentences"`
	Answer    string   `json:"answer" yaml:"answer"`
	TextHint  string   `json:"textHint" yaml:"textHint"`
	AudioHint string   `json:"audioHint" yaml:"audioHint"`
}

type roleplayEntryDTO struct {
	AllowedRoles []string        `json:"allowedRoles" yaml:"allowedRoles"`
	DialogueID   string          `json:"dialogueId" yaml:"dialogueId"`
	Difficulty   string          `json:"difficulty" yaml:"difficulty"`
	DialogHints  []dialogHintDTO `json:"dialogHints" yaml:"dialogHints"`
}

type dialogHintDTO struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
}

func (d taskPackageDTO) toModel() (*model.TaskPackage, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("task package id is required: %w", model.ErrNotValid)
	}

	phases := make([]model.Phase, 0, len(d.Phases))
	for i, p := range d.Phases {
		phase, err := p.toModel()
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", i, err)
		}
		phases = append(phases, phase)
	}

	var translations map[string]model.Translation
	if d.Translations != nil {
		translations = make(map[string]model.Translation, len(d.Translations))
		for k, t := range d.Translations {
			translations[k] = model.Translation{Native: t.Native, IPA: t.IPA}
		}
	}

	return &model.TaskPackage{
		Version:           d.Version,
		ID:                d.ID,
		Title:             d.Title,
		Description:       d.Description,
		TaskModelLanguage: d.TaskModelLanguage,
		NativeLanguage:    d.NativeLanguage,
		TaskModel:         d.TaskModel.toModel(),
		Phases:            phases,
		Translations:      translations,
	}, nil
}

func (d taskModelDTO) toModel() model.TaskModel {
	roles := make([]model.Role, 0, len(d.Roles))
	for _, r := range d.Roles {
		roles = append(roles, model.Role{ID: r.ID, Title: r.Title, Description: r.Description})
	}

	subtasks := make([]model.Subtask, 0, len(d.Subtasks))
	for _, s := range d.Subtasks {
		subtasks = append(subtasks, model.Subtask{ID: s.ID, Title: s.Title, Goal: s.Goal, Description: s.Description})
	}

	dialogues := make([]model.Dialogue, 0, len(d.Dialogues))
	for _, dl := range d.Dialogues {
		turns := make([]model.DialogueTurn, 0, len(dl.Turns))
		for _, t := range dl.Turns {
			turns = append(turns, model.DialogueTurn{Role: t.Role, Text: t.Text, AudioAssetID: t.AudioAssetID})
		}
		dialogues = append(dialogues, model.Dialogue{
			ID:         dl.ID,
			Scope:      model.DialogueScope(dl.Scope),
			SubtaskID:  dl.SubtaskID,
			Difficulty: model.Difficulty(dl.Difficulty),
			Turns:      turns,
		})
	}

	return model.TaskModel{
		PhysicalScene: d.PhysicalScene,
		Industry:      d.Industry,
		Roles:         roles,
		TLTs: model.TLTs{
			Words:     d.TLTs.Words,
			Phrases:   d.TLTs.Phrases,
			Sentences: d.TLTs.Sentences,
		},
		BehavioralChain: d.BehavioralChain,
		Subtasks:        subtasks,
		Dialogues:       dialogues,
		Assets: model.AssetLibrary{
			Images: imageAssets(d.Assets.Images),
			Audios: audioAssets(d.Assets.Audios),
		},
		CompletionCriteria: model.CompletionCriteria{
			PassScore:  d.CompletionCriteria.PassScore,
			Dimensions: d.CompletionCriteria.Dimensions,
		},
		CultureModel:       d.CultureModel,
		FeedbackPrinciples: d.FeedbackPrinciples,
	}
}

func imageAssets(dtos map[string]assetDTO) map[string]model.ImageAsset {
	if dtos == nil {
		return nil
	}
	assets := make(map[string]model.ImageAsset, len(dtos))
	for id, a := range dtos {
		assets[id] = model.ImageAsset{Prompt: a.Prompt, URL: a.URL, Base64: a.Base64}
	}
	return assets
}

func audioAssets(dtos map[string]assetDTO) map[string]model.AudioAsset {
	if dtos == nil {
		return nil
	}
	assets := make(map[string]model.AudioAsset, len(dtos))
	for id, a := range dtos {
		assets[id] = model.AudioAsset{Prompt: a.Prompt, URL: a.URL, Base64: a.Base64}
	}
	return assets
}

func (d phaseDTO) toModel() (model.Phase, error) {
	steps := make([]model.Step, 0, len(d.Steps))
	for i, s := range d.Steps {
		step, err := s.toModel()
		if err != nil {
			return model.Phase{}, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}

	return model.Phase{
		Type:     model.PhaseType(d.Type),
		Guidance: d.Guidance.toModel(),
		Steps:    steps,
	}, nil
}

func (d *guidanceDTO) toModel() *model.Guidance {
	if d == nil {
		return nil
	}
	return &model.Guidance{Purpose: d.Purpose, Description: d.Description}
}

func (d stepDTO) toModel() (model.Step, error) {
	meta := model.StepMeta{ID: d.ID, Guidance: d.Guidance.toModel()}

	switch model.StepType(d.Type) {
	case model.StepTypePhase1TaskEntry:
		return model.Phase1TaskEntryStep{
			StepMeta:         meta,
			CallToActionText: d.CallToActionText,
			EntryQuestions:   questions(d.EntryQuestions),
		}, nil

	case model.StepTypePhase2Warmup:
		return model.Phase2WarmupStep{
			StepMeta:        meta,
			WarmupQuestions: questions(d.WarmupQuestions),
		}, nil

	case model.StepTypePhase3Words:
		return model.Phase3WordsStep{StepMeta: meta, WordQuestions: questionGroups(d.WordQuestions)}, nil

	case model.StepTypePhase3Phrases:
		return model.Phase3PhrasesStep{StepMeta: meta, PhraseQuestions: questionGroups(d.PhraseQuestions)}, nil

	case model.StepTypePhase3Sentences:
		return model.Phase3SentencesStep{StepMeta: meta, SentenceQuestions: questionGroups(d.SentenceQuestions)}, nil

	case model.StepTypePhase4Subtasks:
		entries := make([]model.Phase4SubtaskEntry, 0, len(d.Subtasks))
		for _, e := range d.Subtasks {
			entries = append(entries, e.toModel())
		}
		return model.Phase4SubtasksStep{StepMeta: meta, Subtasks: entries}, nil

	case model.StepTypePhase5Words:
		return model.Phase5WordsStep{StepMeta: meta, WordQuestions: questionGroups(d.WordQuestions)}, nil

	case model.StepTypePhase5Phrases:
		return model.Phase5PhrasesStep{
			StepMeta:        meta,
			PhraseQuestions: questionGroups(d.PhraseQuestions),
			PhraseClozes:    phraseClozes(d.PhraseClozes),
		}, nil

	case model.StepTypePhase5Sentences:
		return model.Phase5SentencesStep{StepMeta: meta, Sentences: d.Sentences}, nil

	case model.StepTypePhase6Roleplay:
		roleplays := make([]model.Phase6RoleplayEntry, 0, len(d.Roleplays))
		for _, e := range d.Roleplays {
			roleplays = append(roleplays, e.toModel())
		}
		return model.Phase6RoleplayStep{StepMeta: meta, Roleplays: roleplays}, nil
	}

	return nil, fmt.Errorf("unknown step type %q: %w", d.Type, model.ErrNotValid)
}

func questions(dtos []questionDTO) []model.Question {
	qs := make([]model.Question, 0, len(dtos))
	for _, q := range dtos {
		qs = append(qs, q.toModel())
	}
	return qs
}

func questionGroups(dto *orderedDTO[[]questionDTO]) *model.QuestionGroups {
	groups := model.NewOrderedMap[[]model.Question]()
	if dto == nil {
		return groups
	}
	for _, key := range dto.keys {
		groups.Set(key, questions(dto.values[key]))
	}
	return groups
}

func phraseClozes(dto *orderedDTO[phraseClozeDTO]) *model.OrderedMap[model.PhraseCloze] {
	clozes := model.NewOrderedMap[model.PhraseCloze]()
	if dto == nil {
		return clozes
	}
	for _, key := range dto.keys {
		c := dto.values[key]
		clozes.Set(key, model.PhraseCloze{
			Sentences: c.Sentences,
			Answer:    c.Answer,
			TextHint:  c.TextHint,
			AudioHint: c.AudioHint,
		})
	}
	return clozes
}

func (d questionDTO) toModel() model.Question {
	opts := make([]model.QuestionOption, 0, len(d.Options))
	for _, o := range d.Options {
		opts = append(opts, model.QuestionOption{
			Text:         o.Text,
			AudioAssetID: o.AudioAssetID,
			ImageAssetID: o.ImageAssetID,
			Explanation:  o.Explanation,
		})
	}

	return model.Question{
		Type:                 model.QuestionType(d.Type),
		Guidance:             d.Guidance.toModel(),
		Stem:                 model.QuestionStem{Text: d.Stem.Text, AudioAssetID: d.Stem.AudioAssetID, ImageAssetID: d.Stem.ImageAssetID},
		Options:              opts,
		CorrectOptionIndexes: d.CorrectOptionIndexes,
		Hint:                 d.Hint,
	}
}

func (d subtaskEntryDTO) toModel() model.Phase4SubtaskEntry {
	distractors := make([]model.DialogDistractor, 0, len(d.DialogDistractors))
	for _, dist := range d.DialogDistractors {
		opts := make([]model.DistractorOption, 0, len(dist.Options))
		for _, o := range dist.Options {
			opts = append(opts, model.DistractorOption{ID: o.ID, Text: o.Text})
		}
		distractors = append(distractors, model.DialogDistractor{Index: dist.Index, Options: opts})
	}

	return model.Phase4SubtaskEntry{
		SubtaskID:         d.SubtaskID,
		AllowedRoles:      d.AllowedRoles,
		DialogueID:        d.DialogueID,
		DialogDistractors: distractors,
	}
}

func (d roleplayEntryDTO) toModel() model.Phase6RoleplayEntry {
	hints := make([]model.DialogHint, 0, len(d.DialogHints))
	for _, h := range d.DialogHints {
		hints = append(hints, model.DialogHint{Index: h.Index, Text: h.Text})
	}

	return model.Phase6RoleplayEntry{
		AllowedRoles: d.AllowedRoles,
		DialogueID:   d.DialogueID,
		Difficulty:   model.Difficulty(d.Difficulty),
		DialogHints:  hints,
	}
}
