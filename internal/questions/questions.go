// Package questions provides the follow-up questions offered for leave,
// learning and blog requests, and turns their answers into pipeline context.
package questions

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/pipeline"
)

//go:embed questions.yaml
var defaultData []byte

// Sentinel errors.
var (
	// ErrUnknownQuestion indicates an answer for a question not on offer.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidOption indicates a select answer outside its options.
	ErrInvalidOption = errors.New("invalid option")
)

// Kind is how a question is answered.
type Kind string

// Question kinds.
const (
	KindText   Kind = "text"
	KindSelect Kind = "select"
)

// Question is one follow-up question.
type Question struct {
	ID          string   `yaml:"id"          json:"id"`
	Text        string   `yaml:"text"        json:"text"`
	Kind        Kind     `yaml:"kind"        json:"kind"`
	Options     []string `yaml:"options"     json:"options,omitempty"`
	Placeholder string   `yaml:"placeholder" json:"placeholder,omitempty"`
	Required    bool     `yaml:"required"    json:"required"`
}

// Section groups related questions under a title.
type Section struct {
	ID        string     `yaml:"id"        json:"id"`
	Title     string     `yaml:"title"     json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

type intent struct {
	Category string    `yaml:"category"`
	Trigger  string    `yaml:"trigger"`
	Sections []Section `yaml:"sections"`
}

type document struct {
	Intents     []intent            `yaml:"intents"`
	Suggestions map[string][]string `yaml:"suggestions"`
}

var (
	loadOnce sync.Once
	loaded   document
)

func data() document {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(defaultData, &loaded); err != nil {
			panic(fmt.Sprintf("questions: embedded data: %v", err))
		}
	})
	return loaded
}

// For returns the question sections for problem and its resolved category.
// It returns nil when no intent applies. The result is a copy.
func For(problem string, c category.Category) []Section {
	lower := strings.ToLower(problem)
	var match *intent
	intents := data().Intents
	for i := range intents {
		in := &intents[i]
		if c.String() == in.Category || strings.Contains(lower, in.Trigger) {
			match = in
		}
	}
	if match == nil {
		return nil
	}
	return cloneSections(match.Sections)
}

// Suggestions returns quick-pick answers for a question id, or nil.
func Suggestions(questionID string) []string {
	return slices.Clone(data().Suggestions[questionID])
}

// Find returns the question with id among sections.
func Find(sections []Section, id string) (Question, bool) {
	for _, s := range sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// Validate checks value against q. Select answers must match an option,
// ignoring case; the canonical option is returned.
func Validate(q Question, value string) (string, error) {
	value = strings.TrimSpace(value)
	if q.Kind != KindSelect || value == "" {
		return value, nil
	}
	for _, opt := range q.Options {
		if strings.EqualFold(opt, value) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%q for %s (options: %s): %w",
		value, q.ID, strings.Join(q.Options, ", "), ErrInvalidOption)
}

// Missing returns the required questions without a non-blank answer.
func Missing(sections []Section, values map[string]string) []Question {
	var out []Question
	for _, s := range sections {
		for _, q := range s.Questions {
			if q.Required && strings.TrimSpace(values[q.ID]) == "" {
				out = append(out, q)
			}
		}
	}
	return out
}

// Answers converts values keyed by question id into pipeline answers,
// in question order. Blank values are skipped.
func Answers(sections []Section, values map[string]string) ([]pipeline.Answer, error) {
	for id := range values {
		if _, ok := Find(sections, id); !ok {
			return nil, fmt.Errorf("%q: %w", id, ErrUnknownQuestion)
		}
	}

	var out []pipeline.Answer
	for _, s := range sections {
		for _, q := range s.Questions {
			v, err := Validate(q, values[q.ID])
			if err != nil {
				return nil, err
			}
			if v == "" {
				continue
			}
			out = append(out, pipeline.Answer{Question: q.Text, Value: v})
		}
	}
	return out, nil
}

func cloneSections(in []Section) []Section {
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = Section{ID: s.ID, Title: s.Title, Questions: make([]Question, len(s.Questions))}
		for j, q := range s.Questions {
			q.Options = slices.Clone(q.Options)
			out[i].Questions[j] = q
		}
	}
	return out
}
