// Package tone defines the closed set of writing tones and the instruction
// sentence each one injects into a generated prompt.
package tone

import (
	"errors"
	"fmt"
)

// ErrUnknown indicates an unrecognized tone name.
var ErrUnknown = errors.New("unknown tone")

// Tone name constants.
const (
	Formal    = "formal"
	Friendly  = "friendly"
	Creative  = "creative"
	Technical = "technical"
	Casual    = "casual"
)

// Tone represents a validated tone.
// The zero value is valid and resolves to Friendly.
type Tone struct {
	name string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Tone{}

// Pre-parsed tones for use in code.
var (
	FormalTone    = Tone{name: Formal}
	FriendlyTone  = Tone{name: Friendly}
	CreativeTone  = Tone{name: Creative}
	TechnicalTone = Tone{name: Technical}
	CasualTone    = Tone{name: Casual}
)

var order = []string{Formal, Friendly, Creative, Technical, Casual}

type info struct {
	label       string
	description string
	instruction string
}

var tones = map[string]info{
	Formal:    {"Formal", "Professional and structured", "Use a professional, structured tone."},
	Friendly:  {"Friendly", "Warm and approachable", "Use a warm, approachable tone."},
	Creative:  {"Creative", "Imaginative and engaging", "Use an imaginative, engaging tone."},
	Technical: {"Technical", "Detailed and precise", "Use a detailed, precise tone."},
	Casual:    {"Casual", "Relaxed and conversational", "Use a relaxed, conversational tone."},
}

// Parse validates and parses a tone name.
func Parse(s string) (Tone, error) {
	if s == "" {
		return Tone{}, fmt.Errorf("tone cannot be empty: %w", ErrUnknown)
	}
	if _, ok := tones[s]; !ok {
		return Tone{}, fmt.Errorf("unknown tone %q (valid: %v): %w", s, order, ErrUnknown)
	}
	return Tone{name: s}, nil
}

// MustParse parses a tone name, panicking if invalid.
// Use only for compile-time constants and tests.
func MustParse(s string) Tone {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve parses s, falling back to Friendly for empty or unknown input.
func Resolve(s string) Tone {
	t, err := Parse(s)
	if err != nil {
		return FriendlyTone
	}
	return t
}

// String returns the tone name. The zero value reports "friendly".
func (t Tone) String() string {
	if t.name == "" {
		return Friendly
	}
	return t.name
}

// IsZero reports whether no tone was set.
func (t Tone) IsZero() bool {
	return t.name == ""
}

// Label returns the capitalized display label.
func (t Tone) Label() string {
	return tones[t.String()].label
}

// Description returns the short description shown next to the label.
func (t Tone) Description() string {
	return tones[t.String()].description
}

// Instruction returns the sentence injected into every template.
func (t Tone) Instruction() string {
	return tones[t.String()].instruction
}

// Names returns all tone names in display order.
func Names() []string {
	result := make([]string, len(order))
	copy(result, order)
	return result
}

// All returns all tones in display order.
func All() []Tone {
	result := make([]Tone, len(order))
	for i, name := range order {
		result[i] = Tone{name: name}
	}
	return result
}
