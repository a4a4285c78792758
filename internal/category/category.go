// Package category defines the closed set of prompt intents that drive
// template selection.
package category

import (
	"errors"
	"fmt"
)

// ErrUnknown indicates an unrecognized category name.
var ErrUnknown = errors.New("unknown category")

// Category name constants.
const (
	General         = "general"
	Email           = "email"
	Coding          = "coding"
	Business        = "business"
	Content         = "content"
	Resume          = "resume"
	Marketing       = "marketing"
	UX              = "ux"
	Presentation    = "presentation"
	HR              = "hr"
	Leave           = "leave"
	Learning        = "learning"
	Blog            = "blog"
	AppIdea         = "app-idea"
	ImageGeneration = "image-generation"
)

// ---------------------------------------------------------------------------
// Category type - represents a validated intent
// ---------------------------------------------------------------------------

// Category represents a validated prompt intent.
// The zero value is valid and resolves to General.
type Category struct {
	name string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Category{}

// Pre-parsed categories for use in code.
var (
	GeneralCategory         = Category{name: General}
	EmailCategory           = Category{name: Email}
	CodingCategory          = Category{name: Coding}
	BusinessCategory        = Category{name: Business}
	ContentCategory         = Category{name: Content}
	ResumeCategory          = Category{name: Resume}
	MarketingCategory       = Category{name: Marketing}
	UXCategory              = Category{name: UX}
	PresentationCategory    = Category{name: Presentation}
	HRCategory              = Category{name: HR}
	LeaveCategory           = Category{name: Leave}
	LearningCategory        = Category{name: Learning}
	BlogCategory            = Category{name: Blog}
	AppIdeaCategory         = Category{name: AppIdea}
	ImageGenerationCategory = Category{name: ImageGeneration}
)

// order is the canonical display order, matching the category picker.
var order = []string{
	Email,
	Coding,
	Business,
	Content,
	Resume,
	Marketing,
	UX,
	Presentation,
	HR,
	Leave,
	Learning,
	Blog,
	AppIdea,
	ImageGeneration,
	General,
}

// labels maps each category to its human-readable label.
var labels = map[string]string{
	Email:           "Email Writing",
	Coding:          "Coding Help",
	Business:        "Business Plan",
	Content:         "Content Creation",
	Resume:          "Resume",
	Marketing:       "Marketing Copy",
	UX:              "UX Writing",
	Presentation:    "Presentations",
	HR:              "HR Communications",
	Leave:           "Leave Request",
	Learning:        "Learning Plan",
	Blog:            "Blog Writing",
	AppIdea:         "App Idea",
	ImageGeneration: "Image Generation",
	General:         "General Help",
}

// Parse validates and parses a category name.
// Empty string returns an error; callers that want the default should use
// the zero value or GeneralCategory.
func Parse(s string) (Category, error) {
	if s == "" {
		return Category{}, fmt.Errorf("category cannot be empty: %w", ErrUnknown)
	}
	if _, ok := labels[s]; !ok {
		return Category{}, fmt.Errorf("unknown category %q: %w", s, ErrUnknown)
	}
	return Category{name: s}, nil
}

// MustParse parses a category name, panicking if invalid.
// Use only for compile-time constants and tests.
func MustParse(s string) Category {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve parses s, falling back to General for empty or unknown input.
func Resolve(s string) Category {
	c, err := Parse(s)
	if err != nil {
		return GeneralCategory
	}
	return c
}

// String returns the category name. The zero value reports "general".
func (c Category) String() string {
	if c.name == "" {
		return General
	}
	return c.name
}

// IsZero reports whether no category was set.
func (c Category) IsZero() bool {
	return c.name == ""
}

// OrDefault returns c, or GeneralCategory if c is zero.
func (c Category) OrDefault() Category {
	if c.IsZero() {
		return GeneralCategory
	}
	return c
}

// Label returns the display label, e.g. "Email Writing".
func (c Category) Label() string {
	return labels[c.String()]
}

// Names returns all category names in display order.
func Names() []string {
	result := make([]string, len(order))
	copy(result, order)
	return result
}

// All returns all categories in display order.
func All() []Category {
	result := make([]Category, len(order))
	for i, name := range order {
		result[i] = Category{name: name}
	}
	return result
}
