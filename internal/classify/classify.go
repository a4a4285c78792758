// Package classify infers an intent category from keyword families.
//
// Families are checked in a fixed order and the first family with any
// trigger in the text wins. Triggers are matched as substrings of the
// lowercased text, with punctuation folded to spaces and one space of
// padding on each side, so a trigger written with surrounding spaces (" hr ")
// only matches a whole word.
package classify

import (
	"strings"
	"unicode"

	"github.com/alnah/go-promptcraft/internal/category"
)

// Family is the trigger list for one auto-detectable category.
type Family struct {
	Category category.Category
	Triggers []string
}

// families is evaluated in order; earlier families win.
// Email, coding, business, content, resume, marketing, ux and general are
// only reachable through explicit selection.
var families = []Family{
	{
		Category: category.LeaveCategory,
		Triggers: []string{
			" leave", "day off", "days off", "time off", " pto ",
			"vacation", "sick day", "holiday request",
		},
	},
	{
		Category: category.LearningCategory,
		Triggers: []string{
			"learn", "study plan", "studying", "a course", "online course", " courses", "tutorial",
			"teach me", "roadmap", "curriculum",
		},
	},
	{
		Category: category.BlogCategory,
		Triggers: []string{
			"blog", "article", "newsletter", "write a post", "medium post",
		},
	},
	{
		Category: category.AppIdeaCategory,
		Triggers: []string{
			"app idea", "application idea", "startup idea", "mobile app",
			"build an app", "saas", "side project",
		},
	},
	{
		Category: category.ImageGenerationCategory,
		Triggers: []string{
			" image ", " images ", "picture", "illustration", "midjourney", "dall-e",
			"stable diffusion", "artwork", " logo", "wallpaper", "photo of",
		},
	},
	{
		Category: category.PresentationCategory,
		Triggers: []string{
			"slide", "presentation", "townhall", "town hall", "meeting",
			"pitch", "deck", "powerpoint", " ppt", "speech", "address",
		},
	},
	{
		Category: category.HRCategory,
		Triggers: []string{
			" hr ", "human resources", "employee", "staff", "workforce",
			"recruitment", "hiring", "training", "performance",
		},
	},
}

// Families returns the trigger families in evaluation order.
// The result is a deep copy.
func Families() []Family {
	out := make([]Family, len(families))
	for i, f := range families {
		out[i] = Family{
			Category: f.Category,
			Triggers: append([]string(nil), f.Triggers...),
		}
	}
	return out
}

// Detect returns the first family whose triggers occur in text.
func Detect(text string) (category.Category, bool) {
	padded := " " + strings.Map(foldPunct, strings.ToLower(text)) + " "
	for _, f := range families {
		for _, trigger := range f.Triggers {
			if strings.Contains(padded, trigger) {
				return f.Category, true
			}
		}
	}
	return category.Category{}, false
}

// foldPunct turns punctuation into spaces so "hr." and "(hr)" match " hr ".
// Hyphens and apostrophes are kept for triggers like "dall-e".
func foldPunct(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'' {
		return r
	}
	return ' '
}

// Classify returns the detected category, or selected when nothing fires.
// A zero selected value resolves to general.
func Classify(text string, selected category.Category) category.Category {
	if c, ok := Detect(text); ok {
		return c
	}
	return selected.OrDefault()
}
