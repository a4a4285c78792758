// Package transform applies intent-specific phrase substitutions to
// normalized text.
//
// Each category owns an independent, ordered rule table. Categories without
// a table pass text through unchanged. After substitution the text is
// re-polished so capitalization and punctuation stay normalized.
package transform

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/normalize"
)

// Rule is one named substitution within a category table.
type Rule struct {
	Name    string
	pattern *regexp.Regexp
	replace func(groups []string) string
	literal bool // replacement casing is fixed, e.g. "JavaScript"
}

// Apply rewrites every match of the rule in s.
func (r Rule) Apply(s string) string {
	locs := r.pattern.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		repl := r.replace(groups)
		if !r.literal {
			repl = matchCase(groups[0], repl)
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(repl)
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// fixed builds a rule with a constant replacement.
func fixed(name, pattern, repl string) Rule {
	return Rule{
		Name:    name,
		pattern: regexp.MustCompile(`(?i)\b` + pattern + `\b`),
		replace: func([]string) string { return repl },
	}
}

// literal builds a constant rule whose replacement casing is never adapted.
func literal(name, pattern, repl string) Rule {
	r := fixed(name, pattern, repl)
	r.literal = true
	return r
}

var tables = map[string][]Rule{
	category.Leave:           leaveRules,
	category.Email:           emailRules,
	category.Presentation:    presentationRules,
	category.HR:              hrRules,
	category.Learning:        learningRules,
	category.Blog:            blogRules,
	category.AppIdea:         appIdeaRules,
	category.ImageGeneration: imageRules,
	category.Coding:          codingRules,
}

// Rules returns the ordered table for c, or nil if c has none.
func Rules(c category.Category) []Rule {
	table := tables[c.String()]
	if table == nil {
		return nil
	}
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}

// HasRules reports whether c owns a substitution table.
func HasRules(c category.Category) bool {
	return len(tables[c.String()]) > 0
}

// Transform applies c's table to text and re-polishes the result.
// Text for categories without a table is returned unchanged.
func Transform(text string, c category.Category) string {
	table := tables[c.String()]
	if table == nil {
		return text
	}
	for _, r := range table {
		text = r.Apply(text)
	}
	return normalize.Polish(text)
}

// matchCase keeps a leading capital from orig on repl.
func matchCase(orig, repl string) string {
	r, _ := utf8.DecodeRuneInString(orig)
	if !unicode.IsUpper(r) {
		return repl
	}
	first, size := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(first)) + repl[size:]
}
