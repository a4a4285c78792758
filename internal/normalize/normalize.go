// Package normalize rewrites free text into a cleaner, more formal register
// through an explicit, ordered list of phrase-level rules.
//
// Rules are grouped in eight families applied in order: informal forms and
// contractions, function-word misspellings, politeness, the context-sensitive
// "for", capitalization, punctuation spacing, whitespace, and terminal
// punctuation. Later rules may re-match text produced by earlier ones, so
// the order is part of the contract and is exposed by Rules.
//
// Normalize is deterministic and idempotent: Normalize(Normalize(x)) equals
// Normalize(x).
package normalize

import (
	"regexp"
	"strings"
)

// Family groups rules that serve the same purpose.
type Family int

// Rule families, in application order.
const (
	FamilyInformal Family = iota + 1
	FamilyMisspelling
	FamilyPoliteness
	FamilyFor
	FamilyCapitalization
	FamilyPunctuation
	FamilyWhitespace
	FamilyTerminal
)

var familyNames = map[Family]string{
	FamilyInformal:       "informal",
	FamilyMisspelling:    "misspelling",
	FamilyPoliteness:     "politeness",
	FamilyFor:            "for",
	FamilyCapitalization: "capitalization",
	FamilyPunctuation:    "punctuation",
	FamilyWhitespace:     "whitespace",
	FamilyTerminal:       "terminal",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "unknown"
}

// Rule is one named rewrite step.
type Rule struct {
	Name   string
	Family Family
	Apply  func(string) string
}

// phrase is a case-insensitive whole-word substitution.
type phrase struct {
	from string // regexp fragment, matched between word boundaries
	to   string
}

// informal expands slang verbs and contractions.
var informal = []phrase{
	{`wanna`, "want to"},
	{`gonna`, "going to"},
	{`gotta`, "have to"},
	{`kinda`, "kind of"},
	{`sorta`, "sort of"},
	{`gimme`, "give me"},
	{`lemme`, "let me"},
	{`dunno`, "do not know"},
	{`outta`, "out of"},
	{`can['’]t`, "cannot"},
	{`won['’]t`, "will not"},
	{`don['’]t`, "do not"},
	{`doesn['’]t`, "does not"},
	{`didn['’]t`, "did not"},
	{`isn['’]t`, "is not"},
	{`aren['’]t`, "are not"},
	{`wasn['’]t`, "was not"},
	{`weren['’]t`, "were not"},
	{`haven['’]t`, "have not"},
	{`hasn['’]t`, "has not"},
	{`hadn['’]t`, "had not"},
	{`shouldn['’]t`, "should not"},
	{`wouldn['’]t`, "would not"},
	{`couldn['’]t`, "could not"},
	{`i['’]m`, "I am"},
	{`i['’]ve`, "I have"},
	{`i['’]ll`, "I will"},
	{`i['’]d`, "I would"},
	{`you['’]re`, "you are"},
	{`we['’]re`, "we are"},
	{`they['’]re`, "they are"},
	{`it['’]s`, "it is"},
	{`that['’]s`, "that is"},
	{`what['’]s`, "what is"},
	{`there['’]s`, "there is"},
	{`let['’]s`, "let us"},
}

// misspellings fixes common typos of short function words.
var misspellings = []phrase{
	{`teh`, "the"},
	{`hte`, "the"},
	{`adn`, "and"},
	{`nad`, "and"},
	{`taht`, "that"},
	{`thta`, "that"},
	{`waht`, "what"},
	{`whta`, "what"},
	{`ot`, "to"},
	{`fo`, "of"},
	{`wiht`, "with"},
	{`wtih`, "with"},
	{`jsut`, "just"},
	{`becuase`, "because"},
	{`becasue`, "because"},
	{`yuo`, "you"},
	{`yoru`, "your"},
	{`wich`, "which"},
	{`whcih`, "which"},
	{`tihs`, "this"},
	{`thsi`, "this"},
	{`ahve`, "have"},
	{`cna`, "can"},
	{`abotu`, "about"},
	{`woudl`, "would"},
	{`coudl`, "could"},
	{`shoudl`, "should"},
}

// politeness turns blunt requests into polite ones. "help me with" must
// precede "help me" so the longer phrase is not expanded twice.
var politeness = []phrase{
	{`can you(?: please)?`, "could you please"},
	{`help me with`, "assist me with"},
	{`help me`, "assist me with"},
	{`write me`, "create for me"},
	{`give me`, "provide me with"},
	{`tell me`, "explain to me"},
	{`i want`, "I would like"},
	{`make me`, "prepare for me"},
}

var rules = buildRules()

func buildRules() []Rule {
	var out []Rule
	add := func(f Family, table []phrase) {
		for _, p := range table {
			out = append(out, phraseRule(f, p))
		}
	}

	add(FamilyInformal, informal)
	add(FamilyMisspelling, misspellings)
	add(FamilyPoliteness, politeness)
	out = append(out,
		Rule{Name: "for->regarding", Family: FamilyFor, Apply: replaceFor},
		Rule{Name: "sentence-case", Family: FamilyCapitalization, Apply: capitalizeSentences},
		Rule{Name: "pronoun-i", Family: FamilyCapitalization, Apply: capitalizeI},
		Rule{Name: "punctuation-spacing", Family: FamilyPunctuation, Apply: spacePunctuation},
		Rule{Name: "collapse-whitespace", Family: FamilyWhitespace, Apply: collapseWhitespace},
		Rule{Name: "terminal-period", Family: FamilyTerminal, Apply: ensureTerminal},
	)
	return out
}

func phraseRule(f Family, p phrase) Rule {
	re := regexp.MustCompile(`(?i)\b` + p.from + `\b`)
	name := strings.ReplaceAll(p.from, `['’]`, "'") + "->" + p.to
	return Rule{
		Name:   name,
		Family: f,
		Apply: func(s string) string {
			return re.ReplaceAllStringFunc(s, func(m string) string {
				return matchCase(m, p.to)
			})
		},
	}
}

// Rules returns the ordered rule list. The slice is a copy.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Normalize applies every rule in order.
func Normalize(text string) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}

// Polish applies only the capitalization, punctuation, whitespace and
// terminal rules. It is used after substitutions that may disturb them.
func Polish(text string) string {
	for _, r := range rules {
		if r.Family >= FamilyCapitalization {
			text = r.Apply(text)
		}
	}
	return text
}
