package correct

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fixFunc returns the replacement for a lowercase token core, or false to
// leave the token unchanged.
type fixFunc func(core string) (string, bool)

// rewrite walks text token by token, handing each stripped core to fix.
// Whitespace runs and surrounding punctuation are copied verbatim. The first
// token of the text and of every sentence is capitalized.
func rewrite(text string, fix fixFunc) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) + 8)

	sentenceStart := true
	rest := text
	for rest != "" {
		// Copy the whitespace run.
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		// Take the token.
		j := strings.IndexFunc(rest, unicode.IsSpace)
		if j < 0 {
			j = len(rest)
		}
		token := rest[:j]
		rest = rest[j:]

		lead, core, trail := splitPunct(token)
		if core == "" {
			b.WriteString(token)
			if endsSentence(token) {
				sentenceStart = true
			}
			continue
		}

		if repl, ok := fix(strings.ToLower(core)); ok {
			core = matchCase(core, repl)
		}
		if sentenceStart {
			core = capitalize(core)
		}
		b.WriteString(lead)
		b.WriteString(core)
		b.WriteString(trail)

		sentenceStart = endsSentence(trail)
	}
	return b.String()
}

// splitPunct separates leading and trailing punctuation from a token.
// Inner punctuation ("don't", "3.5") stays in the core.
func splitPunct(token string) (lead, core, trail string) {
	start := strings.IndexFunc(token, isWordRune)
	if start < 0 {
		return token, "", ""
	}
	end := strings.LastIndexFunc(token, isWordRune)
	_, size := utf8.DecodeRuneInString(token[end:])
	end += size
	return token[:start], token[start:end], token[end:]
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func endsSentence(s string) bool {
	return strings.ContainsAny(s, ".!?")
}

// isLetters reports whether s is non-empty and made only of letters.
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// matchCase applies the casing pattern of orig to repl:
// ALL CAPS stays all caps, Title stays title, anything else is lowercase.
func matchCase(orig, repl string) string {
	if utf8.RuneCountInString(orig) > 1 && strings.ToUpper(orig) == orig && strings.ToLower(orig) != orig {
		return strings.ToUpper(repl)
	}
	first, _ := utf8.DecodeRuneInString(orig)
	if unicode.IsUpper(first) {
		return capitalize(repl)
	}
	return repl
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// safeApply runs fn and returns text unchanged if fn panics.
func safeApply(text string, fn func(string) string) (out string) {
	defer func() {
		if recover() != nil {
			out = text
		}
	}()
	return fn(text)
}
