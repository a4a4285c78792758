package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// forWindow is how many characters on each side of "for" are searched for
// cues. Whitespace is not counted, so the later spacing rules never move a
// cue in or out of range.
const forWindow = 20

// forCues keep "for" verbatim when found near it: job applications,
// searches and appointments read wrong with "regarding".
var forCues = []string{
	"apply", "looking", "searching", "waiting", "asking", "requesting",
	"position", "job", "role", "interview", "meeting", "appointment",
}

// forObjects keep "for" when it directly introduces a person, as in the
// politeness outputs "create for me" and "prepare for me".
var forObjects = []string{"me", "you", "us", "him", "her", "them"}

var reFor = regexp.MustCompile(`(?i)\bfor\b`)

// HasForContext reports whether the "for" at text[start:end] should be kept:
// a cue word occurs within forWindow non-space characters on either side,
// or the next word is an object pronoun.
func HasForContext(text string, start, end int) bool {
	if start < 0 || end > len(text) || start > end {
		return false
	}

	lo := start
	for n := 0; lo > 0 && n < forWindow; {
		r, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
		if !unicode.IsSpace(r) {
			n++
		}
	}
	hi := end
	for n := 0; hi < len(text) && n < forWindow; {
		r, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
		if !unicode.IsSpace(r) {
			n++
		}
	}

	window := strings.ToLower(text[lo:hi])
	for _, cue := range forCues {
		if strings.Contains(window, cue) {
			return true
		}
	}

	next := strings.ToLower(firstWord(text[end:]))
	for _, obj := range forObjects {
		if next == obj {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}

// replaceFor rewrites "for" as "regarding" where HasForContext is false.
// Each replacement shifts offsets, so it repeats until nothing changes.
func replaceFor(text string) string {
	for {
		locs := reFor.FindAllStringIndex(text, -1)
		var b strings.Builder
		last, changed := 0, false
		for _, loc := range locs {
			if HasForContext(text, loc[0], loc[1]) {
				continue
			}
			b.WriteString(text[last:loc[0]])
			b.WriteString(matchCase(text[loc[0]:loc[1]], "regarding"))
			last = loc[1]
			changed = true
		}
		if !changed {
			return text
		}
		b.WriteString(text[last:])
		text = b.String()
	}
}

// space matches exactly what unicode.IsSpace accepts, so the regexp rules
// agree with collapseWhitespace on non-breaking and other Unicode spaces.
const space = `[\s\v\x{85}\p{Z}]`

// Sentence starts: beginning of text or terminal punctuation followed by
// whitespace, each allowing opening quotes or brackets before the letter.
var reSentenceStart = regexp.MustCompile(`(?:^` + space + `*|[.!?]["')\]]*` + space + `+)["'(\[]*(\p{Ll})`)

func capitalizeSentences(text string) string {
	locs := reSentenceStart.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	b := []byte(text)
	for _, loc := range locs {
		start, end := loc[2], loc[3]
		r, _ := utf8.DecodeRuneInString(text[start:end])
		upper := string(unicode.ToUpper(r))
		if len(upper) == end-start {
			copy(b[start:end], upper)
		}
	}
	return string(b)
}

// capitalizeI upper-cases the standalone pronoun "i". Abbreviations such as
// "i.e." are left alone.
func capitalizeI(text string) string {
	b := []byte(text)
	for i := 0; i < len(b); i++ {
		if b[i] != 'i' {
			continue
		}
		if i > 0 && isWordByte(b[i-1], true) {
			continue
		}
		if i+1 < len(b) {
			next := b[i+1]
			if isWordByte(next, false) {
				continue
			}
			if next == '.' && i+2 < len(b) && isLetterByte(b[i+2]) {
				continue
			}
		}
		b[i] = 'I'
	}
	return string(b)
}

// isWordByte reports whether c continues a word. Before the pronoun an
// apostrophe or hyphen also counts ("x-i", "'i").
func isWordByte(c byte, before bool) bool {
	if isLetterByte(c) || (c >= '0' && c <= '9') || c >= utf8.RuneSelf {
		return true
	}
	return before && (c == '\'' || c == '-')
}

func isLetterByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

var reSpaceBeforePunct = regexp.MustCompile(space + `+([,.!?])`)

// spacePunctuation removes spaces before ,.!? and inserts one after them.
// A space is inserted after a comma before any letter or before a digit not
// preceded by a digit ("1,000" stays); after .!? only before an uppercase
// letter, so "3.5", "e.g." and "example.com" stay intact.
func spacePunctuation(text string) string {
	text = reSpaceBeforePunct.ReplaceAllString(text, "$1")

	var b strings.Builder
	b.Grow(len(text) + 8)

	var prev rune
	for i, r := range text {
		b.WriteRune(r)
		if !strings.ContainsRune(",.!?", r) {
			prev = r
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[i+utf8.RuneLen(r):])
		if next == utf8.RuneError {
			prev = r
			continue
		}
		switch r {
		case ',':
			if unicode.IsLetter(next) || (unicode.IsDigit(next) && !unicode.IsDigit(prev)) {
				b.WriteByte(' ')
			}
		default:
			if unicode.IsUpper(next) {
				b.WriteByte(' ')
			}
		}
		prev = r
	}
	return b.String()
}

// collapseWhitespace turns every whitespace run into one space and trims.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ensureTerminal guarantees the text ends with ".", "!" or "?".
// Trailing commas, semicolons and colons become a period. Closing quotes
// and brackets after the punctuation are allowed.
func ensureTerminal(text string) string {
	if text == "" {
		return ""
	}
	body := strings.TrimRight(text, `"')]`)
	closers := text[len(body):]
	if strings.HasSuffix(body, ".") || strings.HasSuffix(body, "!") || strings.HasSuffix(body, "?") {
		return text
	}
	trimmed := strings.TrimRight(body, ",;:")
	if trimmed == "" {
		return text
	}
	if trimmed != body {
		return trimmed + "." + closers
	}
	return text + "."
}

// matchCase applies the casing of orig to repl: ALL CAPS stays all caps,
// a leading capital is kept, anything else returns repl as written.
func matchCase(orig, repl string) string {
	if strings.ToUpper(orig) == orig && strings.ToLower(orig) != orig && utf8.RuneCountInString(orig) > 1 {
		return strings.ToUpper(repl)
	}
	r, _ := utf8.DecodeRuneInString(orig)
	if unicode.IsUpper(r) {
		first, size := utf8.DecodeRuneInString(repl)
		return string(unicode.ToUpper(first)) + repl[size:]
	}
	return repl
}
