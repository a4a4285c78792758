package transform

import (
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Leave
// ---------------------------------------------------------------------------

// leaveDuration matches "(I) need/want/require/apply for/request (to take)
// N day(s) (of) leave" and the already-polite "I would like (to request)".
var leaveDuration = regexp.MustCompile(`(?i)\b(?:i\s+)?` +
	`(?:need|want|require|apply\s+for|request|would\s+like(?:\s+to\s+request)?)\s+` +
	`(?:to\s+take\s+)?` +
	`(\d+|one|two|three|four|five|six|seven|eight|nine|ten|a)\s+days?\s+` +
	`(?:of\s+)?(?:leave|off)\b`)

func leaveDurationPhrase(groups []string) string {
	n := strings.ToLower(groups[1])
	switch n {
	case "1", "one", "a":
		if n == "a" {
			n = "one"
		}
		return "I would like to request " + n + " day of leave"
	}
	return "I would like to request " + groups[1] + " days of leave"
}

var leaveRules = []Rule{
	{
		Name:    "duration",
		pattern: leaveDuration,
		replace: leaveDurationPhrase,
		literal: true,
	},
	fixed("cause-vacation", `(?:for|regarding)\s+(?:a\s+|my\s+)?(?:vacation|holiday)(?:\s+purposes)?`, "for vacation purposes"),
	fixed("cause-sick", `(?:for|regarding)\s+(?:being\s+)?(?:sick(?:ness)?|illness|medical\s+reasons)`, "for medical reasons"),
	fixed("cause-sick-because", `because\s+i\s+am\s+(?:sick|ill|unwell)`, "for medical reasons"),
	fixed("cause-family", `(?:for|regarding)\s+(?:my\s+)?family(?:\s+reasons)?`, "for family reasons"),
	fixed("cause-personal", `(?:for|regarding)\s+personal(?:\s+reasons)?`, "for personal reasons"),
	fixed("cause-wedding", `(?:for|regarding)\s+(?:a\s+|the\s+|my\s+)?wedding`, "to attend a wedding"),
}

// ---------------------------------------------------------------------------
// Email
// ---------------------------------------------------------------------------

var emailRules = []Rule{
	fixed("compose-email", `(?:write|create|draft|send)\s+(?:an?\s+)?(?:e-?mail|mail)\s+to`, "draft a professional email to"),
	fixed("e-mail", `e-mail`, "email"),
	fixed("asap", `asap`, "as soon as possible"),
	fixed("fyi", `fyi`, "for your information"),
	fixed("pls", `(?:pls|plz)`, "please"),
	fixed("thx", `(?:thx|thnx)`, "thank you"),
}

// ---------------------------------------------------------------------------
// Presentation
// ---------------------------------------------------------------------------

var presentationRules = []Rule{
	literal("ppt", `ppt`, "PowerPoint presentation"),
	fixed("town-hall", `town\s*hall(?:\s+meeting)?`, "town hall meeting"),
	fixed("deck", `(?:slide\s+)?deck`, "slide deck"),
	fixed("prez", `prez`, "presentation"),
}

// ---------------------------------------------------------------------------
// HR
// ---------------------------------------------------------------------------

var hrRules = []Rule{
	literal("hr", `hr`, "HR"),
	fixed("memo", `an?\s+(?:internal\s+)?memo`, "an internal memo"),
	fixed("onboard", `onboard(?:ing)?\s+(?:of\s+)?new\s+(?:hires|joiners)`, "onboarding of new employees"),
	fixed("perf-review", `perf\s+review`, "performance review"),
}

// ---------------------------------------------------------------------------
// Learning
// ---------------------------------------------------------------------------

var learningRules = []Rule{
	fixed("learn-intent", `(?:i\s+)?(?:would\s+like\s+to|want\s+to|need\s+to)\s+learn`, "I would like to learn"),
	fixed("from-scratch", `from\s+(?:scratch|zero)`, "as a complete beginner"),
	literal("ml", `ml`, "machine learning"),
}

// ---------------------------------------------------------------------------
// Blog
// ---------------------------------------------------------------------------

var blogRules = []Rule{
	fixed("blog-about", `blog\s+(?:about|on)`, "blog post about"),
	literal("seo", `seo`, "SEO"),
	fixed("listicle", `listicle`, "list-style article"),
}

// ---------------------------------------------------------------------------
// App idea
// ---------------------------------------------------------------------------

var appIdeaRules = []Rule{
	fixed("article", `an?\s+app\s+idea`, "an app idea"),
	literal("saas", `saas`, "SaaS"),
	literal("mvp", `mvp`, "MVP"),
}

// ---------------------------------------------------------------------------
// Image generation
// ---------------------------------------------------------------------------

var imageRules = []Rule{
	fixed("image-of", `(?:an?\s+)?(?:pic|pict?ure|photo|image)\s+of`, "an image of"),
	fixed("hd", `hd`, "high-resolution"),
	literal("4k", `4k`, "4K"),
}

// ---------------------------------------------------------------------------
// Coding
// ---------------------------------------------------------------------------

var codingRules = []Rule{
	literal("js", `js`, "JavaScript"),
	literal("ts", `ts`, "TypeScript"),
	literal("py", `py`, "Python"),
	literal("golang", `golang`, "Go"),
	fixed("func", `func`, "function"),
	fixed("db", `db`, "database"),
	fixed("repo", `repo`, "repository"),
}
