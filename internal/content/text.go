package content

import (
	"regexp"
	"strings"
)

var mathKeywords = []string{
	"algebra",
	"geometry",
	"calculus",
	"math",
	"equation",
	"graph",
	"trigonometry",
	"statistics",
	"arithmetic",
	"derivative",
	"integral",
	"vector",
	"matrix",
}

// IsMathTopic reports whether a topic title looks mathematical enough to
// warrant math-interaction questions.
func IsMathTopic(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range mathKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var revealPattern = regexp.MustCompile(`\[\[(.+?)\]\]`)

// RevealTerms returns the [[marked]] terms of slide content in order.
func RevealTerms(s string) []string {
	matches := revealPattern.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// StripReveal removes reveal markers, keeping the marked text.
func StripReveal(s string) string {
	return revealPattern.ReplaceAllString(s, "$1")
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
