package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	reInnerSpace   = regexp.MustCompile(`\s+`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func stripControl(s string) string {
	return reControlChars.ReplaceAllString(s, "")
}

func collapseWhitespace(s string) string {
	return reInnerSpace.ReplaceAllString(s, " ")
}

// SanitizeDisplayName normalizes a user-supplied title: control characters
// removed, whitespace collapsed, surrounding space trimmed. Case is preserved
// since these values are shown back to users.
func SanitizeDisplayName(input string) string {
	p := Pipeline{
		stripControl,
		collapseWhitespace,
		trim,
	}
	return p.Apply(input)
}

// SanitizeDescription keeps line breaks but strips other control characters
// and trims the ends.
func SanitizeDescription(input string) string {
	keepNewlines := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			if r == '\n' || r == '\t' || !reControlChars.MatchString(string(r)) {
				b.WriteRune(r)
			}
		}
		return b.String()
	}

	p := Pipeline{
		keepNewlines,
		trim,
	}
	return p.Apply(input)
}

func SanitizeEmail(input string) string {
	p := Pipeline{
		trim,
		strings.ToLower,
	}
	return p.Apply(input)
}
