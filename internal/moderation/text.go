package moderation

import (
	"regexp"
	"strings"
)

// ScanResult reports whether a piece of input tripped a scanner and which
// terms were responsible.
type ScanResult struct {
	Flagged bool
	Matches []string
}

// defaultBlockedTerms are matched case-insensitively against titles and
// descriptions. Single words only match on word boundaries; multi-word
// phrases tolerate arbitrary internal whitespace.
var defaultBlockedTerms = []string{
	"porn",
	"xxx",
	"nude",
	"naked",
	"nsfw",
	"hentai",
	"erotic",
	"stripper",
	"gore",
	"beheading",
	"snuff",
	"adult content",
	"adult video",
	"sex tape",
	"only fans",
}

// defaultBlockedPatterns catch phrasings that the flat term list misses.
var defaultBlockedPatterns = []string{
	`\b(?:hot|sexy|naughty|dirty)\s+(?:\w+\s+)?videos?\b`,
	`\b18\s*\+(?:\s*(?:content|only))?`,
	`\bx{3,}\b`,
	`\b(?:barely|just turned)\s+(?:legal|18)\b`,
}

// TextScanner flags titles and descriptions containing blocked terms or
// matching blocked patterns. It is pure and safe for concurrent use once
// constructed.
type TextScanner struct {
	terms    []compiledTerm
	patterns []*regexp.Regexp
}

type compiledTerm struct {
	raw string
	re  *regexp.Regexp
}

// NewTextScanner compiles the default blocked term and pattern lists.
func NewTextScanner() *TextScanner {
	return newTextScanner(defaultBlockedTerms, defaultBlockedPatterns)
}

func newTextScanner(terms, patterns []string) *TextScanner {
	s := &TextScanner{}

	for _, term := range terms {
		term = strings.TrimSpace(strings.ToLower(term))
		if term == "" {
			continue
		}

		words := strings.Fields(term)
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = regexp.QuoteMeta(w)
		}

		expr := `(?i)\b` + strings.Join(parts, `\s+`) + `\b`
		s.terms = append(s.terms, compiledTerm{raw: term, re: regexp.MustCompile(expr)})
	}

	for _, pattern := range patterns {
		s.patterns = append(s.patterns, regexp.MustCompile(`(?i)`+pattern))
	}

	return s
}

// Scan checks the provided text against the blocked terms and patterns.
func (s *TextScanner) Scan(text string) ScanResult {
	if s == nil || strings.TrimSpace(text) == "" {
		return ScanResult{}
	}

	var result ScanResult

	for _, term := range s.terms {
		if term.re.MatchString(text) {
			result.Flagged = true
			result.Matches = append(result.Matches, term.raw)
		}
	}

	for _, pattern := range s.patterns {
		if match := pattern.FindString(text); match != "" {
			result.Flagged = true
			result.Matches = append(result.Matches, strings.ToLower(match))
		}
	}

	return result
}
