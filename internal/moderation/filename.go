package moderation

import (
	"path/filepath"
	"strings"
)

// defaultFilenameTerms are checked by containment rather than word boundary:
// file names rarely contain natural separators, so "xxx_clip.mp4" must still
// match.
var defaultFilenameTerms = []string{
	"porn",
	"xxx",
	"nude",
	"nsfw",
	"hentai",
	"18+",
	"onlyfans",
	"sextape",
}

// FilenameScanner inspects uploaded file names for suspicious terms. It
// never opens or modifies the file; a missing path is simply not flagged.
type FilenameScanner struct {
	terms []string
}

// NewFilenameScanner builds a scanner over the default suspicious-term list.
func NewFilenameScanner() *FilenameScanner {
	return newFilenameScanner(defaultFilenameTerms)
}

func newFilenameScanner(terms []string) *FilenameScanner {
	s := &FilenameScanner{}
	for _, term := range terms {
		term = strings.TrimSpace(strings.ToLower(term))
		if term != "" {
			s.terms = append(s.terms, term)
		}
	}
	return s
}

// Scan lower-cases the final path segment and reports any contained terms.
func (s *FilenameScanner) Scan(path string) ScanResult {
	if s == nil {
		return ScanResult{}
	}

	name := strings.ToLower(filepath.Base(strings.TrimSpace(path)))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ScanResult{}
	}

	var result ScanResult
	for _, term := range s.terms {
		if strings.Contains(name, term) {
			result.Flagged = true
			result.Matches = append(result.Matches, term)
		}
	}

	return result
}
