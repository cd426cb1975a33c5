package moderation

import (
	"fmt"
	"strings"
)

// Verdict is the outcome of the local heuristic pass. Passed == false means
// the upload must be aborted before any durable write; RequiresReview is
// only meaningful when Passed is true.
type Verdict struct {
	Passed         bool
	Reasons        []string
	RequiresReview bool
}

const (
	minTitleLength       = 5
	minDescriptionLength = 20
)

// genericTitleWords are marketing filler that, combined with a thin
// description, suggests low-effort or bait uploads worth a human look.
var genericTitleWords = []string{"video", "new", "free", "best", "watch", "click"}

// LocalModerator combines the text and filename scanners with cheap
// suspicion signals into a single verdict. It performs no I/O and no
// cleanup; file handling stays with the caller.
type LocalModerator struct {
	text      *TextScanner
	filenames *FilenameScanner
}

// NewLocalModerator wires the default scanners.
func NewLocalModerator() *LocalModerator {
	return &LocalModerator{
		text:      NewTextScanner(),
		filenames: NewFilenameScanner(),
	}
}

// Evaluate runs every local heuristic over the upload metadata.
func (m *LocalModerator) Evaluate(title, description, videoPath, thumbnailPath string) Verdict {
	verdict := Verdict{Passed: true}

	if res := m.text.Scan(title); res.Flagged {
		verdict.Passed = false
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("title contains blocked terms: %s", strings.Join(res.Matches, ", ")))
	}

	if res := m.text.Scan(description); res.Flagged {
		verdict.Passed = false
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("description contains blocked terms: %s", strings.Join(res.Matches, ", ")))
	}

	if res := m.filenames.Scan(videoPath); res.Flagged {
		verdict.Passed = false
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("video file name contains blocked terms: %s", strings.Join(res.Matches, ", ")))
	}

	if res := m.filenames.Scan(thumbnailPath); res.Flagged {
		verdict.Passed = false
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("thumbnail file name contains blocked terms: %s", strings.Join(res.Matches, ", ")))
	}

	if verdict.Passed && suspicionScore(title, description) >= 2 {
		verdict.RequiresReview = true
	}

	return verdict
}

// suspicionScore counts soft signals. Two or more is enough to hold the
// upload for review without rejecting it.
func suspicionScore(title, description string) int {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	score := 0
	shortDescription := len(description) < minDescriptionLength

	if shortDescription {
		score++
	}
	if len(title) < minTitleLength {
		score++
	}
	if shortDescription && containsGenericWord(title) {
		score++
	}

	return score
}

func containsGenericWord(title string) bool {
	lowered := strings.ToLower(title)
	for _, word := range strings.Fields(lowered) {
		word = strings.Trim(word, `.,!?:;"'`)
		for _, generic := range genericTitleWords {
			if word == generic {
				return true
			}
		}
	}
	return false
}
