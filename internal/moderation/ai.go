package moderation

import (
	"fmt"
	"strings"
)

// Thresholds hold the per-category confidence cutoffs, on a 0-1 scale.
// Values above a cutoff reject the asset. These came from tuning in the
// original deployment and carry no documented derivation, so they are
// configuration rather than constants.
type Thresholds struct {
	Explicit      float64
	Suggestive    float64
	PartialNudity float64
	Violence      float64
}

// DefaultThresholds returns the deployed cutoffs: strict on explicit
// content, lenient on partial nudity.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Explicit:      0.40,
		Suggestive:    0.70,
		PartialNudity: 0.85,
		Violence:      0.75,
	}
}

// Assessment is the evaluator's decision for a single asset's score set.
type Assessment struct {
	Inappropriate bool
	Reason        string
}

// thresholdRule binds a group of provider category names to one cutoff.
// Rules are evaluated in priority order; the first category over its cutoff
// supplies the rejection reason.
type thresholdRule struct {
	categories []string
	cutoff     func(Thresholds) float64
}

var thresholdRules = []thresholdRule{
	{
		categories: []string{"explicit_nudity", "sexual_activity", "sexual_display"},
		cutoff:     func(t Thresholds) float64 { return t.Explicit },
	},
	{
		categories: []string{"suggestive"},
		cutoff:     func(t Thresholds) float64 { return t.Suggestive },
	},
	{
		categories: []string{"partial_nudity"},
		cutoff:     func(t Thresholds) float64 { return t.PartialNudity },
	},
	{
		categories: []string{"weapon_violence", "graphic_violence", "weapons"},
		cutoff:     func(t Thresholds) float64 { return t.Violence },
	},
}

// EvaluateScores applies the threshold table to a set of category
// confidences. Scores must already be normalized to 0-1. Callers must not
// invoke this when the side-channel produced no data; that case degrades to
// manual review upstream instead.
func EvaluateScores(scores map[string]float64, thresholds Thresholds) Assessment {
	if len(scores) == 0 {
		return Assessment{}
	}

	normalized := make(map[string]float64, len(scores))
	for name, confidence := range scores {
		normalized[normalizeCategory(name)] = confidence
	}

	for _, rule := range thresholdRules {
		cutoff := rule.cutoff(thresholds)
		for _, category := range rule.categories {
			confidence, ok := normalized[category]
			if !ok {
				continue
			}
			if confidence > cutoff {
				return Assessment{
					Inappropriate: true,
					Reason:        fmt.Sprintf("%s confidence %.2f exceeds threshold %.2f", category, confidence, cutoff),
				}
			}
		}
	}

	return Assessment{}
}

func normalizeCategory(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}
