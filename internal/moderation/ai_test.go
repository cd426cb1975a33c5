package moderation

import (
	"strings"
	"testing"
)

func TestEvaluateScoresThresholds(t *testing.T) {
	thresholds := DefaultThresholds()

	cases := []struct {
		name         string
		scores       map[string]float64
		wantFlag     bool
		wantCategory string
	}{
		{"allClean", map[string]float64{"sexual_activity": 0.10, "suggestive": 0.30, "partial_nudity": 0.50, "weapon_violence": 0.20}, false, ""},
		{"explicitOverStrictCutoff", map[string]float64{"sexual_display": 0.55}, true, "sexual_display"},
		{"explicitJustUnder", map[string]float64{"sexual_activity": 0.40}, false, ""},
		{"suggestiveOver", map[string]float64{"suggestive": 0.71}, true, "suggestive"},
		{"suggestiveUnderExplicitCutoff", map[string]float64{"suggestive": 0.55}, false, ""},
		{"partialNudityLenient", map[string]float64{"partial_nudity": 0.80}, false, ""},
		{"partialNudityOver", map[string]float64{"partial_nudity": 0.90}, true, "partial_nudity"},
		{"violenceOver", map[string]float64{"weapon_violence": 0.80}, true, "weapon_violence"},
		{"unknownCategoryIgnored", map[string]float64{"tobacco": 0.99}, false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateScores(tc.scores, thresholds)
			if got.Inappropriate != tc.wantFlag {
				t.Fatalf("Inappropriate = %v, want %v (reason: %q)", got.Inappropriate, tc.wantFlag, got.Reason)
			}
			if tc.wantFlag && !strings.Contains(got.Reason, tc.wantCategory) {
				t.Fatalf("expected reason to name %q, got %q", tc.wantCategory, got.Reason)
			}
		})
	}
}

func TestEvaluateScoresPriorityOrder(t *testing.T) {
	// When several categories cross their cutoffs the explicit group wins.
	got := EvaluateScores(map[string]float64{
		"weapon_violence": 0.99,
		"sexual_activity": 0.99,
		"suggestive":      0.99,
	}, DefaultThresholds())

	if !got.Inappropriate {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(got.Reason, "sexual_activity") {
		t.Fatalf("expected the explicit category to determine the reason, got %q", got.Reason)
	}
}

func TestEvaluateScoresSingleCategoryNamed(t *testing.T) {
	got := EvaluateScores(map[string]float64{
		"sexual_activity": 0.05,
		"suggestive":      0.95,
		"partial_nudity":  0.10,
	}, DefaultThresholds())

	if !got.Inappropriate {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(got.Reason, "suggestive") {
		t.Fatalf("reason should name suggestive, got %q", got.Reason)
	}
	if strings.Contains(got.Reason, "partial_nudity") || strings.Contains(got.Reason, "sexual_activity") {
		t.Fatalf("reason should name no other category, got %q", got.Reason)
	}
}

func TestEvaluateScoresNormalizesCategoryNames(t *testing.T) {
	got := EvaluateScores(map[string]float64{"Sexual Activity": 0.60}, DefaultThresholds())
	if !got.Inappropriate {
		t.Fatalf("expected provider-cased category name to be recognized, got %+v", got)
	}
}

func TestEvaluateScoresEmptyInput(t *testing.T) {
	if got := EvaluateScores(nil, DefaultThresholds()); got.Inappropriate {
		t.Fatal("empty score set must not reject")
	}
	if got := EvaluateScores(map[string]float64{}, DefaultThresholds()); got.Inappropriate {
		t.Fatal("empty score set must not reject")
	}
}

func TestEvaluateScoresCustomThresholds(t *testing.T) {
	strict := Thresholds{Explicit: 0.01, Suggestive: 0.01, PartialNudity: 0.01, Violence: 0.01}
	got := EvaluateScores(map[string]float64{"suggestive": 0.05}, strict)
	if !got.Inappropriate {
		t.Fatal("expected custom thresholds to be honored")
	}
}
