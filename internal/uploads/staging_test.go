package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStagingStagesFileWithOriginalName(t *testing.T) {
	staging, err := NewStaging(t.TempDir())
	if err != nil {
		t.Fatalf("new staging: %v", err)
	}

	path, err := staging.Stage(strings.NewReader("payload"), "My Holiday Clip.mp4")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read staged file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected staged content %q", data)
	}

	base := filepath.Base(path)
	if !strings.HasSuffix(base, "My-Holiday-Clip.mp4") {
		t.Fatalf("expected original name preserved in %q", base)
	}
	if len(base) <= len("My-Holiday-Clip.mp4") {
		t.Fatalf("expected a unique prefix in %q", base)
	}
}

func TestStagingUniquePaths(t *testing.T) {
	staging, err := NewStaging(t.TempDir())
	if err != nil {
		t.Fatalf("new staging: %v", err)
	}

	first, err := staging.Stage(strings.NewReader("a"), "clip.mp4")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	second, err := staging.Stage(strings.NewReader("b"), "clip.mp4")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if first == second {
		t.Fatal("expected unique staged paths for identical original names")
	}
}

func TestStagingCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "staging")
	if _, err := NewStaging(dir); err != nil {
		t.Fatalf("new staging: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "clip.mp4", "clip.mp4"},
		{"traversal", "../../etc/passwd", "passwd"},
		{"spaces", "my clip.mp4", "my-clip.mp4"},
		{"suspiciousKept", "xxx_rip.mp4", "xxx_rip.mp4"},
		{"eighteenPlusKept", "party-18+.webm", "party-18+.webm"},
		{"empty", "", ""},
		{"dot", ".", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeName(tc.in); got != tc.want {
				t.Fatalf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeNameCapsLength(t *testing.T) {
	long := strings.Repeat("a", 500) + ".mp4"
	got := sanitizeName(long)
	if len(got) > maxStagedNameLength {
		t.Fatalf("expected length cap, got %d", len(got))
	}
	if !strings.HasSuffix(got, ".mp4") {
		t.Fatalf("expected extension preserved at the tail, got %q", got)
	}
}
