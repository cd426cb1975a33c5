package moderation

import "testing"

func TestFilenameScannerContainment(t *testing.T) {
	scanner := NewFilenameScanner()

	cases := []struct {
		name string
		path string
		want bool
	}{
		{"cleanName", "/tmp/uploads/vacation.mp4", false},
		{"embeddedTerm", "/tmp/uploads/xxx_clip.mp4", true},
		{"upperCase", "C:\\clips\\PORN-final.mov", true},
		{"termInsideWord", "holiday_sextape_edit.mp4", true},
		{"eighteenPlus", "party-18+.webm", true},
		{"directoryIgnored", "/srv/porn/clean-name.mp4", false},
		{"empty", "", false},
		{"whitespace", "   ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := scanner.Scan(tc.path)
			if result.Flagged != tc.want {
				t.Fatalf("Scan(%q) flagged = %v, want %v (matches: %v)", tc.path, result.Flagged, tc.want, result.Matches)
			}
		})
	}
}

func TestFilenameScannerMissingFileIsNotAnError(t *testing.T) {
	scanner := NewFilenameScanner()

	// The scanner never touches the filesystem, so a path that does not
	// exist behaves exactly like any other clean name.
	result := scanner.Scan("/nonexistent/dir/never-created.mp4")
	if result.Flagged {
		t.Fatalf("expected missing file to pass, got matches %v", result.Matches)
	}
}

func TestFilenameScannerNilReceiver(t *testing.T) {
	var scanner *FilenameScanner
	if scanner.Scan("xxx.mp4").Flagged {
		t.Fatal("nil scanner must not flag anything")
	}
}
