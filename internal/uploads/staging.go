package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Staging writes incoming multipart parts to uniquely named files in a
// scratch directory. Each upload request gets its own files, so concurrent
// requests never contend over a path.
type Staging struct {
	dir string
}

// NewStaging ensures the scratch directory exists.
func NewStaging(dir string) (*Staging, error) {
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	return &Staging{dir: dir}, nil
}

// Dir returns the scratch directory.
func (s *Staging) Dir() string {
	return s.dir
}

// Stage copies the reader into a new file named by a fresh UUID plus the
// sanitized original file name, and returns its path. Keeping the original
// name in the path matters: the filename moderation scanner inspects the
// final path segment.
func (s *Staging) Stage(r io.Reader, originalName string) (string, error) {
	name := uuid.NewString()
	if cleaned := sanitizeName(originalName); cleaned != "" {
		name += "_" + cleaned
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close staged file: %w", err)
	}

	return path, nil
}

const maxStagedNameLength = 120

// sanitizeName keeps the client-supplied file name safe to embed in a local
// path: path separators and control characters are replaced, and the result
// is capped in length.
func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == '+':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	cleaned := b.String()
	if len(cleaned) > maxStagedNameLength {
		cleaned = cleaned[len(cleaned)-maxStagedNameLength:]
	}
	return cleaned
}
