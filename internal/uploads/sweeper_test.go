package uploads

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweeperRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.mp4")
	fresh := filepath.Join(dir, "fresh.mp4")
	for _, path := range []string{stale, fresh} {
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("age file: %v", err)
	}

	sweeper := NewSweeper(dir, SweeperConfig{Interval: time.Hour, MaxAge: time.Hour}, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sweeper.Shutdown(ctx)
	}()

	sweeper.sweep()

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("expected stale file to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("expected fresh file to survive: %v", err)
	}
}

func TestSweeperIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "keep")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	_ = os.Chtimes(nested, old, old)

	sweeper := NewSweeper(dir, SweeperConfig{Interval: time.Hour, MaxAge: time.Hour}, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sweeper.Shutdown(ctx)
	}()

	sweeper.sweep()

	if _, err := os.Stat(nested); err != nil {
		t.Fatalf("expected directory to survive: %v", err)
	}
}

func TestSweeperShutdownTwice(t *testing.T) {
	sweeper := NewSweeper(t.TempDir(), SweeperConfig{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := sweeper.Shutdown(ctx); err != nil {
		t.Fatalf("first shutdown: %v", err)
	}
	if err := sweeper.Shutdown(ctx); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}
