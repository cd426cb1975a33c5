package uploads

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SweeperConfig controls how often staged files are swept and how old a
// file must be before it is considered abandoned.
type SweeperConfig struct {
	Interval time.Duration
	MaxAge   time.Duration
}

// Sweeper removes staged upload files that outlived their pipeline run,
// typically after a process crash mid-upload. The pipeline itself cleans up
// on every ordinary exit path; the sweeper is the out-of-band backstop.
type Sweeper struct {
	dir    string
	maxAge time.Duration
	every  time.Duration
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	// nowFunc lets tests pin the age calculation.
	nowFunc func() time.Time
}

// NewSweeper starts a background loop sweeping the provided directory.
func NewSweeper(dir string, cfg SweeperConfig, logger *slog.Logger) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Sweeper{
		dir:     dir,
		maxAge:  cfg.MaxAge,
		every:   cfg.Interval,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		nowFunc: time.Now,
	}

	s.wg.Add(1)
	go s.loop()

	return s
}

// Shutdown stops the sweep loop, waiting for an in-flight sweep to finish.
func (s *Sweeper) Shutdown(ctx context.Context) error {
	s.once.Do(s.cancel)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (s *Sweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep deletes regular files in the staging directory older than maxAge.
func (s *Sweeper) sweep() {
	cutoff := s.nowFunc().Add(-s.maxAge)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("read staging directory", "dir", s.dir, "error", err)
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("remove abandoned staged file", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("swept abandoned staged files", "dir", s.dir, "removed", removed)
	}
}
