package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often the sweeper scans the storage area.
const DefaultSweepInterval = time.Minute

// Sweeper periodically deletes files whose modification time is older than
// the retention duration.
type Sweeper struct {
	area      *Area
	retention time.Duration
	interval  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewSweeper creates a Sweeper for area. A non-positive interval falls back to
// DefaultSweepInterval.
func NewSweeper(area *Area, retention, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		area:      area,
		retention: retention,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
// A failing cycle is logged and never stops the loop.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("retention sweeper started",
		zap.String("dir", s.area.Dir()),
		zap.Duration("retention", s.retention),
		zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.cycle()

		select {
		case <-ctx.Done():
			s.logger.Info("retention sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) cycle() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during cleanup", zap.Any("panic", r))
		}
	}()

	removed, err := s.Sweep()
	if err != nil {
		s.logger.Error("error during cleanup", zap.Int("removed", removed), zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("cleanup finished", zap.Int("removed", removed))
	}
}

// Sweep runs a single cleanup pass and returns how many files were deleted.
// Failures on individual files do not stop the pass; they are joined into
// the returned error.
func (s *Sweeper) Sweep() (int, error) {
	files, err := s.area.List()
	if err != nil {
		return 0, err
	}

	now := s.now()
	removed := 0
	var errs []error
	for _, f := range files {
		if now.Sub(f.ModTime) <= s.retention {
			continue
		}
		if err := s.area.Remove(f.Path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", f.Path, err))
			continue
		}
		removed++
		s.logger.Info("deleted old file",
			zap.String("path", f.Path),
			zap.String("id", f.ID),
			zap.String("role", string(f.Role)))
	}

	return removed, errors.Join(errs...)
}
