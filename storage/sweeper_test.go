package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime on %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestSweeper_Sweep(t *testing.T) {
	area, err := NewArea(t.TempDir())
	if err != nil {
		t.Fatalf("NewArea failed: %v", err)
	}

	old := area.InputPath("old")
	oldOut := area.OutputPath("old")
	fresh := area.InputPath("fresh")
	writeAged(t, old, 2*time.Hour)
	writeAged(t, oldOut, 90*time.Minute)
	writeAged(t, fresh, 10*time.Minute)

	subdir := filepath.Join(area.Dir(), "keep")
	if err := os.Mkdir(subdir, 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	mtime := time.Now().Add(-24 * time.Hour)
	os.Chtimes(subdir, mtime, mtime)

	s := NewSweeper(area, time.Hour, time.Minute, nil)
	removed, err := s.Sweep()
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 files removed, got %d", removed)
	}
	if exists(old) || exists(oldOut) {
		t.Fatal("expired files were not deleted")
	}
	if !exists(fresh) {
		t.Fatal("file younger than retention was deleted")
	}
	if !exists(subdir) {
		t.Fatal("directories must not be swept")
	}
}

func TestSweeper_Sweep_BoundaryIsKept(t *testing.T) {
	area, err := NewArea(t.TempDir())
	if err != nil {
		t.Fatalf("NewArea failed: %v", err)
	}
	path := area.InputPath("edge")
	writeAged(t, path, 0)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	s := NewSweeper(area, time.Hour, time.Minute, nil)
	s.now = func() time.Time { return info.ModTime().Add(time.Hour) }

	removed, err := s.Sweep()
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 0 || !exists(path) {
		t.Fatal("file exactly at the retention age must be kept")
	}

	s.now = func() time.Time { return info.ModTime().Add(time.Hour + time.Second) }
	if removed, _ := s.Sweep(); removed != 1 {
		t.Fatalf("expected file past retention to be removed, removed=%d", removed)
	}
}

func TestSweeper_Sweep_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	area, err := NewArea(dir)
	if err != nil {
		t.Fatalf("NewArea failed: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("failed to remove dir: %v", err)
	}

	s := NewSweeper(area, time.Hour, time.Minute, nil)
	if _, err := s.Sweep(); err == nil {
		t.Fatal("expected error when storage directory is missing")
	}
}

func TestSweeper_Run_SurvivesErrorsAndStops(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	area, err := NewArea(dir)
	if err != nil {
		t.Fatalf("NewArea failed: %v", err)
	}
	// the first cycles fail because the directory is missing
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("failed to remove dir: %v", err)
	}

	s := NewSweeper(area, time.Hour, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to recreate dir: %v", err)
	}
	path := area.InputPath("stale")
	writeAged(t, path, 2*time.Hour)

	deadline := time.Now().Add(2 * time.Second)
	for exists(path) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if exists(path) {
		t.Fatal("sweeper did not recover after failing cycles")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
