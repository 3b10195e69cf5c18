package config

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses editor write bursts into one reload.
const reloadDebounce = 100 * time.Millisecond

// TableSource serves the current boss tables and can hot-reload them from disk.
// Readers call Tables on any goroutine; a failed reload keeps the previous tables.
type TableSource struct {
	path    string
	current atomic.Pointer[Tables]
	reloads atomic.Int64
	logger  *log.Logger
}

// NewTableSource loads tables from path, or uses the embedded defaults when
// path is empty.
func NewTableSource(path string, logger *log.Logger) (*TableSource, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &TableSource{path: path, logger: logger}
	if path == "" {
		s.current.Store(DefaultTables())
		return s, nil
	}
	t, err := LoadTables(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(t)
	return s, nil
}

// StaticSource wraps fixed tables, e.g. for tests and the simulator.
func StaticSource(t *Tables) *TableSource {
	s := &TableSource{logger: log.New(io.Discard)}
	s.current.Store(t)
	return s
}

// Tables returns the most recently loaded tables.
func (s *TableSource) Tables() *Tables {
	return s.current.Load()
}

// Reloads returns how many successful reloads happened since creation.
func (s *TableSource) Reloads() int64 {
	return s.reloads.Load()
}

// Reload re-reads the backing file.
func (s *TableSource) Reload() error {
	if s.path == "" {
		return nil
	}
	t, err := LoadTables(s.path)
	if err != nil {
		return err
	}
	s.current.Store(t)
	s.reloads.Add(1)
	return nil
}

// Watch reloads the tables whenever the backing file changes, until ctx is
// done. The parent directory is watched so atomic-rename saves are seen.
func (s *TableSource) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)

	// Reload once writes have settled rather than on the first event, which
	// may observe a truncated file.
	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle.Reset(reloadDebounce)
		case <-settle.C:
			if err := s.Reload(); err != nil {
				s.logger.Error("boss table reload failed", "path", s.path, "err", err)
				continue
			}
			s.logger.Info("boss tables reloaded", "path", s.path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("table watcher error", "err", err)
		}
	}
}