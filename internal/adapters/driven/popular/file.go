// Package popular provides the popular destinations capability from a local
// TOML file, reloading it when the file changes on disk. Deployments wire
// either this or the backend's /api/search/popular feed.
package popular

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/logger"
)

// Ensure FileSource implements the interface.
var _ driven.PopularDestinations = (*FileSource)(nil)

// fileFormat is the TOML shape of the destinations file:
//
//	[[destination]]
//	id = "popular_praha"
//	name = "Praha"
type fileFormat struct {
	Destination []domain.Destination `toml:"destination"`
}

// FileSource serves popular destinations from a TOML file.
type FileSource struct {
	path string

	mu           sync.RWMutex
	destinations []domain.Destination

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileSource loads the destinations file and starts watching it for
// changes. Close must be called to release the watcher.
func NewFileSource(path string) (*FileSource, error) {
	s := &FileSource{path: path, done: make(chan struct{})}

	if err := s.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go quiet.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	s.watcher = watcher

	go s.watch()
	return s, nil
}

// Popular returns up to limit destinations in file order.
func (s *FileSource) Popular(_ context.Context, limit int) ([]domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.destinations) {
		limit = len(s.destinations)
	}
	out := make([]domain.Destination, limit)
	copy(out, s.destinations[:limit])
	return out, nil
}

// Close stops watching the file.
func (s *FileSource) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *FileSource) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading destinations file: %w", err)
	}

	var parsed fileFormat
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsing destinations file: %w", err)
	}

	dests := parsed.Destination
	for i := range dests {
		if dests[i].ID == "" {
			dests[i].ID = "popular_" + strings.ReplaceAll(strings.ToLower(dests[i].Name), " ", "_")
		}
	}

	s.mu.Lock()
	s.destinations = dests
	s.mu.Unlock()

	logger.Debug("Popular destinations reloaded: %d entries", len(dests))
	return nil
}

func (s *FileSource) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := s.reload(); err != nil {
				logger.Warn("Popular destinations reload failed: %v", err)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Popular destinations watcher: %v", err)
		}
	}
}
