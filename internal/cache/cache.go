// Package cache implements the local fallback layer: a single serialized
// snapshot in a file, readable without network access. It is the last resort
// at bootstrap when the durable store yields nothing.
package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/1dinos/desafio-cronometro/internal/domain"
	"github.com/1dinos/desafio-cronometro/internal/metrics"
)

// FileCache mirrors the latest known snapshot into a JSON file. All writes
// are best-effort: failures are logged and swallowed, never surfaced.
type FileCache struct {
	path string
}

// New creates a file cache at the given path. The parent directory is
// created lazily on first write.
func New(path string) *FileCache {
	return &FileCache{path: path}
}

// Write mirrors the snapshot to disk, replacing any previous contents.
func (c *FileCache) Write(snapshot domain.SetSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		metrics.CacheWrites.WithLabelValues("error").Inc()
		slog.Debug("Failed to encode snapshot for fallback cache", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		metrics.CacheWrites.WithLabelValues("error").Inc()
		slog.Debug("Failed to create fallback cache directory", "path", c.path, "error", err)
		return
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		metrics.CacheWrites.WithLabelValues("error").Inc()
		slog.Debug("Failed to write fallback cache", "path", c.path, "error", err)
		return
	}
	metrics.CacheWrites.WithLabelValues("ok").Inc()
}

// Read returns the cached snapshot, or false if the cache is absent,
// unreadable or undecodable.
func (c *FileCache) Read() (domain.SetSnapshot, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("Failed to read fallback cache", "path", c.path, "error", err)
		}
		return domain.SetSnapshot{}, false
	}

	var snapshot domain.SetSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		slog.Debug("Discarding undecodable fallback cache", "path", c.path, "error", err)
		return domain.SetSnapshot{}, false
	}
	if len(snapshot.Timers) == 0 {
		return domain.SetSnapshot{}, false
	}
	return snapshot, true
}
