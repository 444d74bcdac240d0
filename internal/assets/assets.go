// Package assets handles board lookup and caching.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/gridcast/internal/logger"
	"github.com/Faultbox/gridcast/pkg/formats"
)

//go:embed boards/*.yaml
var embedded embed.FS

// DefaultBoard is the name of the embedded fallback board.
const DefaultBoard = "default.yaml"

// ErrBoardNotFound is returned when no search location holds a board.
var ErrBoardNotFound = errors.New("board not found")

// Manager resolves board files against a list of search directories.
// Relative paths are tried in each directory in reverse order (last added =
// highest priority), then in the embedded boards.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager searching dirs.
func NewManager(dirs ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, dir := range dirs {
		m.AddDir(dir)
	}
	return m
}

// AddDir adds a search directory.
func (m *Manager) AddDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Load reads a board file's bytes.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, source, err := m.read(path)
	if err != nil {
		return nil, err
	}

	logger.Named("assets").Debug("loaded board file",
		zap.String("path", path),
		zap.String("source", source),
		zap.Int("bytes", len(data)))
	m.cache.Set(path, data)
	return data, nil
}

func (m *Manager) read(path string) ([]byte, string, error) {
	if filepath.IsAbs(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %v", ErrBoardNotFound, path, err)
		}
		return data, path, nil
	}

	m.mu.RLock()
	dirs := m.dirs
	m.mu.RUnlock()

	for i := len(dirs) - 1; i >= 0; i-- {
		full := filepath.Join(dirs[i], path)
		if data, err := os.ReadFile(full); err == nil {
			return data, full, nil
		}
	}

	if data, err := embedded.ReadFile("boards/" + filepath.ToSlash(path)); err == nil {
		return data, "embedded", nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrBoardNotFound, path)
}

// LoadBoard loads and parses a board. An empty path selects the embedded
// default board.
func (m *Manager) LoadBoard(path string) (*formats.Board, error) {
	if path == "" {
		path = DefaultBoard
	}
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	b, err := formats.Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("parsing board %s: %w", path, err)
	}
	return b, nil
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded board files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
