package vector

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/gogpu/cursor/internal/cache"
	"github.com/gogpu/cursor/internal/logx"
	"github.com/gogpu/cursor/theme"
)

// Store builds and caches one renderer per cursor id.
//
// Each backend format has its own cache. A miss reads the cursor's source
// file relative to the theme directory and builds the renderer outside any
// lock; concurrent misses on one id may build twice, and the first renderer
// inserted is the one every caller gets.
type Store struct {
	baseDir  string
	baseSize int

	mu       sync.RWMutex
	cfg      *theme.Config
	scenes   *cache.Cache[string, *PathScene]
	keyframe *cache.Cache[string, *KeyframeComposition]

	loads atomic.Uint64
}

// NewStore creates a store for the theme rooted at baseDir.
func NewStore(baseDir string, cfg *theme.Config, baseSize int) *Store {
	return &Store{
		baseDir:  baseDir,
		baseSize: baseSize,
		cfg:      cfg,
		scenes:   cache.New[string, *PathScene](),
		keyframe: cache.New[string, *KeyframeComposition](),
	}
}

// Config returns the current theme config.
func (s *Store) Config() *theme.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// BaseDir returns the theme directory.
func (s *Store) BaseDir() string { return s.baseDir }

// BaseSize returns the logical cursor size renderers are built for.
func (s *Store) BaseSize() int { return s.baseSize }

// Reload swaps in a new config and drops every cached renderer.
// Callers never observe the new config paired with old renderers.
func (s *Store) Reload(cfg *theme.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
	s.scenes = cache.New[string, *PathScene]()
	s.keyframe = cache.New[string, *KeyframeComposition]()
	logx.Logger().Debug("vector: store reloaded", "dir", s.baseDir, "cursors", cfg.Len())
}

// Loads returns how many source documents the store has read.
func (s *Store) Loads() uint64 { return s.loads.Load() }

// Renderer returns the renderer for id.
//
// It fails with [ErrNotFound] when the theme does not define id, [ErrAsset]
// when the source file cannot be read and [ErrRender] when it cannot be parsed.
func (s *Store) Renderer(id string) (Renderer, error) {
	s.mu.RLock()
	cfg, scenes, keyframe := s.cfg, s.scenes, s.keyframe
	s.mu.RUnlock()

	def, ok := cfg.Cursor(id)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "cursor %q", id)
	}

	switch def.Format {
	case theme.FormatKeyframe:
		k, err := keyframe.Load(id, func() (*KeyframeComposition, error) {
			data, err := s.read(def)
			if err != nil {
				return nil, err
			}
			return NewKeyframeComposition(id, data, def.Hotspot, s.baseSize)
		})
		if err != nil {
			return nil, err
		}
		return k, nil
	default:
		p, err := scenes.Load(id, func() (*PathScene, error) {
			data, err := s.read(def)
			if err != nil {
				return nil, err
			}
			return NewPathScene(id, data, def.Hotspot, s.baseSize)
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Stats returns the hit/miss counters of both caches combined.
func (s *Store) Stats() cache.Stats {
	s.mu.RLock()
	a, b := s.scenes.Stats(), s.keyframe.Stats()
	s.mu.RUnlock()

	st := cache.Stats{
		Len:    a.Len + b.Len,
		Hits:   a.Hits + b.Hits,
		Misses: a.Misses + b.Misses,
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}
	return st
}

func (s *Store) read(def theme.CursorDefinition) ([]byte, error) {
	path := def.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, path)
	}
	s.loads.Add(1)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrAsset, "read %s: %v", path, err)
	}
	logx.Logger().Debug("vector: loaded cursor source", "path", path, "bytes", len(data))
	return data, nil
}
