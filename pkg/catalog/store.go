package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Store holds the catalog groups for one process. It is populated at most once: after the
// first successful population, requests naming any path are no-ops.
type Store struct {
	loader  TextLoader
	checker InclusionChecker
	logger  *logrus.Entry
	now     func() time.Time

	flight singleflight.Group

	mu      sync.Mutex
	groups  []*Group
	titles  sets.Set[string]
	version DataVersion
}

var _ ServiceInterface = (*Store)(nil)

// NewStore creates an empty store that reads its document through loader.
func NewStore(loader TextLoader, opts ...Option) *Store {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Store{
		loader:  loader,
		checker: cfg.checker,
		logger:  cfg.logger,
		now:     cfg.now,
		titles:  sets.New[string](),
	}
}

// EnsurePopulated loads and parses the document at path unless the store already holds groups.
//
// The lock is never held while the loader runs. Concurrent first callers for the same path
// and mode share one load; callers racing with different paths may each parse, and the
// title dedup during merge keeps the stored groups unique. On failure the store is left
// empty so a later call retries.
//
// The shared load runs detached from any single caller's cancellation. A caller whose ctx
// ends before the load finishes gets ctx.Err() while the load continues for the others.
func (s *Store) EnsurePopulated(ctx context.Context, path string, mode InclusionMode) error {
	if s.alreadyPopulated(path) {
		return nil
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(mode.String()+"|"+path, func() (interface{}, error) {
		if s.alreadyPopulated(path) {
			return nil, nil
		}
		return nil, s.populate(loadCtx, path, mode)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) alreadyPopulated(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.groups) == 0 {
		return false
	}
	if path != s.version.Path {
		s.logger.WithFields(logrus.Fields{"requested": path, "populated": s.version.Path}).
			Debug("catalog already populated from another document, ignoring path")
	}
	return true
}

func (s *Store) populate(ctx context.Context, path string, mode InclusionMode) error {
	start := s.now()
	text, err := s.loader.LoadText(ctx, path)
	if err != nil {
		return NewRetrievalError(path, err)
	}

	groups, err := ParseDocument([]byte(text), mode, s.checker)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("catalog document rejected")
		return err
	}

	added, dropped := s.merge(groups, path, mode)
	s.logger.WithFields(logrus.Fields{
		"path":     path,
		"mode":     mode.String(),
		"source":   s.source(),
		"groups":   added,
		"items":    countItems(groups),
		"dropped":  dropped,
		"duration": s.now().Sub(start),
	}).Info("catalog populated")
	return nil
}

// merge appends groups whose title is not stored yet, preserving document order.
func (s *Store) merge(groups []*Group, path string, mode InclusionMode) (added, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range groups {
		if s.titles.Has(g.Title) {
			s.logger.WithFields(logrus.Fields{"title": g.Title, "uniqueId": g.UniqueID}).
				Debug("dropping group with duplicate title")
			dropped++
			continue
		}
		s.titles.Insert(g.Title)
		s.groups = append(s.groups, g)
		added++
	}

	if s.version.LoadTime.IsZero() && added > 0 {
		s.version = DataVersion{LoadTime: s.now(), Path: path, Source: s.source(), Mode: mode}
	}
	s.version.GroupCount = len(s.groups)
	s.version.ItemCount = countItems(s.groups)
	s.version.DroppedGroups += dropped
	return added, dropped
}

// source names where documents come from when the loader can describe itself.
func (s *Store) source() string {
	if named, ok := s.loader.(fmt.Stringer); ok {
		return named.String()
	}
	return ""
}

func countItems(groups []*Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Items)
	}
	return n
}

// Groups returns a snapshot of the stored groups in insertion order. Changing the returned
// slice never affects the store; the *Group records themselves are shared.
func (s *Store) Groups() []*Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Group, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *Store) Populated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups) != 0
}

// GetVersion reports what the store was populated from. The zero value means not populated.
func (s *Store) GetVersion() DataVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
