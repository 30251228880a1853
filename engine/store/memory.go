// Package store provides PublishStore implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/roster-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	current map[key]*engine.PublishedRecord
	history []engine.PublishedRecord
}

type key struct {
	OrgID engine.OrgID
	Tag   string
}

func NewMemory() *Memory {
	return &Memory{current: make(map[key]*engine.PublishedRecord)}
}

// Publish replaces the current baseline for (org, tag).
func (m *Memory) Publish(_ context.Context, orgID engine.OrgID, tag string, bundle *engine.SolutionBundle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := engine.PublishedRecord{
		OrgID:       orgID,
		Tag:         tag,
		Bundle:      bundle,
		PublishedAt: time.Now().UTC(),
	}
	m.current[key{OrgID: orgID, Tag: tag}] = &rec
	m.history = append(m.history, rec)
	return nil
}

func (m *Memory) LatestPublished(_ context.Context, orgID engine.OrgID, tag string) (*engine.SolutionBundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.current[key{OrgID: orgID, Tag: tag}]
	if !ok {
		return nil, engine.ErrSolutionNotFound
	}
	return rec.Bundle, nil
}

func (m *Memory) ListPublished(_ context.Context, orgID engine.OrgID) ([]engine.PublishedRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.PublishedRecord
	for _, rec := range m.history {
		if rec.OrgID == orgID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

var _ engine.PublishStore = (*Memory)(nil)
