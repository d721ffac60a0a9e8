package storage

import (
	"context"
	"sync"
	"time"
)

type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[time.Time]Snapshot
}

var _ SnapshotStore = (*MemorySnapshotStore)(nil)

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{snapshots: make(map[time.Time]Snapshot)}
}

func (s *MemorySnapshotStore) Save(_ context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	s.snapshots[snapshot.Day().UTC()] = snapshot
	s.mu.Unlock()
	return nil
}

func (s *MemorySnapshotStore) Get(_ context.Context, day time.Time) (Snapshot, error) {
	key := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).UTC()

	s.mu.RLock()
	snapshot, ok := s.snapshots[key]
	s.mu.RUnlock()

	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snapshot, nil
}

func (s *MemorySnapshotStore) Latest(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		latest Snapshot
		found  bool
	)
	for _, snapshot := range s.snapshots {
		if !found || snapshot.Day().After(latest.Day()) {
			latest = snapshot
			found = true
		}
	}
	if !found {
		return Snapshot{}, ErrNotFound
	}
	return latest, nil
}

func (s *MemorySnapshotStore) Close() error { return nil }
