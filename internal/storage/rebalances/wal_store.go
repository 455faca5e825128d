// Package rebalances persists the append-only audit log of executed
// rebalances in a WAL.
package rebalances

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/capindex/internal/domain"
)

const (
	// DefaultDir keeps the journal next to the other run artifacts.
	DefaultDir = "./wal/rebalances"

	segmentLimit = 1000
	maxSegments  = 100

	rebalanceKeyPrefix = "rebalance_"
)

// WALStore journals rebalance events in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed rebalance journal.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "rebalance_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init rebalance WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Append writes one rebalance event to the journal.
func (s *WALStore) Append(event domain.RebalanceEvent) error {
	if s == nil || s.wal == nil {
		return errors.New("rebalance journal is not initialized")
	}
	if event.Date.IsZero() {
		return fmt.Errorf("rebalance event date is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal rebalance event")
	}

	key := fmt.Sprintf("%s%s", rebalanceKeyPrefix, event.Date.Format(domain.DateFormat))

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// EventsAfter returns all journaled events written after the provided index.
func (s *WALStore) EventsAfter(index uint64) ([]domain.RebalanceEvent, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("rebalance journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	events := make([]domain.RebalanceEvent, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, rebalanceKeyPrefix) {
			continue
		}
		var event domain.RebalanceEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "decode rebalance event")
		}
		events = append(events, event)
	}

	return events, nil
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("rebalance journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
