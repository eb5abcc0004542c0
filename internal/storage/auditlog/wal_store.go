// Package auditlog persists per-cycle decision reports in a WAL so every
// analysis cycle leaves an auditable trail, degraded ones included.
package auditlog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/dexsignal/dexsignal/internal/domain"
)

const (
	DefaultDir   = "./wal/audit"
	segmentLimit = 100
	maxSegments  = 10

	reportKeyPrefix = "cycle_report_"
)

// ReportRecord one stored report together with its WAL index.
type ReportRecord struct {
	Index  uint64
	Report domain.CycleReport
}

// Store persists cycle reports in a WAL.
type Store struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewStore initializes a WAL-backed audit store.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "audit_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init audit WAL")
	}

	return &Store{wal: wal}, nil
}

// Save writes the cycle report to WAL, keyed by token address.
func (s *Store) Save(report domain.CycleReport) error {
	if s == nil || s.wal == nil {
		return errors.New("audit store is not initialized")
	}
	if report.TokenAddress == "" {
		return fmt.Errorf("cycle report token address is required")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "marshal cycle report")
	}

	key := fmt.Sprintf("%s%s", reportKeyPrefix, report.TokenAddress)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// ReportsAfter returns all cycle reports written after the provided WAL index.
func (s *Store) ReportsAfter(index uint64) ([]ReportRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("audit store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]ReportRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		_, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}

		var report domain.CycleReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, errors.Wrap(err, "decode cycle report")
		}
		records = append(records, ReportRecord{Index: idx, Report: report})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *Store) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *Store) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("audit store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
