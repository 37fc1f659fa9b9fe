// Package history persists verification runs so past results can be listed
// from the CLI or served over the API.
package history

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/mktdata/mktverify/pkg/verify"
)

// runKeyPrefix namespaces run records in the store. ksuid ids are
// time-sortable, so key order is chronological.
const runKeyPrefix = "run/"

// Run is one recorded verification run over one or more files.
type Run struct {
	ID        string           `json:"id"`
	StartedAt time.Time        `json:"started_at"`
	Passed    bool             `json:"passed"`
	Reports   []*verify.Report `json:"reports"`
}

// StoreConfig holds configuration for the history store
type StoreConfig struct {
	DataDir string // Directory for the store's files
}

// Store is a pebble-backed archive of verification runs.
type Store struct {
	db *pebble.DB
}

// Errors
var (
	ErrRunNotFound = &HistoryError{"run not found"}
)

// HistoryError represents a history store error
type HistoryError struct {
	Message string
}

func (e *HistoryError) Error() string {
	return e.Message
}

// Open opens (or creates) the history store under the data directory.
func Open(config StoreConfig) (*Store, error) {
	db, err := pebble.Open(filepath.Join(config.DataDir, "history"), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return &Store{db: db}, nil
}

// RecordRun assigns a fresh run id and persists the run.
func (s *Store) RecordRun(reports []*verify.Report, passed bool) (*Run, error) {
	run := &Run{
		ID:        ksuid.New().String(),
		StartedAt: time.Now().UTC(),
		Passed:    passed,
		Reports:   reports,
	}

	value, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run: %w", err)
	}

	if err := s.db.Set([]byte(runKeyPrefix+run.ID), value, pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	return run, nil
}

// GetRun retrieves one run by id.
func (s *Store) GetRun(id string) (*Run, error) {
	value, closer, err := s.db.Get([]byte(runKeyPrefix + id))
	if err == pebble.ErrNotFound {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run %s: %w", id, err)
	}
	defer closer.Close()

	var run Run
	if err := json.Unmarshal(value, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", id, err)
	}

	return &run, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all
// runs.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(runKeyPrefix),
		UpperBound: []byte(runKeyPrefix[:len(runKeyPrefix)-1] + "0"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	defer iter.Close()

	var runs []*Run
	for ok := iter.Last(); ok; ok = iter.Prev() {
		if limit > 0 && len(runs) >= limit {
			break
		}
		var run Run
		if err := json.Unmarshal(iter.Value(), &run); err != nil {
			return nil, fmt.Errorf("failed to decode run %s: %w", iter.Key(), err)
		}
		runs = append(runs, &run)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("history iteration failed: %w", err)
	}

	return runs, nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}
