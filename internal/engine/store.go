package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"trackedkv/internal/metrics"
	"trackedkv/internal/model"
)

// Journal persists mutation records and yields them back for replay.
// *CommitLogManager is the production implementation; a Store built
// with NewStore has no journal and lives purely in memory.
type Journal interface {
	Append(model.Mutation) error
	Load() []model.Mutation
}

// Store maps string keys to values and records every mutation in an
// ordered change history. The most recent mutations can be rolled back
// with Revert, which restores each key to its prior value, or removes
// it when the history says the key did not exist.
//
// All methods are safe for concurrent use; the store serves one HTTP
// handler goroutine per request.
type Store struct {
	mu      sync.RWMutex
	data    map[string][]byte
	history []model.ChangeRecord
	seq     uint64
	journal Journal
	logger  *slog.Logger
}

// KeyValue is one pair returned by Scan.
type KeyValue struct {
	Key   string
	Value []byte
}

// Stats is a point-in-time snapshot of store counters.
type Stats struct {
	Keys       int
	HistoryLen int
	LastSeq    uint64
}

// NewStore creates an empty in-memory store with no journal.
func NewStore() *Store {
	return &Store{
		data:   make(map[string][]byte),
		logger: slog.Default().With(slog.String("component", "store")),
	}
}

// OpenStore builds a store backed by the given journal, replaying any
// previously journaled mutations through the regular state transitions
// before new writes are accepted. Records the journal could not apply
// (for example a delete whose key is gone because the log was cut at a
// corruption boundary) are skipped with a warning.
func OpenStore(j Journal) *Store {
	s := NewStore()
	replayed := 0
	for _, mut := range j.Load() {
		if err := s.replay(mut); err != nil {
			s.logger.Warn("skipping journal record",
				slog.Uint64("seq", mut.Sequence), slog.String("error", err.Error()))
			continue
		}
		replayed++
	}
	s.journal = j
	metrics.JournalReplayedTotal.Add(float64(replayed))
	return s
}

// Get returns the current value for key. The boolean result reports
// whether the key exists; a missing key is not an error. Get has no
// side effects and never touches the history.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false
	}
	return cloneBytes(v), true
}

// Set writes value under key, recording the prior state (value or
// absence) in the history first. Overwriting a key with an identical
// value is still a recorded mutation.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mut := model.Mutation{
		Op:        model.SET,
		Key:       key,
		Value:     cloneBytes(value),
		Sequence:  s.seq + 1,
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
	}
	if err := s.journalAppend(mut); err != nil {
		return err
	}
	s.applySet(mut)
	metrics.MutationsTotal.WithLabelValues("set").Inc()
	return nil
}

// Delete removes key, recording its last value so a revert can bring it
// back. Deleting a missing key returns ErrKeyNotFound and records
// nothing.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return ErrKeyNotFound
	}

	mut := model.Mutation{
		Op:        model.DELETE,
		Key:       key,
		Sequence:  s.seq + 1,
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
	}
	if err := s.journalAppend(mut); err != nil {
		return err
	}
	s.applyDelete(mut)
	metrics.MutationsTotal.WithLabelValues("delete").Inc()
	return nil
}

// Revert undoes up to steps of the most recent history records, newest
// first. Fewer records are undone when the history is shorter; steps <= 0
// and an empty history are both no-ops, not errors. Returns the number
// of records actually undone. A no-op revert is not journaled.
func (s *Store) Revert(steps int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if steps <= 0 {
		return 0, nil
	}
	n := steps
	if n > len(s.history) {
		n = len(s.history)
	}
	if n == 0 {
		return 0, nil
	}

	mut := model.Mutation{
		Op:        model.REVERT,
		Steps:     n,
		Sequence:  s.seq + 1,
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
	}
	if err := s.journalAppend(mut); err != nil {
		return 0, err
	}
	s.applyRevert(n, mut.Sequence)
	metrics.RevertedEntriesTotal.Add(float64(n))
	return n, nil
}

// History returns the change history in chronological order, oldest
// first. The result is a snapshot: mutating it, or calling Revert
// afterwards, cannot affect the store or previously returned snapshots.
func (s *Store) History() []model.ChangeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ChangeRecord, len(s.history))
	for i, rec := range s.history {
		rec.OldValue = cloneBytes(rec.OldValue)
		rec.NewValue = cloneBytes(rec.NewValue)
		out[i] = rec
	}
	return out
}

// Scan returns the pairs whose keys fall in the half-open range
// [from, end), ordered by key. An empty end means "no upper bound".
func (s *Store) Scan(from, end string) []KeyValue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if k < from {
			continue
		}
		if end != "" && k >= end {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyValue{Key: k, Value: cloneBytes(s.data[k])})
	}
	return out
}

// Stats returns current store counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Keys:       len(s.data),
		HistoryLen: len(s.history),
		LastSeq:    s.seq,
	}
}

func (s *Store) journalAppend(mut model.Mutation) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.Append(mut); err != nil {
		return fmt.Errorf("journal append: %w", err)
	}
	return nil
}

// replay applies one journaled mutation without re-journaling it.
// Sequence, ID, and timestamp come from the record, so the rebuilt
// history is byte-for-byte the pre-restart history.
func (s *Store) replay(mut model.Mutation) error {
	switch mut.Op {
	case model.SET:
		s.applySet(mut)
	case model.DELETE:
		if _, ok := s.data[mut.Key]; !ok {
			return fmt.Errorf("delete of missing key %q", mut.Key)
		}
		s.applyDelete(mut)
	case model.REVERT:
		n := mut.Steps
		if n > len(s.history) {
			n = len(s.history)
		}
		s.applyRevert(n, mut.Sequence)
	default:
		return fmt.Errorf("unknown operation type %d", mut.Op)
	}
	return nil
}

// applySet records the displaced state and writes the new value.
// Caller holds the write lock.
func (s *Store) applySet(mut model.Mutation) {
	old, existed := s.data[mut.Key]
	s.history = append(s.history, model.ChangeRecord{
		ID:         mut.ID,
		Sequence:   mut.Sequence,
		Op:         model.SET,
		Key:        mut.Key,
		OldValue:   old,
		OldExisted: existed,
		NewValue:   mut.Value,
		Timestamp:  mut.Timestamp,
	})
	s.data[mut.Key] = mut.Value
	s.seq = mut.Sequence
	s.syncGauges()
}

// applyDelete records the removed value and drops the key.
// Caller holds the write lock and has checked the key exists.
func (s *Store) applyDelete(mut model.Mutation) {
	old := s.data[mut.Key]
	s.history = append(s.history, model.ChangeRecord{
		ID:         mut.ID,
		Sequence:   mut.Sequence,
		Op:         model.DELETE,
		Key:        mut.Key,
		OldValue:   old,
		OldExisted: true,
		Timestamp:  mut.Timestamp,
	})
	delete(s.data, mut.Key)
	s.seq = mut.Sequence
	s.syncGauges()
}

// applyRevert pops n history records, newest first, restoring each
// key to its recorded prior state. Caller holds the write lock and has
// clamped n to the history length.
func (s *Store) applyRevert(n int, seq uint64) {
	for i := 0; i < n; i++ {
		rec := s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]
		if rec.OldExisted {
			s.data[rec.Key] = rec.OldValue
		} else {
			delete(s.data, rec.Key)
		}
	}
	s.seq = seq
	s.syncGauges()
}

func (s *Store) syncGauges() {
	metrics.KeysLive.Set(float64(len(s.data)))
	metrics.HistorySize.Set(float64(len(s.history)))
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
