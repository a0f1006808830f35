package engine

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"trackedkv/internal/model"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := NewStore()

	if _, ok := s.Get("missing"); ok {
		t.Fatalf("expected missing key to report absent")
	}

	if err := s.Set("alpha", []byte("one")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := s.Get("alpha")
	if !ok {
		t.Fatalf("expected alpha to exist")
	}
	if !bytes.Equal(got, []byte("one")) {
		t.Fatalf("value mismatch: got %q want %q", got, "one")
	}
}

func TestRevertRestoresPriorState(t *testing.T) {
	s := NewStore()

	// Base state the revert must bring back exactly.
	if err := s.Set("a", []byte("base-a")); err != nil {
		t.Fatalf("seed a: %v", err)
	}
	if err := s.Set("b", []byte("base-b")); err != nil {
		t.Fatalf("seed b: %v", err)
	}
	base := s.Scan("", "")

	mutations := 0
	for i := 0; i < 3; i++ {
		if err := s.Set("a", []byte{byte('0' + i)}); err != nil {
			t.Fatalf("overwrite a: %v", err)
		}
		if err := s.Set(fmt.Sprintf("new-%d", i), []byte("x")); err != nil {
			t.Fatalf("create new-%d: %v", i, err)
		}
		mutations += 2
	}

	n, err := s.Revert(mutations)
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if n != mutations {
		t.Fatalf("reverted %d records, want %d", n, mutations)
	}

	after := s.Scan("", "")
	if len(after) != len(base) {
		t.Fatalf("key count after revert: got %d want %d", len(after), len(base))
	}
	for i := range base {
		if after[i].Key != base[i].Key || !bytes.Equal(after[i].Value, base[i].Value) {
			t.Fatalf("state[%d] mismatch: got %s=%q want %s=%q",
				i, after[i].Key, after[i].Value, base[i].Key, base[i].Value)
		}
	}
}

func TestRevertUndoesNewestFirst(t *testing.T) {
	s := NewStore()

	if err := s.Set("a", []byte("1")); err != nil {
		t.Fatalf("set a=1: %v", err)
	}
	if err := s.Set("a", []byte("2")); err != nil {
		t.Fatalf("set a=2: %v", err)
	}

	if _, err := s.Revert(1); err != nil {
		t.Fatalf("revert: %v", err)
	}
	got, ok := s.Get("a")
	if !ok || !bytes.Equal(got, []byte("1")) {
		t.Fatalf("expected a=1 after revert, got %q (ok=%v)", got, ok)
	}
}

func TestRevertRemovesCreatedKey(t *testing.T) {
	s := NewStore()

	if err := s.Set("fresh", []byte("value")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := s.Revert(1); err != nil {
		t.Fatalf("revert: %v", err)
	}

	// The key must be gone, not reset to an empty value.
	if v, ok := s.Get("fresh"); ok {
		t.Fatalf("expected key removed after revert, got %q", v)
	}
	if st := s.Stats(); st.Keys != 0 || st.HistoryLen != 0 {
		t.Fatalf("expected empty store, got %+v", st)
	}
}

func TestRevertClampsToHistoryLength(t *testing.T) {
	s := NewStore()

	if err := s.Set("only", []byte("one")); err != nil {
		t.Fatalf("set: %v", err)
	}

	n, err := s.Revert(5)
	if err != nil {
		t.Fatalf("over-revert: %v", err)
	}
	if n != 1 {
		t.Fatalf("reverted %d records, want 1", n)
	}
	if st := s.Stats(); st.Keys != 0 || st.HistoryLen != 0 {
		t.Fatalf("expected empty store after over-revert, got %+v", st)
	}

	// Revert on an empty history stays a no-op.
	n, err = s.Revert(3)
	if err != nil {
		t.Fatalf("revert on empty history: %v", err)
	}
	if n != 0 {
		t.Fatalf("reverted %d records on empty history, want 0", n)
	}
}

func TestRevertNonPositiveSteps(t *testing.T) {
	s := NewStore()

	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}

	for _, steps := range []int{0, -1, -100} {
		n, err := s.Revert(steps)
		if err != nil {
			t.Fatalf("revert(%d): %v", steps, err)
		}
		if n != 0 {
			t.Fatalf("revert(%d) undid %d records, want 0", steps, n)
		}
	}
	if st := s.Stats(); st.HistoryLen != 1 {
		t.Fatalf("history length changed by no-op reverts: %+v", st)
	}
}

func TestGetLeavesHistoryUntouched(t *testing.T) {
	s := NewStore()

	if err := s.Set("a", []byte("1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("b", []byte("2")); err != nil {
		t.Fatalf("set: %v", err)
	}
	before := s.History()

	for i := 0; i < 10; i++ {
		s.Get("a")
		s.Get("b")
		s.Get("no-such-key")
	}

	after := s.History()
	if len(after) != len(before) {
		t.Fatalf("history length changed by get: got %d want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].Sequence != before[i].Sequence || after[i].Key != before[i].Key ||
			!bytes.Equal(after[i].NewValue, before[i].NewValue) {
			t.Fatalf("history[%d] changed by get: got %+v want %+v", i, after[i], before[i])
		}
	}
}

func TestHistoryRecordsOldAndNewValues(t *testing.T) {
	s := NewStore()

	if err := s.Set("name", []byte("John")); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := s.Set("age", []byte("25")); err != nil {
		t.Fatalf("set age=25: %v", err)
	}
	if err := s.Set("age", []byte("26")); err != nil {
		t.Fatalf("set age=26: %v", err)
	}

	hist := s.History()
	if len(hist) != 3 {
		t.Fatalf("history length: got %d want 3", len(hist))
	}

	second := hist[1]
	if second.Key != "age" || second.OldExisted || !bytes.Equal(second.NewValue, []byte("25")) {
		t.Fatalf("second record should be age: absent -> 25, got %+v", second)
	}
	third := hist[2]
	if third.Key != "age" || !third.OldExisted ||
		!bytes.Equal(third.OldValue, []byte("25")) || !bytes.Equal(third.NewValue, []byte("26")) {
		t.Fatalf("third record should be age: 25 -> 26, got %+v", third)
	}

	for i, rec := range hist {
		if rec.ID == uuid.Nil {
			t.Fatalf("history[%d] has zero record ID", i)
		}
		if rec.Timestamp.IsZero() {
			t.Fatalf("history[%d] has zero timestamp", i)
		}
		if i > 0 && rec.Sequence <= hist[i-1].Sequence {
			t.Fatalf("history sequences not increasing: %d then %d", hist[i-1].Sequence, rec.Sequence)
		}
	}

	if _, err := s.Revert(1); err != nil {
		t.Fatalf("revert: %v", err)
	}
	got, ok := s.Get("age")
	if !ok || !bytes.Equal(got, []byte("25")) {
		t.Fatalf("expected age=25 after revert, got %q (ok=%v)", got, ok)
	}
}

func TestDeleteIsTrackedAndRevertible(t *testing.T) {
	s := NewStore()

	if err := s.Set("k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Fatalf("expected key gone after delete")
	}

	hist := s.History()
	if len(hist) != 2 {
		t.Fatalf("history length after set+delete: got %d want 2", len(hist))
	}
	del := hist[1]
	if del.Op != model.DELETE || !del.OldExisted || !bytes.Equal(del.OldValue, []byte("v1")) {
		t.Fatalf("delete record mismatch: %+v", del)
	}

	// Undo the delete, then undo the set.
	if _, err := s.Revert(1); err != nil {
		t.Fatalf("revert delete: %v", err)
	}
	got, ok := s.Get("k")
	if !ok || !bytes.Equal(got, []byte("v1")) {
		t.Fatalf("expected k=v1 restored, got %q (ok=%v)", got, ok)
	}
	if _, err := s.Revert(1); err != nil {
		t.Fatalf("revert set: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Fatalf("expected k gone after reverting its creation")
	}
}

func TestDeleteMissingKey(t *testing.T) {
	s := NewStore()

	if err := s.Delete("ghost"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if st := s.Stats(); st.HistoryLen != 0 {
		t.Fatalf("failed delete must not be recorded, got %+v", st)
	}
}

func TestHistorySnapshotIsolation(t *testing.T) {
	s := NewStore()

	if err := s.Set("k", []byte("safe")); err != nil {
		t.Fatalf("set: %v", err)
	}

	hist := s.History()
	hist[0].NewValue[0] = 'X'
	hist[0].Key = "tampered"

	again := s.History()
	if again[0].Key != "k" || !bytes.Equal(again[0].NewValue, []byte("safe")) {
		t.Fatalf("snapshot mutation leaked into store: %+v", again[0])
	}
	got, _ := s.Get("k")
	if !bytes.Equal(got, []byte("safe")) {
		t.Fatalf("snapshot mutation corrupted data: %q", got)
	}
}

func TestSetCopiesCallerBuffer(t *testing.T) {
	s := NewStore()

	buf := []byte("before")
	if err := s.Set("k", buf); err != nil {
		t.Fatalf("set: %v", err)
	}
	copy(buf, "AFTER!")

	got, _ := s.Get("k")
	if !bytes.Equal(got, []byte("before")) {
		t.Fatalf("store aliased caller buffer: got %q", got)
	}
}

func TestScanOrderedHalfOpen(t *testing.T) {
	s := NewStore()

	for _, k := range []string{"d", "b", "a", "c"} {
		if err := s.Set(k, []byte("v-"+k)); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}

	got := s.Scan("b", "d")
	if len(got) != 2 || got[0].Key != "b" || got[1].Key != "c" {
		t.Fatalf("scan [b,d): got %+v", got)
	}

	all := s.Scan("", "")
	if len(all) != 4 || all[0].Key != "a" || all[3].Key != "d" {
		t.Fatalf("unbounded scan: got %+v", all)
	}

	if err := s.Delete("c"); err != nil {
		t.Fatalf("delete c: %v", err)
	}
	got = s.Scan("b", "d")
	if len(got) != 1 || got[0].Key != "b" {
		t.Fatalf("scan after delete: got %+v", got)
	}
}

func TestConcurrentMutations(t *testing.T) {
	s := NewStore()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				key := fmt.Sprintf("w%d-k%d", w, i)
				if err := s.Set(key, []byte("v")); err != nil {
					t.Errorf("set %s: %v", key, err)
				}
				s.Get(key)
			}
		}(w)
	}
	wg.Wait()

	st := s.Stats()
	if st.Keys != writers*perWriter {
		t.Fatalf("expected %d keys, got %d", writers*perWriter, st.Keys)
	}
	if st.HistoryLen != writers*perWriter {
		t.Fatalf("expected %d history records, got %d", writers*perWriter, st.HistoryLen)
	}

	n, err := s.Revert(st.HistoryLen)
	if err != nil {
		t.Fatalf("revert all: %v", err)
	}
	if n != writers*perWriter {
		t.Fatalf("reverted %d, want %d", n, writers*perWriter)
	}
	if st := s.Stats(); st.Keys != 0 {
		t.Fatalf("expected empty store after full revert, got %+v", st)
	}
}
