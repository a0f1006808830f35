package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"trackedkv/internal/model"
)

func newTestCommitLog(t *testing.T, cfg CommitLogCfg) (*CommitLogManager, context.CancelFunc, string) {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "journal.log")
	}
	m, cancel, err := NewCommitLogManager(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new commit log manager: %v", err)
	}
	t.Cleanup(cancel)
	return m, cancel, cfg.Path
}

func sampleMutation(seq uint64, op model.OpsType, key, value string, steps int) model.Mutation {
	return model.Mutation{
		Op:        op,
		Key:       key,
		Value:     []byte(value),
		Steps:     steps,
		Sequence:  seq,
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
	}
}

// encodedLen is the on-disk size of one record: header plus payload.
func encodedLen(keyLen, valueLen int) int64 {
	payload := seqNumBytes + opTypeBytes + timestampBytes + recordIDBytes + stepsBytes +
		lenFieldSize + keyLen + lenFieldSize + valueLen
	return int64(payloadLenBytes + checksumBytes + payload)
}

func logFileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatalf("stat commit log: %v", err)
	}
	return info.Size()
}

func waitForFileSize(t *testing.T, path string, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if logFileSize(t, path) >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("commit log never reached %d bytes (have %d)", want, logFileSize(t, path))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cm := &CommitLogManager{}

	muts := []model.Mutation{
		sampleMutation(1, model.SET, "alpha", "value-one", 0),
		sampleMutation(2, model.DELETE, "alpha", "", 0),
		sampleMutation(3, model.REVERT, "", "", 7),
	}
	for _, want := range muts {
		record := cm.encodeMutation(want)
		if int64(len(record)) != encodedLen(len(want.Key), len(want.Value)) {
			t.Fatalf("encoded size: got %d want %d", len(record), encodedLen(len(want.Key), len(want.Value)))
		}

		got, err := decodePayload(record[payloadLenBytes+checksumBytes:])
		if err != nil {
			t.Fatalf("decode %s: %v", want.Op, err)
		}
		if got.Op != want.Op || got.Key != want.Key || !bytes.Equal(got.Value, want.Value) ||
			got.Steps != want.Steps || got.Sequence != want.Sequence || got.ID != want.ID {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Fatalf("timestamp mismatch: got %v want %v", got.Timestamp, want.Timestamp)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := decodePayload([]byte{0x01, 0x02}); err == nil {
		t.Fatalf("expected error for short payload")
	}

	cm := &CommitLogManager{}
	record := cm.encodeMutation(sampleMutation(1, model.SET, "k", "v", 0))
	payload := record[payloadLenBytes+checksumBytes:]

	// Corrupt the op byte to an unknown value.
	bad := append([]byte(nil), payload...)
	bad[seqNumBytes] = 0xEE
	if _, err := decodePayload(bad); err == nil {
		t.Fatalf("expected error for unknown op type")
	}

	// Claim a key longer than the payload.
	bad = append([]byte(nil), payload...)
	keyLenOff := seqNumBytes + opTypeBytes + timestampBytes + recordIDBytes + stepsBytes
	bad[keyLenOff] = 0xFF
	if _, err := decodePayload(bad); err == nil {
		t.Fatalf("expected error for out-of-bounds key length")
	}
}

func TestCommitLogFlushOnBufferLimit(t *testing.T) {
	m, _, path := newTestCommitLog(t, CommitLogCfg{
		BufferBytes:           minimalCommitLogBufferBytes,
		FlushIntervalInSecond: time.Hour,
	})

	// Each record is ~95 bytes, so the second append overflows the
	// 128-byte buffer and forces the first record to disk.
	val := strings.Repeat("v", 40)
	first := sampleMutation(1, model.SET, "k1", val, 0)
	second := sampleMutation(2, model.SET, "k2", val, 0)

	if err := m.Append(first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if size := logFileSize(t, path); size != 0 {
		t.Fatalf("expected buffered record to stay in memory, file has %d bytes", size)
	}

	if err := m.Append(second); err != nil {
		t.Fatalf("append second: %v", err)
	}
	want := encodedLen(len(first.Key), len(first.Value))
	if size := logFileSize(t, path); size != want {
		t.Fatalf("expected %d bytes after overflow flush, got %d", want, size)
	}
}

func TestCommitLogFlushOnInterval(t *testing.T) {
	m, _, path := newTestCommitLog(t, CommitLogCfg{
		FlushIntervalInSecond: 20 * time.Millisecond,
	})

	mut := sampleMutation(1, model.SET, "tick", "tock", 0)
	if err := m.Append(mut); err != nil {
		t.Fatalf("append: %v", err)
	}
	waitForFileSize(t, path, encodedLen(len(mut.Key), len(mut.Value)))
}

func TestCommitLogFlushOnContextShutdown(t *testing.T) {
	m, cancel, path := newTestCommitLog(t, CommitLogCfg{
		FlushIntervalInSecond: time.Hour,
	})

	var want int64
	for i, key := range []string{"a", "b", "c"} {
		mut := sampleMutation(uint64(i+1), model.SET, key, "payload", 0)
		if err := m.Append(mut); err != nil {
			t.Fatalf("append %s: %v", key, err)
		}
		want += encodedLen(len(mut.Key), len(mut.Value))
	}

	if size := logFileSize(t, path); size != 0 {
		t.Fatalf("records flushed before shutdown, file has %d bytes", size)
	}
	cancel()
	waitForFileSize(t, path, want)
}

func TestCommitLogRejectsOversizedRecord(t *testing.T) {
	m, _, _ := newTestCommitLog(t, CommitLogCfg{
		BufferBytes:           minimalCommitLogBufferBytes,
		FlushIntervalInSecond: time.Hour,
	})

	huge := sampleMutation(1, model.SET, "big", strings.Repeat("x", 4*minimalCommitLogBufferBytes), 0)
	if err := m.Append(huge); err == nil {
		t.Fatalf("expected error for record larger than the buffer")
	}
}

func TestCommitLogLoadRoundTrip(t *testing.T) {
	m, cancel, path := newTestCommitLog(t, CommitLogCfg{
		FlushIntervalInSecond: time.Hour,
	})

	want := []model.Mutation{
		sampleMutation(1, model.SET, "alpha", "one", 0),
		sampleMutation(2, model.SET, "beta", "two", 0),
		sampleMutation(3, model.DELETE, "alpha", "", 0),
		sampleMutation(4, model.REVERT, "", "", 2),
	}
	var wantBytes int64
	for _, mut := range want {
		if err := m.Append(mut); err != nil {
			t.Fatalf("append seq %d: %v", mut.Sequence, err)
		}
		wantBytes += encodedLen(len(mut.Key), len(mut.Value))
	}
	cancel()
	waitForFileSize(t, path, wantBytes)

	reopened, _, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	got := reopened.Load()
	if len(got) != len(want) {
		t.Fatalf("loaded %d records, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.Op != w.Op || g.Key != w.Key || !bytes.Equal(g.Value, w.Value) ||
			g.Steps != w.Steps || g.Sequence != w.Sequence || g.ID != w.ID || !g.Timestamp.Equal(w.Timestamp) {
			t.Fatalf("record %d mismatch: got %+v want %+v", i, g, w)
		}
	}
}

func TestCommitLogLoadStopsAtCorruption(t *testing.T) {
	m, cancel, path := newTestCommitLog(t, CommitLogCfg{
		FlushIntervalInSecond: time.Hour,
	})

	first := sampleMutation(1, model.SET, "good", "record", 0)
	second := sampleMutation(2, model.SET, "soon", "corrupt", 0)
	for _, mut := range []model.Mutation{first, second} {
		if err := m.Append(mut); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	cancel()
	firstLen := encodedLen(len(first.Key), len(first.Value))
	waitForFileSize(t, path, firstLen+encodedLen(len(second.Key), len(second.Value)))

	// Flip a payload byte in the second record so its CRC no longer matches.
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open for corruption: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xFF}, firstLen+payloadLenBytes+checksumBytes); err != nil {
		t.Fatalf("corrupt record: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, _, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	got := reopened.Load()
	if len(got) != 1 {
		t.Fatalf("expected load to stop at corruption boundary, got %d records", len(got))
	}
	if got[0].Key != first.Key {
		t.Fatalf("surviving record key: got %q want %q", got[0].Key, first.Key)
	}
}

func TestCommitLogLoadIgnoresTruncatedTail(t *testing.T) {
	m, cancel, path := newTestCommitLog(t, CommitLogCfg{
		FlushIntervalInSecond: time.Hour,
	})

	mut := sampleMutation(1, model.SET, "kept", "value", 0)
	if err := m.Append(mut); err != nil {
		t.Fatalf("append: %v", err)
	}
	cancel()
	waitForFileSize(t, path, encodedLen(len(mut.Key), len(mut.Value)))

	// Simulate a crash mid-write: a half-written header at the tail.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := f.Write([]byte{0x00, 0x00, 0x00, 0x2A, 0xDE, 0xAD}); err != nil {
		t.Fatalf("write tail: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, _, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	got := reopened.Load()
	if len(got) != 1 || got[0].Key != "kept" {
		t.Fatalf("expected the one intact record, got %d", len(got))
	}
	if size := logFileSize(t, path); size != encodedLen(len(mut.Key), len(mut.Value)) {
		t.Fatalf("expected torn tail dropped from file, have %d bytes", size)
	}
}

func TestWritesAfterRecoverySurviveNextLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	m1, cancel1, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	s1 := OpenStore(m1)
	if err := s1.Set("k1", []byte("v1")); err != nil {
		t.Fatalf("set k1: %v", err)
	}
	cancel1()
	firstLen := encodedLen(len("k1"), len("v1"))
	waitForFileSize(t, path, firstLen)

	// Crash mid-write: garbage bytes after the intact record.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := f.Write([]byte{0x00, 0x00, 0x00, 0x2A, 0xDE, 0xAD}); err != nil {
		t.Fatalf("write tail: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// First recovery keeps k1 and accepts a new write.
	m2, cancel2, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	s2 := OpenStore(m2)
	if _, ok := s2.Get("k1"); !ok {
		t.Fatalf("k1 lost in recovery")
	}
	if err := s2.Set("k2", []byte("v2")); err != nil {
		t.Fatalf("set k2: %v", err)
	}
	cancel2()
	waitForFileSize(t, path, firstLen+encodedLen(len("k2"), len("v2")))

	// The write accepted after recovery must still be there on the next
	// load, not stranded behind the garbage the first recovery skipped.
	m3, _, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	s3 := OpenStore(m3)
	for key, want := range map[string]string{"k1": "v1", "k2": "v2"} {
		got, ok := s3.Get(key)
		if !ok || !bytes.Equal(got, []byte(want)) {
			t.Fatalf("after second recovery %s: got %q (ok=%v) want %q", key, got, ok, want)
		}
	}
}

func TestOpenStoreReplaysJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	m1, cancel1, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	s1 := OpenStore(m1)

	if err := s1.Set("name", []byte("John")); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := s1.Set("age", []byte("25")); err != nil {
		t.Fatalf("set age=25: %v", err)
	}
	if err := s1.Set("age", []byte("26")); err != nil {
		t.Fatalf("set age=26: %v", err)
	}
	if _, err := s1.Revert(1); err != nil {
		t.Fatalf("revert: %v", err)
	}
	if err := s1.Delete("name"); err != nil {
		t.Fatalf("delete name: %v", err)
	}

	stateBefore := s1.Scan("", "")
	histBefore := s1.History()
	statsBefore := s1.Stats()

	cancel1()
	wantBytes := encodedLen(len("name"), len("John")) +
		encodedLen(len("age"), len("25")) +
		encodedLen(len("age"), len("26")) +
		encodedLen(0, 0) +
		encodedLen(len("name"), 0)
	waitForFileSize(t, path, wantBytes)

	m2, _, _ := newTestCommitLog(t, CommitLogCfg{Path: path, FlushIntervalInSecond: time.Hour})
	s2 := OpenStore(m2)

	stateAfter := s2.Scan("", "")
	if len(stateAfter) != len(stateBefore) {
		t.Fatalf("replayed key count: got %d want %d", len(stateAfter), len(stateBefore))
	}
	for i := range stateBefore {
		if stateAfter[i].Key != stateBefore[i].Key || !bytes.Equal(stateAfter[i].Value, stateBefore[i].Value) {
			t.Fatalf("replayed state[%d]: got %s=%q want %s=%q",
				i, stateAfter[i].Key, stateAfter[i].Value, stateBefore[i].Key, stateBefore[i].Value)
		}
	}

	histAfter := s2.History()
	if len(histAfter) != len(histBefore) {
		t.Fatalf("replayed history length: got %d want %d", len(histAfter), len(histBefore))
	}
	for i := range histBefore {
		b, a := histBefore[i], histAfter[i]
		if a.ID != b.ID || a.Sequence != b.Sequence || a.Op != b.Op || a.Key != b.Key ||
			a.OldExisted != b.OldExisted || !bytes.Equal(a.OldValue, b.OldValue) ||
			!bytes.Equal(a.NewValue, b.NewValue) || !a.Timestamp.Equal(b.Timestamp) {
			t.Fatalf("replayed history[%d]: got %+v want %+v", i, a, b)
		}
	}

	if statsAfter := s2.Stats(); statsAfter != statsBefore {
		t.Fatalf("replayed stats: got %+v want %+v", statsAfter, statsBefore)
	}

	// Revert keeps working across a restart: undo the delete of "name".
	if _, err := s2.Revert(1); err != nil {
		t.Fatalf("revert after replay: %v", err)
	}
	got, ok := s2.Get("name")
	if !ok || !bytes.Equal(got, []byte("John")) {
		t.Fatalf("expected name=John restored after replayed revert, got %q (ok=%v)", got, ok)
	}
}
