package engine

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"trackedkv/internal/metrics"
	"trackedkv/internal/model"
	"trackedkv/internal/storage"
)

type CommitLogFlusher struct {
	active_segment *os.File
	buffer         bytes.Buffer
	maxBufferBytes int
}

type CommitLogChanelMsg struct {
	data                []byte
	data_bufferred_done chan error
}

type CommitLogCfg struct {
	Path                   string
	EnqueueTimeoutInSecond time.Duration
	FlushIntervalInSecond  time.Duration
	MaxEnqueuingMutation   int
	BufferBytes            int
	Logger                 *slog.Logger
}

/*
Channel-backed append flow keeps a single writer goroutine in charge of the journal:
- Ordering: channel preserves request order; single goroutine owns the file handle.
- Simplicity: avoids mutexes; only the writer goroutine touches the buffer/file.
- Backpressure: bounded channel + timeout lets callers fail fast instead of unbounded queueing.
- Durability handshake: per-request done channel lets callers wait until the record is buffered.
- Shutdown: select on context to flush outstanding data before exit without racing writers.

Sequence numbers are assigned by the Store before Append; the journal
persists records exactly as given so replay reproduces the original
ordering, timestamps, and record IDs.
*/
type CommitLogManager struct {
	flusher                   CommitLogFlusher
	commitlog_writter_channel chan CommitLogChanelMsg
	cfg                       CommitLogCfg
	flushT                    *time.Ticker
	logger                    *slog.Logger
}

const (
	payloadLenBytes                = 4
	checksumBytes                  = 4
	seqNumBytes                    = 8
	opTypeBytes                    = 1
	timestampBytes                 = 8
	recordIDBytes                  = 16
	stepsBytes                     = 4
	lenFieldSize                   = 4
	defaultCommitLogBufferBytes    = 4 * 1024 * 1024
	minimalCommitLogBufferBytes    = 128
	defaultMaxEnqueuingMutationVal = 1024
	defaultFlushInterval           = 500 * time.Millisecond
	defaultEnqueueTimeout          = 2 * time.Second
)

func NewCommitLogManager(ctx context.Context, cfg CommitLogCfg) (*CommitLogManager, context.CancelFunc, error) {
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	bufferBytes := cfg.BufferBytes
	if bufferBytes <= 0 {
		bufferBytes = defaultCommitLogBufferBytes
	}
	if bufferBytes < minimalCommitLogBufferBytes {
		bufferBytes = minimalCommitLogBufferBytes
	}

	maxQueue := cfg.MaxEnqueuingMutation
	if maxQueue <= 0 {
		maxQueue = defaultMaxEnqueuingMutationVal
	}

	if cfg.FlushIntervalInSecond <= 0 {
		cfg.FlushIntervalInSecond = defaultFlushInterval
	}
	if cfg.EnqueueTimeoutInSecond <= 0 {
		cfg.EnqueueTimeoutInSecond = defaultEnqueueTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &CommitLogManager{
		cfg:                       cfg,
		commitlog_writter_channel: make(chan CommitLogChanelMsg, maxQueue),
		flushT:                    time.NewTicker(cfg.FlushIntervalInSecond),
		logger:                    logger.With(slog.String("component", "commitlog")),
		flusher: CommitLogFlusher{
			active_segment: f,
			buffer:         bytes.Buffer{},
			maxBufferBytes: bufferBytes,
		},
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.run(runCtx)
		m.flushT.Stop()
		if err := m.flusher.flush(); err != nil {
			m.logger.Error("final flush failed", slog.String("error", err.Error()))
		}
		_ = m.flusher.active_segment.Close()
	}()

	// The stop function blocks until the final flush has hit disk.
	stop := func() {
		cancel()
		<-done
	}
	return m, stop, nil
}

// Append hands one mutation record to the writer goroutine and waits
// until it has been buffered (not necessarily synced).
func (cm *CommitLogManager) Append(mut model.Mutation) error {
	encoded := cm.encodeMutation(mut)
	channelMsg := CommitLogChanelMsg{data: encoded, data_bufferred_done: make(chan error, 1)}
	select {
	case cm.commitlog_writter_channel <- channelMsg:
		return <-channelMsg.data_bufferred_done

	case <-time.After(cm.cfg.EnqueueTimeoutInSecond):
		return errors.New("timeout waiting for mutation to be added to commit log")
	}
}

// Load reads the whole commit log file and rebuilds the mutation list.
// Stops at the first corrupted or truncated record (crash-safe boundary)
// and cuts the file back to the validated prefix, so records appended
// after recovery follow the last good record instead of the garbage.
func (cm *CommitLogManager) Load() []model.Mutation {
	mutations := make([]model.Mutation, 0)

	// Reopen file for reading (current handle is write-only)
	readFile, err := os.Open(cm.cfg.Path)
	if err != nil {
		cm.logger.Warn("failed to open commit log for reading", slog.String("error", err.Error()))
		return mutations
	}
	defer readFile.Close()

	fileInfo, err := readFile.Stat()
	if err != nil {
		cm.logger.Warn("failed to stat commit log", slog.String("error", err.Error()))
		return mutations
	}
	fileSize := fileInfo.Size()

	if fileSize == 0 {
		return mutations
	}

	var offset int64 = 0
	var valid int64 = 0
	recordNum := 0

	for offset < fileSize {
		// Step 1: payload length (4 bytes)
		if offset+payloadLenBytes > fileSize {
			cm.logger.Warn("truncated record: incomplete payload length",
				slog.Int("record", recordNum), slog.Int64("offset", offset))
			break
		}

		lenBytes, err := storage.Read(readFile, offset, payloadLenBytes)
		if err != nil || len(lenBytes) < payloadLenBytes {
			cm.logger.Warn("short read for payload length", slog.Int64("offset", offset))
			break
		}
		payloadLen := binary.BigEndian.Uint32(lenBytes)
		offset += payloadLenBytes

		// Step 2: CRC32C checksum (4 bytes)
		if offset+checksumBytes > fileSize {
			cm.logger.Warn("truncated record: incomplete checksum",
				slog.Int("record", recordNum), slog.Int64("offset", offset))
			break
		}

		crcBytes, err := storage.Read(readFile, offset, checksumBytes)
		if err != nil || len(crcBytes) < checksumBytes {
			cm.logger.Warn("short read for checksum", slog.Int64("offset", offset))
			break
		}
		expectedChecksum := binary.BigEndian.Uint32(crcBytes)
		offset += checksumBytes

		// Step 3: payload (sequence through value)
		if offset+int64(payloadLen) > fileSize {
			cm.logger.Warn("truncated record: incomplete payload",
				slog.Int("record", recordNum), slog.Int64("offset", offset),
				slog.Int("expected_bytes", int(payloadLen)))
			break
		}

		payload, err := storage.Read(readFile, offset, int(payloadLen))
		if err != nil || len(payload) < int(payloadLen) {
			cm.logger.Warn("short read for payload", slog.Int64("offset", offset))
			break
		}
		offset += int64(payloadLen)

		// Step 4: validate checksum
		actualChecksum := crc32.Checksum(payload, crc32.MakeTable(crc32.Castagnoli))
		if actualChecksum != expectedChecksum {
			cm.logger.Warn("CRC mismatch, stopping at corruption boundary",
				slog.Int("record", recordNum),
				slog.String("expected", fmt.Sprintf("%x", expectedChecksum)),
				slog.String("actual", fmt.Sprintf("%x", actualChecksum)))
			break
		}

		// Step 5: decode payload fields
		mut, err := decodePayload(payload)
		if err != nil {
			cm.logger.Warn("failed to decode record, stopping",
				slog.Int("record", recordNum), slog.String("error", err.Error()))
			break
		}

		mutations = append(mutations, mut)
		recordNum++
		valid = offset
	}

	// Drop the torn tail. Leaving it in place would strand every record
	// appended from here on behind bytes the next Load refuses to cross.
	if valid < fileSize {
		cm.logger.Warn("dropping torn commit log tail",
			slog.Int64("valid_bytes", valid), slog.Int64("file_bytes", fileSize))
		if err := storage.Truncate(cm.flusher.active_segment, valid); err != nil {
			cm.logger.Error("failed to drop torn tail", slog.String("error", err.Error()))
		}
	}

	cm.logger.Info("commit log loaded",
		slog.Int("records", len(mutations)), slog.Int64("file_bytes", fileSize))
	return mutations
}

func (cm *CommitLogManager) run(ctx context.Context) {
	for {
		select {
		case channelMsg := <-cm.commitlog_writter_channel:
			err := cm.flusher.write(channelMsg.data)
			channelMsg.data_bufferred_done <- err
		case <-cm.flushT.C:
			if err := cm.flusher.flush(); err != nil {
				cm.logger.Error("periodic flush failed", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			cm.logger.Info("commit log shutting down, flushing active segment")
			if err := cm.flusher.flush(); err != nil {
				cm.logger.Error("shutdown flush failed", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (flusher *CommitLogFlusher) write(data []byte) error {
	if flusher.active_segment == nil {
		return errors.New("no active segment")
	}

	if len(data) > flusher.maxBufferBytes {
		return fmt.Errorf("commit log entry (%d bytes) exceeds buffer size (%d bytes)", len(data), flusher.maxBufferBytes)
	}

	if flusher.buffer.Len()+len(data) > flusher.maxBufferBytes {
		if err := flusher.flush(); err != nil {
			return err
		}
	}

	_, err := flusher.buffer.Write(data)
	return err
}

func (flusher *CommitLogFlusher) flush() error {
	if flusher.active_segment == nil {
		return errors.New("no active segment")
	}
	if flusher.buffer.Len() == 0 {
		return nil
	}

	if err := storage.Write(flusher.active_segment, flusher.buffer.Bytes()); err != nil {
		return err
	}
	err := flusher.active_segment.Sync()
	if err == nil {
		flusher.buffer.Reset()
		metrics.JournalFlushesTotal.Inc()
	}
	return err
}

/*
Return encoded mutation record for the commit log. The following table
describes the structure of an encoded record:

| PayloadLength | CRC32C  | Sequence | OpType | Timestamp | RecordID | Steps   | KeyLen  | Key     | ValueLen | Value   |
|---------------|---------|----------|--------|-----------|----------|---------|---------|---------|----------|---------|
| 4 bytes       | 4 bytes | 8 bytes  | 1 byte | 8 bytes   | 16 bytes | 4 bytes | 4 bytes | K bytes | 4 bytes  | V bytes |

Timestamp is UnixNano. Steps is meaningful only for REVERT records;
Key/Value only for SET (DELETE carries the key with an empty value).

The encoding process:
 1. Build payload which is []byte from "Sequence" to "Value"
 2. Compute CRC32C over payload.
 3. Write payload's length + CRC + payload in one buffered write.
 4. fsync per durability policy.
*/
func (cm *CommitLogManager) encodeMutation(mut model.Mutation) []byte {
	payload := make([]byte, 0, seqNumBytes+opTypeBytes+timestampBytes+recordIDBytes+stepsBytes+lenFieldSize+len(mut.Key)+lenFieldSize+len(mut.Value))
	payload = append(payload, u64ToBytes(mut.Sequence)...)
	payload = append(payload, byte(mut.Op))
	payload = append(payload, u64ToBytes(uint64(mut.Timestamp.UnixNano()))...)
	payload = append(payload, mut.ID[:]...)
	payload = append(payload, u32ToBytes(uint32(mut.Steps))...)
	payload = append(payload, u32ToBytes(uint32(len(mut.Key)))...)
	payload = append(payload, mut.Key...)
	payload = append(payload, u32ToBytes(uint32(len(mut.Value)))...)
	payload = append(payload, mut.Value...)

	payloadLenValue := u32ToBytes(uint32(len(payload)))
	checksum := u32ToBytes(crc32.Checksum(payload, crc32.MakeTable(crc32.Castagnoli)))

	record := make([]byte, 0, payloadLenBytes+checksumBytes+len(payload))
	record = append(record, payloadLenValue...)
	record = append(record, checksum...)
	record = append(record, payload...)
	return record
}

// decodePayload extracts a Mutation from the payload portion of a
// journal record. Sequence, timestamp, and record ID are preserved
// exactly so replayed history matches the pre-crash history.
func decodePayload(payload []byte) (model.Mutation, error) {
	minSize := seqNumBytes + opTypeBytes + timestampBytes + recordIDBytes + stepsBytes + lenFieldSize + lenFieldSize
	if len(payload) < minSize {
		return model.Mutation{}, fmt.Errorf("payload too short: %d bytes (minimum %d)", len(payload), minSize)
	}

	pos := 0

	seqNum := binary.BigEndian.Uint64(payload[pos : pos+seqNumBytes])
	pos += seqNumBytes

	opType := model.OpsType(payload[pos])
	if opType != model.SET && opType != model.DELETE && opType != model.REVERT {
		return model.Mutation{}, fmt.Errorf("invalid operation type: %d", opType)
	}
	pos += opTypeBytes

	ts := time.Unix(0, int64(binary.BigEndian.Uint64(payload[pos:pos+timestampBytes]))).UTC()
	pos += timestampBytes

	var id uuid.UUID
	copy(id[:], payload[pos:pos+recordIDBytes])
	pos += recordIDBytes

	steps := int(binary.BigEndian.Uint32(payload[pos : pos+stepsBytes]))
	pos += stepsBytes

	keyLen := binary.BigEndian.Uint32(payload[pos : pos+lenFieldSize])
	pos += lenFieldSize

	if pos+int(keyLen) > len(payload) {
		return model.Mutation{}, fmt.Errorf("key length (%d) exceeds payload bounds", keyLen)
	}
	key := string(payload[pos : pos+int(keyLen)])
	pos += int(keyLen)

	if pos+lenFieldSize > len(payload) {
		return model.Mutation{}, fmt.Errorf("value length field exceeds payload bounds")
	}
	valueLen := binary.BigEndian.Uint32(payload[pos : pos+lenFieldSize])
	pos += lenFieldSize

	if pos+int(valueLen) > len(payload) {
		return model.Mutation{}, fmt.Errorf("value length (%d) exceeds payload bounds", valueLen)
	}

	var value []byte
	if valueLen > 0 {
		value = make([]byte, valueLen)
		copy(value, payload[pos:pos+int(valueLen)])
	}

	return model.Mutation{
		Op:        opType,
		Key:       key,
		Value:     value,
		Steps:     steps,
		Sequence:  seqNum,
		ID:        id,
		Timestamp: ts,
	}, nil
}

func u64ToBytes(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[:]
}

func u32ToBytes(v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return buf[:]
}
