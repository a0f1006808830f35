package model

import (
	"time"

	"github.com/google/uuid"
)

type OpsType byte

const (
	SET OpsType = iota
	DELETE
	REVERT
)

// String returns the wire spelling of the operation.
func (op OpsType) String() string {
	switch op {
	case SET:
		return "set"
	case DELETE:
		return "delete"
	case REVERT:
		return "revert"
	default:
		return "unknown"
	}
}

// Mutation is one journaled operation. SET and DELETE carry Key (and
// Value for SET); REVERT carries Steps, the number of history records
// that were undone. Sequence is assigned by the store and stays monotonic
// across the life of the journal; reverted sequences are never reused.
type Mutation struct {
	Op        OpsType
	Key       string
	Value     []byte
	Steps     int
	Sequence  uint64
	ID        uuid.UUID
	Timestamp time.Time
}

// ChangeRecord is one entry of the store's history: a mutation together
// with the state it replaced, enough to undo it exactly.
type ChangeRecord struct {
	ID       uuid.UUID
	Sequence uint64
	Op       OpsType // SET or DELETE
	Key      string

	// OldValue is the value the key held before the mutation.
	// OldExisted distinguishes "key was absent" from "key held an empty
	// value"; when it is false, undoing the record removes the key.
	OldValue   []byte
	OldExisted bool

	NewValue  []byte
	Timestamp time.Time
}
