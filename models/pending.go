package models

import (
	"fmt"
	"time"
)

// OpKind is the kind of local mutation a pending operation represents.
type OpKind int

const (
	OpInsert OpKind = iota + 1
	OpUpdate
	OpDelete
	OpSetCollision
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpSetCollision:
		return "set_collision"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// OpStatus is the lifecycle state of a pending operation.
type OpStatus int

const (
	OpPending OpStatus = iota + 1
	OpCommitted
	OpTimedOut
	OpSuperseded
)

func (s OpStatus) String() string {
	switch s {
	case OpPending:
		return "pending"
	case OpCommitted:
		return "committed"
	case OpTimedOut:
		return "timed_out"
	case OpSuperseded:
		return "superseded"
	default:
		return fmt.Sprintf("OpStatus(%d)", int(s))
	}
}

func (s OpStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PendingOp is a local mutation intent waiting for its commit to be observed
// on the remote event stream.
type PendingOp struct {
	ID       string `json:"id"`
	Kind     OpKind `json:"kind"`
	TargetID string `json:"target_id"`

	// Expected is the row the remote store should hold after the mutation.
	// It is nil for deletes, whose expected post-state is absence.
	Expected *WorldObject `json:"expected,omitempty"`

	IssuedAt time.Time `json:"issued_at"`
	Status   OpStatus  `json:"status"`

	// BatchID is set for members of a bulk replace.
	BatchID string `json:"batch_id,omitempty"`
}

// Age returns how long op has been waiting at now.
func (op PendingOp) Age(now time.Time) time.Duration {
	return now.Sub(op.IssuedAt)
}
