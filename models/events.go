package models

import "fmt"

// RowEventKind is the kind of change a row event reports.
type RowEventKind int

const (
	RowInserted RowEventKind = iota + 1
	RowUpdated
	RowDeleted
)

func (k RowEventKind) String() string {
	switch k {
	case RowInserted:
		return "insert"
	case RowUpdated:
		return "update"
	case RowDeleted:
		return "delete"
	default:
		return fmt.Sprintf("RowEventKind(%d)", int(k))
	}
}

func (k RowEventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *RowEventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "insert":
		*k = RowInserted
	case "update":
		*k = RowUpdated
	case "delete":
		*k = RowDeleted
	default:
		return fmt.Errorf("unknown row event kind %q", b)
	}
	return nil
}

// RowEvent is a committed change of one world-object row as observed through
// the remote subscription. Row is set for inserts and updates.
type RowEvent struct {
	Seq  uint64       `json:"seq"`
	Kind RowEventKind `json:"kind"`
	ID   string       `json:"id"`
	Row  *WorldObject `json:"row,omitempty"`
}

// RemoteMessageKind discriminates the items of a remote subscription stream.
type RemoteMessageKind int

const (
	// MessageInitialRows carries the full row set once the subscription has
	// been applied, both on first connect and after every reconnect.
	MessageInitialRows RemoteMessageKind = iota + 1
	// MessageRowEvent carries a single committed row change.
	MessageRowEvent
	// MessageDisconnected reports that the stream was lost.
	MessageDisconnected
)

// RemoteMessage is one item delivered by a remote subscription.
type RemoteMessage struct {
	Kind  RemoteMessageKind
	Rows  []WorldObject
	Event RowEvent
	Err   error
}

// MirrorChangeKind tells renderers whether to create/refresh or remove the
// renderable of an id.
type MirrorChangeKind int

const (
	MirrorUpsert MirrorChangeKind = iota + 1
	MirrorRemove
	// MirrorReset means the whole mirror was replaced; renderers should
	// rebuild from the mirror view.
	MirrorReset
)

// MirrorChange describes one confirmed change of the mirrored set.
type MirrorChange struct {
	Kind   MirrorChangeKind
	ID     string
	Object *WorldObject
}
