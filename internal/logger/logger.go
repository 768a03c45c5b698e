package logger

type EventType byte

const (
	_ EventType = iota
	EventBuild
	EventInsert
	EventDelete
)

func (t EventType) String() string {
	switch t {
	case EventBuild:
		return "build"
	case EventInsert:
		return "insert"
	case EventDelete:
		return "delete"
	}
	return "unknown"
}

// Event is one successful tree mutation. Keys is only set for builds.
type Event struct {
	Sequence uint64    `json:"seq"`
	Type     EventType `json:"type"`
	Key      int       `json:"key"`
	Keys     []int     `json:"keys,omitempty"`
}

// TransactionLogger records tree mutations. It is an audit trail only; events
// are never applied back to a tree.
type TransactionLogger interface {
	WriteBuild(keys []int)
	WriteInsert(key int)
	WriteDelete(key int)
	Err() <-chan error
	Run()
	ReadEvents() (<-chan Event, <-chan error)
	Close() error
}
