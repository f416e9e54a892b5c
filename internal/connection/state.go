package connection

import (
	"fmt"
	"time"
)

// ReadyState is the lifecycle stage of the managed connection. The numeric
// values follow the browser WebSocket readyState, with -1 for a manager that
// has not been opened yet.
type ReadyState int

const (
	Uninstantiated ReadyState = -1
	Connecting     ReadyState = 0
	Open           ReadyState = 1
	Closing        ReadyState = 2
	Closed         ReadyState = 3
)

// AllStates lists every ReadyState in declaration order.
var AllStates = []ReadyState{Uninstantiated, Connecting, Open, Closing, Closed}

// String returns the human-readable label shown in the UI.
func (s ReadyState) String() string {
	switch s {
	case Uninstantiated:
		return "Uninstantiated"
	case Connecting:
		return "Connecting"
	case Open:
		return "Open"
	case Closing:
		return "Closing"
	case Closed:
		return "Closed"
	default:
		return fmt.Sprintf("ReadyState(%d)", int(s))
	}
}

// Message is the most recently received inbound payload.
type Message struct {
	Data       string
	Seq        uint64 // increments once per received message, starting at 1
	ReceivedAt time.Time
}

// Snapshot is a consistent view of the manager at one instant.
type Snapshot struct {
	State       ReadyState
	LastMessage *Message // nil until the first message arrives
}
