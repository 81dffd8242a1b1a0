package root

// Handle identifies a root stack entry for the lifetime of its stack.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for root stack notifications.
type EventType uint8

const (
	EventPushed EventType = iota
	EventPopped
)

func (t EventType) String() string {
	switch t {
	case EventPushed:
		return "pushed"
	case EventPopped:
		return "popped"
	default:
		return "unknown"
	}
}

// Event represents a root stack lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Depth  int
	Type   EventType
}

// Observer receives notifications about root stack events.
type Observer interface {
	OnRootEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnRootEvent calls f(e).
func (f ObserverFunc) OnRootEvent(e Event) {
	f(e)
}

// Dropper is optionally implemented by rooted values that release
// engine state once their entry is popped.
type Dropper interface {
	Drop()
}
