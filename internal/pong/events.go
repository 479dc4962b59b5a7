package pong

// EventKind classifies a collision event.
type EventKind int

const (
	EventPaddleBounce EventKind = iota + 1
	EventWallBounce
	EventGoal
)

// String returns a human-readable kind name.
func (k EventKind) String() string {
	switch k {
	case EventPaddleBounce:
		return "paddle-bounce"
	case EventWallBounce:
		return "wall-bounce"
	case EventGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Event is produced once per resolved contact or goal and lives for one tick.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Side  Side    // Paddle that was hit, or the scoring side for goals
	Speed float64 // Ball speed after the contact
}

// ScoreEvent is emitted once per goal.
type ScoreEvent struct {
	Tick   uint64
	Scorer Side
	Board  Scoreboard // Board after the point was awarded
	Rally  Rally      // The rally the goal ended
}

// EventQueue buffers the events of one tick until they are drained.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of buffered events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns the buffered events and empties the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
