package tripletriad

// EventKind tags the input that drives a turn transition.
type EventKind int

const (
	EventMove EventKind = iota + 1
	EventTimeout
	EventForfeit
	EventTerminate
)

func (that EventKind) String() string {
	switch that {
	case EventMove:
		return "move"
	case EventTimeout:
		return "timeout"
	case EventForfeit:
		return "forfeit"
	case EventTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Event is the single input of advanceTurn.
type Event struct {
	Kind   EventKind
	Player string
	Slot   int
	Cell   int
	Turn   int
	Reason string
}

// Move - places the card in 1-based slot onto cell index.
func Move(player string, slot, cell int) Event {
	return Event{Kind: EventMove, Player: player, Slot: slot, Cell: cell}
}

// Timeout - the turn timer armed for turn expired.
func Timeout(turn int) Event {
	return Event{Kind: EventTimeout, Turn: turn}
}

func Forfeit(player string) Event {
	return Event{Kind: EventForfeit, Player: player}
}

// Terminate - ends the match from outside, e.g. a participant disconnected.
func Terminate(reason string) Event {
	return Event{Kind: EventTerminate, Reason: reason}
}
