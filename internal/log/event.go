package log

// EventType enumerates all observable practice events.
type EventType int

const (
	EventSessionStart EventType = iota
	EventDraw
	EventShuffle
	EventMulligan
	EventPlayBattlefield
	EventReplaceBattlefield
	EventAttach
	EventEvolve
	EventPlayBench
	EventRetreat
	EventPromote
	EventBenchSwap
	EventSendToTrash
	EventTakePrize
	EventStadium
	EventStadiumTrashed
	EventEffect
	EventSupporter
	EventDamage
	EventBenchCapacity
	EventSearch
	EventRecover
	EventIgnored // a move whose precondition failed; the board is unchanged
)

func (e EventType) String() string {
	switch e {
	case EventSessionStart:
		return "SessionStart"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventMulligan:
		return "Mulligan"
	case EventPlayBattlefield:
		return "PlayBattlefield"
	case EventReplaceBattlefield:
		return "ReplaceBattlefield"
	case EventAttach:
		return "Attach"
	case EventEvolve:
		return "Evolve"
	case EventPlayBench:
		return "PlayBench"
	case EventRetreat:
		return "Retreat"
	case EventPromote:
		return "Promote"
	case EventBenchSwap:
		return "BenchSwap"
	case EventSendToTrash:
		return "SendToTrash"
	case EventTakePrize:
		return "TakePrize"
	case EventStadium:
		return "Stadium"
	case EventStadiumTrashed:
		return "StadiumTrashed"
	case EventEffect:
		return "Effect"
	case EventSupporter:
		return "Supporter"
	case EventDamage:
		return "Damage"
	case EventBenchCapacity:
		return "BenchCapacity"
	case EventSearch:
		return "Search"
	case EventRecover:
		return "Recover"
	case EventIgnored:
		return "Ignored"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a practice session.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Player  int       // acting seat (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
