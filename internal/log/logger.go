package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging practice events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	// Limit bounds memory: once twice this many events pile up, only the
	// newest Limit are kept. Seq numbers keep counting. 0 keeps everything.
	Limit int

	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
	if l.Limit > 0 && len(l.events) >= 2*l.Limit {
		l.events = append([]GameEvent(nil), l.events[len(l.events)-l.Limit:]...)
	}
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Since returns the events numbered after seq, oldest first.
func Since(events []GameEvent, seq int) []GameEvent {
	i := len(events)
	for i > 0 && events[i-1].Seq > seq {
		i--
	}
	return events[i:]
}

// LastSeq is the sequence number of the newest event, or 0.
func LastSeq(events []GameEvent) int {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].Seq
}

// Drain returns the events logged since the previous Drain.
func (l *MemoryLogger) Drain() []GameEvent {
	events := l.events
	l.events = nil
	return events
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	for len(kind) < 18 {
		kind += " "
	}
	return fmt.Sprintf("#%-3d %s| %s", e.Seq, kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewSessionStartEvent(player, deckSize, prizes, hand int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventSessionStart,
		Details: fmt.Sprintf("%s sets up: %d cards, %d prizes, %d in hand", playerName(player), deckSize, prizes, hand),
	}
}

func NewDrawEvent(player int, count int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventDraw,
		Details: fmt.Sprintf("%s draws %d card(s)", playerName(player), count),
	}
}

func NewShuffleEvent(player int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffled their library", playerName(player)),
	}
}

func NewMulliganEvent(player int, handSize int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventMulligan,
		Details: fmt.Sprintf("%s mulligans and redraws %d", playerName(player), handSize),
	}
}

func NewPlayBattlefieldEvent(player int, cardName string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventPlayBattlefield,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s to the battlefield", playerName(player), cardName),
	}
}

func NewReplaceBattlefieldEvent(player int, cardName, replaced string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventReplaceBattlefield,
		Card:    cardName,
		Details: fmt.Sprintf("%s replaces %s with %s", playerName(player), replaced, cardName),
	}
}

func NewAttachEvent(player int, cardName, target string, below bool) GameEvent {
	where := "onto"
	if below {
		where = "under"
	}
	return GameEvent{
		Player:  player,
		Type:    EventAttach,
		Card:    cardName,
		Details: fmt.Sprintf("%s attaches %s %s %s", playerName(player), cardName, where, target),
	}
}

func NewEvolveEvent(player int, cardName, from string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventEvolve,
		Card:    cardName,
		Details: fmt.Sprintf("%s evolves %s into %s", playerName(player), from, cardName),
	}
}

func NewPlayBenchEvent(player int, cardName string, slot int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventPlayBench,
		Card:    cardName,
		Details: fmt.Sprintf("%s benches %s in slot %d", playerName(player), cardName, slot+1),
	}
}

func NewRetreatEvent(player int, cardName string, slot int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventRetreat,
		Card:    cardName,
		Details: fmt.Sprintf("%s retreats %s to bench slot %d", playerName(player), cardName, slot+1),
	}
}

func NewPromoteEvent(player int, cardName string, slot int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventPromote,
		Card:    cardName,
		Details: fmt.Sprintf("%s promotes %s from bench slot %d", playerName(player), cardName, slot+1),
	}
}

func NewBenchSwapEvent(player int, a, b int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventBenchSwap,
		Details: fmt.Sprintf("%s swaps bench slots %d and %d", playerName(player), a+1, b+1),
	}
}

func NewSendToTrashEvent(player int, cardName string, from string, count int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventSendToTrash,
		Card:    cardName,
		Details: fmt.Sprintf("%s trashes %s from %s (%d card(s))", playerName(player), cardName, from, count),
	}
}

func NewTakePrizeEvent(player int, remaining int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventTakePrize,
		Details: fmt.Sprintf("%s takes a prize card (%d left)", playerName(player), remaining),
	}
}

func NewStadiumEvent(player int, cardName string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventStadium,
		Card:    cardName,
		Details: fmt.Sprintf("%s puts %s into play as the stadium", playerName(player), cardName),
	}
}

func NewStadiumTrashedEvent(player int, cardName string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventStadiumTrashed,
		Card:    cardName,
		Details: fmt.Sprintf("Stadium %s goes to %s's trash", cardName, playerName(player)),
	}
}

func NewEffectEvent(player int, effect string, drawn int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventEffect,
		Details: fmt.Sprintf("%s resolves %s: hand shuffled in, drew %d", playerName(player), effect, drawn),
	}
}

func NewSupporterEvent(player int, cardName string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventSupporter,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays supporter %s", playerName(player), cardName),
	}
}

func NewDamageEvent(player int, cardName string, oldDamage, newDamage int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventDamage,
		Card:    cardName,
		Details: fmt.Sprintf("%s damage: %d → %d", cardName, oldDamage, newDamage),
	}
}

func NewBenchCapacityEvent(player int, capacity int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventBenchCapacity,
		Details: fmt.Sprintf("%s bench capacity is now %d", playerName(player), capacity),
	}
}

func NewSearchEvent(player int, cardName string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventSearch,
		Card:    cardName,
		Details: fmt.Sprintf("%s searches their library for %s", playerName(player), cardName),
	}
}

func NewRecoverEvent(player int, cardName string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventRecover,
		Card:    cardName,
		Details: fmt.Sprintf("%s returns %s from the trash to hand", playerName(player), cardName),
	}
}

func NewIgnoredEvent(player int, move string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventIgnored,
		Details: fmt.Sprintf("%s: %s not allowed, ignored", playerName(player), move),
	}
}
