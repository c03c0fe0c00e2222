package game

import (
	"fmt"
	"sync"

	"github.com/peterkuimelis/decksim/internal/log"
)

const (
	SeatSelf     = 0
	SeatOpponent = 1
)

// TableConfig holds the settings shared by both seats.
type TableConfig struct {
	Seed          uint64 // base RNG seed (0 for random); seat and reset count are mixed in
	NoShuffle     bool
	BenchCapacity int
	Effects       EffectRegistry
	Logger        log.EventLogger
}

// Table composes the self and opponent sessions around one shared stadium.
// The opponent seat is optional. Hosts wrap access in Do.
type Table struct {
	mu      sync.Mutex
	cfg     TableConfig
	decks   [2][]Card
	seats   [2]*Session
	resets  [2]uint64
	stadium *StadiumSlot
	logger  log.EventLogger
}

// NewTable starts a session for each supplied deck. opponent may be nil.
func NewTable(self, opponent []Card, cfg TableConfig) (*Table, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	t := &Table{
		cfg:     cfg,
		decks:   [2][]Card{self, opponent},
		stadium: NewStadiumSlot(),
		logger:  logger,
	}
	for seat := range t.decks {
		if seat == SeatOpponent && opponent == nil {
			continue
		}
		sess, err := t.newSession(seat)
		if err != nil {
			t.closeAll()
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		t.seats[seat] = sess
	}
	return t, nil
}

func (t *Table) newSession(seat int) (*Session, error) {
	seed := t.cfg.Seed
	if seed != 0 {
		seed += uint64(seat)<<32 + t.resets[seat]
	}
	return NewSession(SessionConfig{
		Deck:          t.decks[seat],
		Owner:         seat,
		Seed:          seed,
		NoShuffle:     t.cfg.NoShuffle,
		BenchCapacity: t.cfg.BenchCapacity,
		Stadium:       t.stadium,
		Logger:        t.logger,
		Effects:       t.cfg.Effects,
	})
}

func (t *Table) closeAll() {
	for _, s := range t.seats {
		if s != nil {
			s.Close()
		}
	}
}

// Do runs fn with exclusive access to the table.
func (t *Table) Do(fn func(t *Table)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t)
}

// Seat returns the session at seat, or nil when the seat is empty.
func (t *Table) Seat(seat int) *Session {
	if seat < 0 || seat >= len(t.seats) {
		return nil
	}
	return t.seats[seat]
}

// Stadium returns the shared slot.
func (t *Table) Stadium() *StadiumSlot { return t.stadium }

// Logger returns the event log both seats write to.
func (t *Table) Logger() log.EventLogger { return t.logger }

// ResetSeat discards a seat's session and deals a fresh one from the same deck.
func (t *Table) ResetSeat(seat int) error {
	if t.Seat(seat) == nil {
		return fmt.Errorf("seat %d is empty", seat)
	}
	t.seats[seat].Close()
	t.resets[seat]++
	sess, err := t.newSession(seat)
	if err != nil {
		return err
	}
	t.seats[seat] = sess
	return nil
}

// Close releases both sessions.
func (t *Table) Close() {
	t.closeAll()
}
