package game

import "sync"

// StadiumObserver is called after the shared stadium changes hands.
type StadiumObserver func(prev, next *CardInstance)

type stadiumSub struct {
	id int
	fn StadiumObserver
}

// StadiumSlot is the single stadium shared by both seats of a table. Sessions
// never talk to each other about it: each one subscribes and reacts when the
// card it put into play is replaced or cleared.
type StadiumSlot struct {
	mu     sync.Mutex
	card   *CardInstance
	subs   []stadiumSub
	nextID int
}

func NewStadiumSlot() *StadiumSlot {
	return &StadiumSlot{}
}

// Current returns the stadium in play, or nil.
func (s *StadiumSlot) Current() *CardInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.card
}

// Set puts card into play and returns the card it replaced.
func (s *StadiumSlot) Set(card *CardInstance) *CardInstance {
	return s.replace(card)
}

// Clear removes the stadium in play and returns it.
func (s *StadiumSlot) Clear() *CardInstance {
	return s.replace(nil)
}

func (s *StadiumSlot) replace(next *CardInstance) *CardInstance {
	s.mu.Lock()
	prev := s.card
	s.card = next
	subs := make([]stadiumSub, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if prev == next {
		return prev
	}
	// Observers run outside the lock so they may read the slot.
	for _, sub := range subs {
		sub.fn(prev, next)
	}
	return prev
}

// Subscribe registers fn for every change and returns a func that removes it.
func (s *StadiumSlot) Subscribe(fn StadiumObserver) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, stadiumSub{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
