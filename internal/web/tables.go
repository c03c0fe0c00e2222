package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/log"
)

type tableEntry struct {
	table *game.Table
	used  time.Time
}

// tableRegistry holds the live practice tables by id.
type tableRegistry struct {
	now       func() time.Time
	eventKeep int

	mu     sync.Mutex
	tables map[string]*tableEntry
}

func newTableRegistry(eventKeep int) *tableRegistry {
	return &tableRegistry{
		now:       time.Now,
		eventKeep: eventKeep,
		tables:    make(map[string]*tableEntry),
	}
}

// create builds a table whose events are mirrored to logger tagged with its id.
func (r *tableRegistry) create(self, opponent []game.Card, cfg game.TableConfig, logger *zap.Logger) (string, *game.Table, error) {
	id := uuid.NewString()
	events := log.NewZapLogger(logger.With(zap.String("table", id)))
	events.Limit = r.eventKeep
	cfg.Logger = events
	tbl, err := game.NewTable(self, opponent, cfg)
	if err != nil {
		return "", nil, err
	}
	r.mu.Lock()
	r.tables[id] = &tableEntry{table: tbl, used: r.now()}
	r.mu.Unlock()
	return id, tbl, nil
}

// get returns the table and marks it as used.
func (r *tableRegistry) get(id string) (*game.Table, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tables[id]
	if !ok {
		return nil, false
	}
	e.used = r.now()
	return e.table, true
}

func (r *tableRegistry) remove(id string) bool {
	r.mu.Lock()
	e, ok := r.tables[id]
	delete(r.tables, id)
	r.mu.Unlock()
	if ok {
		e.table.Do(func(t *game.Table) { t.Close() })
	}
	return ok
}

// expire closes the tables idle for longer than ttl and returns their ids.
func (r *tableRegistry) expire(ttl time.Duration) []string {
	cutoff := r.now().Add(-ttl)
	var idle []*tableEntry
	var ids []string
	r.mu.Lock()
	for id, e := range r.tables {
		if e.used.Before(cutoff) {
			idle = append(idle, e)
			ids = append(ids, id)
			delete(r.tables, id)
		}
	}
	r.mu.Unlock()
	for _, e := range idle {
		e.table.Do(func(t *game.Table) { t.Close() })
	}
	return ids
}

func (r *tableRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.tables {
		e.table.Do(func(t *game.Table) { t.Close() })
		delete(r.tables, id)
	}
}
