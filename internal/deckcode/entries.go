package deckcode

import (
	"strconv"
	"strings"
)

// entry is one id_quantity_position triple from a category field.
type entry struct {
	id       string
	quantity int
	position int
}

// parseEntries splits a dash-separated field payload. Malformed triples and
// quantities below one are dropped.
func parseEntries(payload string) []entry {
	var out []entry
	for _, raw := range strings.Split(payload, "-") {
		parts := strings.Split(strings.TrimSpace(raw), "_")
		if len(parts) != 3 || parts[0] == "" {
			continue
		}
		if _, err := strconv.ParseUint(parts[0], 10, 64); err != nil {
			continue
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil || qty < 1 {
			continue
		}
		pos, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		out = append(out, entry{id: parts[0], quantity: qty, position: pos})
	}
	return out
}
