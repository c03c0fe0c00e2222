package net

import "github.com/peterkuimelis/decksim/internal/game"

// Message types for the JSON protocol shared by the WebSocket, MCP and
// terminal hosts.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "state", "gesture" or "error"

	// For "state"
	Applied bool        `json:"applied"`
	State   *StateView  `json:"state,omitempty"`
	Events  []EventView `json:"events,omitempty"`

	// For "gesture": the router state after a pointer message that did not drop
	Gesture string `json:"gesture,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a practice event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView is one physical card.
type CardView struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Supertype string   `json:"supertype"`
	Subtypes  []string `json:"subtypes,omitempty"`
}

// StackView is a battlefield or bench stack, bottom card first.
type StackView struct {
	Cards       []CardView `json:"cards"`
	Top         string     `json:"top"`
	EnergyCount int        `json:"energyCount"`
	ToolCount   int        `json:"toolCount"`
	Damage      int        `json:"damage"`
}

// SeatView shows one player's zones. Library and prizes are face down and
// only counted.
type SeatView struct {
	Seat          int                         `json:"seat"`
	Hand          []CardView                  `json:"hand"`
	LibraryCount  int                         `json:"libraryCount"`
	PrizeCount    int                         `json:"prizeCount"`
	Trash         []CardView                  `json:"trash"`
	Battlefield   *StackView                  `json:"battlefield,omitempty"`
	Bench         [game.BenchSlots]*StackView `json:"bench"`
	BenchCount    int                         `json:"benchCount"`
	BenchCapacity int                         `json:"benchCapacity"`
	HoldsStadium  bool                        `json:"holdsStadium"`
	Total         int                         `json:"total"`
}

// StateView is the whole table.
type StateView struct {
	Seats   []SeatView `json:"seats"`
	Stadium *CardView  `json:"stadium,omitempty"`
}

// --- Client → Server messages ---

// Client message types.
const (
	MsgMove          = "move"
	MsgDraw          = "draw"
	MsgShuffle       = "shuffle"
	MsgMulligan      = "mulligan"
	MsgEffect        = "effect"
	MsgSupporter     = "supporter"
	MsgDamage        = "damage"
	MsgBenchCapacity = "bench_capacity"
	MsgTakePrize     = "take_prize"
	MsgTrashStadium  = "trash_stadium"
	MsgReset         = "reset"
	MsgState         = "state"
	MsgPointer       = "pointer"
	MsgDropZones     = "drop_zones"
)

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`
	Seat int    `json:"seat"` // 0 self, 1 opponent

	// For "move"
	Command *game.Command `json:"command,omitempty"`

	// For "draw" (defaults to 1)
	N int `json:"n,omitempty"`

	// For "effect"
	Effect string `json:"effect,omitempty"`

	// For "damage": Zone is Battlefield or Bench; Delta 0 clears the counter
	Zone  string `json:"zone,omitempty"`
	Slot  int    `json:"slot,omitempty"`
	Delta int    `json:"delta,omitempty"`

	// For "supporter" (hand index) and "take_prize" (prize index)
	Index int `json:"index,omitempty"`

	// For "pointer" and "drop_zones"
	Pointer   *PointerInput   `json:"pointer,omitempty"`
	DropZones []DropZoneInput `json:"dropZones,omitempty"`
}

// Pointer phases.
const (
	PointerDown   = "down"
	PointerMove   = "move"
	PointerUp     = "up"
	PointerCancel = "cancel"
)

// PointerInput is one raw pointer event from the board. Kind, Source and
// Index are read on "down" only.
type PointerInput struct {
	Phase  string  `json:"phase"`
	Kind   string  `json:"kind,omitempty"` // "mouse" (default) or "touch"
	Source string  `json:"source,omitempty"`
	Index  int     `json:"index,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// DropZoneInput is where the board draws a zone, in the same coordinates as
// PointerInput. Later entries are drawn on top.
type DropZoneInput struct {
	Zone string  `json:"zone"`
	Slot int     `json:"slot,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}
