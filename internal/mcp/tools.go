package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/decksim/internal/game"
	decknet "github.com/peterkuimelis/decksim/internal/net"
)

// RegisterTools adds all practice tools to the MCP server.
func RegisterTools(s *server.MCPServer, p *Practice) {
	s.AddTool(startPracticeTool(), p.handleStartPractice)
	s.AddTool(moveTool(), p.handleMove)
	s.AddTool(actionTool(), p.handleAction)
	s.AddTool(getStateTool(), p.handleGetState)
	s.AddTool(resetTool(), p.handleReset)
}

// --- Tool definitions ---

func startPracticeTool() mcp.Tool {
	return mcp.NewTool("start_practice",
		mcp.WithDescription("Start a practice table from a deck code, pasted deck page HTML or a saved deck name. "+
			"The opponent seat is optional. Replaces any running table. Returns the opening state and deal events."),
		mcp.WithString("self_deck", mcp.Description("Saved deck name from the config file")),
		mcp.WithString("self_code", mcp.Description("Deck code, e.g. gnnLLQ-dQ3ZFi-LgQ9gn")),
		mcp.WithString("self_html", mcp.Description("Full HTML of the deck confirmation page")),
		mcp.WithString("opponent_deck", mcp.Description("Saved deck name for the opponent seat")),
		mcp.WithString("opponent_code", mcp.Description("Deck code for the opponent seat")),
		mcp.WithString("opponent_html", mcp.Description("Deck page HTML for the opponent seat")),
	)
}

func moveTool() mcp.Tool {
	var zones []string
	for z := game.ZoneLibrary; z <= game.ZoneTrash; z++ {
		zones = append(zones, z.String())
	}
	return mcp.NewTool("move",
		mcp.WithDescription("Move a card or stack between zones. Illegal moves are ignored and come back with applied=false."),
		mcp.WithNumber("seat", mcp.Description("0 = self (default), 1 = opponent")),
		mcp.WithString("source", mcp.Required(), mcp.Enum(zones...), mcp.Description("Zone the card comes from")),
		mcp.WithNumber("source_index", mcp.Description("0-based index in the source zone (hand/trash/prize position or bench slot)")),
		mcp.WithString("target", mcp.Required(), mcp.Enum(zones...), mcp.Description("Zone the card goes to")),
		mcp.WithNumber("target_slot", mcp.Description("0-based bench slot when the target is Bench")),
		mcp.WithBoolean("insert_below", mcp.Description("Attach under the target stack instead of on top")),
	)
}

func actionTool() mcp.Tool {
	return mcp.NewTool("action",
		mcp.WithDescription("Perform a non-move practice action on a seat."),
		mcp.WithString("type", mcp.Required(),
			mcp.Enum(decknet.MsgDraw, decknet.MsgShuffle, decknet.MsgMulligan, decknet.MsgEffect,
				decknet.MsgSupporter, decknet.MsgDamage, decknet.MsgBenchCapacity, decknet.MsgTakePrize,
				decknet.MsgTrashStadium),
			mcp.Description("Action to perform")),
		mcp.WithNumber("seat", mcp.Description("0 = self (default), 1 = opponent")),
		mcp.WithNumber("n", mcp.Description("Cards to draw (draw, default 1)")),
		mcp.WithString("effect", mcp.Enum(string(game.EffectReshuffleDrawToPrizeCount), string(game.EffectReshuffleDrawFour)),
			mcp.Description("Effect to resolve (effect)")),
		mcp.WithString("zone", mcp.Enum(game.ZoneBattlefield.String(), game.ZoneBench.String()), mcp.Description("Stack to damage (damage)")),
		mcp.WithNumber("slot", mcp.Description("0-based bench slot (damage on Bench)")),
		mcp.WithNumber("delta", mcp.Description("Damage change, e.g. 10 or -10; 0 clears the counter (damage)")),
		mcp.WithNumber("index", mcp.Description("0-based hand index (supporter) or prize index (take_prize)")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current table state without changing it. Read-only."),
	)
}

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Discard a seat's board and deal it a fresh game from the same deck."),
		mcp.WithNumber("seat", mcp.Description("0 = self (default), 1 = opponent")),
	)
}

// --- Tool handlers ---

func (p *Practice) handleStartPractice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	self := DeckChoice{
		Saved: request.GetString("self_deck", ""),
		Code:  request.GetString("self_code", ""),
		HTML:  request.GetString("self_html", ""),
	}
	if self.empty() {
		return mcp.NewToolResultError("One of self_deck, self_code or self_html is required."), nil
	}
	opponent := DeckChoice{
		Saved: request.GetString("opponent_deck", ""),
		Code:  request.GetString("opponent_code", ""),
		HTML:  request.GetString("opponent_html", ""),
	}

	resp, err := p.Start(ctx, self, opponent)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start practice: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (p *Practice) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := game.ParseZone(request.GetString("source", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid source: %v", err), nil
	}
	target, err := game.ParseZone(request.GetString("target", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid target: %v", err), nil
	}

	cmd := game.Command{
		Source:      source,
		SourceIndex: request.GetInt("source_index", 0),
		Target:      target,
		TargetSlot:  request.GetInt("target_slot", 0),
		InsertBelow: request.GetBool("insert_below", false),
	}
	return p.respond(decknet.ClientMessage{
		Type:    decknet.MsgMove,
		Seat:    request.GetInt("seat", game.SeatSelf),
		Command: &cmd,
	})
}

func (p *Practice) handleAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := request.GetString("type", "")
	switch kind {
	case decknet.MsgMove, decknet.MsgReset, decknet.MsgState, "":
		return mcp.NewToolResultErrorf("Unsupported action %q. Use the move, reset or get_state tools for those.", kind), nil
	}
	return p.respond(decknet.ClientMessage{
		Type:   kind,
		Seat:   request.GetInt("seat", game.SeatSelf),
		N:      request.GetInt("n", 0),
		Effect: request.GetString("effect", ""),
		Zone:   request.GetString("zone", ""),
		Slot:   request.GetInt("slot", 0),
		Delta:  request.GetInt("delta", 0),
		Index:  request.GetInt("index", 0),
	})
}

func (p *Practice) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return p.respond(decknet.ClientMessage{Type: decknet.MsgState})
}

func (p *Practice) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return p.respond(decknet.ClientMessage{
		Type: decknet.MsgReset,
		Seat: request.GetInt("seat", game.SeatSelf),
	})
}

func (p *Practice) respond(msg decknet.ClientMessage) (*mcp.CallToolResult, error) {
	resp, err := p.Handle(msg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
