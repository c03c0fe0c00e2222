package net

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/peterkuimelis/decksim/internal/game"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	label   = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
	damage  = color.New(color.FgRed, color.Bold).SprintFunc()
)

const replHelp = `Commands (indices start at 1):
  state                         redraw the board
  draw [n]                      draw n cards (default 1)
  shuffle | mulligan
  play <hand#>                  hand card to battlefield (stacks when it can)
  bench <hand#> [slot#]         hand card to a bench slot (first free one by default)
  move <zone> <#> <zone> [slot#] [below]
  trash <hand#>
  supporter <hand#>             play a scripted supporter
  effect <kind>                 reshuffle_draw_four | reshuffle_draw_prize_count
  damage <active|slot#> <+n|-n|clear>
  capacity                      unlock a bench slot
  prize <#>
  stadium-trash
  seat <1|2>                    switch player
  reset                         deal this seat again
  help | quit`

var errQuit = errors.New("quit")

// repl is a terminal session over a practice table.
type repl struct {
	table *game.Table
	out   io.Writer
	seat  int
}

// RunREPL reads commands from in until EOF, quit or ctx is done, rendering
// the table to out after every command.
func RunREPL(ctx context.Context, in io.Reader, out io.Writer, table *game.Table) error {
	r := &repl{table: table, out: out}
	r.render(Handle(table, ClientMessage{Type: MsgState}))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", label(playerLabel(r.seat)))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := r.exec(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(out, bad(err.Error()))
		}
	}
}

func playerLabel(seat int) string {
	return fmt.Sprintf("P%d", seat+1)
}

func (r *repl) exec(line string) error {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(r.out, replHelp)
		return nil
	case "seat":
		n, err := oneBased(args, 0, 2)
		if err != nil {
			return err
		}
		if r.table.Seat(n) == nil {
			return fmt.Errorf("seat %d is empty", n+1)
		}
		r.seat = n
		r.render(Handle(r.table, ClientMessage{Type: MsgState, Seat: n}))
		return nil
	}

	if cmd == "bench" {
		var err error
		if args, err = r.withFreeSlot(args); err != nil {
			return err
		}
	}
	msg, err := parseCommand(cmd, args)
	if err != nil {
		return err
	}
	msg.Seat = r.seat
	resp := Handle(r.table, msg)
	if resp.Type == "error" {
		return errors.New(resp.Error)
	}
	r.render(resp)
	return nil
}

// withFreeSlot fills in the first free bench slot when a bench command
// names none.
func (r *repl) withFreeSlot(args []string) ([]string, error) {
	if len(args) == 0 || (len(args) > 1 && !strings.EqualFold(args[1], "below")) {
		return args, nil
	}
	slot := -1
	r.table.Do(func(t *game.Table) {
		if s := t.Seat(r.seat); s != nil {
			slot = s.Snapshot().FreeBenchSlot()
		}
	})
	if slot < 0 {
		return nil, errors.New("bench: no free bench slot")
	}
	return append([]string{args[0], strconv.Itoa(slot + 1)}, args[1:]...), nil
}

// parseCommand turns a REPL command into a client message, converting
// 1-based indices to 0-based.
func parseCommand(cmd string, args []string) (ClientMessage, error) {
	switch cmd {
	case "state", "s":
		return ClientMessage{Type: MsgState}, nil
	case "draw", "d":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return ClientMessage{}, fmt.Errorf("draw: %q is not a number", args[0])
			}
			n = v
		}
		return ClientMessage{Type: MsgDraw, N: n}, nil
	case "shuffle":
		return ClientMessage{Type: MsgShuffle}, nil
	case "mulligan":
		return ClientMessage{Type: MsgMulligan}, nil
	case "capacity":
		return ClientMessage{Type: MsgBenchCapacity}, nil
	case "stadium-trash":
		return ClientMessage{Type: MsgTrashStadium}, nil
	case "reset":
		return ClientMessage{Type: MsgReset}, nil
	case "effect":
		if len(args) != 1 {
			return ClientMessage{}, errors.New("usage: effect <kind>")
		}
		return ClientMessage{Type: MsgEffect, Effect: args[0]}, nil
	case "play":
		i, err := oneBased(args, 0, -1)
		if err != nil {
			return ClientMessage{}, err
		}
		return moveMsg(game.Command{Source: game.ZoneHand, SourceIndex: i, Target: game.ZoneBattlefield, InsertBelow: hasBelow(args)}), nil
	case "bench":
		i, err := oneBased(args, 0, -1)
		if err != nil {
			return ClientMessage{}, err
		}
		slot, err := oneBased(args, 1, game.BenchSlots)
		if err != nil {
			return ClientMessage{}, err
		}
		return moveMsg(game.Command{Source: game.ZoneHand, SourceIndex: i, Target: game.ZoneBench, TargetSlot: slot, InsertBelow: hasBelow(args)}), nil
	case "trash":
		i, err := oneBased(args, 0, -1)
		if err != nil {
			return ClientMessage{}, err
		}
		return moveMsg(game.Command{Source: game.ZoneHand, SourceIndex: i, Target: game.ZoneTrash}), nil
	case "supporter":
		i, err := oneBased(args, 0, -1)
		if err != nil {
			return ClientMessage{}, err
		}
		return ClientMessage{Type: MsgSupporter, Index: i}, nil
	case "prize":
		i, err := oneBased(args, 0, -1)
		if err != nil {
			return ClientMessage{}, err
		}
		return ClientMessage{Type: MsgTakePrize, Index: i}, nil
	case "move":
		return parseMove(args)
	case "damage":
		return parseDamage(args)
	}
	return ClientMessage{}, fmt.Errorf("unknown command %q (try help)", cmd)
}

func moveMsg(c game.Command) ClientMessage {
	return ClientMessage{Type: MsgMove, Command: &c}
}

func hasBelow(args []string) bool {
	for _, a := range args {
		if strings.EqualFold(a, "below") {
			return true
		}
	}
	return false
}

// oneBased parses args[i] as a 1-based index no larger than limit (limit < 0
// means unbounded) and returns it 0-based.
func oneBased(args []string, i, limit int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i+1)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 || (limit >= 0 && n > limit) {
		if limit >= 0 {
			return 0, fmt.Errorf("%q: enter a number between 1 and %d", args[i], limit)
		}
		return 0, fmt.Errorf("%q: enter a number from 1", args[i])
	}
	return n - 1, nil
}

func parseMove(args []string) (ClientMessage, error) {
	if len(args) < 3 {
		return ClientMessage{}, errors.New("usage: move <zone> <#> <zone> [slot#] [below]")
	}
	src, err := game.ParseZone(args[0])
	if err != nil {
		return ClientMessage{}, err
	}
	idx, err := oneBased(args, 1, -1)
	if err != nil {
		return ClientMessage{}, err
	}
	dst, err := game.ParseZone(args[2])
	if err != nil {
		return ClientMessage{}, err
	}
	c := game.Command{Source: src, SourceIndex: idx, Target: dst, InsertBelow: hasBelow(args)}
	if dst == game.ZoneBench {
		slot, err := oneBased(args, 3, game.BenchSlots)
		if err != nil {
			return ClientMessage{}, err
		}
		c.TargetSlot = slot
	}
	return moveMsg(c), nil
}

func parseDamage(args []string) (ClientMessage, error) {
	if len(args) != 2 {
		return ClientMessage{}, errors.New("usage: damage <active|slot#> <+n|-n|clear>")
	}
	msg := ClientMessage{Type: MsgDamage, Zone: game.ZoneBattlefield.String()}
	if !strings.EqualFold(args[0], "active") {
		slot, err := oneBased(args, 0, game.BenchSlots)
		if err != nil {
			return ClientMessage{}, err
		}
		msg.Zone, msg.Slot = game.ZoneBench.String(), slot
	}
	if strings.EqualFold(args[1], "clear") {
		return msg, nil
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil || delta == 0 {
		return ClientMessage{}, fmt.Errorf("damage: %q is not a nonzero number", args[1])
	}
	msg.Delta = delta
	return msg, nil
}

// --- Rendering ---

func (r *repl) render(resp ServerMessage) {
	for _, ev := range resp.Events {
		line := fmt.Sprintf("#%-3d %-18s| %s", ev.Seq, ev.Type, ev.Details)
		if ev.Type == "Ignored" {
			line = warn(line)
		}
		fmt.Fprintln(r.out, line)
	}
	if resp.State == nil {
		return
	}
	sv := resp.State

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "╔══════════════════════════════════════════════════════╗")
	stadium := "(none)"
	if sv.Stadium != nil {
		stadium = sv.Stadium.Name
	}
	fmt.Fprintf(r.out, "║  %s %s\n", label("Stadium:"), stadium)
	for _, seat := range sv.Seats {
		r.renderSeat(seat, seat.Seat == r.seat)
	}
	fmt.Fprintln(r.out, "╚══════════════════════════════════════════════════════╝")
}

func (r *repl) renderSeat(v SeatView, active bool) {
	title := playerLabel(v.Seat)
	if active {
		title += " (you)"
	}
	fmt.Fprintln(r.out, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(r.out, "║  %s  Library: %d  Prizes: %d  Hand: %d  Trash: %d\n",
		heading(title), v.LibraryCount, v.PrizeCount, len(v.Hand), len(v.Trash))
	fmt.Fprintf(r.out, "║  %s %s  %s\n", label("Active:"), formatStack(v.Battlefield),
		dim(fmt.Sprintf("bench %d/%d", v.BenchCount, v.BenchCapacity)))
	for i := 0; i < v.BenchCapacity && i < len(v.Bench); i++ {
		fmt.Fprintf(r.out, "║  %s %s\n", label(fmt.Sprintf("Bench %d:", i+1)), formatStack(v.Bench[i]))
	}
	if !active {
		return
	}
	if len(v.Hand) > 0 {
		var sb strings.Builder
		for i, c := range v.Hand {
			fmt.Fprintf(&sb, "[%d] %s  ", i+1, c.Name)
		}
		fmt.Fprintf(r.out, "║  %s %s\n", label("Hand:"), strings.TrimSpace(sb.String()))
	}
}

func formatStack(st *StackView) string {
	if st == nil {
		return dim("[ ]")
	}
	s := "[" + st.Top
	if st.EnergyCount > 0 {
		s += fmt.Sprintf(" E%d", st.EnergyCount)
	}
	if st.ToolCount > 0 {
		s += fmt.Sprintf(" T%d", st.ToolCount)
	}
	s += "]"
	if len(st.Cards) > 1 {
		s += dim(fmt.Sprintf(" (%d cards)", len(st.Cards)))
	}
	if st.Damage > 0 {
		s += " " + damage(fmt.Sprintf("%d dmg", st.Damage))
	}
	return s
}
