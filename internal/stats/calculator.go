package stats

import (
	"sort"
	"strconv"

	"github.com/cardstream/pokertracker/internal/game"
)

// seatPositions names the table positions of a six-handed game by seat
// number. Seats outside the map fall back to the bare seat index.
var seatPositions = map[int]string{
	1: "button",
	2: "small blind",
	3: "big blind",
	4: "under the gun",
	5: "middle position",
	6: "cutoff",
}

// positionOf resolves a participant's inferred position: named seat, then
// raw seat index, then ordinal index in the hand's participant list, then
// the explicit unknown bucket.
func positionOf(h *game.Hand, p *game.Participant) string {
	if name, ok := seatPositions[p.Seat]; ok {
		return name
	}
	if p.Seat > 0 {
		return strconv.Itoa(p.Seat)
	}
	for i, q := range h.Participants {
		if q.SameAs(p) {
			return strconv.Itoa(i)
		}
	}
	return "unknown"
}

// Engine computes the per-player statistics table over a history. The full
// table is cached after first computation and only rebuilt on an explicit
// Recompute.
type Engine struct {
	history *game.History

	rows   []PlayerHandRow
	ranges RangeTable
	done   bool
}

func NewEngine(history *game.History) *Engine {
	return &Engine{history: history}
}

// Rows returns one row per (player, hand) pair, computing and caching the
// table on first call.
func (e *Engine) Rows() []PlayerHandRow {
	e.compute()
	return e.rows
}

// Ranges returns the starting-hand range counters, computed alongside Rows.
func (e *Engine) Ranges() RangeTable {
	e.compute()
	return e.ranges
}

// Recompute discards the cached table so the next access rebuilds it. Call
// it after appending hands to the underlying history.
func (e *Engine) Recompute() {
	e.rows = nil
	e.ranges = nil
	e.done = false
}

func (e *Engine) compute() {
	if e.done {
		return
	}
	e.rows = e.rows[:0]
	e.ranges = make(RangeTable)
	if e.history != nil {
		for _, h := range e.history.Hands {
			e.accumulateHand(h)
		}
	}
	e.done = true
}

func (e *Engine) accumulateHand(h *game.Hand) {
	preflop := h.Street(game.StreetHoleCards)

	for _, p := range h.Participants {
		row := PlayerHandRow{
			HandID:   h.ID,
			Date:     h.Date,
			Player:   p.Name,
			Position: positionOf(h, p),
		}

		var firstRaiser string
		if preflop != nil {
			seenRaise := false
			for _, a := range preflop.Actions {
				if a.Kind == game.ActionRaise && firstRaiser == "" && a.Participant != nil {
					firstRaiser = a.Participant.Name
				}
				mine := a.Participant != nil && a.Participant.Name == p.Name
				if mine && a.Kind.Voluntary() {
					row.VPIP = true
				}
				if a.Kind == game.ActionRaise {
					if mine {
						row.PFR = true
						if seenRaise {
							row.ThreeBet = true
						}
					} else {
						seenRaise = true
					}
				}
			}
		}

		row.Invested = Invested(h, p.Name)
		row.Collected = Collected(h, p.Name)
		row.Winner = h.IsWinner(p.Name)
		if sh, ok := p.StartingHand(); ok {
			row.ShowdownCards = sh.Notation()
		}
		row.WentToShowdown = row.ShowdownCards != ""
		row.WonAtShowdown = row.WentToShowdown && row.Collected > 0

		if row.ShowdownCards != "" {
			cell := e.ranges.cell(p.Name, row.Position, row.ShowdownCards)
			called := preflop != nil && anyCall(preflop, p.Name)
			switch {
			case row.ThreeBet:
				cell.ThreeBet++
			case row.PFR && firstRaiser == p.Name:
				cell.Open++
			case called:
				cell.Call++
			}
		}

		e.rows = append(e.rows, row)
	}
}

func anyCall(st *game.Street, name string) bool {
	for _, a := range st.Actions {
		if a.Kind == game.ActionCall && a.Participant != nil && a.Participant.Name == name {
			return true
		}
	}
	return false
}

// Summarize folds the per-hand rows into one headline line per player,
// sorted by hand count descending then name.
func (e *Engine) Summarize() []PlayerSummary {
	type counts struct {
		hands, vpip, pfr, threeBet, wts, was int

		invested, collected float64
	}
	agg := make(map[string]*counts)
	var order []string
	for _, r := range e.Rows() {
		c, ok := agg[r.Player]
		if !ok {
			c = &counts{}
			agg[r.Player] = c
			order = append(order, r.Player)
		}
		c.hands++
		if r.VPIP {
			c.vpip++
		}
		if r.PFR {
			c.pfr++
		}
		if r.ThreeBet {
			c.threeBet++
		}
		if r.WentToShowdown {
			c.wts++
		}
		if r.WonAtShowdown {
			c.was++
		}
		c.invested += r.Invested
		c.collected += r.Collected
	}

	out := make([]PlayerSummary, 0, len(order))
	for _, name := range order {
		c := agg[name]
		n := float64(c.hands)
		out = append(out, PlayerSummary{
			Player:         name,
			Hands:          c.hands,
			VPIP:           float64(c.vpip) / n,
			PFR:            float64(c.pfr) / n,
			ThreeBet:       float64(c.threeBet) / n,
			WentToShowdown: float64(c.wts) / n,
			WonAtShowdown:  float64(c.was) / n,
			Invested:       c.invested,
			Collected:      c.collected,
			Net:            c.collected - c.invested,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hands != out[j].Hands {
			return out[i].Hands > out[j].Hands
		}
		return out[i].Player < out[j].Player
	})
	return out
}
