package game

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cardstream/pokertracker/internal/poker"
)

// Hand is the aggregate root for one played hand: the canonical participant
// set, the streets in fixed precedence order, the recorded pot and rake from
// the summary section, and the derived aggregate state maintained by Refresh.
type Hand struct {
	ID      string
	RawText string
	Date    time.Time

	Participants []*Participant
	Streets      []*Street

	// Hero is the designated statistics subject, when known.
	Hero *Participant

	// Pot and Rake are the amounts recorded in the summary line, kept
	// independent of what recomputing from actions would give.
	Pot  float64
	Rake float64

	// Derived by Refresh.
	Board    []poker.Card
	Winners  []*Participant
	GameType GameType

	results map[string]float64
}

// NewHand assembles a hand from its parts, ordering the streets by the
// fixed precedence and computing the derived state.
func NewHand(id, raw string, date time.Time, participants []*Participant, streets []*Street) *Hand {
	h := &Hand{
		ID:           id,
		RawText:      raw,
		Date:         date,
		Participants: participants,
		Streets:      streets,
	}
	sort.SliceStable(h.Streets, func(i, j int) bool {
		return h.Streets[i].Order() < h.Streets[j].Order()
	})
	h.Refresh()
	return h
}

// Refresh recomputes the derived aggregate state: the hero reference is
// canonicalized into the participant set, the board and winner unions are
// rebuilt, the game type is re-resolved, and the cached results are
// invalidated.
func (h *Hand) Refresh() {
	if h.Hero != nil {
		if p := h.Participant(h.Hero.Name); p != nil {
			h.Hero = p
		}
	}

	h.Board = nil
	h.Winners = nil
	cashSeen, tournamentSeen := false, false
	for _, st := range h.Streets {
		h.unionBoard(st.Board)
		for _, w := range st.Winners {
			h.unionWinner(w)
		}
		switch st.GameType {
		case GameCash:
			cashSeen = true
		case GameTournament:
			tournamentSeen = true
		}
	}

	// A cash signal on any street wins over tournament signals; tournament
	// is only set when no cash-tagged street exists.
	switch {
	case cashSeen:
		h.GameType = GameCash
	case tournamentSeen:
		h.GameType = GameTournament
	default:
		h.GameType = GameCash
	}

	h.results = nil
}

func (h *Hand) unionBoard(cards []poker.Card) {
	for _, c := range cards {
		seen := false
		for _, have := range h.Board {
			if have == c {
				seen = true
				break
			}
		}
		if !seen {
			h.Board = append(h.Board, c)
		}
	}
}

func (h *Hand) unionWinner(p *Participant) {
	for _, w := range h.Winners {
		if w.SameAs(p) {
			return
		}
	}
	h.Winners = append(h.Winners, p)
}

// Street returns the street with the given name, or nil.
func (h *Hand) Street(name StreetName) *Street {
	for _, st := range h.Streets {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// Participant resolves a name (exact, case-sensitive) to the canonical
// instance, or nil.
func (h *Hand) Participant(name string) *Participant {
	for _, p := range h.Participants {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// IsWinner reports whether the named participant is among the hand's
// declared winners.
func (h *Hand) IsWinner(name string) bool {
	for _, w := range h.Winners {
		if w.Name == name {
			return true
		}
	}
	return false
}

// Results returns the per-participant net money movement: the negative sum
// of all non-collected action amounts plus the sum of collected payouts.
// The map is keyed by participant name, computed lazily and cached until
// the next Refresh.
func (h *Hand) Results() map[string]float64 {
	if h.results != nil {
		return h.results
	}

	res := make(map[string]float64, len(h.Participants))
	for _, p := range h.Participants {
		res[p.Name] = 0
	}
	for _, st := range h.Streets {
		for _, a := range st.Actions {
			if a.Participant == nil {
				continue
			}
			if a.Kind.Investment() {
				res[a.Participant.Name] -= a.Amount
			} else {
				res[a.Participant.Name] += a.Amount
			}
		}
	}
	h.results = res
	return res
}

// Actions returns every action by the named participant across all streets
// in street precedence then chronological order.
func (h *Hand) Actions(name string) []Action {
	var out []Action
	for _, st := range h.Streets {
		for _, a := range st.Actions {
			if a.Participant != nil && a.Participant.Name == name {
				out = append(out, a)
			}
		}
	}
	return out
}

func (h *Hand) String() string {
	names := make([]string, len(h.Participants))
	for i, p := range h.Participants {
		names[i] = p.Name
	}
	boards := make([]string, len(h.Board))
	for i, c := range h.Board {
		boards[i] = c.String()
	}
	return fmt.Sprintf("hand %s: %d streets, players [%s], pot %.2f, board %s",
		h.ID, len(h.Streets), strings.Join(names, ", "), h.Pot, strings.Join(boards, " "))
}
