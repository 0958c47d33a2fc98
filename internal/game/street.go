package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cardstream/pokertracker/internal/poker"
)

// ErrBadStreet reports a street name outside the fixed seven-name set.
var ErrBadStreet = errors.New("invalid street name")

// StreetName is one of the seven valid phases of a hand.
type StreetName string

const (
	StreetTable     StreetName = "table"
	StreetHoleCards StreetName = "hole cards"
	StreetFlop      StreetName = "flop"
	StreetTurn      StreetName = "turn"
	StreetRiver     StreetName = "river"
	StreetShowdown  StreetName = "show down"
	StreetSummary   StreetName = "summary"
)

// streetOrder is the fixed precedence used to sort a hand's streets.
var streetOrder = map[StreetName]int{
	StreetTable:     0,
	StreetHoleCards: 1,
	StreetFlop:      2,
	StreetTurn:      3,
	StreetRiver:     4,
	StreetShowdown:  5,
	StreetSummary:   6,
}

// GameType tags a street (and by aggregation a hand) as cash or tournament
// play, inferred from currency symbols on payout lines.
type GameType int

const (
	GameUnknown GameType = iota
	GameCash
	GameTournament
)

func (g GameType) String() string {
	switch g {
	case GameCash:
		return "cash"
	case GameTournament:
		return "tournament"
	default:
		return "unknown"
	}
}

// Street is one named phase of a hand. It owns the chronological action
// sequence (order is load-bearing for 3-bet and first-raiser detection),
// the community cards revealed during the phase, the participants credited
// as winners of the phase, and the recorded pot.
type Street struct {
	Name     StreetName
	Actions  []Action
	Board    []poker.Card
	Winners  []*Participant
	Pot      float64
	GameType GameType
}

// NewStreet validates the name (case-insensitive) against the fixed
// seven-name set and returns an empty street.
func NewStreet(name string) (*Street, error) {
	n := StreetName(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := streetOrder[n]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrBadStreet, name)
	}
	return &Street{Name: n}, nil
}

// Order returns the street's position in the fixed precedence.
func (s *Street) Order() int { return streetOrder[s.Name] }

// AddAction appends a betting event, preserving chronological order.
func (s *Street) AddAction(a Action) {
	s.Actions = append(s.Actions, a)
}

// UpdateBoard unions new community cards into the street's board,
// deduplicated, first-seen order preserved.
func (s *Street) UpdateBoard(cards ...poker.Card) {
	for _, c := range cards {
		seen := false
		for _, have := range s.Board {
			if have == c {
				seen = true
				break
			}
		}
		if !seen {
			s.Board = append(s.Board, c)
		}
	}
}

// SetWinner credits a participant as a winner of this street. Duplicate
// names are collapsed.
func (s *Street) SetWinner(p *Participant) {
	if p == nil {
		return
	}
	for _, w := range s.Winners {
		if w.SameAs(p) {
			return
		}
	}
	s.Winners = append(s.Winners, p)
}

// ActiveParticipants returns the distinct participants that acted in this
// street, in order of first action.
func (s *Street) ActiveParticipants() []*Participant {
	var out []*Participant
	for _, a := range s.Actions {
		if a.Participant == nil {
			continue
		}
		dup := false
		for _, p := range out {
			if p.SameAs(a.Participant) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a.Participant)
		}
	}
	return out
}
