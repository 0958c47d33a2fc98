package game

import "github.com/cardstream/pokertracker/internal/poker"

// Participant is one player in a hand. Identity is the exact, case-sensitive
// name: two Participant values with the same name refer to the same entity.
// Within a hand every reference by name must resolve to one shared instance
// so that hole cards revealed at showdown become visible everywhere; the
// parser maintains that identity map and the model holds pointers.
type Participant struct {
	Name  string
	Seat  int
	Stack float64

	// HoleCards is populated only when the cards were revealed, either by a
	// "Dealt to" line or at showdown.
	HoleCards []poker.Card
}

func (p *Participant) String() string { return p.Name }

// SameAs reports name-based identity.
func (p *Participant) SameAs(other *Participant) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Name == other.Name
}

// StartingHand returns the canonical two-card combination when the
// participant's hole cards are known.
func (p *Participant) StartingHand() (poker.StartingHand, bool) {
	if p == nil || len(p.HoleCards) != 2 {
		return poker.StartingHand{}, false
	}
	return poker.NewStartingHand(p.HoleCards[0], p.HoleCards[1]), true
}
