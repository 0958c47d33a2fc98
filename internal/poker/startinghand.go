package poker

// StartingHand is an unordered combination of exactly two cards normalized
// into canonical suit-color-blind notation: pocket pairs as "TT", everything
// else as high rank, low rank plus an "s" (suited) or "o" (offsuit) suffix.
// Equality and map-key behavior follow the notation alone, so Ah Kd and
// Kh Ad land in the same "AKo" bucket.
type StartingHand struct {
	High Card
	Low  Card

	notation string
}

// NewStartingHand builds the canonical combination from two cards in any
// order.
func NewStartingHand(a, b Card) StartingHand {
	if highRank(b.Rank) > highRank(a.Rank) {
		a, b = b, a
	}
	h := StartingHand{High: a, Low: b}
	switch {
	case a.PocketPair(b):
		h.notation = a.RankChar() + b.RankChar()
	case a.Suited(b):
		h.notation = a.RankChar() + b.RankChar() + "s"
	default:
		h.notation = a.RankChar() + b.RankChar() + "o"
	}
	return h
}

// Notation returns the canonical shorthand, e.g. "AKs", "76o", "TT".
func (h StartingHand) Notation() string { return h.notation }

func (h StartingHand) String() string { return h.notation }

// Pocket reports whether the combination is a pocket pair.
func (h StartingHand) Pocket() bool { return h.High.PocketPair(h.Low) }

// Suited reports whether both cards share a suit.
func (h StartingHand) Suited() bool { return h.High.Suited(h.Low) }

// Equal compares two starting hands by canonical notation only.
func (h StartingHand) Equal(other StartingHand) bool {
	return h.notation == other.notation
}
