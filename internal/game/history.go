package game

// History is a collection of hands belonging to one subject. When a hero is
// given at construction, only cash-game hands in which the hero participated
// are retained; tournament hands carry no comparable money semantics and are
// excluded from the statistics paths.
type History struct {
	Hands []*Hand
	Hero  *Participant
}

// NewHistory builds a history, applying the hero/cash filter when hero is
// non-nil.
func NewHistory(hands []*Hand, hero *Participant) *History {
	h := &History{Hero: hero}
	if hero == nil {
		h.Hands = append(h.Hands, hands...)
		return h
	}
	for _, hand := range hands {
		if hand.Participant(hero.Name) == nil {
			continue
		}
		if hand.GameType != GameCash {
			continue
		}
		h.Hands = append(h.Hands, hand)
	}
	return h
}

// Add appends a hand. Filtering is a construction-time concern; incremental
// appends are taken as-is.
func (h *History) Add(hand *Hand) {
	h.Hands = append(h.Hands, hand)
}

// Len returns the number of hands.
func (h *History) Len() int { return len(h.Hands) }
