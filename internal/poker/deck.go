package poker

import "math/rand"

// Deck is a shuffled 52-card source. It exists for the external equity
// collaborator, which draws simulated boards and opponent holdings from it;
// nothing in the parsing or accounting path consumes cards.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck returns a full deck shuffled with the given seed. The seed makes
// simulation runs reproducible in tests.
func NewDeck(seed int64) *Deck {
	d := &Deck{rng: rand.New(rand.NewSource(seed))}
	for _, s := range []Suit{Spades, Clubs, Hearts, Diamonds} {
		for r := 1; r <= 13; r++ {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	d.Shuffle()
	return d
}

// Shuffle re-randomizes the remaining cards.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. ok is false once the deck is empty.
func (d *Deck) Draw() (c Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c = d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Remove discards the given cards from the deck, typically known hole and
// board cards before a simulation.
func (d *Deck) Remove(cards ...Card) {
	kept := d.cards[:0]
	for _, c := range d.cards {
		drop := false
		for _, rm := range cards {
			if c == rm {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, c)
		}
	}
	d.cards = kept
}

// Len returns the number of cards left.
func (d *Deck) Len() int { return len(d.cards) }
