// Package poker provides the playing-card value types shared by the parser
// and the statistics engine: single cards, two-card starting hands with
// canonical notation, and a shuffled deck.
package poker

import (
	"errors"
	"fmt"
)

// ErrFormat reports a malformed card token or notation. It is fatal to the
// single value being constructed, never to a batch.
var ErrFormat = errors.New("malformed card token")

// Suit is one of the four card suits, stored as its lowercase letter.
type Suit byte

const (
	Spades   Suit = 's'
	Clubs    Suit = 'c'
	Hearts   Suit = 'h'
	Diamonds Suit = 'd'
)

func (s Suit) String() string { return string(byte(s)) }

// Valid reports whether s is one of the four known suits.
func (s Suit) Valid() bool {
	switch s {
	case Spades, Clubs, Hearts, Diamonds:
		return true
	}
	return false
}

// Card is a single playing card. Rank runs 1-13 where 1 is the ace
// (high and low dual use). Cards are immutable values; equality is
// (rank, suit) equality.
type Card struct {
	Rank int
	Suit Suit
}

var rankChars = map[int]byte{
	1: 'A', 10: 'T', 11: 'J', 12: 'Q', 13: 'K',
}

var charRanks = map[byte]int{
	'A': 1, 'T': 10, 'J': 11, 'Q': 12, 'K': 13,
	'2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
}

// ParseCard parses a two-character token such as "As" or "7d".
// The rank character must be one of A,2-9,T,J,Q,K and the suit one of
// s,c,h,d. Anything else fails with ErrFormat.
func ParseCard(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, fmt.Errorf("%w: %q must be 2 characters", ErrFormat, token)
	}
	rank, ok := charRanks[token[0]]
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown rank %q", ErrFormat, token[0])
	}
	suit := Suit(token[1])
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: unknown suit %q", ErrFormat, token[1])
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// RankChar returns the single-character rank symbol ("A", "T", "7", ...).
func (c Card) RankChar() string {
	if ch, ok := rankChars[c.Rank]; ok {
		return string(ch)
	}
	return fmt.Sprintf("%d", c.Rank)
}

// String renders the card in standard two-character notation, the inverse
// of ParseCard.
func (c Card) String() string { return c.RankChar() + c.Suit.String() }

// highRank maps the dual-use ace to 14 so ordering comparisons treat it
// as the highest rank.
func highRank(r int) int {
	if r == 1 {
		return 14
	}
	return r
}

// PocketPair reports whether the two cards share a rank.
func (c Card) PocketPair(other Card) bool { return c.Rank == other.Rank }

// Suited reports whether the two cards share a suit.
func (c Card) Suited(other Card) bool { return c.Suit == other.Suit }

// Connector reports whether the two ranks are adjacent.
func (c Card) Connector(other Card) bool {
	d := c.Rank - other.Rank
	return d == 1 || d == -1
}

// SuitedConnector reports whether the cards are both suited and adjacent.
func (c Card) SuitedConnector(other Card) bool {
	return c.Suited(other) && c.Connector(other)
}
