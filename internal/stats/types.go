// Package stats derives money-flow accounting and per-player behavioral
// statistics from a collection of reconstructed hands.
package stats

import "time"

// MoneyRow is one hand's money movement for the hero, with running
// cumulative columns. Rows are ordered by date ascending.
type MoneyRow struct {
	Date     time.Time
	HandID   string
	Invested float64
	Won      float64
	Net      float64
	Pot      float64
	Rake     float64

	CumInvested float64
	CumWon      float64
	CumNet      float64
	CumPot      float64
	CumRake     float64
}

// PlayerHandRow is one (player, hand) observation.
type PlayerHandRow struct {
	HandID   string
	Date     time.Time
	Player   string
	Position string

	VPIP     bool
	PFR      bool
	ThreeBet bool

	Invested  float64
	Collected float64

	// ShowdownCards holds the canonical starting-hand notation when the
	// player's hole cards were revealed anywhere in the hand, else "".
	ShowdownCards  string
	Winner         bool
	WentToShowdown bool
	WonAtShowdown  bool
}

// PlayerSummary aggregates a player's rows into headline rates.
type PlayerSummary struct {
	Player string
	Hands  int

	VPIP           float64
	PFR            float64
	ThreeBet       float64
	WentToShowdown float64
	WonAtShowdown  float64

	Invested  float64
	Collected float64
	Net       float64
}

// RangeCell counts how a starting hand was played from one position.
type RangeCell struct {
	Open     int
	Call     int
	ThreeBet int
}

// RangeTable is player -> position -> starting-hand notation -> counters.
type RangeTable map[string]map[string]map[string]*RangeCell

func (t RangeTable) cell(player, position, notation string) *RangeCell {
	positions, ok := t[player]
	if !ok {
		positions = make(map[string]map[string]*RangeCell)
		t[player] = positions
	}
	hands, ok := positions[position]
	if !ok {
		hands = make(map[string]*RangeCell)
		positions[position] = hands
	}
	cell, ok := hands[notation]
	if !ok {
		cell = &RangeCell{}
		hands[notation] = cell
	}
	return cell
}
