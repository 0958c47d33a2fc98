package stats

import (
	"math"
	"sort"

	"github.com/cardstream/pokertracker/internal/game"
)

// investedIn walks one street's actions and returns how much the named
// participant has committed by street end. Blind posts, bets and calls
// accumulate; a raise amount is already the street-ending total, so it
// replaces the running figure instead of adding to it. Uncalled returns
// carry a negative amount and subtract naturally.
func investedIn(st *game.Street, name string) float64 {
	total := 0.0
	for _, a := range st.Actions {
		if a.Participant == nil || a.Participant.Name != name {
			continue
		}
		switch a.Kind {
		case game.ActionSmallBlind, game.ActionBigBlind, game.ActionBet, game.ActionCall, game.ActionUncalled:
			total += a.Amount
		case game.ActionRaise:
			total = math.Max(total, a.Amount)
		}
	}
	return total
}

// Invested sums a participant's committed money across every street of a hand.
func Invested(h *game.Hand, name string) float64 {
	total := 0.0
	for _, st := range h.Streets {
		total += investedIn(st, name)
	}
	return total
}

// Collected sums a participant's payout amounts across every street of a hand.
func Collected(h *game.Hand, name string) float64 {
	total := 0.0
	for _, st := range h.Streets {
		for _, a := range st.Actions {
			if a.Kind == game.ActionCollected && a.Participant != nil && a.Participant.Name == name {
				total += a.Amount
			}
		}
	}
	return total
}

// MoneyHistory produces one row per hand for the history's hero, ordered by
// date ascending, with cumulative columns. When a winning hero has no
// explicit collected action the won amount falls back to an equal split of
// (pot - rake) across the hand's winners.
func MoneyHistory(history *game.History) []MoneyRow {
	if history == nil || history.Hero == nil {
		return nil
	}
	hero := history.Hero.Name

	rows := make([]MoneyRow, 0, len(history.Hands))
	for _, h := range history.Hands {
		invested := Invested(h, hero)
		won := Collected(h, hero)
		if won == 0 && h.IsWinner(hero) && len(h.Winners) > 0 {
			won = (h.Pot - h.Rake) / float64(len(h.Winners))
		}
		rows = append(rows, MoneyRow{
			Date:     h.Date,
			HandID:   h.ID,
			Invested: invested,
			Won:      won,
			Net:      won - invested,
			Pot:      h.Pot,
			Rake:     h.Rake,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	var cum MoneyRow
	for i := range rows {
		cum.CumInvested += rows[i].Invested
		cum.CumWon += rows[i].Won
		cum.CumNet += rows[i].Net
		cum.CumPot += rows[i].Pot
		cum.CumRake += rows[i].Rake
		rows[i].CumInvested = cum.CumInvested
		rows[i].CumWon = cum.CumWon
		rows[i].CumNet = cum.CumNet
		rows[i].CumPot = cum.CumPot
		rows[i].CumRake = cum.CumRake
	}
	return rows
}
