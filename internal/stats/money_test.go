package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cardstream/pokertracker/internal/game"
)

func moneyFixture(t *testing.T, id string, date time.Time, heroNet float64) *game.Hand {
	t.Helper()
	hero := &game.Participant{Name: "Hero", Seat: 1}
	villain := &game.Participant{Name: "Villain", Seat: 2}

	pre := street(t, game.StreetHoleCards)
	pre.AddAction(game.Action{Participant: hero, Kind: game.ActionRaise, Amount: 2})
	pre.AddAction(game.Action{Participant: villain, Kind: game.ActionCall, Amount: 2})
	summary := street(t, game.StreetSummary)
	summary.GameType = game.GameCash
	if heroNet >= 0 {
		summary.SetWinner(hero)
		summary.AddAction(game.Action{Participant: hero, Kind: game.ActionCollected, Amount: 2 + heroNet})
	} else {
		summary.SetWinner(villain)
		summary.AddAction(game.Action{Participant: villain, Kind: game.ActionCollected, Amount: 4})
	}

	h := game.NewHand(id, "", date, []*game.Participant{hero, villain}, []*game.Street{pre, summary})
	h.Pot = 4
	h.Refresh()
	return h
}

func TestMoneyReconciliation(t *testing.T) {
	hero := &game.Participant{Name: "Hero", Seat: 1}
	villain := &game.Participant{Name: "Villain", Seat: 2}

	pre := street(t, game.StreetHoleCards)
	pre.AddAction(game.Action{Participant: hero, Kind: game.ActionSmallBlind, Amount: 1})
	pre.AddAction(game.Action{Participant: villain, Kind: game.ActionBigBlind, Amount: 2})
	pre.AddAction(game.Action{Participant: hero, Kind: game.ActionCall, Amount: 1})
	summary := street(t, game.StreetSummary)
	summary.GameType = game.GameCash
	summary.SetWinner(hero)
	summary.AddAction(game.Action{Participant: hero, Kind: game.ActionCollected, Amount: 3.8})

	h := game.NewHand("1", "", time.Now(), []*game.Participant{hero, villain}, []*game.Street{pre, summary})
	h.Pot = 4
	h.Rake = 0.2
	h.Refresh()

	hist := game.NewHistory([]*game.Hand{h}, hero)
	rows := MoneyHistory(hist)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.Invested != 2 {
		t.Errorf("invested = %v, want 2", r.Invested)
	}
	if r.Won != 3.8 {
		t.Errorf("won = %v, want 3.8", r.Won)
	}
	if math.Abs(r.Net-1.8) > 1e-9 {
		t.Errorf("net = %v, want 1.8", r.Net)
	}

	// Net across all players plus rake sums to zero.
	res := h.Results()
	total := res["Hero"] + res["Villain"] + h.Rake
	if math.Abs(total) > 1e-9 {
		t.Errorf("hand does not reconcile: %v", total)
	}
}

func TestMoneyWonFallsBackToPotSplit(t *testing.T) {
	hero := &game.Participant{Name: "Hero", Seat: 1}

	pre := street(t, game.StreetHoleCards)
	pre.AddAction(game.Action{Participant: hero, Kind: game.ActionRaise, Amount: 2})
	show := street(t, game.StreetShowdown)
	show.GameType = game.GameCash
	show.SetWinner(hero)
	// winner declared without a collected action

	h := game.NewHand("1", "", time.Now(), []*game.Participant{hero}, []*game.Street{pre, show})
	h.Pot = 4
	h.Rake = 0.5
	h.Refresh()

	rows := MoneyHistory(game.NewHistory([]*game.Hand{h}, hero))
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if got := rows[0].Won; math.Abs(got-3.5) > 1e-9 {
		t.Errorf("won = %v, want (pot-rake)/winners = 3.5", got)
	}
}

func TestMoneyHistoryCumulativeOrdering(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h1 := moneyFixture(t, "1", base.Add(2*time.Hour), 2)  // +2, later
	h2 := moneyFixture(t, "2", base, -2)                  // -2, earliest
	h3 := moneyFixture(t, "3", base.Add(time.Hour), 2)    // +2

	hist := game.NewHistory([]*game.Hand{h1, h2, h3}, &game.Participant{Name: "Hero"})
	rows := MoneyHistory(hist)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].HandID != "2" || rows[1].HandID != "3" || rows[2].HandID != "1" {
		t.Fatalf("rows not date-ordered: %s %s %s", rows[0].HandID, rows[1].HandID, rows[2].HandID)
	}
	wantCum := []float64{-2, 0, 2}
	for i, w := range wantCum {
		if math.Abs(rows[i].CumNet-w) > 1e-9 {
			t.Errorf("row %d CumNet = %v, want %v", i, rows[i].CumNet, w)
		}
	}
	// Cumulative pot only ever grows.
	for i := 1; i < len(rows); i++ {
		if rows[i].CumPot < rows[i-1].CumPot {
			t.Errorf("CumPot decreased at row %d", i)
		}
	}
}

func TestWriteMoneyCSV(t *testing.T) {
	h := moneyFixture(t, "1", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), 2)
	rows := MoneyHistory(game.NewHistory([]*game.Hand{h}, &game.Participant{Name: "Hero"}))

	var buf bytes.Buffer
	if err := WriteMoneyCSV(&buf, rows); err != nil {
		t.Fatalf("WriteMoneyCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "date,hand_id,invested") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "2025/03/01 12:00:00") {
		t.Errorf("row missing date: %s", lines[1])
	}
}

func TestWriteStatsCSV(t *testing.T) {
	h := moneyFixture(t, "1", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), 2)
	rows := NewEngine(game.NewHistory([]*game.Hand{h}, nil)).Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	var buf bytes.Buffer
	if err := WriteStatsCSV(&buf, rows); err != nil {
		t.Fatalf("WriteStatsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "hand_id,date,player,position") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Hero") || !strings.Contains(lines[2], "Villain") {
		t.Errorf("rows missing players: %s / %s", lines[1], lines[2])
	}
	if !strings.Contains(lines[1], "2025/03/01 12:00:00") {
		t.Errorf("row missing date: %s", lines[1])
	}
}
