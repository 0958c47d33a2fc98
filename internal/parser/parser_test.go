package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cardstream/pokertracker/internal/game"
)

const sampleHand = `PokerStars Hand #240000000001: Hold'em No Limit (€0.01/€0.02 EUR) - 2025/03/01 20:15:00 CET
Table 'Aludra' 6-max Seat #1 is the button
Seat 1: Alice (€5.00 in chips)
Seat 2: Bob (€5.00 in chips)
Alice: posts small blind €0.01
Bob: posts big blind €0.02
*** HOLE CARDS ***
Dealt to Alice [Ah Kd]
Alice: raises €0.04 to €0.06
Bob: calls €0.04
*** FLOP *** [7h 8s 9d]
Bob: checks
Alice: bets €0.08
Bob: folds
Uncalled bet (€0.08) returned to Alice
Alice collected €0.11 from pot
*** SUMMARY ***
Total pot €0.12 | Rake €0.01
Board [7h 8s 9d]
Seat 1: Alice (button) collected (€0.11)
Seat 2: Bob (big blind) folded on the Flop`

func TestParseSampleHand(t *testing.T) {
	p := New(Config{})
	hands := p.Parse(sampleHand)
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d (failed=%d)", len(hands), p.Failed())
	}
	h := hands[0]

	if h.ID != "240000000001" {
		t.Errorf("hand id = %q", h.ID)
	}
	if got := h.Date.Format("2006/01/02 15:04:05"); got != "2025/03/01 20:15:00" {
		t.Errorf("date = %q", got)
	}
	if h.Pot != 0.12 || h.Rake != 0.01 {
		t.Errorf("pot/rake = %v/%v", h.Pot, h.Rake)
	}
	if len(h.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(h.Participants))
	}
	if h.Hero == nil || h.Hero.Name != "Alice" {
		t.Errorf("hero = %v, want Alice", h.Hero)
	}
	if len(h.Hero.HoleCards) != 2 {
		t.Errorf("hero hole cards not attached: %v", h.Hero.HoleCards)
	}
	if len(h.Board) != 3 {
		t.Errorf("board = %v", h.Board)
	}
	if !h.IsWinner("Alice") || h.IsWinner("Bob") {
		t.Errorf("winners = %v", h.Winners)
	}
	if h.GameType != game.GameCash {
		t.Errorf("game type = %v, want cash", h.GameType)
	}

	alice := h.Participant("Alice")
	if alice.Seat != 1 || alice.Stack != 5.00 {
		t.Errorf("Alice seat/stack = %d/%v", alice.Seat, alice.Stack)
	}

	// The unparenthesized in-play payout line carries no amount for the
	// collected pattern; only the summary's parenthesized form counts.
	alice = h.Participant("Alice")
	var collected float64
	for _, a := range h.Actions(alice.Name) {
		if a.Kind == game.ActionCollected {
			collected += a.Amount
		}
	}
	if collected != 0.11 {
		t.Errorf("collected = %v, want a single 0.11 payout", collected)
	}
}

func TestParseRaiseUsesToAmount(t *testing.T) {
	p := New(Config{})
	hands := p.Parse(sampleHand)
	if len(hands) != 1 {
		t.Fatal("sample hand did not parse")
	}
	pre := hands[0].Street(game.StreetHoleCards)
	if pre == nil {
		t.Fatal("no hole cards street")
	}
	var raise *game.Action
	for i := range pre.Actions {
		if pre.Actions[i].Kind == game.ActionRaise {
			raise = &pre.Actions[i]
		}
	}
	if raise == nil {
		t.Fatal("no raise parsed")
	}
	if raise.Amount != 0.06 {
		t.Errorf("raise amount = %v, want the street-ending total 0.06", raise.Amount)
	}
}

func TestParseUncalledIsNegative(t *testing.T) {
	p := New(Config{})
	h := p.Parse(sampleHand)[0]
	for _, a := range h.Actions("Alice") {
		if a.Kind == game.ActionUncalled {
			if a.Amount != -0.08 {
				t.Errorf("uncalled amount = %v, want -0.08", a.Amount)
			}
			return
		}
	}
	t.Error("no uncalled action parsed for Alice")
}

// Two-street hand without currency symbols on the payout line; amounts on
// action lines still parse, and the symbol-free payout tags the street as
// tournament play.
const twoStreetHand = `PokerStars Hand #77: Hold'em No Limit - 2025/03/02 10:00:00 CET
Seat 1: Alice (€5.00 in chips)
Seat 2: Bob (€5.00 in chips)
*** HOLE CARDS ***
Alice: raises to 2
Bob: calls 2
*** SUMMARY ***
Alice collected (4)`

func TestParseTwoStreetHand(t *testing.T) {
	p := New(Config{})
	hands := p.Parse(twoStreetHand)
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d (failed=%d)", len(hands), p.Failed())
	}
	h := hands[0]

	summary := h.Street(game.StreetSummary)
	if summary == nil || summary.Pot != 4 {
		t.Fatalf("summary pot not recorded: %+v", summary)
	}
	if len(h.Winners) != 1 || h.Winners[0].Name != "Alice" {
		t.Fatalf("winners = %v, want [Alice]", h.Winners)
	}

	res := h.Results()
	if res["Alice"] != 2 {
		t.Errorf("Alice net = %v, want 2", res["Alice"])
	}
	if res["Bob"] != -2 {
		t.Errorf("Bob net = %v, want -2", res["Bob"])
	}
	if h.GameType != game.GameTournament {
		t.Errorf("symbol-free payout should tag tournament, got %v", h.GameType)
	}
}

const showdownHand = `PokerStars Hand #88: Hold'em No Limit (€0.01/€0.02 EUR) - 2025/03/02 11:00:00 CET
Seat 1: Alice (€5.00 in chips)
Seat 2: Bob (€5.00 in chips)
*** HOLE CARDS ***
Alice: raises €0.04 to €0.06
Bob: calls €0.04
*** SHOW DOWN ***
Bob showed [7h 7d] and won (€0.11)
*** SUMMARY ***
Total pot €0.12 | Rake €0.01`

func TestParseShowedAndWon(t *testing.T) {
	p := New(Config{})
	hands := p.Parse(showdownHand)
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d (failed=%d)", len(hands), p.Failed())
	}
	h := hands[0]

	if !h.IsWinner("Bob") {
		t.Fatalf("winners = %v, want Bob", h.Winners)
	}
	bob := h.Participant("Bob")
	if len(bob.HoleCards) != 2 {
		t.Fatalf("showdown cards not attached: %v", bob.HoleCards)
	}
	if sh, ok := bob.StartingHand(); !ok || sh.Notation() != "77" {
		t.Errorf("notation = %v", sh)
	}
	if got := h.Results()["Bob"]; math.Abs(got-0.07) > 1e-9 {
		t.Errorf("Bob net = %v, want 0.07", got)
	}
}

const spanishHand = `PokerStars Hand #99: Hold'em No Limit (€0.01/€0.02 EUR) - 2025/03/02 12:00:00 CET
Seat 1: Alice (€5.00 in chips)
Seat 2: Bob (€5.00 in chips)
*** CARTAS DE MANO ***
Alice: raises €0.04 to €0.06
Bob: folds
*** RESUMEN ***
Alice collected (€0.03)`

func TestParseLocalizedSections(t *testing.T) {
	p := New(Config{})
	hands := p.Parse(spanishHand)
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d (failed=%d)", len(hands), p.Failed())
	}
	h := hands[0]
	if h.Street(game.StreetHoleCards) == nil {
		t.Error("CARTAS DE MANO not mapped to hole cards")
	}
	if h.Street(game.StreetSummary) == nil {
		t.Error("RESUMEN not mapped to summary")
	}
}

func TestParseCountsFailuresAndSkips(t *testing.T) {
	junk := "hello world\nnot a hand at all"
	noWinner := `PokerStars Hand #5: Hold'em No Limit - 2025/03/02 13:00:00 CET
Seat 1: Alice (€5.00 in chips)
*** HOLE CARDS ***
Alice: checks`
	badSection := `PokerStars Hand #6: Hold'em No Limit - 2025/03/02 13:05:00 CET
Seat 1: Alice (€5.00 in chips)
*** FOURTH STREET ***
Alice collected (€1.00)`

	content := strings.Join([]string{junk, sampleHand, noWinner, badSection}, "\n\n")
	p := New(Config{})
	hands := p.Parse(content)
	if len(hands) != 1 {
		t.Errorf("expected 1 parsed hand, got %d", len(hands))
	}
	if p.Failed() != 2 {
		t.Errorf("failed = %d, want 2", p.Failed())
	}
	if p.Skipped() != 0 {
		t.Errorf("skipped = %d, want 0", p.Skipped())
	}
}

func TestParseSkipsTournamentsWhenConfigured(t *testing.T) {
	tournament := `PokerStars Hand #7: Tournament #123456, Hold'em No Limit - 2025/03/02 14:00:00 CET
Seat 1: Alice (1500 in chips)
Seat 2: Bob (1500 in chips)
*** HOLE CARDS ***
Alice: raises to 100
Bob: folds
*** SUMMARY ***
Alice collected (150)`

	p := New(Config{SkipTournaments: true})
	hands := p.Parse(tournament)
	if len(hands) != 0 {
		t.Errorf("expected tournament hand to be skipped, got %d", len(hands))
	}
	if p.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", p.Skipped())
	}
	if p.Failed() != 0 {
		t.Errorf("failed = %d, want 0", p.Failed())
	}

	keep := New(Config{})
	if hands := keep.Parse(tournament); len(hands) != 1 {
		t.Errorf("without the flag the hand should parse, got %d", len(hands))
	}
}

func TestParseBlockNotAHand(t *testing.T) {
	p := New(Config{})
	if _, err := p.ParseBlock("free text with no id"); !errors.Is(err, errNotAHand) {
		t.Errorf("expected errNotAHand, got %v", err)
	}
}

func TestParseIncompleteHandError(t *testing.T) {
	noWinner := `PokerStars Hand #5: Hold'em No Limit - 2025/03/02 13:00:00 CET
Seat 1: Alice (€5.00 in chips)
*** HOLE CARDS ***
Alice: checks`
	p := New(Config{})
	if _, err := p.ParseBlock(noWinner); !errors.Is(err, ErrIncompleteHand) {
		t.Errorf("expected ErrIncompleteHand, got %v", err)
	}
}
