// Package parser converts raw hand-history text into populated game.Hand
// values. Each blank-line-separated block is processed independently; a block
// that fails to parse increments a failure counter and is skipped, never
// aborting the batch.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardstream/pokertracker/internal/game"
	"github.com/cardstream/pokertracker/internal/poker"
)

var (
	reHandID     = regexp.MustCompile(`Hand #(\d+)`)
	reTimestamp  = regexp.MustCompile(`(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})`)
	reTournament = regexp.MustCompile(`Tournament #\d+`)

	reSection = regexp.MustCompile(`\*\*\* (.+?) \*\*\*`)
	reSeat    = regexp.MustCompile(`^Seat\s+(\d+):\s+(.+?)\s*\([€$]?(\d+(?:\.\d+)?)`)

	reDealt  = regexp.MustCompile(`^Dealt to (.+?) \[([^\]]+)\]`)
	reBoard  = regexp.MustCompile(`^(?:Board\s+)?\[([^\[\]]+)\](?:\s+\[(\S{2})\])?$`)
	reAction = regexp.MustCompile(`^(.+?): (bets|calls|raises|folds|checks)(.*)$`)
	rePost   = regexp.MustCompile(`^(.+?):? posts (small|big) blind\s+[€$]?(\d+(?:\.\d+)?)`)

	reUncalled  = regexp.MustCompile(`^Uncalled bet \([€$]?(\d+(?:\.\d+)?)\) returned to (.+)$`)
	reCollected = regexp.MustCompile(`^(?:Seat \d+: )?(.+?)(?: \([^)]*\))? collected \([€$]?(\d+(?:\.\d+)?)\)`)
	reShowedWon = regexp.MustCompile(`^(?:Seat \d+: )?(.+?)(?: \([^)]*\))? showed \[([^\]]*)\] and won \([€$]?(\d+(?:\.\d+)?)\)`)

	reRaiseTo = regexp.MustCompile(`to\s+[€$]?(\d+(?:\.\d+)?)`)
	reAmount  = regexp.MustCompile(`[€$]?(\d+(?:\.\d+)?)`)

	reTotalPot = regexp.MustCompile(`Total pot\s+[€$]?(\d+(?:\.\d+)?)`)
	reRake     = regexp.MustCompile(`\bRake\s+[€$]?(\d+(?:\.\d+)?)`)
)

const timeLayout = "2006/01/02 15:04:05"

// ErrIncompleteHand reports a block that looked like a hand but could not be
// assembled into a valid one: unparseable timestamp, invalid street name, or
// no resolvable winner. The block is counted as a parse failure.
var ErrIncompleteHand = errors.New("incomplete hand")

// internal markers for blocks that are not failures.
var (
	errNotAHand   = errors.New("not a hand block")
	errTournament = errors.New("tournament block skipped")
)

// sectionNames maps the upper-cased text between *** markers to the
// canonical street names, including the localized section headers the
// Spanish client emits.
var sectionNames = map[string]string{
	"HOLE CARDS":     "hole cards",
	"FLOP":           "flop",
	"TURN":           "turn",
	"RIVER":          "river",
	"SHOW DOWN":      "show down",
	"SHOWDOWN":       "show down",
	"SUMMARY":        "summary",
	"CARTAS DE MANO": "hole cards",
	"RESUMEN":        "summary",
}

// Config controls per-batch parser behavior.
type Config struct {
	// SkipTournaments drops blocks tagged with a tournament marker, counted
	// as skipped rather than failed.
	SkipTournaments bool
	// Logger receives per-block diagnostics. Nil uses the default logger.
	Logger *log.Logger
}

// Parser turns raw log text into hands while tracking failure and skip
// counts. A Parser carries no cross-block state beyond those counters.
type Parser struct {
	cfg     Config
	log     *log.Logger
	failed  int
	skipped int
}

func New(cfg Config) *Parser {
	l := cfg.Logger
	if l == nil {
		l = log.Default()
	}
	return &Parser{cfg: cfg, log: l}
}

// Failed returns the number of blocks rejected as parse failures so far.
func (p *Parser) Failed() int { return p.failed }

// Skipped returns the number of blocks skipped by the tournament filter.
func (p *Parser) Skipped() int { return p.skipped }

// Parse splits content into candidate blocks on blank-line boundaries and
// parses each independently. It always returns the hands that succeeded;
// failures only move the counter.
func (p *Parser) Parse(content string) []*game.Hand {
	var hands []*game.Hand
	for _, block := range SplitBlocks(content) {
		h, err := p.ParseBlock(block)
		switch {
		case err == nil && h != nil:
			hands = append(hands, h)
		case errors.Is(err, errNotAHand):
			// free text, headers, unsupported localized markers
		case errors.Is(err, errTournament):
			p.skipped++
		case err != nil:
			p.failed++
			p.log.Debug("hand block rejected", "error", err)
		}
	}
	return hands
}

// SplitBlocks splits a raw log into candidate hand blocks on blank-line
// boundaries, with universal newline handling.
func SplitBlocks(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	parts := strings.Split(content, "\n\n")
	blocks := make([]string, 0, len(parts))
	for _, b := range parts {
		if t := strings.TrimSpace(b); t != "" {
			blocks = append(blocks, t)
		}
	}
	return blocks
}

// ParseBlock parses one candidate hand block. It returns errNotAHand for
// blocks that fail the pre-filter, errTournament for filtered tournament
// play, and a wrapped ErrIncompleteHand (or format error) for blocks that
// looked like a hand but could not be assembled. Any panic inside the block
// is converted into an error so a malformed block can never abort a batch.
func (p *Parser) ParseBlock(block string) (h *game.Hand, err error) {
	defer func() {
		if r := recover(); r != nil {
			h = nil
			err = fmt.Errorf("%w: panic while parsing block: %v", ErrIncompleteHand, r)
		}
	}()

	block = strings.TrimSpace(block)
	if block == "" {
		return nil, errNotAHand
	}

	idMatch := reHandID.FindStringSubmatch(block)
	tsMatch := reTimestamp.FindStringSubmatch(block)
	if idMatch == nil || tsMatch == nil {
		return nil, errNotAHand
	}
	if p.cfg.SkipTournaments && reTournament.MatchString(block) {
		return nil, errTournament
	}

	date, terr := time.Parse(timeLayout, tsMatch[1])
	if terr != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q", ErrIncompleteHand, tsMatch[1])
	}

	pot := findAmount(reTotalPot, block)
	rake := findAmount(reRake, block)

	sections := splitSections(block)

	participants, byName := extractSeats(sections[0].text)

	streets := make([]*game.Street, 0, len(sections))
	var hero *game.Participant
	for _, sec := range sections {
		st, serr := game.NewStreet(sec.name)
		if serr != nil {
			return nil, fmt.Errorf("section %q: %w", sec.name, serr)
		}
		dealt, perr := p.parseStreetLines(st, sec.text, byName)
		if perr != nil {
			return nil, perr
		}
		if dealt != nil {
			hero = dealt
		}
		streets = append(streets, st)
	}

	hand := game.NewHand(idMatch[1], block, date, participants, streets)
	hand.Pot = pot
	hand.Rake = rake
	hand.Hero = hero
	hand.Refresh()

	if len(hand.Winners) == 0 {
		p.log.Debug("no winner resolved",
			"hand", hand.ID, "players", len(hand.Participants), "streets", len(hand.Streets), "pot", hand.Pot)
		return nil, fmt.Errorf("%w: hand %s has no resolvable winner", ErrIncompleteHand, hand.ID)
	}
	return hand, nil
}

type section struct {
	name string
	text string
}

// splitSections locates the *** NAME *** markers. Text before the first
// marker is the table section; text between consecutive markers belongs to
// the preceding marker, with localized names mapped to canonical English.
func splitSections(block string) []section {
	marks := reSection.FindAllStringSubmatchIndex(block, -1)
	out := make([]section, 0, len(marks)+1)

	end := len(block)
	if len(marks) > 0 {
		end = marks[0][0]
	}
	out = append(out, section{name: "table", text: strings.TrimSpace(block[:end])})

	for i, m := range marks {
		start := m[1]
		end := len(block)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		name := strings.ToUpper(strings.TrimSpace(block[m[2]:m[3]]))
		if canonical, ok := sectionNames[name]; ok {
			name = canonical
		} else {
			name = strings.ToLower(name)
		}
		out = append(out, section{name: name, text: strings.TrimSpace(block[start:end])})
	}
	return out
}

// extractSeats builds the canonical participant set from seat-declaration
// lines. Non-matching lines carry no seat information and are ignored.
func extractSeats(table string) ([]*game.Participant, map[string]*game.Participant) {
	var participants []*game.Participant
	byName := make(map[string]*game.Participant)
	for _, line := range strings.Split(table, "\n") {
		m := reSeat.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		seat, _ := strconv.Atoi(m[1])
		name := strings.TrimSpace(m[2])
		stack, _ := strconv.ParseFloat(m[3], 64)
		if _, dup := byName[name]; dup {
			continue
		}
		pl := &game.Participant{Name: name, Seat: seat, Stack: stack}
		participants = append(participants, pl)
		byName[name] = pl
	}
	return participants, byName
}

// parseStreetLines classifies each line of a section, first match wins.
// It returns the participant a "Dealt to" line designated, if any; that
// participant is the hand's hero.
func (p *Parser) parseStreetLines(st *game.Street, text string, byName map[string]*game.Participant) (*game.Participant, error) {
	var hero *game.Participant
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := reDealt.FindStringSubmatch(line); m != nil {
			pl := byName[strings.TrimSpace(m[1])]
			if pl == nil {
				continue // unknown name, silently ignored
			}
			cards, err := parseCardList(m[2])
			if err != nil {
				return nil, err
			}
			pl.HoleCards = cards
			hero = pl
			continue
		}

		if m := reBoard.FindStringSubmatch(line); m != nil {
			cards, err := parseCardList(m[1])
			if err != nil {
				return nil, err
			}
			if m[2] != "" {
				c, err := poker.ParseCard(m[2])
				if err != nil {
					return nil, err
				}
				cards = append(cards, c)
			}
			st.UpdateBoard(cards...)
			continue
		}

		if m := reAction.FindStringSubmatch(line); m != nil {
			pl := byName[strings.TrimSpace(m[1])]
			if pl == nil {
				continue // action by unknown participant, dropped
			}
			kind := actionKind(m[2])
			rest := m[3]
			amount := 0.0
			if kind == game.ActionRaise {
				// prefer the street-ending total after the "to" token
				if tm := reRaiseTo.FindStringSubmatch(rest); tm != nil {
					amount, _ = strconv.ParseFloat(tm[1], 64)
				} else if am := reAmount.FindStringSubmatch(rest); am != nil {
					amount, _ = strconv.ParseFloat(am[1], 64)
				}
			} else if kind == game.ActionBet || kind == game.ActionCall {
				if am := reAmount.FindStringSubmatch(rest); am != nil {
					amount, _ = strconv.ParseFloat(am[1], 64)
				}
			}
			st.AddAction(game.Action{Participant: pl, Kind: kind, Amount: amount})
			continue
		}

		if m := rePost.FindStringSubmatch(line); m != nil {
			pl := byName[strings.TrimSpace(strings.TrimSuffix(m[1], ":"))]
			if pl == nil {
				continue
			}
			kind := game.ActionSmallBlind
			if m[2] == "big" {
				kind = game.ActionBigBlind
			}
			amount, _ := strconv.ParseFloat(m[3], 64)
			st.AddAction(game.Action{Participant: pl, Kind: kind, Amount: amount})
			continue
		}

		if m := reUncalled.FindStringSubmatch(line); m != nil {
			pl := byName[strings.TrimSpace(m[2])]
			if pl == nil {
				continue
			}
			amount, _ := strconv.ParseFloat(m[1], 64)
			// money handed back: negative investment
			st.AddAction(game.Action{Participant: pl, Kind: game.ActionUncalled, Amount: -amount})
			continue
		}

		if m := reCollected.FindStringSubmatch(line); m != nil {
			p.applyPayout(st, byName, m[1], m[2], line, nil)
			continue
		}

		if m := reShowedWon.FindStringSubmatch(line); m != nil {
			shown, err := parseCardList(m[2])
			if err != nil {
				return nil, err
			}
			p.applyPayout(st, byName, m[1], m[3], line, shown)
			continue
		}

		// chat, notices, free text: no semantic weight
	}
	return hero, nil
}

// applyPayout records a collected action, the street pot, the winner mark
// and the game-type tag inferred from the currency symbol on the line.
func (p *Parser) applyPayout(st *game.Street, byName map[string]*game.Participant, name, amountStr, line string, shown []poker.Card) {
	pl := byName[strings.TrimSpace(name)]
	if pl == nil {
		return
	}
	amount, _ := strconv.ParseFloat(amountStr, 64)
	st.AddAction(game.Action{Participant: pl, Kind: game.ActionCollected, Amount: amount})
	st.Pot = amount
	st.SetWinner(pl)
	if strings.ContainsAny(line, "€$") {
		st.GameType = game.GameCash
	} else {
		st.GameType = game.GameTournament
	}
	if len(shown) == 2 && len(pl.HoleCards) == 0 {
		pl.HoleCards = shown
	}
}

func actionKind(verb string) game.ActionKind {
	switch verb {
	case "bets":
		return game.ActionBet
	case "calls":
		return game.ActionCall
	case "raises":
		return game.ActionRaise
	case "folds":
		return game.ActionFold
	case "checks":
		return game.ActionCheck
	default:
		return game.ActionUnknown
	}
}

func parseCardList(s string) ([]poker.Card, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	cards := make([]poker.Card, 0, len(fields))
	for _, f := range fields {
		c, err := poker.ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func findAmount(re *regexp.Regexp, s string) float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return v
}
