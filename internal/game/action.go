// Package game holds the in-memory model of a reconstructed poker hand:
// participants, betting streets, individual actions and the hand aggregate
// with its derived money results.
package game

// ActionKind is the closed set of betting events a street can contain.
// Amount semantics depend on the kind: a raise carries the street-ending
// total the participant has committed (not the increment), an uncalled
// return carries a negative amount, and a collected amount is a payout,
// never an investment.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSmallBlind
	ActionBigBlind
	ActionBet
	ActionCall
	ActionRaise
	ActionCheck
	ActionFold
	ActionUncalled
	ActionCollected
)

func (k ActionKind) String() string {
	switch k {
	case ActionSmallBlind:
		return "small blind"
	case ActionBigBlind:
		return "big blind"
	case ActionBet:
		return "bets"
	case ActionCall:
		return "calls"
	case ActionRaise:
		return "raises"
	case ActionCheck:
		return "checks"
	case ActionFold:
		return "folds"
	case ActionUncalled:
		return "uncalled"
	case ActionCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// Investment reports whether the action's amount counts toward the
// participant's money put into the pot. Collected payouts do not; the
// negative uncalled return does (it reduces the investment).
func (k ActionKind) Investment() bool { return k != ActionCollected }

// Aggressive reports whether the action opens or raises the betting.
func (k ActionKind) Aggressive() bool { return k == ActionBet || k == ActionRaise }

// Voluntary reports whether the action counts toward VPIP: any call, bet
// or raise, excluding forced blind posts.
func (k ActionKind) Voluntary() bool {
	return k == ActionCall || k == ActionBet || k == ActionRaise
}

// Action is an atomic betting event inside one street.
type Action struct {
	Participant *Participant
	Kind        ActionKind
	Amount      float64
}
