package model

// Rule is the comparison direction of a dice bet.
type Rule string

const (
	RuleOver  Rule = "over"
	RuleUnder Rule = "under"
)

// Arrow returns the direction glyph used in the bet history display.
func (r Rule) Arrow() string {
	if r == RuleOver {
		return "↑"
	}
	return "↓"
}

// Outcome classifies a resolved round.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

// BetRequest describes a single dice wager to submit.
type BetRequest struct {
	Currency   string
	Amount     float64
	Rule       Rule
	Threshold  float64
	Multiplier float64
}

// RateLimit is the rate-limit header snapshot returned with a bet response.
type RateLimit struct {
	Limit     string
	Remaining string
}

// BetResult is the usable part of a bet response. Profit is the payout on
// a win and zero on a loss; AmountCharged is what the house actually took,
// which may differ from the requested amount due to server-side rounding.
type BetResult struct {
	Outcome       Outcome
	Profit        float64
	AmountCharged float64
	ResultValue   float64
	RateLimit     RateLimit
}
