package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// VoteTally holds the voting power cast for each option, in base units.
type VoteTally struct {
	Yes     *big.Int
	No      *big.Int
	Abstain *big.Int
}

// VotePercentages are the shares of each option, 0-100 with two decimals.
type VotePercentages struct {
	Yes     decimal.Decimal `json:"yes"`
	No      decimal.Decimal `json:"no"`
	Abstain decimal.Decimal `json:"abstain"`
}

// Total returns the sum of all options. Nil options count as zero.
func (t VoteTally) Total() *big.Int {
	total := new(big.Int)
	for _, v := range []*big.Int{t.Yes, t.No, t.Abstain} {
		if v != nil {
			total.Add(total, v)
		}
	}
	return total
}

// Percentages returns each option's share of the total. A tally with no
// votes yields all zeros.
func (t VoteTally) Percentages() VotePercentages {
	total := t.Total()
	if total.Sign() == 0 {
		return VotePercentages{Yes: decimal.Zero, No: decimal.Zero, Abstain: decimal.Zero}
	}

	return VotePercentages{
		Yes:     share(t.Yes, total),
		No:      share(t.No, total),
		Abstain: share(t.Abstain, total),
	}
}

// Turnout returns the total cast as a percentage of supply.
func (t VoteTally) Turnout(supply *big.Int) decimal.Decimal {
	if supply == nil || supply.Sign() <= 0 {
		return decimal.Zero
	}
	return share(t.Total(), supply)
}

func share(part, whole *big.Int) decimal.Decimal {
	if part == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(part, 0).
		Mul(hundred).
		DivRound(decimal.NewFromBigInt(whole, 0), 2)
}
