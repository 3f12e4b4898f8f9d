package types

import (
	"fmt"
	"math/big"
)

// Tally mirrors the two counters held by the ballot contract.
type Tally struct {
	Yes *big.Int `json:"yes"`
	No  *big.Int `json:"no"`
}

// ZeroTally returns a tally with both counters at zero.
func ZeroTally() Tally {
	return Tally{Yes: new(big.Int), No: new(big.Int)}
}

// Total returns Yes+No. Nil counters count as zero.
func (t Tally) Total() *big.Int {
	total := new(big.Int)
	if t.Yes != nil {
		total.Add(total, t.Yes)
	}
	if t.No != nil {
		total.Add(total, t.No)
	}
	return total
}

// Count returns the counter for c, or zero if it has not been read.
func (t Tally) Count(c Choice) *big.Int {
	v := t.No
	if c.Bool() {
		v = t.Yes
	}
	if v == nil {
		return new(big.Int)
	}
	return v
}

func (t Tally) String() string {
	return fmt.Sprintf("yes=%s no=%s total=%s", t.Count(ChoiceYes), t.Count(ChoiceNo), t.Total())
}
