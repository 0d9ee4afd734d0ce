// Package hints serves short usage tips for the calculator modes.
package hints

import (
	"math/rand"
	"time"
)

// Rotator draws tips uniformly from a fixed, ordered set.
type Rotator struct {
	tips []string
	rnd  *rand.Rand
}

// New builds a rotator over tips. A nil rnd is seeded from the clock.
func New(tips []string, rnd *rand.Rand) *Rotator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	copied := make([]string, len(tips))
	copy(copied, tips)
	return &Rotator{tips: copied, rnd: rnd}
}

// Default returns a rotator over the built-in tip set.
func Default(rnd *rand.Rand) *Rotator {
	return New(DefaultTips(), rnd)
}

// DefaultTips lists the built-in tips in display order.
func DefaultTips() []string {
	return []string{
		"Use ** for powers, e.g. 2**10.",
		"Scientific mode understands sin, cos, tan, log and sqrt.",
		"Graph mode plots f(x) over the chosen x range; try sin(x)/x.",
		"Samples controls how many points are evaluated across the range.",
		"Programmer mode converts between bases 2, 8, 10 and 16.",
		"bit_not ignores the second operand.",
		"Shift operators move bits left (shl) or right (shr) by the second operand.",
		"Date diff counts the days between two dates.",
		"Date add and sub move the first date by a number of days.",
		"Press ctrl+l to clear the current panel.",
		"Press ctrl+e in Graph mode to save the plot as a PNG.",
	}
}

// Next returns one tip chosen uniformly at random, or "" when the set is empty.
func (r *Rotator) Next() string {
	if r == nil || len(r.tips) == 0 {
		return ""
	}
	return r.tips[r.rnd.Intn(len(r.tips))]
}

// Tips returns a copy of the tip set.
func (r *Rotator) Tips() []string {
	out := make([]string, len(r.tips))
	copy(out, r.tips)
	return out
}
