// Package dice implements the roll command: a fair draw in [1, sides]
// with an optional wager label and desired outcome, plus the stateless
// continuation token that makes "roll again" replayable without any
// server-side record.
package dice

import "math/rand"

const DefaultSides = 6

// Params are the roll inputs. Wager is free-form and carried through
// unchanged; Desired only affects the narrative, never the draw.
type Params struct {
	Sides      int
	Wager      string // empty when absent
	Desired    int
	HasDesired bool
}

// Normalize coerces Sides to a positive integer, falling back to the
// default when absent or out of range.
func (p Params) Normalize() Params {
	if p.Sides <= 0 {
		p.Sides = DefaultSides
	}
	return p
}

// Result is one completed roll.
type Result struct {
	Params
	Value int
	Hit   bool
}

// Roll draws uniformly from [1, Sides].
func Roll(p Params) Result {
	p = p.Normalize()
	v := rand.Intn(p.Sides) + 1
	return Result{
		Params: p,
		Value:  v,
		Hit:    p.HasDesired && v == p.Desired,
	}
}
