package rps

// Outcome is the result of comparing two choices under the dominance
// relation. Exactly one of Tie or a winner applies.
type Outcome struct {
	Tie    bool
	Winner Choice
	Loser  Choice
	Verb   string
	// FirstWon reports whether the first argument to Resolve won.
	FirstWon bool
}

// Resolve compares two choices from the set. Both arguments must already
// be normalized members of the set; validation happens at the call site.
// Deterministic, no side effects.
func (s *ChoiceSet) Resolve(a, b Choice) Outcome {
	if a == b {
		return Outcome{Tie: true}
	}
	if verb, ok := s.beats[a][b]; ok {
		return Outcome{Winner: a, Loser: b, Verb: verb, FirstWon: true}
	}
	return Outcome{Winner: b, Loser: a, Verb: s.beats[b][a]}
}
