package rps

import "testing"

func TestResolveTotalAndAntisymmetric(t *testing.T) {
	set := DefaultChoiceSet()
	for _, a := range set.Choices() {
		for _, b := range set.Choices() {
			out := set.Resolve(a, b)
			if a == b {
				if !out.Tie {
					t.Fatalf("Resolve(%s,%s): expected tie", a, b)
				}
				continue
			}
			if out.Tie {
				t.Fatalf("Resolve(%s,%s): unexpected tie", a, b)
			}
			if out.Winner != a && out.Winner != b {
				t.Fatalf("Resolve(%s,%s): winner %q not among arguments", a, b, out.Winner)
			}
			if out.Verb == "" {
				t.Fatalf("Resolve(%s,%s): missing verb", a, b)
			}
			// Swapping arguments must swap the winner, not change it.
			rev := set.Resolve(b, a)
			if rev.Winner != out.Winner || rev.Loser != out.Loser {
				t.Fatalf("Resolve(%s,%s) and Resolve(%s,%s) disagree: %q vs %q", a, b, b, a, out.Winner, rev.Winner)
			}
			if rev.FirstWon == out.FirstWon {
				t.Fatalf("Resolve(%s,%s): FirstWon did not flip on swap", a, b)
			}
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	set := DefaultChoiceSet()
	first := set.Resolve("rock", "scissors")
	for i := 0; i < 100; i++ {
		if got := set.Resolve("rock", "scissors"); got != first {
			t.Fatalf("Resolve not deterministic: %+v vs %+v", got, first)
		}
	}
	if first.Winner != "rock" || !first.FirstWon {
		t.Fatalf("rock should beat scissors: %+v", first)
	}
}

func TestNewChoiceSetExtended(t *testing.T) {
	// Five-way cycle (rock paper scissors lizard spock).
	set, err := NewChoiceSet([]Rule{
		{Winner: "scissors", Loser: "paper", Verb: "cuts"},
		{Winner: "paper", Loser: "rock", Verb: "covers"},
		{Winner: "rock", Loser: "lizard", Verb: "crushes"},
		{Winner: "lizard", Loser: "spock", Verb: "poisons"},
		{Winner: "spock", Loser: "scissors", Verb: "smashes"},
		{Winner: "scissors", Loser: "lizard", Verb: "decapitates"},
		{Winner: "lizard", Loser: "paper", Verb: "eats"},
		{Winner: "paper", Loser: "spock", Verb: "disproves"},
		{Winner: "spock", Loser: "rock", Verb: "vaporizes"},
		{Winner: "rock", Loser: "scissors", Verb: "crushes"},
	})
	if err != nil {
		t.Fatalf("NewChoiceSet: %v", err)
	}
	if len(set.Choices()) != 5 {
		t.Fatalf("expected 5 choices, got %d", len(set.Choices()))
	}
	for _, a := range set.Choices() {
		for _, b := range set.Choices() {
			out := set.Resolve(a, b)
			if (a == b) != out.Tie {
				t.Fatalf("totality violated for %s vs %s", a, b)
			}
		}
	}
}

func TestNewChoiceSetRejectsPartialRelation(t *testing.T) {
	_, err := NewChoiceSet([]Rule{
		{Winner: "rock", Loser: "scissors", Verb: "smashes"},
		{Winner: "scissors", Loser: "paper", Verb: "cuts"},
		// paper vs rock left undefined
	})
	if err == nil {
		t.Fatal("expected error for partial dominance relation")
	}
}

func TestNewChoiceSetRejectsSelfBeat(t *testing.T) {
	if _, err := NewChoiceSet([]Rule{{Winner: "rock", Loser: "rock", Verb: "x"}}); err == nil {
		t.Fatal("expected error for self-beating rule")
	}
}

func TestNormalize(t *testing.T) {
	set := DefaultChoiceSet()
	c, ok := set.Normalize("  RoCk ")
	if !ok || c != "rock" {
		t.Fatalf("Normalize: got %q ok=%v", c, ok)
	}
	if _, ok := set.Normalize("dynamite"); ok {
		t.Fatal("Normalize accepted unknown choice")
	}
}
