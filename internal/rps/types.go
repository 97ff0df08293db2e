package rps

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Choice is a case-normalized object name from the configured set.
type Choice string

// Rule is one dominance edge: Winner beats Loser, narrated by Verb.
type Rule struct {
	Winner Choice
	Loser  Choice
	Verb   string
}

// ChoiceSet holds the playable objects and their dominance relation.
// The relation must be total: every unequal pair has exactly one winner.
type ChoiceSet struct {
	choices []Choice
	beats   map[Choice]map[Choice]string
}

// NewChoiceSet builds a set from dominance rules and validates totality.
func NewChoiceSet(rules []Rule) (*ChoiceSet, error) {
	s := &ChoiceSet{beats: make(map[Choice]map[Choice]string)}
	seen := make(map[Choice]bool)

	for _, r := range rules {
		w := normalize(string(r.Winner))
		l := normalize(string(r.Loser))
		if w == "" || l == "" {
			return nil, fmt.Errorf("rule with empty choice: %+v", r)
		}
		if w == l {
			return nil, fmt.Errorf("choice %q cannot beat itself", w)
		}
		if !seen[w] {
			seen[w] = true
			s.choices = append(s.choices, w)
		}
		if !seen[l] {
			seen[l] = true
			s.choices = append(s.choices, l)
		}
		if s.beats[w] == nil {
			s.beats[w] = make(map[Choice]string)
		}
		if _, dup := s.beats[w][l]; dup {
			return nil, fmt.Errorf("duplicate rule %q beats %q", w, l)
		}
		s.beats[w][l] = r.Verb
	}

	if len(s.choices) < 2 {
		return nil, fmt.Errorf("need at least two choices, got %d", len(s.choices))
	}
	// Totality: exactly one direction per unequal pair.
	for _, a := range s.choices {
		for _, b := range s.choices {
			if a == b {
				continue
			}
			_, ab := s.beats[a][b]
			_, ba := s.beats[b][a]
			if ab == ba {
				return nil, fmt.Errorf("relation not total for %q vs %q", a, b)
			}
		}
	}
	sort.Slice(s.choices, func(i, j int) bool { return s.choices[i] < s.choices[j] })
	return s, nil
}

// DefaultChoiceSet is the classic three-way cycle.
func DefaultChoiceSet() *ChoiceSet {
	s, err := NewChoiceSet([]Rule{
		{Winner: "rock", Loser: "scissors", Verb: "smashes"},
		{Winner: "scissors", Loser: "paper", Verb: "cuts"},
		{Winner: "paper", Loser: "rock", Verb: "covers"},
	})
	if err != nil {
		panic(err) // static rules, cannot fail
	}
	return s
}

// Choices returns the playable objects in stable order.
func (s *ChoiceSet) Choices() []Choice {
	out := make([]Choice, len(s.choices))
	copy(out, s.choices)
	return out
}

// Normalize case-folds v and reports whether it names a playable object.
func (s *ChoiceSet) Normalize(v string) (Choice, bool) {
	c := normalize(v)
	for _, known := range s.choices {
		if known == c {
			return c, true
		}
	}
	return "", false
}

func normalize(v string) Choice {
	return Choice(strings.ToLower(strings.TrimSpace(v)))
}

// Session is one in-flight challenge, keyed by the originating command
// event's id. The initiator's choice is fixed at creation so the
// opponent never picks with knowledge of it.
type Session struct {
	ID              string    `json:"id"`
	InitiatorID     string    `json:"initiator_id"`
	TargetID        string    `json:"target_id"`
	InitiatorChoice Choice    `json:"initiator_choice"`
	CreatedAt       time.Time `json:"created_at"`
}

// MatchResult is the terminal record of a resolved session.
type MatchResult struct {
	SessionID       string
	InitiatorID     string
	OpponentID      string
	InitiatorChoice Choice
	OpponentChoice  Choice
	WinnerID        string // empty on tie
	Tie             bool
	CreatedAt       time.Time
	ResolvedAt      time.Time
}

// Errors
var (
	ErrInvalidArgs      = errf("invalid arguments")
	ErrMissingOptions   = errf("missing required options")
	ErrUnknownChoice    = errf("unknown object choice")
	ErrDuplicateSession = errf("session already exists")
	ErrSessionNotFound  = errf("session not found")
	ErrNotYourChallenge = errf("actor is not the challenged user")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }
