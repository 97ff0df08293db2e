package rps

import (
	"context"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store := NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	return NewManager(store, DefaultChoiceSet())
}

type fakeRecorder struct {
	matches []*MatchResult
}

func (f *fakeRecorder) SaveMatch(ctx context.Context, m *MatchResult) error {
	f.matches = append(f.matches, m)
	return nil
}

func TestChallengeAcceptChoose(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Challenge(ctx, "evt-1", "u1", "u2", "rock")
	if err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if sess.InitiatorID != "u1" || sess.TargetID != "u2" || sess.InitiatorChoice != "rock" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	got, choices, err := m.Accept(ctx, "evt-1", "u2")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if got.ID != "evt-1" {
		t.Fatalf("Accept returned wrong session: %+v", got)
	}
	if len(choices) != 3 {
		t.Fatalf("expected 3 prompt choices, got %d", len(choices))
	}

	res, err := m.Choose(ctx, "evt-1", "u2", "scissors")
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if res.WinnerID != "u1" || res.Outcome.Tie {
		t.Fatalf("rock should beat scissors: %+v", res)
	}
	if res.Outcome.Winner != "rock" || res.Outcome.Loser != "scissors" {
		t.Fatalf("unexpected outcome: %+v", res.Outcome)
	}

	// Session is destroyed before the result is produced.
	if _, _, err := m.Accept(ctx, "evt-1", "u2"); err != ErrSessionNotFound {
		t.Fatalf("Accept after resolution: got %v", err)
	}
}

func TestChallengeMissingOptions(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Challenge(ctx, "evt-2", "u1", "", "rock"); err != ErrMissingOptions {
		t.Fatalf("missing target: got %v", err)
	}
	if _, err := m.Challenge(ctx, "evt-2", "u1", "u2", ""); err != ErrMissingOptions {
		t.Fatalf("missing choice: got %v", err)
	}
	// Nothing was created.
	if n, _ := m.Count(ctx); n != 0 {
		t.Fatalf("session leaked on validation failure: %d", n)
	}
}

func TestChallengeUnknownChoice(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Challenge(context.Background(), "evt-3", "u1", "u2", "grenade"); err != ErrUnknownChoice {
		t.Fatalf("got %v", err)
	}
}

func TestAcceptUnknownSession(t *testing.T) {
	m := newTestManager(t)
	if _, _, err := m.Accept(context.Background(), "never-challenged", "u2"); err != ErrSessionNotFound {
		t.Fatalf("got %v", err)
	}
}

func TestAcceptWrongActorPreservesSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Challenge(ctx, "evt-4", "u1", "u2", "paper"); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if _, _, err := m.Accept(ctx, "evt-4", "u3"); err != ErrNotYourChallenge {
		t.Fatalf("wrong actor: got %v", err)
	}
	// The session is untouched and the right actor can still accept.
	sess, _, err := m.Accept(ctx, "evt-4", "u2")
	if err != nil {
		t.Fatalf("Accept by target after failed attempt: %v", err)
	}
	if sess.InitiatorChoice != "paper" {
		t.Fatalf("session mutated: %+v", sess)
	}
}

func TestChooseTwiceSecondIsNoop(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Challenge(ctx, "evt-5", "u1", "u2", "rock"); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if _, err := m.Choose(ctx, "evt-5", "u2", "paper"); err != nil {
		t.Fatalf("first Choose: %v", err)
	}
	if _, err := m.Choose(ctx, "evt-5", "u2", "paper"); err != ErrSessionNotFound {
		t.Fatalf("second Choose: got %v", err)
	}
}

func TestChooseTie(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Challenge(ctx, "evt-6", "u1", "u2", "scissors"); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	res, err := m.Choose(ctx, "evt-6", "u2", "scissors")
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if !res.Outcome.Tie || res.WinnerID != "" {
		t.Fatalf("expected tie: %+v", res)
	}
}

func TestChooseRecordsMatch(t *testing.T) {
	m := newTestManager(t)
	rec := &fakeRecorder{}
	m.AttachRecorder(rec)
	ctx := context.Background()

	if _, err := m.Challenge(ctx, "evt-7", "u1", "u2", "rock"); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	res, err := m.Choose(ctx, "evt-7", "u2", "paper")
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if res.WinnerID != "u2" {
		t.Fatalf("paper should beat rock: %+v", res)
	}
	if len(rec.matches) != 1 {
		t.Fatalf("expected 1 recorded match, got %d", len(rec.matches))
	}
	mr := rec.matches[0]
	if mr.SessionID != "evt-7" || mr.WinnerID != "u2" || mr.Tie {
		t.Fatalf("unexpected record: %+v", mr)
	}
}

func TestChallengeDuplicateSessionID(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Challenge(ctx, "evt-8", "u1", "u2", "rock"); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if _, err := m.Challenge(ctx, "evt-8", "u3", "u4", "paper"); err != ErrDuplicateSession {
		t.Fatalf("duplicate id: got %v", err)
	}
}
