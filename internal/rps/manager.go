package rps

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/skyhigh636/Skybot/internal/obslog"
	"go.uber.org/zap"
)

// Recorder persists terminal match outcomes. Optional; in-flight
// sessions are never written anywhere.
type Recorder interface {
	SaveMatch(ctx context.Context, m *MatchResult) error
}

// Manager sequences the challenge → accept → choose conversation. It
// owns the session lifecycle; the store is injected so tests can run on
// memory and production on Redis.
type Manager struct {
	store Store
	set   *ChoiceSet
	rec   Recorder
}

func NewManager(store Store, set *ChoiceSet) *Manager {
	return &Manager{store: store, set: set}
}

// AttachRecorder wires an optional outcome repository.
func (m *Manager) AttachRecorder(r Recorder) {
	if m != nil {
		m.rec = r
	}
}

// ChoiceSet exposes the configured set for command registration and
// prompt building.
func (m *Manager) ChoiceSet() *ChoiceSet { return m.set }

// Count reports live sessions for health reporting.
func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

// Challenge creates the session for a new match. The session id derives
// from the originating command event, so ids are unique per challenge.
func (m *Manager) Challenge(ctx context.Context, sessionID, initiatorID, targetID, choice string) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(initiatorID) == "" {
		return nil, ErrInvalidArgs
	}
	if strings.TrimSpace(targetID) == "" || strings.TrimSpace(choice) == "" {
		return nil, ErrMissingOptions
	}
	obj, ok := m.set.Normalize(choice)
	if !ok {
		return nil, ErrUnknownChoice
	}

	sess := &Session{
		ID:              strings.TrimSpace(sessionID),
		InitiatorID:     strings.TrimSpace(initiatorID),
		TargetID:        strings.TrimSpace(targetID),
		InitiatorChoice: obj,
		CreatedAt:       time.Now(),
	}
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	obslog.L().Info("challenge_created",
		zap.String("session_id", sess.ID),
		zap.String("initiator_id", sess.InitiatorID),
		zap.String("target_id", sess.TargetID))
	return sess, nil
}

// Accept validates that the acting user is the challenged one and, on
// success, returns the session plus a shuffled prompt order. The session
// itself is not mutated; the initiator's choice was fixed at challenge
// time and the record stays live for the choose step.
func (m *Manager) Accept(ctx context.Context, sessionID, actorID string) (*Session, []Choice, error) {
	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if actorID == "" || actorID != sess.TargetID {
		return nil, nil, ErrNotYourChallenge
	}
	return sess, m.shuffledChoices(), nil
}

// Resolution is the outcome of a completed match.
type Resolution struct {
	Session        *Session
	OpponentID     string
	OpponentChoice Choice
	Outcome        Outcome
	WinnerID       string // empty on tie
	ResolvedAt     time.Time
}

// Choose resolves the match. The session is removed before any output is
// produced, so a duplicate or racing choose event observes
// ErrSessionNotFound and must be ignored by the caller.
func (m *Manager) Choose(ctx context.Context, sessionID, actorID, value string) (*Resolution, error) {
	obj, ok := m.set.Normalize(value)
	if !ok {
		return nil, ErrUnknownChoice
	}
	sess, err := m.store.Take(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := m.set.Resolve(sess.InitiatorChoice, obj)
	res := &Resolution{
		Session:        sess,
		OpponentID:     actorID,
		OpponentChoice: obj,
		Outcome:        out,
		ResolvedAt:     time.Now(),
	}
	if !out.Tie {
		if out.FirstWon {
			res.WinnerID = sess.InitiatorID
		} else {
			res.WinnerID = actorID
		}
	}

	obslog.L().Info("session_resolved",
		zap.String("session_id", sess.ID),
		zap.String("winner_id", res.WinnerID),
		zap.Bool("tie", out.Tie))

	if m.rec != nil {
		mr := &MatchResult{
			SessionID:       sess.ID,
			InitiatorID:     sess.InitiatorID,
			OpponentID:      actorID,
			InitiatorChoice: sess.InitiatorChoice,
			OpponentChoice:  obj,
			WinnerID:        res.WinnerID,
			Tie:             out.Tie,
			CreatedAt:       sess.CreatedAt,
			ResolvedAt:      res.ResolvedAt,
		}
		if err := m.rec.SaveMatch(ctx, mr); err != nil {
			obslog.L().Warn("match_record_failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}
	return res, nil
}

// shuffledChoices randomizes prompt order. Cosmetic only; resolution
// never depends on presentation order.
func (m *Manager) shuffledChoices() []Choice {
	out := m.set.Choices()
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
