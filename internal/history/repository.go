// Package history persists terminal outcomes (resolved matches, dice
// rolls) to Postgres. It is optional: without DATABASE_URL the bot runs
// with no repository attached, and in-flight sessions are never stored
// here either way.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/skyhigh636/Skybot/internal/dice"
	"github.com/skyhigh636/Skybot/internal/rps"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveMatch upserts a resolved match keyed by its session id, so a
// replayed write stays idempotent.
func (r *Repository) SaveMatch(ctx context.Context, m *rps.MatchResult) error {
	if r == nil || r.db == nil || m == nil {
		return nil
	}
	q := `INSERT INTO rps_matches (
	    session_id, initiator_id, opponent_id,
	    initiator_choice, opponent_choice,
	    winner_id, tie, created_at, resolved_at
	  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	  ON CONFLICT (session_id) DO UPDATE SET
	    initiator_id=EXCLUDED.initiator_id,
	    opponent_id=EXCLUDED.opponent_id,
	    initiator_choice=EXCLUDED.initiator_choice,
	    opponent_choice=EXCLUDED.opponent_choice,
	    winner_id=EXCLUDED.winner_id,
	    tie=EXCLUDED.tie,
	    created_at=EXCLUDED.created_at,
	    resolved_at=EXCLUDED.resolved_at`

	winner := sql.NullString{String: m.WinnerID, Valid: m.WinnerID != ""}
	_, err := r.db.ExecContext(ctx, q,
		m.SessionID, m.InitiatorID, m.OpponentID,
		string(m.InitiatorChoice), string(m.OpponentChoice),
		winner, m.Tie, m.CreatedAt, m.ResolvedAt,
	)
	return err
}

// SaveRoll records one dice roll.
func (r *Repository) SaveRoll(ctx context.Context, userID string, res dice.Result) error {
	if r == nil || r.db == nil {
		return nil
	}
	q := `INSERT INTO dice_rolls (
	    roll_id, user_id, sides, wager, desired, value, hit, rolled_at
	  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	wager := sql.NullString{String: res.Wager, Valid: res.Wager != ""}
	desired := sql.NullInt64{Int64: int64(res.Desired), Valid: res.HasDesired}
	_, err := r.db.ExecContext(ctx, q,
		uuid.NewString(), userID, res.Sides, wager, desired, res.Value, res.Hit, time.Now(),
	)
	return err
}
