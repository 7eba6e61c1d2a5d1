package aiquota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_quota persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseCredit atomically checks the monthly quota and deducts one credit.
// It resets the counter to DefaultCredits when period_month is behind the
// current month. Returns ErrQuotaExhausted when 0 rows are updated (quota
// spent or session absent).
func (s *Store) UseCredit(ctx context.Context, sessionID string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_quota SET
			credits_remaining = CASE WHEN period_month != $1 THEN $2 - 1 ELSE credits_remaining - 1 END,
			period_month = $1
		WHERE session_id = $3 AND (period_month < $1 OR credits_remaining > 0)
	`, now, DefaultCredits, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureSession inserts a new ai_quota row for the session with the default
// credit allowance. An existing row is silently kept (ON CONFLICT DO NOTHING).
func (s *Store) EnsureSession(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_quota (session_id, credits_remaining, period_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO NOTHING
	`, sessionID, DefaultCredits, time.Now().Format("2006-01"))
	return err
}
