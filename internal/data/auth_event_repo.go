package data

// Package data contains PostgreSQL repositories.

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/justicia-ai/leia-auth/internal/data/pgxutil"
	"github.com/justicia-ai/leia-auth/internal/domain/model"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
	"github.com/justicia-ai/leia-auth/internal/ports"
)

// AuthEventRepo persists the auth audit trail in PostgreSQL.
type AuthEventRepo struct {
	DB *sql.DB
}

var _ ports.AuthEventRecorder = (*AuthEventRepo)(nil)

// NewAuthEventRepo creates a repo over the given connection pool.
func NewAuthEventRepo(db *sql.DB) *AuthEventRepo {
	return &AuthEventRepo{DB: db}
}

const authEventColumns = `id, kind, email, reason, transport_fault, created_at`

// Record inserts a single audit event.
func (r *AuthEventRepo) Record(ctx context.Context, event model.AuthEvent) error {
	if err := event.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid auth event")
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO auth_events (id, kind, email, reason, transport_fault, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, event.ID, event.Kind, event.Email, event.Reason, event.TransportFault, event.CreatedAt)
		return execErr
	})
	return apperrors.MapDBError(err)
}

// ListRecent returns the most recent events, newest first.
func (r *AuthEventRepo) ListRecent(ctx context.Context, limit int) ([]model.AuthEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var out []model.AuthEvent
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT `+authEventColumns+`
			FROM auth_events
			ORDER BY created_at DESC
			LIMIT $1
		`, limit)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		for rows.Next() {
			var e model.AuthEvent
			if scanErr := rows.Scan(&e.ID, &e.Kind, &e.Email, &e.Reason, &e.TransportFault, &e.CreatedAt); scanErr != nil {
				return scanErr
			}
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}
