// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

// PostgreSQL implementation of the player storage contracts.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows or SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types via [dberr.Wrap] to avoid leaking
// storage implementation details.

package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcadia-gg/arcadia/internal/platform/database/schema"
	"github.com/arcadia-gg/arcadia/internal/platform/dberr"
	"github.com/arcadia-gg/arcadia/internal/platform/postgres"
)

// querier is the subset of pgx satisfied by both [pgxpool.Pool] and [pgx.Tx],
// letting the same query methods serve pooled and transactional execution.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Queries are assembled once from the schema definitions so column order in
// SQL and in Scan calls cannot drift apart silently.
var (
	sessionColumns = strings.Join(schema.PlayerSession.Columns(), ", ")
	profileColumns = strings.Join(schema.PlayerProfile.Columns(), ", ")
	cardColumns    = strings.Join(schema.PlayerCard.Columns(), ", ")

	queryFindSession = fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		sessionColumns, schema.PlayerSession.Table, schema.PlayerSession.SessionID,
	)

	queryUpsertSession = fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.PlayerSession.Table, sessionColumns,
		schema.PlayerSession.SessionID,
		schema.PlayerSession.PlayerID, schema.PlayerSession.PlayerID,
		schema.PlayerSession.IsOnline, schema.PlayerSession.IsOnline,
	)

	queryFindPlayer = fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		profileColumns, schema.PlayerProfile.Table, schema.PlayerProfile.PlayerID,
	)

	queryFindPlayerByDisplayName = fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		profileColumns, schema.PlayerProfile.Table, schema.PlayerProfile.DisplayName,
	)

	queryUpsertPlayer = fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		schema.PlayerProfile.Table, profileColumns,
		schema.PlayerProfile.PlayerID,
		schema.PlayerProfile.DisplayName, schema.PlayerProfile.DisplayName,
		schema.PlayerProfile.Avatar, schema.PlayerProfile.Avatar,
		schema.PlayerProfile.SignedInAt, schema.PlayerProfile.SignedInAt,
		schema.PlayerProfile.LastSignedOutAt, schema.PlayerProfile.LastSignedOutAt,
	)

	queryFindCard = fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		cardColumns, schema.PlayerCard.Table, schema.PlayerCard.PlayerID,
	)

	queryUpsertCard = fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.PlayerCard.Table, cardColumns,
		schema.PlayerCard.PlayerID,
		schema.PlayerCard.DisplayName, schema.PlayerCard.DisplayName,
		schema.PlayerCard.Avatar, schema.PlayerCard.Avatar,
	)
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
	pgTx
}

// NewStore creates a new PostgreSQL implementation of the player [Store].
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, pgTx: pgTx{q: pool}}
}

// InTx runs fn inside a single database transaction via [postgres.WithinTx].
func (store *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return postgres.WithinTx(ctx, store.pool, func(tx pgx.Tx) error {
		return fn(&pgTx{q: tx})
	})
}

// pgTx implements [Tx] over either a pooled connection or an open transaction.
type pgTx struct {
	q querier
}

// FindSession retrieves a session by its connection identity.
func (t *pgTx) FindSession(ctx context.Context, sessionID string) (*Session, error) {
	session := &Session{}
	err := t.q.QueryRow(ctx, queryFindSession, sessionID).Scan(
		&session.SessionID,
		&session.PlayerID,
		&session.IsOnline,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find player session")
	}
	return session, nil
}

// UpsertSession writes the session row, overwriting an existing one in place.
func (t *pgTx) UpsertSession(ctx context.Context, session *Session) error {
	_, err := t.q.Exec(ctx, queryUpsertSession,
		session.SessionID,
		session.PlayerID,
		session.IsOnline,
	)
	if err != nil {
		return dberr.Wrap(err, "upsert player session")
	}
	return nil
}

// FindPlayer retrieves the private player record by ID.
func (t *pgTx) FindPlayer(ctx context.Context, playerID string) (*Player, error) {
	return t.scanPlayer(t.q.QueryRow(ctx, queryFindPlayer, playerID), "find player")
}

// FindPlayerByDisplayName retrieves the player owning the given display name.
func (t *pgTx) FindPlayerByDisplayName(ctx context.Context, displayName string) (*Player, error) {
	return t.scanPlayer(t.q.QueryRow(ctx, queryFindPlayerByDisplayName, displayName), "find player by display name")
}

// UpsertPlayer writes the player row. The CreatedAt column is written only on
// insert; on conflict the stored creation time is preserved.
func (t *pgTx) UpsertPlayer(ctx context.Context, player *Player) error {
	_, err := t.q.Exec(ctx, queryUpsertPlayer,
		player.PlayerID,
		player.DisplayName,
		player.Avatar,
		player.CreatedAt,
		player.SignedInAt,
		player.LastSignedOutAt,
	)
	if err != nil {
		return dberr.Wrap(err, "upsert player")
	}
	return nil
}

// FindCard retrieves the public card by player ID.
func (t *pgTx) FindCard(ctx context.Context, playerID string) (*Card, error) {
	card := &Card{}
	err := t.q.QueryRow(ctx, queryFindCard, playerID).Scan(
		&card.PlayerID,
		&card.DisplayName,
		&card.Avatar,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find player card")
	}
	return card, nil
}

// UpsertCard writes the public card row, overwriting an existing one in place.
func (t *pgTx) UpsertCard(ctx context.Context, card *Card) error {
	_, err := t.q.Exec(ctx, queryUpsertCard,
		card.PlayerID,
		card.DisplayName,
		card.Avatar,
	)
	if err != nil {
		return dberr.Wrap(err, "upsert player card")
	}
	return nil
}

// scanPlayer maps a single profile row into the domain entity.
func (t *pgTx) scanPlayer(row pgx.Row, action string) (*Player, error) {
	player := &Player{}
	err := row.Scan(
		&player.PlayerID,
		&player.DisplayName,
		&player.Avatar,
		&player.CreatedAt,
		&player.SignedInAt,
		&player.LastSignedOutAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return player, nil
}
