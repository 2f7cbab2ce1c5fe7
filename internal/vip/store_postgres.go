// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

// PostgreSQL implementation of the relationship storage contracts.

package vip

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

// querier is the subset of pgx satisfied by both [pgxpool.Pool] and [pgx.Tx].
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var (
	vipColumns = strings.Join(schema.PlayerVip.Columns(), ", ")

	queryFindVip = fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		vipColumns, schema.PlayerVip.Table,
		schema.PlayerVip.SenderID, schema.PlayerVip.ReceiverID,
	)

	// The surrogate key and creation time are never touched on conflict, so
	// re-requests keep the original row identity.
	queryUpsertVip = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
		RETURNING %s, %s`,
		schema.PlayerVip.Table,
		schema.PlayerVip.SenderID, schema.PlayerVip.ReceiverID,
		schema.PlayerVip.Tag, schema.PlayerVip.Status, schema.PlayerVip.CreatedAt,
		schema.PlayerVip.SenderID, schema.PlayerVip.ReceiverID,
		schema.PlayerVip.Tag, schema.PlayerVip.Tag,
		schema.PlayerVip.Status, schema.PlayerVip.Status,
		schema.PlayerVip.VipID, schema.PlayerVip.CreatedAt,
	)

	queryListBySender = fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY %s LIMIT $2 OFFSET $3",
		vipColumns, schema.PlayerVip.Table,
		schema.PlayerVip.SenderID, schema.PlayerVip.VipID,
	)

	queryCountBySender = fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s = $1",
		schema.PlayerVip.Table, schema.PlayerVip.SenderID,
	)
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
	pgTx
}

// NewStore creates a new PostgreSQL implementation of the relationship [Store].
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

// FindVip retrieves one directed relationship row.
func (t *pgTx) FindVip(ctx context.Context, senderID, receiverID string) (*Vip, error) {
	vip := &Vip{}
	err := t.q.QueryRow(ctx, queryFindVip, senderID, receiverID).Scan(
		&vip.VipID,
		&vip.SenderID,
		&vip.ReceiverID,
		&vip.Tag,
		&vip.Status,
		&vip.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find vip")
	}
	return vip, nil
}

// UpsertVip writes the row and reads back its stable identity columns.
func (t *pgTx) UpsertVip(ctx context.Context, vip *Vip) error {
	err := t.q.QueryRow(ctx, queryUpsertVip,
		vip.SenderID,
		vip.ReceiverID,
		vip.Tag,
		vip.Status,
		vip.CreatedAt,
	).Scan(&vip.VipID, &vip.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert vip")
	}
	return nil
}

// ListBySender retrieves one page of the sender's rows in insertion order.
func (t *pgTx) ListBySender(ctx context.Context, senderID string, limit, offset int) ([]Vip, error) {
	rows, err := t.q.Query(ctx, queryListBySender, senderID, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list vips by sender")
	}
	defer rows.Close()

	vips := make([]Vip, 0, limit)
	for rows.Next() {
		var vip Vip
		err := rows.Scan(
			&vip.VipID,
			&vip.SenderID,
			&vip.ReceiverID,
			&vip.Tag,
			&vip.Status,
			&vip.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan vip row")
		}
		vips = append(vips, vip)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate vip rows")
	}

	return vips, nil
}

// CountBySender returns the sender's total row count.
func (t *pgTx) CountBySender(ctx context.Context, senderID string) (int, error) {
	var count int
	if err := t.q.QueryRow(ctx, queryCountBySender, senderID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count vips by sender")
	}
	return count, nil
}
