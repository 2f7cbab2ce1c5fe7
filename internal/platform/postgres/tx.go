// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithinTx runs fn inside a single database transaction.
//
// Every public operation in Arcadia is one atomically-committed unit of work:
// all reads and writes issued through the provided [pgx.Tx] either commit
// together or roll back together. Callers never manage transaction handles
// themselves — this is the only begin/commit/rollback scope in the codebase.
//
// If fn returns an error the transaction is rolled back and the error is
// returned unchanged, so classified [apperr] values survive the boundary.
func WithinTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, pool, fn)
}
