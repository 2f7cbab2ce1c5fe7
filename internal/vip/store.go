// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package vip

import (
	"context"
)

// Tx is the data access contract for relationship rows.
//
// # Implementations
//
// The canonical implementation for Arcadia is PostgreSQL ([PostgresStore]).
// Service tests use an in-memory fake.
type Tx interface {
	// FindVip returns the directed row from senderID to receiverID.
	//
	// Returns [dberr.ErrNotFound] if no such row exists.
	FindVip(ctx context.Context, senderID, receiverID string) (*Vip, error)

	// UpsertVip inserts the row or overwrites its tag and status in place,
	// preserving VipID and CreatedAt. On insert the generated VipID is
	// written back into the entity.
	UpsertVip(ctx context.Context, vip *Vip) error

	// ListBySender returns the sender's rows ordered by VipID.
	ListBySender(ctx context.Context, senderID string, limit, offset int) ([]Vip, error)

	// CountBySender returns the sender's total row count for pagination.
	CountBySender(ctx context.Context, senderID string) (int, error)
}

// Store is a [Tx] that can also open one atomically-committed unit of work.
type Store interface {
	Tx

	// InTx runs fn inside one database transaction. A non-nil error from fn
	// rolls the whole unit of work back; classified [apperr] values survive
	// the boundary untouched.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
