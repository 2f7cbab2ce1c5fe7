// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package player

import (
	"context"
)

// Tx is the data access contract for sessions, players, and cards.
//
// # Review Process
//
// This interface is placed in a separate file from player.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation for Arcadia is PostgreSQL ([PostgresStore]).
// Service tests use an in-memory fake.
type Tx interface {
	// FindSession returns the session with the given connection identity.
	//
	// Returns [dberr.ErrNotFound] if the session does not exist.
	FindSession(ctx context.Context, sessionID string) (*Session, error)

	// UpsertSession inserts the session or overwrites it in place.
	UpsertSession(ctx context.Context, session *Session) error

	// FindPlayer returns the private record with the given player ID.
	//
	// Returns [dberr.ErrNotFound] if the player does not exist.
	FindPlayer(ctx context.Context, playerID string) (*Player, error)

	// FindPlayerByDisplayName returns the player owning the given display name.
	//
	// Returns [dberr.ErrNotFound] if the name is available.
	FindPlayerByDisplayName(ctx context.Context, displayName string) (*Player, error)

	// UpsertPlayer inserts the player or overwrites its mutable columns.
	//
	// Returns [apperr.Conflict] if the display name is taken by another player.
	UpsertPlayer(ctx context.Context, player *Player) error

	// FindCard returns the public card with the given player ID.
	//
	// Returns [dberr.ErrNotFound] if the card does not exist.
	FindCard(ctx context.Context, playerID string) (*Card, error)

	// UpsertCard inserts the card or overwrites it in place.
	UpsertCard(ctx context.Context, card *Card) error
}

// Store is a [Tx] that can also open one atomically-committed unit of work.
//
// Direct (non-InTx) calls execute against the connection pool with
// per-statement atomicity, which is sufficient for single reads.
type Store interface {
	Tx

	// InTx runs fn inside one database transaction. A non-nil error from fn
	// rolls the whole unit of work back; classified [apperr] values survive
	// the boundary untouched.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Presence is the volatile online-flag mirror.
//
// # Contract
//
// Presence is best-effort by design: callers log failures and move on, the
// database remains the source of truth for session state.
type Presence interface {
	// SetOnline marks the player as currently connected.
	SetOnline(ctx context.Context, playerID string) error

	// SetOffline clears the player's connected flag.
	SetOffline(ctx context.Context, playerID string) error

	// IsOnline reports whether the player is currently connected.
	IsOnline(ctx context.Context, playerID string) (bool, error)
}
