// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package player

import (
	"context"
	"log/slog"
	"time"

	"github.com/arcadia-gg/arcadia/internal/platform/apperr"
	"github.com/arcadia-gg/arcadia/internal/platform/constants"
	"github.com/arcadia-gg/arcadia/internal/platform/ctxutil"
	"github.com/arcadia-gg/arcadia/internal/platform/dberr"
	"github.com/arcadia-gg/arcadia/internal/platform/validate"
	"github.com/arcadia-gg/arcadia/pkg/uuidgen"
)

// displayNameAttempts is how many random draws are tried before giving up and
// falling back to a plain identifier string.
const displayNameAttempts = 12

// Service implements the session-lifecycle and identity use cases.
//
// # Architecture
//
// Every public operation runs as one atomically-committed unit of work via
// [Store.InTx]. The clock and randomness source are injected so tests can be
// fully deterministic.
type Service struct {
	store    Store
	presence Presence
	now      func() time.Time
	random   uuidgen.ByteSource
}

// NewService constructs a [Service] with its dependencies.
func NewService(store Store, presence Presence, now func() time.Time, random uuidgen.ByteSource) *Service {
	return &Service{
		store:    store,
		presence: presence,
		now:      now,
		random:   random,
	}
}

// SignIn establishes (or re-establishes) the caller's session.
//
// # Parameters
//   - ctx: Context for the database operation.
//   - sessionID: The caller's connection identity.
//
// # Returns
//   - The online session, carrying the caller's permanent player ID.
//
// # Flow
//  1. Reuse the existing session, or mint a fresh time-ordered player ID.
//  2. Flip the session online.
//  3. Stamp the player's sign-in time, provisioning the player if missing.
//
// # Business Rules
//   - Signing in an already-online session is a harmless no-op refresh.
//   - New sessions get a v7 (time-ordered) player ID to keep the profile
//     primary key index append-mostly.
func (service *Service) SignIn(ctx context.Context, sessionID string) (*Session, error) {
	var session *Session

	err := service.store.InTx(ctx, func(tx Tx) error {
		// ── 1. Locate or Mint the Session ─────────────────────────────────
		found, err := tx.FindSession(ctx, sessionID)
		switch {
		case err == nil:
			session = found
		case dberr.IsNotFound(err):
			session = &Session{
				SessionID: sessionID,
				PlayerID:  uuidgen.NewV7(service.now(), service.random),
			}
		default:
			return err
		}

		// ── 2. Flip Online ────────────────────────────────────────────────
		session.IsOnline = true
		if err := tx.UpsertSession(ctx, session); err != nil {
			return apperr.MapBadRequest(err, "failed to sign in player session")
		}

		// ── 3. Stamp or Provision the Player ──────────────────────────────
		player, err := tx.FindPlayer(ctx, session.PlayerID)
		switch {
		case err == nil:
			player.SignedInAt = service.now()
			return tx.UpsertPlayer(ctx, player)
		case dberr.IsNotFound(err):
			_, err = service.ensurePlayer(ctx, tx, session.PlayerID)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	service.markPresence(ctx, session.PlayerID, true)
	return session, nil
}

// SignOut flips the caller's session offline.
//
// # Business Rules
//   - Signing out an unknown session is a successful no-op: disconnect hooks
//     fire for connections that never signed in.
//   - The player's LastSignedOutAt is stamped if the player exists.
func (service *Service) SignOut(ctx context.Context, sessionID string) error {
	var playerID string

	err := service.store.InTx(ctx, func(tx Tx) error {
		session, err := tx.FindSession(ctx, sessionID)
		if dberr.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		session.IsOnline = false
		if err := tx.UpsertSession(ctx, session); err != nil {
			return apperr.MapBadRequest(err, "failed to sign out player session")
		}

		player, err := tx.FindPlayer(ctx, session.PlayerID)
		switch {
		case err == nil:
			player.LastSignedOutAt = service.now()
			if err := tx.UpsertPlayer(ctx, player); err != nil {
				return err
			}
		case !dberr.IsNotFound(err):
			return err
		}

		playerID = session.PlayerID
		return nil
	})
	if err != nil {
		return err
	}

	if playerID != "" {
		service.markPresence(ctx, playerID, false)
	}
	return nil
}

// UpsertProfile sets the caller's display name and avatar.
//
// # Parameters
//   - ctx: Context for the database operation.
//   - callerID: The caller's connection identity.
//   - displayName: The desired public name (8..64 bytes).
//   - avatar: The desired avatar token (8..64 bytes).
//
// # Returns
//   - The updated private player record.
//   - Returns [apperr.Unauthorized] if the caller has no session.
//   - Returns [apperr.Conflict] if the display name is already taken.
func (service *Service) UpsertProfile(ctx context.Context, callerID, displayName, avatar string) (*Player, error) {
	session, err := service.RequireSession(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return postgresTxValue(ctx, service.store, func(tx Tx) (*Player, error) {
		return service.upsertProfile(ctx, tx, session.PlayerID, displayName, avatar)
	})
}

// Session returns the caller's own session.
func (service *Service) Session(ctx context.Context, callerID string) (*Session, error) {
	return service.RequireSession(ctx, callerID)
}

// Me returns the caller's own private player record.
func (service *Service) Me(ctx context.Context, callerID string) (*Player, error) {
	session, err := service.RequireSession(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return service.RequirePlayer(ctx, session, callerID)
}

// CardView is a public card enriched with the live presence flag.
type CardView struct {
	Card
	IsOnline bool `json:"is_online"`
}

// Card returns any player's public card plus their live presence flag.
//
// # Returns
//   - Returns [apperr.NotFound] if no card exists for the player.
func (service *Service) Card(ctx context.Context, playerID string) (*CardView, error) {
	if err := validate.Identifier("playerId", playerID); err != nil {
		return nil, err
	}

	card, err := service.store.FindCard(ctx, playerID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Player card")
		}
		return nil, err
	}

	// Presence is best-effort: a mirror failure degrades to "offline".
	online, err := service.presence.IsOnline(ctx, playerID)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "presence_lookup_failed",
			slog.String("player_id", playerID),
			slog.Any("error", err),
		)
		online = false
	}

	return &CardView{Card: *card, IsOnline: online}, nil
}

// RequireSession resolves the caller's session or denies access.
//
// # Returns
//   - Returns [apperr.Unauthorized] if the caller has no session row.
func (service *Service) RequireSession(ctx context.Context, callerID string) (*Session, error) {
	session, err := service.store.FindSession(ctx, callerID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Player session not found")
		}
		return nil, err
	}
	return session, nil
}

// RequirePlayer resolves the session's player or denies access.
//
// The session must belong to the caller: a mismatch means a confused or
// hijacked session and is rejected outright. A session without a player row
// indicates a half-provisioned identity, which is likewise treated as an
// authorization failure rather than a data error.
func (service *Service) RequirePlayer(ctx context.Context, session *Session, callerID string) (*Player, error) {
	if session.SessionID != callerID {
		return nil, apperr.Unauthorized("Session does not belong to caller")
	}

	player, err := service.store.FindPlayer(ctx, session.PlayerID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Player not found")
		}
		return nil, err
	}
	return player, nil
}

// ── Provisioning ─────────────────────────────────────────────────────────────

// ensurePlayer returns the existing player or provisions a brand-new one with
// a generated unique display name and the default avatar. Idempotent.
func (service *Service) ensurePlayer(ctx context.Context, tx Tx, playerID string) (*Player, error) {
	player, err := tx.FindPlayer(ctx, playerID)
	if err == nil {
		return player, nil
	}
	if !dberr.IsNotFound(err) {
		return nil, err
	}

	displayName, err := service.uniqueDisplayName(ctx, tx)
	if err != nil {
		return nil, err
	}

	return service.upsertProfile(ctx, tx, playerID, displayName, constants.DefaultAvatar)
}

// uniqueDisplayName draws random names until one is unused.
//
// After [displayNameAttempts] collisions it falls back to a random identifier
// string: ugly, but guaranteed collision-free for practical purposes, and the
// player can rename via profile upsert at any time.
func (service *Service) uniqueDisplayName(ctx context.Context, tx Tx) (string, error) {
	for range displayNameAttempts {
		displayName := buildDisplayName(service.random)

		_, err := tx.FindPlayerByDisplayName(ctx, displayName)
		if dberr.IsNotFound(err) {
			return displayName, nil
		}
		if err != nil {
			return "", err
		}
	}

	return uuidgen.NewV4(service.random), nil
}

// upsertProfile validates and writes the player record and its public card
// within the caller's transaction.
func (service *Service) upsertProfile(ctx context.Context, tx Tx, playerID, displayName, avatar string) (*Player, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────
	if err := validate.Length("display_name", displayName, constants.DisplayNameMinLen, constants.DisplayNameMaxLen); err != nil {
		return nil, err
	}
	if err := validate.Length("avatar", avatar, constants.AvatarMinLen, constants.AvatarMaxLen); err != nil {
		return nil, err
	}

	// ── 2. Entity Construction ────────────────────────────────────────────
	player, err := tx.FindPlayer(ctx, playerID)
	switch {
	case err == nil:
		player.DisplayName = displayName
		player.Avatar = avatar
	case dberr.IsNotFound(err):
		now := service.now()
		player = &Player{
			PlayerID:        playerID,
			DisplayName:     displayName,
			Avatar:          avatar,
			CreatedAt:       now,
			SignedInAt:      now,
			LastSignedOutAt: time.Unix(0, 0).UTC(),
		}
	default:
		return nil, err
	}

	// ── 3. Persistence (Player + Write-Through Card) ──────────────────────
	if err := tx.UpsertPlayer(ctx, player); err != nil {
		return nil, apperr.MapConflict(err, "failed to insert or update player")
	}
	if err := tx.UpsertCard(ctx, player.Card()); err != nil {
		return nil, apperr.MapConflict(err, "failed to insert or update player card")
	}

	return player, nil
}

// markPresence mirrors the session flip into Redis, logging failures instead
// of surfacing them: the database commit already succeeded.
func (service *Service) markPresence(ctx context.Context, playerID string, online bool) {
	var err error
	if online {
		err = service.presence.SetOnline(ctx, playerID)
	} else {
		err = service.presence.SetOffline(ctx, playerID)
	}

	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "presence_mirror_failed",
			slog.String("player_id", playerID),
			slog.Bool("online", online),
			slog.Any("error", err),
		)
	}
}

// postgresTxValue adapts [Store.InTx] to operations that return a value.
func postgresTxValue[T any](ctx context.Context, store Store, fn func(tx Tx) (T, error)) (T, error) {
	var result T
	err := store.InTx(ctx, func(tx Tx) error {
		var innerErr error
		result, innerErr = fn(tx)
		return innerErr
	})
	return result, err
}
