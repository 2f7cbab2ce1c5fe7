// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package vip

import (
	"context"
	"time"

	"github.com/arcadia-gg/arcadia/internal/platform/apperr"
	"github.com/arcadia-gg/arcadia/internal/platform/constants"
	"github.com/arcadia-gg/arcadia/internal/platform/dberr"
	"github.com/arcadia-gg/arcadia/internal/platform/validate"
	"github.com/arcadia-gg/arcadia/internal/player"
	"github.com/arcadia-gg/arcadia/pkg/pagination"
)

// SessionResolver resolves a connection identity to its session.
//
// # Why an interface?
//
// The relationship engine only needs the caller's player ID; depending on this
// narrow contract instead of the whole player service keeps the two domains
// loosely coupled and lets tests stub the resolution.
type SessionResolver interface {
	RequireSession(ctx context.Context, callerID string) (*player.Session, error)
}

// Service implements the relationship reconciliation use cases.
type Service struct {
	store    Store
	sessions SessionResolver
	now      func() time.Time
}

// NewService constructs a [Service] with its dependencies.
func NewService(store Store, sessions SessionResolver, now func() time.Time) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
		now:      now,
	}
}

// Request records that the caller wants receiverID as a VIP and reconciles
// both directed rows.
//
// # Parameters
//   - ctx: Context for the database operation.
//   - callerID: The caller's connection identity.
//   - receiverID: The player being added.
//   - tag: The caller's private annotation (0..32 bytes, may be empty).
//
// # Returns
//   - The caller's own (sender-side) row after reconciliation.
//   - Returns [apperr.Unauthorized] if the caller has no session.
//
// # Decision Table
//
// Branching on whether the receiver already has a row pointing back:
//   - No row back: the receiver gets a pending invite_received row (empty
//     tag), the sender's row becomes invite_sent. Re-requests land here too
//     and simply refresh the sender's tag.
//   - Row back exists: both rows are promoted to friends. The receiver keeps
//     whatever tag they chose; only the sender's tag is taken from this call.
//
// The receiver's row is always written before the sender's, so a failure
// between the two writes can never leave an accepted invite without its
// pending counterpart.
//
// # Properties
//
// The operation is idempotent and commutative: repeating a request changes
// only the sender's tag, and two players adding each other converge on the
// same friends state in either order.
func (service *Service) Request(ctx context.Context, callerID, receiverID, tag string) (*Vip, error) {
	session, err := service.sessions.RequireSession(ctx, callerID)
	if err != nil {
		return nil, err
	}
	senderID := session.PlayerID

	// ── 1. Boundary Validation ────────────────────────────────────────────
	// All field failures are collected into one VALIDATION_ERROR so a client
	// sending a bad receiver and an oversized tag learns both at once.
	validation := (&validate.Validator{}).
		UUID("sender_id", senderID).
		UUID("receiver_id", receiverID).
		MaxLen("tag", tag, constants.VipTagMaxLen)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	// ── 2. Reconciliation ─────────────────────────────────────────────────
	var result *Vip
	err = service.store.InTx(ctx, func(tx Tx) error {
		senderRow, err := service.findRow(ctx, tx, senderID, receiverID)
		if err != nil {
			return err
		}
		receiverRow, err := service.findRow(ctx, tx, receiverID, senderID)
		if err != nil {
			return err
		}

		if receiverRow == nil {
			// Pending invite: mirror row first, then the sender's own row.
			if _, err := service.upsertRow(ctx, tx, nil, receiverID, senderID, "", StatusInviteReceived); err != nil {
				return err
			}
			result, err = service.upsertRow(ctx, tx, senderRow, senderID, receiverID, tag, StatusInviteSent)
			return err
		}

		// Mutual: promote both rows, preserving the receiver's own tag.
		if _, err := service.upsertRow(ctx, tx, receiverRow, receiverID, senderID, receiverRow.Tag, StatusFriends); err != nil {
			return err
		}
		result, err = service.upsertRow(ctx, tx, senderRow, senderID, receiverID, tag, StatusFriends)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListSent returns one page of the caller's own sender-side rows.
//
// Receiver-side rows (pending invites addressed to the caller) appear in the
// caller's list as well, as rows where the caller is the sender with status
// invite_received. There is deliberately no way to read another player's rows.
func (service *Service) ListSent(ctx context.Context, callerID string, params pagination.Params) ([]Vip, pagination.Meta, error) {
	session, err := service.sessions.RequireSession(ctx, callerID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.store.CountBySender(ctx, session.PlayerID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	vips, err := service.store.ListBySender(ctx, session.PlayerID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return vips, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// findRow fetches a directed row, mapping "not found" to a nil row.
func (service *Service) findRow(ctx context.Context, tx Tx, senderID, receiverID string) (*Vip, error) {
	row, err := tx.FindVip(ctx, senderID, receiverID)
	if dberr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// upsertRow mutates an existing row or constructs a fresh one, then persists it.
func (service *Service) upsertRow(ctx context.Context, tx Tx, existing *Vip, senderID, receiverID, tag string, status Status) (*Vip, error) {
	var row *Vip
	if existing != nil {
		copied := *existing
		copied.Tag = tag
		copied.Status = status
		row = &copied
	} else {
		row = &Vip{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Tag:        tag,
			Status:     status,
			CreatedAt:  service.now(),
		}
	}

	if err := tx.UpsertVip(ctx, row); err != nil {
		return nil, apperr.MapConflict(err, "failed to insert vip")
	}
	return row, nil
}
