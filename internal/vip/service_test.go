// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package vip_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-gg/arcadia/internal/platform/apperr"
	"github.com/arcadia-gg/arcadia/internal/platform/dberr"
	"github.com/arcadia-gg/arcadia/internal/player"
	"github.com/arcadia-gg/arcadia/internal/vip"
	"github.com/arcadia-gg/arcadia/pkg/pagination"
)

// Valid player identifiers for the reconciliation tests.
const (
	alice = "0197f231-554c-7001-8203-040506070809"
	bob   = "00010203-0405-4607-8809-0a0b0c0d0e0f"
)

// ── Test Doubles ─────────────────────────────────────────────────────────────

// memStore is an in-memory [vip.Store] mimicking the upsert semantics of the
// PostgreSQL implementation (stable VipID and CreatedAt across conflicts).
type memStore struct {
	rows   map[string]vip.Vip
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]vip.Vip)}
}

func rowKey(senderID, receiverID string) string {
	return senderID + "→" + receiverID
}

func (s *memStore) InTx(_ context.Context, fn func(tx vip.Tx) error) error {
	return fn(s)
}

func (s *memStore) FindVip(_ context.Context, senderID, receiverID string) (*vip.Vip, error) {
	row, ok := s.rows[rowKey(senderID, receiverID)]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &row, nil
}

func (s *memStore) UpsertVip(_ context.Context, row *vip.Vip) error {
	key := rowKey(row.SenderID, row.ReceiverID)
	if existing, ok := s.rows[key]; ok {
		row.VipID = existing.VipID
		row.CreatedAt = existing.CreatedAt
	} else {
		s.nextID++
		row.VipID = s.nextID
	}
	s.rows[key] = *row
	return nil
}

func (s *memStore) ListBySender(_ context.Context, senderID string, limit, offset int) ([]vip.Vip, error) {
	all := s.senderRows(senderID)
	if offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (s *memStore) CountBySender(_ context.Context, senderID string) (int, error) {
	return len(s.senderRows(senderID)), nil
}

func (s *memStore) senderRows(senderID string) []vip.Vip {
	var all []vip.Vip
	for id := int64(1); id <= s.nextID; id++ {
		for _, row := range s.rows {
			if row.VipID == id && row.SenderID == senderID {
				all = append(all, row)
			}
		}
	}
	return all
}

// memSessions maps connection identities straight to player sessions.
type memSessions struct {
	byConn map[string]string
}

func (m *memSessions) RequireSession(_ context.Context, callerID string) (*player.Session, error) {
	playerID, ok := m.byConn[callerID]
	if !ok {
		return nil, apperr.Unauthorized("Player session not found")
	}
	return &player.Session{SessionID: callerID, PlayerID: playerID, IsOnline: true}, nil
}

var testClock = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

func newTestService(store vip.Store) *vip.Service {
	sessions := &memSessions{byConn: map[string]string{
		"conn-alice": alice,
		"conn-bob":   bob,
	}}
	return vip.NewService(store, sessions, func() time.Time { return testClock })
}

// ── Reconciliation Protocol ──────────────────────────────────────────────────

/*
TestService_Request_PendingInvite verifies that a first request creates both
directed rows: the sender's invite and the receiver's pending mirror.
*/
func TestService_Request_PendingInvite(t *testing.T) {
	store := newMemStore()
	service := newTestService(store)

	row, err := service.Request(context.Background(), "conn-alice", bob, "⭐")
	require.NoError(t, err)

	assert.Equal(t, alice, row.SenderID)
	assert.Equal(t, bob, row.ReceiverID)
	assert.Equal(t, "⭐", row.Tag)
	assert.Equal(t, vip.StatusInviteSent, row.Status)
	assert.Equal(t, testClock, row.CreatedAt)

	mirror := store.rows[rowKey(bob, alice)]
	assert.Equal(t, vip.StatusInviteReceived, mirror.Status)
	assert.Empty(t, mirror.Tag, "the mirror row never inherits the sender's tag")
	assert.Len(t, store.rows, 2)
}

/*
TestService_Request_MutualBecomesFriends verifies that two players adding each
other converge on friends, in either order, with exactly two rows.
*/
func TestService_Request_MutualBecomesFriends(t *testing.T) {
	run := func(t *testing.T, first, second string, firstReceiver, secondReceiver string) {
		store := newMemStore()
		service := newTestService(store)

		_, err := service.Request(context.Background(), first, firstReceiver, "first-tag")
		require.NoError(t, err)
		_, err = service.Request(context.Background(), second, secondReceiver, "second-tag")
		require.NoError(t, err)

		require.Len(t, store.rows, 2)
		for _, row := range store.rows {
			assert.Equal(t, vip.StatusFriends, row.Status)
		}
	}

	t.Run("alice_then_bob", func(t *testing.T) {
		run(t, "conn-alice", "conn-bob", bob, alice)
	})
	t.Run("bob_then_alice", func(t *testing.T) {
		run(t, "conn-bob", "conn-alice", alice, bob)
	})
}

/*
TestService_Request_PromotionPreservesTags verifies that acceptance keeps each
player's own private tag.
*/
func TestService_Request_PromotionPreservesTags(t *testing.T) {
	store := newMemStore()
	service := newTestService(store)

	_, err := service.Request(context.Background(), "conn-alice", bob, "guild-mate")
	require.NoError(t, err)

	row, err := service.Request(context.Background(), "conn-bob", alice, "raid-lead")
	require.NoError(t, err)

	assert.Equal(t, vip.StatusFriends, row.Status)
	assert.Equal(t, "raid-lead", row.Tag)
	assert.Equal(t, "guild-mate", store.rows[rowKey(alice, bob)].Tag,
		"the accepting call must not overwrite the original sender's tag")
}

/*
TestService_Request_Idempotent verifies that repeating a request only
refreshes the sender's tag; identity columns and the mirror row are stable.
*/
func TestService_Request_Idempotent(t *testing.T) {
	store := newMemStore()
	service := newTestService(store)

	first, err := service.Request(context.Background(), "conn-alice", bob, "old-tag")
	require.NoError(t, err)

	second, err := service.Request(context.Background(), "conn-alice", bob, "new-tag")
	require.NoError(t, err)

	assert.Equal(t, first.VipID, second.VipID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "new-tag", second.Tag)
	assert.Equal(t, vip.StatusInviteSent, second.Status)
	assert.Len(t, store.rows, 2)
}

/*
TestService_Request_RetagAfterFriendship verifies that re-requesting an
established friendship keeps both rows friends and only changes the tag.
*/
func TestService_Request_RetagAfterFriendship(t *testing.T) {
	store := newMemStore()
	service := newTestService(store)

	_, err := service.Request(context.Background(), "conn-alice", bob, "guild-mate")
	require.NoError(t, err)
	_, err = service.Request(context.Background(), "conn-bob", alice, "raid-lead")
	require.NoError(t, err)

	row, err := service.Request(context.Background(), "conn-alice", bob, "bestie")
	require.NoError(t, err)

	assert.Equal(t, vip.StatusFriends, row.Status)
	assert.Equal(t, "bestie", row.Tag)
	assert.Equal(t, "raid-lead", store.rows[rowKey(bob, alice)].Tag)
	assert.Equal(t, vip.StatusFriends, store.rows[rowKey(bob, alice)].Status)
}

// ── Input Validation ─────────────────────────────────────────────────────────

/*
TestService_Request_Validation covers identifier and tag bound failures, and
that multiple bad fields surface in a single error.
*/
func TestService_Request_Validation(t *testing.T) {
	tests := []struct {
		name       string
		receiverID string
		tag        string
		wantFields []string
	}{
		{"malformed_receiver", "not-a-uuid", "", []string{"receiver_id"}},
		{"nil_receiver", "00000000-0000-0000-0000-000000000000", "", []string{"receiver_id"}},
		{"oversized_tag", bob, strings.Repeat("x", 33), []string{"tag"}},
		{"collects_all_failures", "not-a-uuid", strings.Repeat("x", 33), []string{"receiver_id", "tag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newMemStore())

			_, err := service.Request(context.Background(), "conn-alice", tt.receiverID, tt.tag)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			require.Len(t, ae.Details, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, ae.Details[i].Field)
			}
		})
	}
}

/*
TestService_Request_RequiresSession verifies the caller must be signed in.
*/
func TestService_Request_RequiresSession(t *testing.T) {
	service := newTestService(newMemStore())

	_, err := service.Request(context.Background(), "conn-ghost", bob, "")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// ── List Projection ──────────────────────────────────────────────────────────

/*
TestService_ListSent verifies caller scoping and pagination metadata.
*/
func TestService_ListSent(t *testing.T) {
	store := newMemStore()
	service := newTestService(store)

	_, err := service.Request(context.Background(), "conn-alice", bob, "⭐")
	require.NoError(t, err)

	t.Run("sender_scoped", func(t *testing.T) {
		vips, meta, err := service.ListSent(context.Background(), "conn-alice", pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)

		require.Len(t, vips, 1)
		assert.Equal(t, alice, vips[0].SenderID)
		assert.Equal(t, vip.StatusInviteSent, vips[0].Status)
		assert.Equal(t, 1, meta.Total)
		assert.Equal(t, 1, meta.TotalPages)
	})

	t.Run("mirror_visible_to_receiver", func(t *testing.T) {
		vips, meta, err := service.ListSent(context.Background(), "conn-bob", pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)

		require.Len(t, vips, 1)
		assert.Equal(t, bob, vips[0].SenderID)
		assert.Equal(t, vip.StatusInviteReceived, vips[0].Status)
		assert.Equal(t, 1, meta.Total)
	})

	t.Run("empty_page", func(t *testing.T) {
		vips, meta, err := service.ListSent(context.Background(), "conn-alice", pagination.Params{Page: 5, Limit: 20})
		require.NoError(t, err)
		assert.Empty(t, vips)
		assert.Equal(t, 1, meta.Total)
	})

	t.Run("requires_session", func(t *testing.T) {
		_, _, err := service.ListSent(context.Background(), "conn-ghost", pagination.Params{Page: 1, Limit: 20})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})
}
