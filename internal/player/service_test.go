// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package player_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-gg/arcadia/internal/platform/apperr"
	"github.com/arcadia-gg/arcadia/internal/platform/dberr"
	"github.com/arcadia-gg/arcadia/internal/player"
)

// ── Test Doubles ─────────────────────────────────────────────────────────────

// memStore is an in-memory [player.Store] for service-level state-machine tests.
type memStore struct {
	sessions map[string]player.Session
	players  map[string]player.Player
	cards    map[string]player.Card

	// allNamesTaken makes every display-name lookup hit, forcing the
	// provisioning fallback path.
	allNamesTaken bool

	// nameLookups counts FindPlayerByDisplayName calls, i.e. provisioning
	// draws.
	nameLookups int
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[string]player.Session),
		players:  make(map[string]player.Player),
		cards:    make(map[string]player.Card),
	}
}

func (s *memStore) InTx(_ context.Context, fn func(tx player.Tx) error) error {
	return fn(s)
}

func (s *memStore) FindSession(_ context.Context, sessionID string) (*player.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &session, nil
}

func (s *memStore) UpsertSession(_ context.Context, session *player.Session) error {
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *memStore) FindPlayer(_ context.Context, playerID string) (*player.Player, error) {
	record, ok := s.players[playerID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &record, nil
}

func (s *memStore) FindPlayerByDisplayName(_ context.Context, displayName string) (*player.Player, error) {
	s.nameLookups++
	if s.allNamesTaken {
		return &player.Player{DisplayName: displayName}, nil
	}
	for _, record := range s.players {
		if record.DisplayName == displayName {
			return &record, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (s *memStore) UpsertPlayer(_ context.Context, record *player.Player) error {
	for _, existing := range s.players {
		if existing.DisplayName == record.DisplayName && existing.PlayerID != record.PlayerID {
			return apperr.Conflict("Display name is already taken")
		}
	}
	s.players[record.PlayerID] = *record
	return nil
}

func (s *memStore) FindCard(_ context.Context, playerID string) (*player.Card, error) {
	card, ok := s.cards[playerID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &card, nil
}

func (s *memStore) UpsertCard(_ context.Context, card *player.Card) error {
	s.cards[card.PlayerID] = *card
	return nil
}

// memPresence records presence flips instead of talking to Redis.
type memPresence struct {
	online map[string]bool
}

func newMemPresence() *memPresence {
	return &memPresence{online: make(map[string]bool)}
}

func (p *memPresence) SetOnline(_ context.Context, playerID string) error {
	p.online[playerID] = true
	return nil
}

func (p *memPresence) SetOffline(_ context.Context, playerID string) error {
	delete(p.online, playerID)
	return nil
}

func (p *memPresence) IsOnline(_ context.Context, playerID string) (bool, error) {
	return p.online[playerID], nil
}

// seqSource yields 0, 1, 2, ... so name and identifier draws are deterministic.
type seqSource struct {
	next byte
}

func (s *seqSource) Byte() byte {
	b := s.next
	s.next++
	return b
}

var testClock = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

func newTestService(store player.Store, presence player.Presence) *player.Service {
	return player.NewService(store, presence, func() time.Time { return testClock }, &seqSource{})
}

// ── Session Lifecycle ────────────────────────────────────────────────────────

/*
TestService_SignIn_ProvisionsNewPlayer verifies that a first connect creates
the session, the player, and the public card in one pass.
*/
func TestService_SignIn_ProvisionsNewPlayer(t *testing.T) {
	store := newMemStore()
	presence := newMemPresence()
	service := newTestService(store, presence)

	session, err := service.SignIn(context.Background(), "conn-1")
	require.NoError(t, err)

	assert.Equal(t, "conn-1", session.SessionID)
	assert.True(t, session.IsOnline)
	require.NotEmpty(t, session.PlayerID)

	record, ok := store.players[session.PlayerID]
	require.True(t, ok, "player record must be provisioned")
	// The v7 player ID consumes bytes 0..9, so the name draws bytes 10..13:
	// color[10], adjective[11], coin(12)=plants, plant[13].
	assert.Equal(t, "Gray Bright Cherry", record.DisplayName)
	assert.Equal(t, 1, store.nameLookups, "an unused first draw is accepted immediately")
	assert.Equal(t, "default_avatar", record.Avatar)
	assert.Equal(t, testClock, record.CreatedAt)
	assert.Equal(t, time.Unix(0, 0).UTC(), record.LastSignedOutAt)

	card, ok := store.cards[session.PlayerID]
	require.True(t, ok, "card must be written through")
	assert.Equal(t, record.DisplayName, card.DisplayName)

	assert.True(t, presence.online[session.PlayerID])
}

/*
TestService_SignIn_Idempotent verifies that reconnecting reuses the player
identity instead of minting a new one.
*/
func TestService_SignIn_Idempotent(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, newMemPresence())

	first, err := service.SignIn(context.Background(), "conn-1")
	require.NoError(t, err)

	second, err := service.SignIn(context.Background(), "conn-1")
	require.NoError(t, err)

	assert.Equal(t, first.PlayerID, second.PlayerID)
	assert.True(t, second.IsOnline)
	assert.Len(t, store.players, 1)
	assert.Len(t, store.sessions, 1)
}

/*
TestService_SignIn_StampsExistingPlayer verifies that a reconnect refreshes
SignedInAt without touching the rest of the profile.
*/
func TestService_SignIn_StampsExistingPlayer(t *testing.T) {
	store := newMemStore()
	store.sessions["conn-1"] = player.Session{SessionID: "conn-1", PlayerID: "p-1", IsOnline: false}
	store.players["p-1"] = player.Player{
		PlayerID:    "p-1",
		DisplayName: "Jade Mystic Fern",
		Avatar:      "custom_avatar",
		SignedInAt:  testClock.Add(-time.Hour),
	}

	service := newTestService(store, newMemPresence())

	session, err := service.SignIn(context.Background(), "conn-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", session.PlayerID)

	record := store.players["p-1"]
	assert.Equal(t, testClock, record.SignedInAt)
	assert.Equal(t, "Jade Mystic Fern", record.DisplayName)
	assert.Equal(t, "custom_avatar", record.Avatar)
}

/*
TestService_SignOut_UnknownSession verifies the no-op contract: disconnect
hooks fire for connections that never signed in and must not fail.
*/
func TestService_SignOut_UnknownSession(t *testing.T) {
	store := newMemStore()
	presence := newMemPresence()
	service := newTestService(store, presence)

	err := service.SignOut(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, store.sessions)
	assert.Empty(t, presence.online)
}

/*
TestService_SignOut_FlipsOfflineAndStamps verifies the full disconnect path.
*/
func TestService_SignOut_FlipsOfflineAndStamps(t *testing.T) {
	store := newMemStore()
	presence := newMemPresence()
	service := newTestService(store, presence)

	session, err := service.SignIn(context.Background(), "conn-1")
	require.NoError(t, err)
	require.True(t, presence.online[session.PlayerID])

	err = service.SignOut(context.Background(), "conn-1")
	require.NoError(t, err)

	assert.False(t, store.sessions["conn-1"].IsOnline)
	assert.Equal(t, testClock, store.players[session.PlayerID].LastSignedOutAt)
	assert.False(t, presence.online[session.PlayerID])
}

// ── Display Name Provisioning ────────────────────────────────────────────────

/*
TestService_SignIn_NameFallback verifies that after twelve colliding draws the
service falls back to a plain identifier string instead of looping forever.
*/
func TestService_SignIn_NameFallback(t *testing.T) {
	store := newMemStore()
	store.allNamesTaken = true
	service := newTestService(store, newMemPresence())

	session, err := service.SignIn(context.Background(), "conn-1")
	require.NoError(t, err)

	record := store.players[session.PlayerID]
	assert.Regexp(t,
		`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
		record.DisplayName,
		"fallback name must be a v4 identifier",
	)
	assert.Equal(t, 12, store.nameLookups, "exactly twelve draws precede the fallback")
}

// ── Profile Upserts ──────────────────────────────────────────────────────────

/*
TestService_UpsertProfile covers validation bounds, fresh creation, in-place
update, and the session requirement.
*/
func TestService_UpsertProfile(t *testing.T) {
	const connectionID = "conn-1"

	seed := func() (*memStore, *player.Service) {
		store := newMemStore()
		store.sessions[connectionID] = player.Session{SessionID: connectionID, PlayerID: "p-1", IsOnline: true}
		return store, newTestService(store, newMemPresence())
	}

	t.Run("creates_fresh_player", func(t *testing.T) {
		store, service := seed()

		record, err := service.UpsertProfile(context.Background(), connectionID, "Neon Drifter", "avatar_008")
		require.NoError(t, err)

		assert.Equal(t, "p-1", record.PlayerID)
		assert.Equal(t, testClock, record.CreatedAt)
		assert.Equal(t, time.Unix(0, 0).UTC(), record.LastSignedOutAt)
		assert.Equal(t, "Neon Drifter", store.cards["p-1"].DisplayName)
	})

	t.Run("updates_in_place", func(t *testing.T) {
		store, service := seed()
		created := testClock.Add(-48 * time.Hour)
		store.players["p-1"] = player.Player{PlayerID: "p-1", DisplayName: "Old Name Here", Avatar: "avatar_001", CreatedAt: created}

		record, err := service.UpsertProfile(context.Background(), connectionID, "New Name Here", "avatar_002")
		require.NoError(t, err)

		assert.Equal(t, created, record.CreatedAt, "creation time must survive renames")
		assert.Equal(t, "New Name Here", store.players["p-1"].DisplayName)
		assert.Equal(t, "New Name Here", store.cards["p-1"].DisplayName)
	})

	t.Run("rejects_short_display_name", func(t *testing.T) {
		_, service := seed()

		_, err := service.UpsertProfile(context.Background(), connectionID, "short", "avatar_008")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Equal(t, "display_name", ae.Details[0].Field)
	})

	t.Run("rejects_long_avatar", func(t *testing.T) {
		_, service := seed()

		_, err := service.UpsertProfile(context.Background(), connectionID, "Neon Drifter", string(make([]byte, 65)))
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "avatar", ae.Details[0].Field)
	})

	t.Run("requires_session", func(t *testing.T) {
		service := newTestService(newMemStore(), newMemPresence())

		_, err := service.UpsertProfile(context.Background(), "ghost", "Neon Drifter", "avatar_008")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})

	t.Run("duplicate_name_conflicts", func(t *testing.T) {
		store, service := seed()
		store.players["p-2"] = player.Player{PlayerID: "p-2", DisplayName: "Taken Name Here"}

		_, err := service.UpsertProfile(context.Background(), connectionID, "Taken Name Here", "avatar_008")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})
}

// ── Reads ────────────────────────────────────────────────────────────────────

/*
TestService_Card covers the public projection and its presence flag.
*/
func TestService_Card(t *testing.T) {
	const playerID = "0197f231-554c-7001-8203-040506070809"

	store := newMemStore()
	store.cards[playerID] = player.Card{PlayerID: playerID, DisplayName: "Jade Mystic Fern", Avatar: "avatar_001"}
	presence := newMemPresence()
	service := newTestService(store, presence)

	t.Run("offline_by_default", func(t *testing.T) {
		view, err := service.Card(context.Background(), playerID)
		require.NoError(t, err)
		assert.Equal(t, "Jade Mystic Fern", view.DisplayName)
		assert.False(t, view.IsOnline)
	})

	t.Run("reflects_presence", func(t *testing.T) {
		require.NoError(t, presence.SetOnline(context.Background(), playerID))

		view, err := service.Card(context.Background(), playerID)
		require.NoError(t, err)
		assert.True(t, view.IsOnline)
	})

	t.Run("unknown_player", func(t *testing.T) {
		_, err := service.Card(context.Background(), "00010203-0405-4607-8809-0a0b0c0d0e0f")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("rejects_malformed_id", func(t *testing.T) {
		_, err := service.Card(context.Background(), "not-a-uuid")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestService_Me verifies the owner-scoped private read.
*/
func TestService_Me(t *testing.T) {
	store := newMemStore()
	store.sessions["conn-1"] = player.Session{SessionID: "conn-1", PlayerID: "p-1", IsOnline: true}
	store.players["p-1"] = player.Player{PlayerID: "p-1", DisplayName: "Jade Mystic Fern"}
	service := newTestService(store, newMemPresence())

	record, err := service.Me(context.Background(), "conn-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", record.PlayerID)

	// A session pointing at a missing player is an authorization failure.
	store.sessions["conn-2"] = player.Session{SessionID: "conn-2", PlayerID: "ghost"}
	_, err = service.Me(context.Background(), "conn-2")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

/*
TestService_RequirePlayer_RejectsForeignSession verifies that a session handed
in for a different caller identity is rejected.
*/
func TestService_RequirePlayer_RejectsForeignSession(t *testing.T) {
	store := newMemStore()
	store.players["p-1"] = player.Player{PlayerID: "p-1", DisplayName: "Jade Mystic Fern"}
	service := newTestService(store, newMemPresence())

	session := &player.Session{SessionID: "conn-1", PlayerID: "p-1", IsOnline: true}

	_, err := service.RequirePlayer(context.Background(), session, "conn-other")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	record, err := service.RequirePlayer(context.Background(), session, "conn-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", record.PlayerID)
}
