// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

// Package player owns connection sessions and player identity for Arcadia.
//
// # Architecture
//
// Entities in this file represent the "Truth" of the identity domain.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package player

import (
	"time"
)

// Session links an opaque connection identity to a player.
//
// # Rules
//   - SessionID is the caller's connection identity (the device token subject).
//   - PlayerID is assigned once, on first sign-in, and never changes.
//   - IsOnline tracks the connect/disconnect lifecycle.
type Session struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	IsOnline  bool   `json:"is_online"`
}

// Player is the private, owner-visible identity record.
//
// # Rules
//   - DisplayName is unique across all players (8..64 bytes).
//   - Avatar is an opaque client-side token (8..64 bytes).
//   - LastSignedOutAt is the Unix epoch until the first sign-out.
type Player struct {
	PlayerID        string    `json:"player_id"`
	DisplayName     string    `json:"display_name"`
	Avatar          string    `json:"avatar"`
	CreatedAt       time.Time `json:"created_at"`
	SignedInAt      time.Time `json:"signed_in_at"`
	LastSignedOutAt time.Time `json:"last_signed_out_at"`
}

// Card is the public projection of a player, visible to anyone.
//
// It is maintained write-through: every write to [Player] also writes the
// matching card in the same transaction, so the two can never diverge.
type Card struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// Card derives the public projection from the private record.
func (p *Player) Card() *Card {
	return &Card{
		PlayerID:    p.PlayerID,
		DisplayName: p.DisplayName,
		Avatar:      p.Avatar,
	}
}
