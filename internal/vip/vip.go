// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

// Package vip owns the bidirectional friend/VIP relationship graph.
//
// # Model
//
// A relationship between two players is stored as up to two directed rows, one
// per direction. Each row belongs to its sender: the tag is sender-private,
// and list reads are always scoped to the caller's own sender-side rows.
package vip

import (
	"time"
)

// Status is the lifecycle state of one directed relationship row.
type Status string

const (
	// StatusInviteSent marks a row whose owner added the other player first.
	StatusInviteSent Status = "invite_sent"

	// StatusInviteReceived marks the mirror row created on the other player's
	// behalf, pending their acceptance.
	StatusInviteReceived Status = "invite_received"

	// StatusFriends marks both rows once the two players added each other.
	StatusFriends Status = "friends"
)

// Vip is one directed relationship row.
//
// # Rules
//   - (SenderID, ReceiverID) is unique; VipID is a monotonic surrogate key.
//   - Tag is the sender's private annotation (up to 32 bytes), e.g. an emoji
//     shown beside the VIP's name. It is never exposed to the receiver.
//   - CreatedAt is set when the row first appears and survives all upserts.
type Vip struct {
	VipID      int64     `json:"vip_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Tag        string    `json:"tag"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
