// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package schema

// PlayerVipTable represents the 'player.vip' table
type PlayerVipTable struct {
	Table      string
	VipID      string
	SenderID   string
	ReceiverID string
	Tag        string
	Status     string
	CreatedAt  string
}

// PlayerVip is the schema definition for player.vip
var PlayerVip = PlayerVipTable{
	Table:      "player.vip",
	VipID:      "vipid",
	SenderID:   "senderid",
	ReceiverID: "receiverid",
	Tag:        "tag",
	Status:     "status",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t PlayerVipTable) Columns() []string {
	return []string{
		t.VipID, t.SenderID, t.ReceiverID, t.Tag, t.Status, t.CreatedAt,
	}
}
