// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package schema

// PlayerProfileTable represents the 'player.profile' table
type PlayerProfileTable struct {
	Table           string
	PlayerID        string
	DisplayName     string
	Avatar          string
	CreatedAt       string
	SignedInAt      string
	LastSignedOutAt string
}

// PlayerProfile is the schema definition for player.profile
var PlayerProfile = PlayerProfileTable{
	Table:           "player.profile",
	PlayerID:        "playerid",
	DisplayName:     "displayname",
	Avatar:          "avatar",
	CreatedAt:       "createdat",
	SignedInAt:      "signedinat",
	LastSignedOutAt: "lastsignedoutat",
}

// Columns returns all standard column names
func (t PlayerProfileTable) Columns() []string {
	return []string{
		t.PlayerID, t.DisplayName, t.Avatar, t.CreatedAt, t.SignedInAt, t.LastSignedOutAt,
	}
}
