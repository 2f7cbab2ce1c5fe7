// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package schema

// PlayerCardTable represents the 'player.card' table
type PlayerCardTable struct {
	Table       string
	PlayerID    string
	DisplayName string
	Avatar      string
}

// PlayerCard is the schema definition for player.card
var PlayerCard = PlayerCardTable{
	Table:       "player.card",
	PlayerID:    "playerid",
	DisplayName: "displayname",
	Avatar:      "avatar",
}

// Columns returns all standard column names
func (t PlayerCardTable) Columns() []string {
	return []string{
		t.PlayerID, t.DisplayName, t.Avatar,
	}
}
