// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package schema

// PlayerSessionTable represents the 'player.session' table
type PlayerSessionTable struct {
	Table     string
	SessionID string
	PlayerID  string
	IsOnline  string
}

// PlayerSession is the schema definition for player.session
var PlayerSession = PlayerSessionTable{
	Table:     "player.session",
	SessionID: "sessionid",
	PlayerID:  "playerid",
	IsOnline:  "isonline",
}

// Columns returns all standard column names
func (t PlayerSessionTable) Columns() []string {
	return []string{
		t.SessionID, t.PlayerID, t.IsOnline,
	}
}
