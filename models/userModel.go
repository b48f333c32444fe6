package models

// Submitter identifies who placed an order. Hosts fill it in when the patron is known.
type Submitter struct {
	PlayerID   *int    `json:"playerId,omitempty"`
	PlayerName *string `json:"playerName,omitempty"`
}

func (s Submitter) clone() Submitter {
	var c Submitter
	if s.PlayerID != nil {
		id := *s.PlayerID
		c.PlayerID = &id
	}
	if s.PlayerName != nil {
		name := *s.PlayerName
		c.PlayerName = &name
	}
	return c
}
