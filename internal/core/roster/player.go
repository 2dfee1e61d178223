package roster

import (
	"encoding/json"
	"fmt"
)

type Team struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Player is one roster entry from the fantasy league API. ID is the only
// authoritative identity; two records are the same player only when their
// ids match, never by name.
type Player struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Nickname    string  `json:"nickname"`
	PositionID  int     `json:"positionId"`
	Team        Team    `json:"team"`
	MarketValue int64   `json:"marketValue,omitempty"`
	Points      float64 `json:"points,omitempty"`
}

// DisplayName is the common name: nickname when present, full name otherwise.
func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Name
}

// envelope covers the wrapper shapes the league API responds with.
type envelope struct {
	Data     []Player `json:"data"`
	Elements []Player `json:"elements"`
}

// UnmarshalPlayers decodes a roster payload. The API sometimes returns a
// bare array and sometimes wraps it in {"data": [...]} or {"elements": [...]}.
func UnmarshalPlayers(data []byte) ([]Player, error) {
	var players []Player
	if err := json.Unmarshal(data, &players); err == nil {
		return players, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode roster payload: %w", err)
	}
	if len(env.Data) > 0 {
		return env.Data, nil
	}
	return env.Elements, nil
}
