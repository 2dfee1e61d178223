package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalPlayersBareArray(t *testing.T) {
	payload := `[
		{"id":"101","name":"Vinicius José Paixão","nickname":"Vinicius Jr.","positionId":4,
		 "team":{"id":"16","name":"Real Madrid"},"marketValue":23500000,"points":112.5},
		{"id":"102","name":"Pedro González López","nickname":"Pedri","positionId":3,
		 "team":{"id":"4","name":"FC Barcelona"}}
	]`

	players, err := UnmarshalPlayers([]byte(payload))
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "101", players[0].ID)
	assert.Equal(t, "Real Madrid", players[0].Team.Name)
	assert.Equal(t, int64(23500000), players[0].MarketValue)
	assert.Equal(t, 112.5, players[0].Points)
	assert.Equal(t, 3, players[1].PositionID)
}

func TestUnmarshalPlayersDataEnvelope(t *testing.T) {
	payload := `{"data":[{"id":"5","name":"Mikel Oyarzabal","nickname":"Oyarzabal","positionId":4,
		"team":{"name":"Real Sociedad"}}]}`

	players, err := UnmarshalPlayers([]byte(payload))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Mikel Oyarzabal", players[0].Name)
}

func TestUnmarshalPlayersElementsEnvelope(t *testing.T) {
	payload := `{"elements":[{"id":"7","name":"Unai Simón","positionId":1,
		"team":{"name":"Athletic Club"}}]}`

	players, err := UnmarshalPlayers([]byte(payload))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Unai Simón", players[0].Name)
}

func TestUnmarshalPlayersInvalid(t *testing.T) {
	_, err := UnmarshalPlayers([]byte(`"not a roster"`))
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	p := Player{Name: "Pedro González López", Nickname: "Pedri"}
	assert.Equal(t, "Pedri", p.DisplayName())

	p.Nickname = ""
	assert.Equal(t, "Pedro González López", p.DisplayName())
}
