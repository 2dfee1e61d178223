package fanout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubenaguilar/fantasy-trends/internal/events"
)

func TestMarshalEventRoundTrip(t *testing.T) {
	evt := events.New(events.EventMarketRefresh, events.MarketRefreshEvent{
		Source:        "fresh",
		Players:       612,
		Rising:        240,
		Falling:       198,
		Stable:        174,
		AverageChange: 18250.5,
	})

	data, err := MarshalEvent(evt)
	require.NoError(t, err)

	got, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, evt.ID, got.ID)
	assert.Equal(t, evt.Type, got.Type)
	assert.True(t, evt.Timestamp.Equal(got.Timestamp))

	payload, ok := got.Payload.(events.MarketRefreshEvent)
	require.True(t, ok)
	assert.Equal(t, 612, payload.Players)
	assert.Equal(t, 18250.5, payload.AverageChange)
}

func TestMarshalEventRefreshFailed(t *testing.T) {
	evt := events.New(events.EventMarketRefreshFailed, events.RefreshFailedEvent{
		Error: "fetch market page: connection refused",
	})

	data, err := MarshalEvent(evt)
	require.NoError(t, err)

	got, err := UnmarshalEvent(data)
	require.NoError(t, err)
	payload, ok := got.Payload.(events.RefreshFailedEvent)
	require.True(t, ok)
	assert.Contains(t, payload.Error, "connection refused")
}

func TestUnmarshalEventUnknownType(t *testing.T) {
	_, err := UnmarshalEvent([]byte(`{"type":"mystery","ts":"2026-03-10T12:00:00Z","payload":{}}`))
	assert.Error(t, err)

	_, err = UnmarshalEvent([]byte(`not json`))
	assert.Error(t, err)
}
