package events

// MarketRefreshEvent is published after a successful refresh (or a snapshot
// load) so UI clients can re-render without polling.
type MarketRefreshEvent struct {
	Source        string  `json:"source"` // "fresh", "snapshot", "cached_fallback"
	Players       int     `json:"players"`
	Rising        int     `json:"rising"`
	Falling       int     `json:"falling"`
	Stable        int     `json:"stable"`
	AverageChange float64 `json:"average_change"`
}

// RefreshFailedEvent is published when a refresh produces no usable data:
// parse failures, or transport failures with no cache to fall back on.
// The UI shows its retry affordance off this.
type RefreshFailedEvent struct {
	Error string `json:"error"`
}
