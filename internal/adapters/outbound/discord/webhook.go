package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) Enabled() bool { return n.webhookURL != "" }

type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

func (n *Notifier) SendText(ctx context.Context, msg string) error {
	return n.send(ctx, webhookPayload{Content: msg})
}

func (n *Notifier) SendEmbed(ctx context.Context, embed Embed) error {
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return n.send(ctx, webhookPayload{Embeds: []Embed{embed}})
}

func (n *Notifier) send(ctx context.Context, payload webhookPayload) error {
	if !n.Enabled() {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 429 {
		telemetry.Warnf("discord: rate limited")
		return fmt.Errorf("discord rate limited")
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook: status=%d", resp.StatusCode)
	}

	return nil
}

// --- Convenience methods for common alert types ---

const (
	ColorGreen  = 0x2ECC71
	ColorRed    = 0xE74C3C
	ColorYellow = 0xF1C40F
	ColorBlue   = 0x3498DB
)

// MarketRefreshAlert summarizes a completed market scrape.
func (n *Notifier) MarketRefreshAlert(ctx context.Context, source string, players, rising, falling, stable int, avgChange float64) error {
	color := ColorBlue
	if source == "cached_fallback" {
		color = ColorYellow
	}
	return n.SendEmbed(ctx, Embed{
		Title: "Market Refresh",
		Color: color,
		Fields: []Field{
			{Name: "Source", Value: source, Inline: true},
			{Name: "Players", Value: fmt.Sprintf("%d", players), Inline: true},
			{Name: "Rising", Value: fmt.Sprintf("📈 %d", rising), Inline: true},
			{Name: "Falling", Value: fmt.Sprintf("📉 %d", falling), Inline: true},
			{Name: "Stable", Value: fmt.Sprintf("➡️ %d", stable), Inline: true},
			{Name: "Avg Change", Value: fmt.Sprintf("%.0f €", avgChange), Inline: true},
		},
	})
}

// RefreshFailedAlert reports a scrape that produced no usable data.
func (n *Notifier) RefreshFailedAlert(ctx context.Context, cause string) error {
	return n.SendEmbed(ctx, Embed{
		Title:       "Market Refresh Failed",
		Description: cause,
		Color:       ColorRed,
	})
}

// BigMoverAlert flags a single player whose value moved past the alert threshold.
func (n *Notifier) BigMoverAlert(ctx context.Context, player, team, position, changeText string, value int64, rising bool) error {
	color := ColorGreen
	title := "Big Riser"
	if !rising {
		color = ColorRed
		title = "Big Faller"
	}
	return n.SendEmbed(ctx, Embed{
		Title: title,
		Color: color,
		Fields: []Field{
			{Name: "Player", Value: player, Inline: true},
			{Name: "Team", Value: team, Inline: true},
			{Name: "Position", Value: position, Inline: true},
			{Name: "24h Change", Value: changeText, Inline: true},
			{Name: "Value", Value: fmt.Sprintf("%d €", value), Inline: true},
		},
	})
}
