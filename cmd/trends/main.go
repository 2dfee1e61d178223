package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rubenaguilar/fantasy-trends/internal/adapters/outbound/analytics_http"
	"github.com/rubenaguilar/fantasy-trends/internal/adapters/outbound/discord"
	"github.com/rubenaguilar/fantasy-trends/internal/config"
	"github.com/rubenaguilar/fantasy-trends/internal/core/names"
	"github.com/rubenaguilar/fantasy-trends/internal/core/trends"
	"github.com/rubenaguilar/fantasy-trends/internal/events"
	"github.com/rubenaguilar/fantasy-trends/internal/fanout"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting trends service")

	if cfg.AliasOverridesPath != "" {
		ov, err := config.LoadAliasOverrides(cfg.AliasOverridesPath)
		if err != nil {
			telemetry.Warnf("alias overrides: %v, using built-in tables", err)
		} else {
			names.Extend(ov.Players, ov.Teams, ov.Clubs)
			telemetry.Infof("alias overrides: %d players, %d teams, %d clubs",
				len(ov.Players), len(ov.Teams), len(ov.Clubs))
		}
	}

	bus := events.NewBus()

	// ── Discord notifications ───────────────────────────────────
	notifier := discord.NewNotifier(cfg.DiscordWebhookURL)
	if notifier.Enabled() {
		bus.Subscribe(events.EventMarketRefresh, func(evt events.Event) error {
			mr, ok := evt.Payload.(events.MarketRefreshEvent)
			if !ok {
				return nil
			}
			if err := notifier.MarketRefreshAlert(context.Background(),
				mr.Source, mr.Players, mr.Rising, mr.Falling, mr.Stable, mr.AverageChange); err != nil {
				telemetry.Warnf("discord: %v", err)
			}
			return nil
		})
		bus.Subscribe(events.EventMarketRefreshFailed, func(evt events.Event) error {
			rf, ok := evt.Payload.(events.RefreshFailedEvent)
			if !ok {
				return nil
			}
			if err := notifier.RefreshFailedAlert(context.Background(), rf.Error); err != nil {
				telemetry.Warnf("discord: %v", err)
			}
			return nil
		})
	}

	// ── Snapshot store ──────────────────────────────────────────
	snap, err := trends.OpenSnapshot(cfg.SnapshotDBPath)
	if err != nil {
		telemetry.Errorf("snapshot store: %v", err)
		os.Exit(1)
	}
	defer snap.Close()

	// ── Trend store ─────────────────────────────────────────────
	fetcher := analytics_http.NewClient(cfg.MarketURL)
	store := trends.NewStore(fetcher, snap, bus, cfg.CacheTTL)

	// ── Fanout server ───────────────────────────────────────────
	fanoutSrv := fanout.NewServer(bus)
	go func() {
		if err := fanoutSrv.ListenAndServe(cfg.FanoutPort); err != nil {
			telemetry.Errorf("fanout server: %v", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := store.Initialize(ctx)
	if !res.Success {
		// Keep running: the refresh loop retries, and lookups answer nil
		// until a fetch lands.
		telemetry.Warnf("initialize failed (%v), will retry on schedule", res.Err)
	} else {
		telemetry.Infof("initialized: %d records (source=%s)", res.PlayersCount, res.Source)
	}

	ticker := time.NewTicker(cfg.RefreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			telemetry.Infof("Shutting down")
			return
		case <-ticker.C:
			if !store.IsCacheStale() {
				continue
			}
			res := store.Refresh(ctx)
			if !res.Success {
				telemetry.Warnf("scheduled refresh failed: %v", res.Err)
			}
		}
	}
}
