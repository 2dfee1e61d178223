package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/rubenaguilar/fantasy-trends/internal/adapters/outbound/league_http"
	"github.com/rubenaguilar/fantasy-trends/internal/config"
	"github.com/rubenaguilar/fantasy-trends/internal/core/match"
	"github.com/rubenaguilar/fantasy-trends/internal/core/trends"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

// One-shot resolver: maps a player name to its roster entry and market
// trend, straight from the snapshot. Handy for checking why a name does or
// doesn't match without booting the whole service.
func main() {
	name := flag.String("name", "", "player name as either source spells it")
	position := flag.String("position", "", "position id (1-4) or word, optional")
	team := flag.String("team", "", "club name, optional")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: lookup -name <player> [-position <pos>] [-team <club>]")
		os.Exit(2)
	}

	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	ctx := context.Background()

	snap, err := trends.OpenSnapshot(cfg.SnapshotDBPath)
	if err != nil {
		telemetry.Errorf("snapshot store: %v", err)
		os.Exit(1)
	}
	defer snap.Close()

	store := trends.NewStore(nil, snap, nil, cfg.CacheTTL)
	res := store.Initialize(ctx)
	if !res.Success {
		telemetry.Warnf("no cached market data (%v); trend lookup will miss", res.Err)
	}

	leagueClient := league_http.NewClient(cfg.LeagueBaseURL, cfg.LeagueToken)
	players, err := leagueClient.FetchPlayers(ctx)
	if err != nil {
		telemetry.Errorf("roster fetch: %v", err)
		os.Exit(1)
	}

	player := match.FindPlayer(*name, *position, players, *team)
	if player == nil {
		fmt.Printf("no roster match for %q\n", *name)
	} else {
		fmt.Printf("roster: %s (%s, id=%s) value %s €\n",
			player.DisplayName(), player.Team.Name, player.ID, humanize.Comma(player.MarketValue))
	}

	trend := store.PlayerTrend(*name, *position, *team)
	if trend == nil {
		fmt.Println("trend: no data")
		return
	}
	fmt.Printf("trend: %s [%s] %s %s (%.2f%%) value %s €\n",
		trend.OriginalName, trend.OriginalTeam, trend.Tendencia,
		trend.CambioTexto, trend.Porcentaje, humanize.Comma(trend.Valor))
}
