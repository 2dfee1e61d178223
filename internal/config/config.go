package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Fantasy league API (roster source)
	LeagueBaseURL string
	LeagueToken   string

	// Market analytics page (trend source)
	MarketURL string

	// Trend cache
	SnapshotDBPath string
	CacheTTL       time.Duration
	RefreshEvery   time.Duration

	// Alias overrides (player/team alias tables)
	AliasOverridesPath string

	// Fanout
	FanoutPort int

	// Notifications
	DiscordWebhookURL string

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LeagueBaseURL: envStr("LEAGUE_API_BASE_URL", "https://api-fantasy.llt-services.com"),
		LeagueToken:   envStr("LEAGUE_API_TOKEN", ""),

		MarketURL: envStr("MARKET_ANALYTICS_URL", "https://www.futbolfantasy.com/analytics/laliga-fantasy/mercado"),

		SnapshotDBPath: envStr("SNAPSHOT_DB_PATH", "data/market_trends.db"),

		// Scraped values change once per day; anything younger than a day is
		// served from the snapshot without touching the network.
		CacheTTL:     time.Duration(envInt("CACHE_TTL_HOURS", 24)) * time.Hour,
		RefreshEvery: time.Duration(envInt("REFRESH_INTERVAL_MIN", 60)) * time.Minute,

		AliasOverridesPath: envStr("ALIAS_OVERRIDES_PATH", ""),

		FanoutPort: envInt("FANOUT_PORT", 8791),

		DiscordWebhookURL: envStr("DISCORD_WEBHOOK_URL", ""),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
