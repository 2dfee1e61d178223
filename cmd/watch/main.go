package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rubenaguilar/fantasy-trends/internal/events"
	"github.com/rubenaguilar/fantasy-trends/internal/fanout"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

// Tails the fanout stream: prints every refresh the trends service
// announces. Useful when checking that the desktop app would be notified.
func main() {
	addr := flag.String("addr", "localhost:8791", "fanout server host:port")
	flag.Parse()

	telemetry.Init(telemetry.ParseLogLevel("info"))

	bus := events.NewBus()
	bus.SubscribeAll(printEvent)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fanout.NewClient(*addr, bus)
	client.ConnectWithRetry(ctx)
}

func printEvent(evt events.Event) error {
	switch p := evt.Payload.(type) {
	case events.MarketRefreshEvent:
		fmt.Printf("[%s] %s: %d players (%d up / %d down / %d flat), avg %+.0f\n",
			evt.Timestamp.Format("15:04:05"), p.Source,
			p.Players, p.Rising, p.Falling, p.Stable, p.AverageChange)
	case events.RefreshFailedEvent:
		fmt.Printf("[%s] refresh failed: %s\n", evt.Timestamp.Format("15:04:05"), p.Error)
	}
	return nil
}
