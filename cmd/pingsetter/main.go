// pingsetter pushes one max ping update to CRCON and exits. It is meant to
// be run from an external scheduler (cron, systemd timer); it never retries,
// and a failure is reported through the exit status.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"pingpal/internal/config"
	"pingpal/internal/crcon"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	client := crcon.New(cfg.GetCRCONAPIURL(), cfg.GetCRCONAPIToken())
	ping := cfg.GetScheduledPing()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := client.SetMaxPing(ctx, ping); err != nil {
		cfg.Logger.Errorf("failed to set max ping to %dms: %v", ping, err)
		os.Exit(1)
	}
	cfg.Logger.Infof("set max ping autokick to %dms", ping)
}
