package main

import (
	"log"

	"pingpal/internal/bot"
	"pingpal/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create and start bot
	pingBot, err := bot.New(cfg)
	if err != nil {
		log.Fatal("Failed to create bot:", err)
	}

	if err := pingBot.Start(); err != nil {
		log.Fatal("Failed to start bot:", err)
	}
}
