package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/readdaily/internal/server"
	"github.com/dmitrijs2005/readdaily/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
