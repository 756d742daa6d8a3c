package main

import (
	"context"
	"log"

	"github.com/webdevreplits/azure-01/internal/app"
	"github.com/webdevreplits/azure-01/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
