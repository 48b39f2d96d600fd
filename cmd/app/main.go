package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (overrides CONFIG_PATH)")
	flag.Parse()
	if *configPath != "" {
		if err := os.Setenv("CONFIG_PATH", *configPath); err != nil {
			log.Fatalf("set config path: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("kundli: failed to wire application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("kundli: server stopped with error: %v", err)
	}
}
