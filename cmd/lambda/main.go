package main

import (
	"log"

	"lambda-handler-factory/internal/config"
	"lambda-handler-factory/internal/functions"
	"lambda-handler-factory/pkg/server"
)

func main() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.HandlerName == "" {
		log.Fatal("No handler selected, set HANDLER_NAME")
	}

	container, err := server.NewContainer(cfg, functions.Register)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	if err := container.Runtime.Start(cfg.HandlerName); err != nil {
		container.Logger.WithError(err).WithField("handler", cfg.HandlerName).Fatal("Failed to start handler")
	}
}
