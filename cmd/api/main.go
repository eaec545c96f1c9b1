package main

import (
	"log"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/bootstrap"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/config"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
