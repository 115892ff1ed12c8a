package main

import (
	"log"

	"github.com/hareesh3232/Mock-test-interview/internal/bootstrap"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/config"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
