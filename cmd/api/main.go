package main

import (
	"log"

	"github.com/ecotrade/marketplace/internal/config"
	"github.com/ecotrade/marketplace/internal/db"
	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/server"
	"github.com/joho/godotenv"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	srv := server.New(nil, cfg, gitSHA, buildTime)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Fatalf("db connect error: %v", err)
		}
		if err := conn.AutoMigrate(
			&model.User{},
			&model.Material{},
			&model.Post{},
			&model.Transaction{},
			&model.Chat{},
			&model.Message{},
		); err != nil {
			log.Fatalf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
		log.Printf("database ready")
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
