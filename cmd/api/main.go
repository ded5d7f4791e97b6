package main

import (
	"context"
	"log"
	"os"

	"github.com/boxmate/backend/internal/blob"
	"github.com/boxmate/backend/internal/config"
	"github.com/boxmate/backend/internal/db"
	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/server"
	"github.com/joho/godotenv"
)

// Set via -ldflags at build time.
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

	store, err := blob.NewGCSStore(context.Background(), cfg.StorageBucket, cfg.StorageCredentialsFile)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer store.Close()

	srv := server.New(nil, store, cfg.CORSOrigins, gitSHA, buildTime)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Connect the database off the serving path; until it is up the API
	// answers 503 instead of failing to boot (Cloud Run cold starts).
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(&model.Item{}, &model.Ad{}, &model.CompanySettings{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
		log.Printf("database ready")
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
