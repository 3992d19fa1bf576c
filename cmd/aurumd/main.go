package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/aurum/internal/api/rest"
	"github.com/fortuna/aurum/internal/config"
	"github.com/fortuna/aurum/internal/store"
	"github.com/fortuna/aurum/internal/store/repository"
)

const (
	serviceName    = "aurumd"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Rookie Value Run Archive API", serviceName, serviceVersion)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.ArchiveDSN == "" {
		log.Fatalf("archive_dsn must be configured for %s", serviceName)
	}

	db, err := store.NewDatabase(cfg.ArchiveDSN)
	if err != nil {
		log.Fatalf("Failed to connect to archive database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to archive database")

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	server := rest.NewServer(cfg.APIPort, repository.NewRunRepository(db))
	go func() {
		log.Printf("✓ Results API listening on :%s", cfg.APIPort)
		if err := server.Start(); err != nil {
			log.Printf("Results API server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Results API shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
