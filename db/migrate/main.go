package main

import (
	"log"

	"github.com/onurcolak/termii-gateway/environments"
	"github.com/onurcolak/termii-gateway/pkg/database"
)

// Creates the dispatch log schema without starting the gateway.
func main() {
	cfg := environments.Load()

	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}
