package main

import (
	"log"

	_ "time/tzdata"

	"github.com/warunggenz/pos-backend/config"
	"github.com/warunggenz/pos-backend/internal/app"

	postgresDriver "github.com/warunggenz/pos-backend/internal/infrastructure/database/postgres"
)

func main() {
	config := config.CreateNewConfig()
	db, err := postgresDriver.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	if err := postgresDriver.Migrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	server.Start()
}
