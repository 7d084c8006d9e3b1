package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nileplate/backend/config"
	"github.com/nileplate/backend/internal/database"
	"github.com/nileplate/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "migrations", "Directory holding the SQL migration files")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.LogLevel, config.IsProduction())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := database.RunMigrations(db, *dir, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	logger.Info("schema up to date")
}
