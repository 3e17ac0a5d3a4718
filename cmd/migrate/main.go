package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"classic-tetris-api/config"
	"classic-tetris-api/migrations"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	settings := config.LoadSettings()
	logger, err := config.NewLogger(settings)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := config.ConnectDatabase(settings, logger)
	if err != nil {
		sugar.Fatalw("failed to connect database", "error", err)
	}

	migrator, err := migrations.NewMigrator(db, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize migrator", "error", err)
	}
	for _, migration := range migrations.GetScoreMigrations() {
		migrator.AddMigration(migration)
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch command := os.Args[1]; command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			sugar.Fatalw("migration failed", "error", err)
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			sugar.Fatalw("rollback failed", "error", err)
		}
	case "status":
		lines, err := migrator.Status()
		if err != nil {
			sugar.Fatalw("status failed", "error", err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migration batches (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
}
