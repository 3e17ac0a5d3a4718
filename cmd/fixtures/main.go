package main

import (
	"fmt"
	"log"
	"os"

	"classic-tetris-api/config"
	"classic-tetris-api/fixtures"

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

	fixtureManager := fixtures.NewFixtures(db, sugar)

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch command := os.Args[1]; command {
	case "generate":
		if err := fixtureManager.GenerateTestData(); err != nil {
			sugar.Fatalw("failed to generate fixtures", "error", err)
		}
	case "clear":
		if err := fixtureManager.ClearAllData(); err != nil {
			sugar.Fatalw("failed to clear fixtures", "error", err)
		}
	case "regenerate":
		if err := fixtureManager.ClearAllData(); err != nil {
			sugar.Fatalw("failed to clear fixtures", "error", err)
		}
		if err := fixtureManager.GenerateTestData(); err != nil {
			sugar.Fatalw("failed to generate fixtures", "error", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Generate demo players and scores")
	fmt.Println("  go run ./cmd/fixtures clear       - Clear all fixture data")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear and regenerate all data")
}
