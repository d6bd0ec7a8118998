package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lifedrop/database"
	"lifedrop/internal/utils"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/seed/)
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numDonors := seedCmd.Int("donors", utils.DefaultNumDonors, "Number of demo donors to create")

	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	switch os.Args[1] {
	case "seed":
		if err := seedCmd.Parse(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		if err := utils.SeedAdmin(database.DB); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
		if err := utils.SeedDonors(database.DB, *numDonors); err != nil {
			log.Fatalf("Failed to seed donors: %v", err)
		}
		log.Println("Seeding completed")
	case "clear":
		if err := clearCmd.Parse(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		if err := utils.ClearSeedData(database.DB); err != nil {
			log.Fatalf("Failed to clear seed data: %v", err)
		}
		log.Println("Seed data cleared")
	default:
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Usage:")
	fmt.Println("  seed [--donors N]   Create an admin account and N demo donors")
	fmt.Println("  clear               Remove all seeded rows")
}
