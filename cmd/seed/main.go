package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"profilematch/config"
	"profilematch/database"
	"profilematch/internal/events"
	"profilematch/internal/matching"
	"profilematch/internal/repository"
	"profilematch/internal/services"
	"profilematch/internal/utils"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numUsers := seedCmd.Int("users", utils.DefaultNumUsers, "Number of sample users to create")
	city := seedCmd.String("city", "Springfield", "City assigned to every sample user")
	prefix := seedCmd.String("prefix", "testuser", "Email local-part prefix")
	randSeed := seedCmd.Int64("seed", 1, "Random seed for sample data")

	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	emails := checkCmd.String("emails", "", "Comma separated emails to check")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.ConnectDatabase(cfg.Database, cfg.App.Name+"-seed")
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewUserRepository(db)

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])

		svc := services.NewUserService(repo, matching.NewEngine(), events.Nop)
		result, err := utils.SeedUsers(ctx, svc, utils.SeedOptions{
			Count:       *numUsers,
			City:        *city,
			EmailPrefix: *prefix,
			Seed:        *randSeed,
		})
		if err != nil {
			log.Fatalf("Error seeding users: %v", err)
		}
		fmt.Printf("Created %d users, skipped %d duplicates\n", result.Created, result.Duplicates)

	case "check":
		checkCmd.Parse(os.Args[2:])
		if *emails == "" {
			log.Fatal("check requires -emails")
		}

		taken, err := utils.CheckForDuplicateEmails(ctx, repo, strings.Split(*emails, ","))
		if err != nil {
			log.Fatalf("Error checking emails: %v", err)
		}
		if len(taken) == 0 {
			fmt.Println("No registered emails found")
			return
		}
		fmt.Printf("Already registered: %s\n", strings.Join(taken, ", "))

	default:
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Usage:")
	fmt.Println("  seed seed  [-users N] [-city NAME] [-prefix testuser] [-seed 1]")
	fmt.Println("  seed check -emails a@example.com,b@example.com")
}
