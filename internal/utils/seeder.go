package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"profilematch/internal/models"
	"profilematch/internal/repository"
	"profilematch/internal/services"
)

const DefaultNumUsers = 100

var (
	seedFirstNames = []string{"Alex", "Sam", "Maria", "John", "Aisha", "Kenji", "Lena", "Omar", "Priya", "Tom"}
	seedLastNames  = []string{"Smith", "Garcia", "Tanaka", "Okafor", "Novak", "Silva", "Khan", "Meyer"}
	seedGenders    = []string{models.GenderMale, models.GenderFemale, models.GenderOther}
	seedInterests  = []string{"hiking", "music", "art", "cooking", "travel", "reading", "gaming", "yoga", "cinema", "football"}
)

// SeedOptions controls the sample profiles SeedUsers creates.
type SeedOptions struct {
	Count       int
	City        string
	EmailPrefix string
	Seed        int64
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Created    int
	Duplicates int
}

// SeedUsers registers sample profiles through the user service so the same
// uniqueness rules apply as for API clients. Emails already registered are
// counted and skipped.
func SeedUsers(ctx context.Context, svc services.UserService, opts SeedOptions) (SeedResult, error) {
	var result SeedResult
	if opts.Count <= 0 {
		return result, fmt.Errorf("count must be positive, got %d", opts.Count)
	}
	if opts.EmailPrefix == "" {
		opts.EmailPrefix = "testuser"
	}

	r := rand.New(rand.NewSource(opts.Seed))
	for i := 1; i <= opts.Count; i++ {
		input := sampleProfile(r, i, opts)

		if _, err := svc.CreateUser(ctx, input); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				result.Duplicates++
				continue
			}
			return result, fmt.Errorf("seed user %s: %w", input.Email, err)
		}
		result.Created++

		if i%1000 == 0 {
			log.Printf("Seeded %d/%d users", i, opts.Count)
		}
	}

	log.Printf("Seeding finished: created=%d duplicates=%d", result.Created, result.Duplicates)
	return result, nil
}

func sampleProfile(r *rand.Rand, index int, opts SeedOptions) models.CreateUserInput {
	city := opts.City
	if city == "" {
		city = "Springfield"
	}

	return models.CreateUserInput{
		Name:      seedFirstNames[r.Intn(len(seedFirstNames))] + " " + seedLastNames[r.Intn(len(seedLastNames))],
		Age:       18 + r.Intn(83),
		Gender:    seedGenders[r.Intn(len(seedGenders))],
		Email:     fmt.Sprintf("%s%d@example.com", strings.ToLower(opts.EmailPrefix), index),
		City:      city,
		Interests: sampleInterests(r),
	}
}

func sampleInterests(r *rand.Rand) []string {
	n := 1 + r.Intn(4)
	picked := r.Perm(len(seedInterests))[:n]

	interests := make([]string, 0, n)
	for _, idx := range picked {
		interests = append(interests, seedInterests[idx])
	}
	return interests
}

// CheckForDuplicateEmails reports which of emails are already registered by
// any profile, active or deactivated.
func CheckForDuplicateEmails(ctx context.Context, repo repository.UserRepository, emails []string) ([]string, error) {
	var taken []string
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}

		exists, err := repo.EmailExists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email %s: %w", email, err)
		}
		if exists {
			log.Printf("Email %s already exists in the database", email)
			taken = append(taken, email)
		}
	}
	return taken, nil
}
