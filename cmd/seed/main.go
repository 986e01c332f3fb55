// Command main runs the database seeder for Courtmap.
package main

import (
	"flag"
	"log"

	"courtmap/internal/config"
	"courtmap/internal/database"
	"courtmap/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numCourts := flag.Int("courts", 60, "Number of courts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d courts, clean=%v\n", *numUsers, *numCourts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(database.DB, seed.Options{
		NumUsers:    *numUsers,
		NumCourts:   *numCourts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Test users have the password: password123")
}
