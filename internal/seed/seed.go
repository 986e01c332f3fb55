package seed

import (
	"fmt"
	"log"

	"courtmap/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumCourts   int
	ShouldClean bool
}

// Seed populates the database with test data: users, courts, reviews, photos,
// pending suggestions and a handful of open reports.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d courts...", opts.NumUsers, opts.NumCourts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d test users created", len(users))

	// One admin account with a stable login for dashboard testing
	admin, err := f.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@courtmap.dev"
		u.IsAdmin = true
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	users = append(users, admin)

	courts := make([]*models.Court, 0, opts.NumCourts)
	for i := 0; i < opts.NumCourts; i++ {
		court, err := f.CreateCourt()
		if err != nil {
			return fmt.Errorf("failed to create court: %w", err)
		}
		courts = append(courts, court)
	}
	log.Printf("%d courts created", len(courts))

	var reviewCount, photoCount, suggestionCount, reportCount int
	for i, court := range courts {
		// Spread content across users; each court gets a couple of reviews
		// and at most one pending suggestion.
		reviewer := users[i%len(users)]
		review, err := f.CreateReview(reviewer, court)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		reviewCount++

		uploader := users[(i+1)%len(users)]
		photo, err := f.CreatePhoto(uploader, court)
		if err != nil {
			return fmt.Errorf("failed to create photo: %w", err)
		}
		photoCount++

		if i%3 == 0 {
			submitter := users[(i+2)%len(users)]
			if _, err := f.CreateSuggestion(submitter, court); err != nil {
				return fmt.Errorf("failed to create suggestion: %w", err)
			}
			suggestionCount++
		}

		// A few open reports so the moderation dashboard has content.
		if i%7 == 0 {
			reporter := users[(i+3)%len(users)]
			if _, err := f.CreateReport(reporter, models.ReportTargetReview, review.ID, review.UserID); err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
			reportCount++
		} else if i%11 == 0 {
			reporter := users[(i+4)%len(users)]
			if _, err := f.CreateReport(reporter, models.ReportTargetPhoto, photo.ID, photo.UserID); err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
			reportCount++
		}
	}
	log.Printf("%d reviews, %d photos, %d suggestions, %d reports created",
		reviewCount, photoCount, suggestionCount, reportCount)

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE suggestion_field_decisions, edit_suggestions, reports, user_bans, court_photos, reviews, courts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
