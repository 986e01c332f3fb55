// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"courtmap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	surfaces   = []string{"Hard", "Clay", "Grass", "Asphalt", "Concrete", "Acrylic"}
	conditions = []string{"Excellent", "Good", "Fair", "Poor"}
	courtTypes = []string{"public park", "club", "school", "community center"}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seed users share the
// password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCourt constructs and persists a sample court.
func (f *Factory) CreateCourt(overrides ...func(*models.Court)) (*models.Court, error) {
	n := gofakeit.Number(1, 12)
	court := &models.Court{
		Name:           gofakeit.City() + " Tennis Courts",
		Address:        gofakeit.Street(),
		City:           gofakeit.City(),
		State:          gofakeit.StateAbr(),
		Zip:            gofakeit.Zip(),
		CourtType:      courtTypes[f.r.Intn(len(courtTypes))],
		NumberOfCourts: &n,
		Surface:        surfaces[f.r.Intn(len(surfaces))],
		Condition:      conditions[f.r.Intn(len(conditions))],
		HittingWall:    gofakeit.Bool(),
		Lights:         gofakeit.Bool(),
		IsPublic:       f.r.Intn(4) != 0,
		Parking:        gofakeit.Bool(),
		Latitude:       gofakeit.Latitude(),
		Longitude:      gofakeit.Longitude(),
	}

	for _, override := range overrides {
		override(court)
	}

	if err := f.db.Create(court).Error; err != nil {
		return nil, err
	}
	return court, nil
}

// CreateReview persists a review of the court by the user.
func (f *Factory) CreateReview(user *models.User, court *models.Court, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		CourtID: court.ID,
		UserID:  user.ID,
		Rating:  gofakeit.Number(1, 5),
		Comment: gofakeit.Paragraph(1, 2, 8, " "),
	}

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreatePhoto persists a photo record pointing at a placeholder image. No
// object-storage upload happens for seed data.
func (f *Factory) CreatePhoto(user *models.User, court *models.Court, overrides ...func(*models.CourtPhoto)) (*models.CourtPhoto, error) {
	seedID := gofakeit.UUID()
	photo := &models.CourtPhoto{
		CourtID:   court.ID,
		UserID:    user.ID,
		ObjectKey: fmt.Sprintf("court-photos/%d/%s.jpg", court.ID, seedID),
		URL:       fmt.Sprintf("https://picsum.photos/seed/%s/800/600", seedID),
		Caption:   gofakeit.Sentence(6),
	}

	for _, override := range overrides {
		override(photo)
	}

	if err := f.db.Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// CreateSuggestion persists a pending edit suggestion proposing a surface
// change for the court.
func (f *Factory) CreateSuggestion(user *models.User, court *models.Court, overrides ...func(*models.EditSuggestion)) (*models.EditSuggestion, error) {
	surface := surfaces[f.r.Intn(len(surfaces))]
	suggestion := &models.EditSuggestion{
		CourtID:             court.ID,
		SubmittedByUserID:   user.ID,
		SubmittedByUserName: user.Username,
		SuggestedSurface:    &surface,
		Reason:              "Surface looks wrong: " + gofakeit.Sentence(5),
		Status:              models.SuggestionStatusPending,
	}

	for _, override := range overrides {
		override(suggestion)
	}

	if err := f.db.Create(suggestion).Error; err != nil {
		return nil, err
	}
	return suggestion, nil
}

// CreateReport persists an open report against the given target.
func (f *Factory) CreateReport(reporter *models.User, targetType models.ReportTargetType, targetID uint, ownerID uint, overrides ...func(*models.Report)) (*models.Report, error) {
	report := &models.Report{
		ReporterID:     reporter.ID,
		TargetType:     targetType,
		TargetID:       targetID,
		ReportedUserID: &ownerID,
		Reason:         gofakeit.Sentence(4),
		Status:         models.ReportStatusOpen,
	}

	for _, override := range overrides {
		override(report)
	}

	if err := f.db.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}
