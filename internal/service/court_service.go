package service

import (
	"context"

	"courtmap/internal/cache"
	"courtmap/internal/models"
	"courtmap/internal/observability"
	"courtmap/internal/repository"
	"courtmap/internal/validation"
)

// CourtService handles the canonical court records. Courts are mutated only
// by admin direct edits or by the suggestion review workflow.
type CourtService struct {
	courtRepo repository.CourtRepository
}

// NewCourtService returns a new CourtService.
func NewCourtService(courtRepo repository.CourtRepository) *CourtService {
	return &CourtService{courtRepo: courtRepo}
}

// CreateCourtInput is the input for creating a court.
type CreateCourtInput struct {
	Name           string
	Address        string
	City           string
	State          string
	Zip            string
	CourtType      string
	NumberOfCourts *int
	Surface        string
	Condition      string
	HittingWall    bool
	Lights         bool
	IsPublic       bool
	Parking        bool
	Latitude       float64
	Longitude      float64
}

func validateCourtInput(in CreateCourtInput) error {
	if err := validation.ValidateCourtName(in.Name); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateZip(in.Zip); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSurface(in.Surface); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCondition(in.Condition); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNumberOfCourts(in.NumberOfCourts); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// CreateCourt inserts a new court record.
func (s *CourtService) CreateCourt(ctx context.Context, in CreateCourtInput) (*models.Court, error) {
	if in.NumberOfCourts != nil && *in.NumberOfCourts == 0 {
		in.NumberOfCourts = nil
	}
	if err := validateCourtInput(in); err != nil {
		return nil, err
	}

	court := &models.Court{
		Name:           in.Name,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		Zip:            in.Zip,
		CourtType:      in.CourtType,
		NumberOfCourts: in.NumberOfCourts,
		Surface:        in.Surface,
		Condition:      in.Condition,
		HittingWall:    in.HittingWall,
		Lights:         in.Lights,
		IsPublic:       in.IsPublic,
		Parking:        in.Parking,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	}
	if err := s.courtRepo.Create(ctx, court); err != nil {
		return nil, err
	}
	return court, nil
}

// GetCourt returns one court.
func (s *CourtService) GetCourt(ctx context.Context, id uint) (*models.Court, error) {
	return s.courtRepo.GetByID(ctx, id)
}

// ListCourts returns courts narrowed by the filter. The first page of a
// plain or city-only listing is served through the cache; other filters and
// deeper pages go straight to the database.
func (s *CourtService) ListCourts(ctx context.Context, filter repository.CourtListFilter, limit, offset int) ([]models.Court, error) {
	cacheable := filter.State == "" && filter.Surface == "" && filter.CourtType == ""
	if offset != 0 || !cacheable {
		return s.courtRepo.List(ctx, filter, limit, offset)
	}

	var courts []models.Court
	key := cache.CourtListKey(filter.City, limit)
	err := cache.Aside(ctx, key, &courts, cache.CourtListTTL, func() error {
		observability.CacheRequests.WithLabelValues("courts:city", "miss").Inc()
		var fetchErr error
		courts, fetchErr = s.courtRepo.List(ctx, filter, limit, 0)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return courts, nil
}

// UpdateCourt applies an admin direct edit as a partial update.
func (s *CourtService) UpdateCourt(ctx context.Context, id uint, fields map[string]interface{}) (*models.Court, error) {
	if len(fields) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}
	for col := range fields {
		known := false
		for _, f := range models.SuggestionFields {
			if col == f {
				known = true
				break
			}
		}
		switch col {
		case "parking", "latitude", "longitude":
			known = true
		}
		if !known {
			return nil, models.NewValidationError("Unknown court field: " + col)
		}
	}
	if err := s.courtRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.courtRepo.GetByID(ctx, id)
}

// DeleteCourt removes a court and cascades removal of its reviews, photos and
// suggestions.
func (s *CourtService) DeleteCourt(ctx context.Context, id uint) error {
	return s.courtRepo.Delete(ctx, id)
}
