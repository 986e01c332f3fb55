package service

import (
	"context"
	"testing"

	"courtmap/internal/models"
	"courtmap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourt(t *testing.T) {
	t.Parallel()

	validInput := func() CreateCourtInput {
		return CreateCourtInput{
			Name:      "Riverside Park Courts",
			Address:   "100 Riverside Dr",
			City:      "Portland",
			State:     "OR",
			Zip:       "97201",
			Surface:   "Hard",
			Condition: "good",
			IsPublic:  true,
		}
	}

	t.Run("creates a court", func(t *testing.T) {
		t.Parallel()

		courts := noopCourtRepo()
		var created *models.Court
		courts.createFn = func(_ context.Context, court *models.Court) error {
			created = court
			return nil
		}
		svc := NewCourtService(courts)

		got, err := svc.CreateCourt(context.Background(), validInput())

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Riverside Park Courts", got.Name)
	})

	t.Run("zero number of courts stored as unknown", func(t *testing.T) {
		t.Parallel()

		courts := noopCourtRepo()
		var created *models.Court
		courts.createFn = func(_ context.Context, court *models.Court) error {
			created = court
			return nil
		}
		svc := NewCourtService(courts)

		in := validInput()
		in.NumberOfCourts = intPtr(0)

		_, err := svc.CreateCourt(context.Background(), in)

		require.NoError(t, err)
		assert.Nil(t, created.NumberOfCourts)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		svc := NewCourtService(noopCourtRepo())

		bad := []CreateCourtInput{}

		noName := validInput()
		noName.Name = ""
		bad = append(bad, noName)

		badSurface := validInput()
		badSurface.Surface = "lava"
		bad = append(bad, badSurface)

		badCondition := validInput()
		badCondition.Condition = "meh"
		bad = append(bad, badCondition)

		tooMany := validInput()
		tooMany.NumberOfCourts = intPtr(500)
		bad = append(bad, tooMany)

		for _, in := range bad {
			_, err := svc.CreateCourt(context.Background(), in)
			assertValidationError(t, err)
		}
	})
}

func TestListCourts(t *testing.T) {
	t.Parallel()

	t.Run("deep pages bypass the cache", func(t *testing.T) {
		t.Parallel()

		courts := noopCourtRepo()
		var gotOffset int
		courts.listFn = func(_ context.Context, _ repository.CourtListFilter, _, offset int) ([]models.Court, error) {
			gotOffset = offset
			return []models.Court{{ID: 1}}, nil
		}
		svc := NewCourtService(courts)

		out, err := svc.ListCourts(context.Background(), repository.CourtListFilter{City: "Portland"}, 20, 40)

		require.NoError(t, err)
		assert.Len(t, out, 1)
		assert.Equal(t, 40, gotOffset)
	})

	t.Run("first page fetches from the repository on cache miss", func(t *testing.T) {
		t.Parallel()

		courts := noopCourtRepo()
		courts.listFn = func(_ context.Context, filter repository.CourtListFilter, _, _ int) ([]models.Court, error) {
			assert.Equal(t, "Portland", filter.City)
			return []models.Court{{ID: 1, City: "Portland"}}, nil
		}
		svc := NewCourtService(courts)

		out, err := svc.ListCourts(context.Background(), repository.CourtListFilter{City: "Portland"}, 20, 0)

		require.NoError(t, err)
		require.Len(t, out, 1)
	})

	t.Run("attribute filters bypass the cache", func(t *testing.T) {
		t.Parallel()

		courts := noopCourtRepo()
		var got repository.CourtListFilter
		courts.listFn = func(_ context.Context, filter repository.CourtListFilter, _, _ int) ([]models.Court, error) {
			got = filter
			return nil, nil
		}
		svc := NewCourtService(courts)

		_, err := svc.ListCourts(context.Background(), repository.CourtListFilter{Surface: "Clay"}, 20, 0)

		require.NoError(t, err)
		assert.Equal(t, "Clay", got.Surface)
	})
}

func TestUpdateCourt(t *testing.T) {
	t.Parallel()

	t.Run("applies a partial update", func(t *testing.T) {
		t.Parallel()

		courts := noopCourtRepo()
		var updated map[string]interface{}
		courts.updateFieldsFn = func(_ context.Context, _ uint, fields map[string]interface{}) error {
			updated = fields
			return nil
		}
		svc := NewCourtService(courts)

		_, err := svc.UpdateCourt(context.Background(), 7, map[string]interface{}{
			"surface": "Clay",
			"parking": true,
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"surface": "Clay", "parking": true}, updated)
	})

	t.Run("rejects unknown columns", func(t *testing.T) {
		t.Parallel()

		svc := NewCourtService(noopCourtRepo())

		_, err := svc.UpdateCourt(context.Background(), 7, map[string]interface{}{"is_admin": true})

		assertValidationError(t, err)
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		t.Parallel()

		svc := NewCourtService(noopCourtRepo())

		_, err := svc.UpdateCourt(context.Background(), 7, map[string]interface{}{})

		assertValidationError(t, err)
	})
}
