package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"courtmap/internal/models"
	"courtmap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suggestionRepoStub is a stub for repository.SuggestionRepository.
type suggestionRepoStub struct {
	createFn                    func(context.Context, *models.EditSuggestion) error
	getByIDFn                   func(context.Context, uint) (*models.EditSuggestion, error)
	findPendingByCourtAndUserFn func(context.Context, uint, uint) (*models.EditSuggestion, error)
	listByCourtFn               func(context.Context, uint, models.SuggestionStatus, int, int) ([]models.EditSuggestion, error)
	listPendingFn               func(context.Context, int, int) ([]models.EditSuggestion, error)
	saveFn                      func(context.Context, *models.EditSuggestion) error
	deleteFn                    func(context.Context, uint) error
	saveFieldDecisionFn         func(context.Context, *models.SuggestionFieldDecision) error
}

func (s *suggestionRepoStub) Create(ctx context.Context, sg *models.EditSuggestion) error {
	return s.createFn(ctx, sg)
}
func (s *suggestionRepoStub) GetByID(ctx context.Context, id uint) (*models.EditSuggestion, error) {
	return s.getByIDFn(ctx, id)
}
func (s *suggestionRepoStub) FindPendingByCourtAndUser(ctx context.Context, courtID, userID uint) (*models.EditSuggestion, error) {
	return s.findPendingByCourtAndUserFn(ctx, courtID, userID)
}
func (s *suggestionRepoStub) ListByCourt(ctx context.Context, courtID uint, status models.SuggestionStatus, limit, offset int) ([]models.EditSuggestion, error) {
	return s.listByCourtFn(ctx, courtID, status, limit, offset)
}
func (s *suggestionRepoStub) ListPending(ctx context.Context, limit, offset int) ([]models.EditSuggestion, error) {
	return s.listPendingFn(ctx, limit, offset)
}
func (s *suggestionRepoStub) Save(ctx context.Context, sg *models.EditSuggestion) error {
	return s.saveFn(ctx, sg)
}
func (s *suggestionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *suggestionRepoStub) SaveFieldDecision(ctx context.Context, d *models.SuggestionFieldDecision) error {
	return s.saveFieldDecisionFn(ctx, d)
}
func noopSuggestionRepo() *suggestionRepoStub {
	return &suggestionRepoStub{
		createFn: func(_ context.Context, _ *models.EditSuggestion) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.EditSuggestion, error) {
			return &models.EditSuggestion{ID: id, Status: models.SuggestionStatusPending}, nil
		},
		findPendingByCourtAndUserFn: func(_ context.Context, _, _ uint) (*models.EditSuggestion, error) {
			return nil, nil
		},
		listByCourtFn: func(_ context.Context, _ uint, _ models.SuggestionStatus, _, _ int) ([]models.EditSuggestion, error) {
			return nil, nil
		},
		listPendingFn: func(_ context.Context, _, _ int) ([]models.EditSuggestion, error) { return nil, nil },
		saveFn:        func(_ context.Context, _ *models.EditSuggestion) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		saveFieldDecisionFn: func(_ context.Context, _ *models.SuggestionFieldDecision) error {
			return nil
		},
	}
}

// courtRepoStub is a stub for repository.CourtRepository.
type courtRepoStub struct {
	getByIDFn      func(context.Context, uint) (*models.Court, error)
	listFn         func(context.Context, repository.CourtListFilter, int, int) ([]models.Court, error)
	createFn       func(context.Context, *models.Court) error
	updateFieldsFn func(context.Context, uint, map[string]interface{}) error
	deleteFn       func(context.Context, uint) error
}

func (s *courtRepoStub) GetByID(ctx context.Context, id uint) (*models.Court, error) {
	return s.getByIDFn(ctx, id)
}
func (s *courtRepoStub) List(ctx context.Context, filter repository.CourtListFilter, limit, offset int) ([]models.Court, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *courtRepoStub) Create(ctx context.Context, court *models.Court) error {
	return s.createFn(ctx, court)
}
func (s *courtRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *courtRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCourtRepo() *courtRepoStub {
	return &courtRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Court, error) {
			return &models.Court{ID: id, Name: "Riverside Park", Surface: "Hard"}, nil
		},
		listFn: func(_ context.Context, _ repository.CourtListFilter, _, _ int) ([]models.Court, error) {
			return nil, nil
		},
		createFn:       func(_ context.Context, _ *models.Court) error { return nil },
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "player"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	createFn             func(context.Context, *models.Review) error
	getByIDFn            func(context.Context, uint) (*models.Review, error)
	findByCourtAndUserFn func(context.Context, uint, uint) (*models.Review, error)
	listByCourtFn        func(context.Context, uint, int, int) ([]models.Review, error)
	updateFn             func(context.Context, *models.Review) error
	deleteFn             func(context.Context, uint) error
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) FindByCourtAndUser(ctx context.Context, courtID, userID uint) (*models.Review, error) {
	return s.findByCourtAndUserFn(ctx, courtID, userID)
}
func (s *reviewRepoStub) ListByCourt(ctx context.Context, courtID uint, limit, offset int) ([]models.Review, error) {
	return s.listByCourtFn(ctx, courtID, limit, offset)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn: func(_ context.Context, _ *models.Review) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, CourtID: 1, UserID: 1, Rating: 4}, nil
		},
		findByCourtAndUserFn: func(_ context.Context, _, _ uint) (*models.Review, error) { return nil, nil },
		listByCourtFn:        func(_ context.Context, _ uint, _, _ int) ([]models.Review, error) { return nil, nil },
		updateFn:             func(_ context.Context, _ *models.Review) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
	}
}

// photoRepoStub is a stub for repository.PhotoRepository.
type photoRepoStub struct {
	createFn      func(context.Context, *models.CourtPhoto) error
	getByIDFn     func(context.Context, uint) (*models.CourtPhoto, error)
	listByCourtFn func(context.Context, uint, int, int) ([]models.CourtPhoto, error)
	deleteFn      func(context.Context, uint) error
}

func (s *photoRepoStub) Create(ctx context.Context, photo *models.CourtPhoto) error {
	return s.createFn(ctx, photo)
}
func (s *photoRepoStub) GetByID(ctx context.Context, id uint) (*models.CourtPhoto, error) {
	return s.getByIDFn(ctx, id)
}
func (s *photoRepoStub) ListByCourt(ctx context.Context, courtID uint, limit, offset int) ([]models.CourtPhoto, error) {
	return s.listByCourtFn(ctx, courtID, limit, offset)
}
func (s *photoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPhotoRepo() *photoRepoStub {
	return &photoRepoStub{
		createFn: func(_ context.Context, _ *models.CourtPhoto) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.CourtPhoto, error) {
			return &models.CourtPhoto{ID: id, CourtID: 1, UserID: 1, ObjectKey: "court-photos/1/a.jpg"}, nil
		},
		listByCourtFn: func(_ context.Context, _ uint, _, _ int) ([]models.CourtPhoto, error) { return nil, nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	createFn              func(context.Context, *models.Report) error
	getByIDFn             func(context.Context, uint) (*models.Report, error)
	listFn                func(context.Context, models.ReportStatus, models.ReportTargetType, int, int) ([]models.Report, error)
	saveFn                func(context.Context, *models.Report) error
	resolveAllForTargetFn func(context.Context, models.ReportTargetType, uint, models.ReportStatus, uint, string) (int64, error)
	countOpenForUserFn    func(context.Context, uint) (int64, error)
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.Report) error {
	return s.createFn(ctx, report)
}
func (s *reportRepoStub) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reportRepoStub) List(ctx context.Context, status models.ReportStatus, targetType models.ReportTargetType, limit, offset int) ([]models.Report, error) {
	return s.listFn(ctx, status, targetType, limit, offset)
}
func (s *reportRepoStub) Save(ctx context.Context, report *models.Report) error {
	return s.saveFn(ctx, report)
}
func (s *reportRepoStub) ResolveAllForTarget(ctx context.Context, targetType models.ReportTargetType, targetID uint, status models.ReportStatus, resolvedBy uint, note string) (int64, error) {
	return s.resolveAllForTargetFn(ctx, targetType, targetID, status, resolvedBy, note)
}
func (s *reportRepoStub) CountOpenForUser(ctx context.Context, userID uint) (int64, error) {
	return s.countOpenForUserFn(ctx, userID)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn: func(_ context.Context, _ *models.Report) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Report, error) {
			return &models.Report{ID: id, Status: models.ReportStatusOpen, TargetType: models.ReportTargetReview, TargetID: 1}, nil
		},
		listFn: func(_ context.Context, _ models.ReportStatus, _ models.ReportTargetType, _, _ int) ([]models.Report, error) {
			return nil, nil
		},
		saveFn: func(_ context.Context, _ *models.Report) error { return nil },
		resolveAllForTargetFn: func(_ context.Context, _ models.ReportTargetType, _ uint, _ models.ReportStatus, _ uint, _ string) (int64, error) {
			return 0, nil
		},
		countOpenForUserFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// banRepoStub is a stub for repository.BanRepository.
type banRepoStub struct {
	createFn           func(context.Context, *models.UserBan) error
	getByIDFn          func(context.Context, uint) (*models.UserBan, error)
	listActiveByUserFn func(context.Context, uint, time.Time) ([]models.UserBan, error)
	listByUserFn       func(context.Context, uint) ([]models.UserBan, error)
	listFn             func(context.Context, int, int) ([]models.UserBan, error)
	revokeFn           func(context.Context, uint, time.Time) error
}

func (s *banRepoStub) Create(ctx context.Context, ban *models.UserBan) error {
	return s.createFn(ctx, ban)
}
func (s *banRepoStub) GetByID(ctx context.Context, id uint) (*models.UserBan, error) {
	return s.getByIDFn(ctx, id)
}
func (s *banRepoStub) ListActiveByUser(ctx context.Context, userID uint, now time.Time) ([]models.UserBan, error) {
	return s.listActiveByUserFn(ctx, userID, now)
}
func (s *banRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.UserBan, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *banRepoStub) List(ctx context.Context, limit, offset int) ([]models.UserBan, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *banRepoStub) Revoke(ctx context.Context, id uint, now time.Time) error {
	return s.revokeFn(ctx, id, now)
}

func noopBanRepo() *banRepoStub {
	return &banRepoStub{
		createFn: func(_ context.Context, _ *models.UserBan) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.UserBan, error) {
			return &models.UserBan{ID: id, UserID: 1, Category: models.BanCategoryFull}, nil
		},
		listActiveByUserFn: func(_ context.Context, _ uint, _ time.Time) ([]models.UserBan, error) {
			return nil, nil
		},
		listByUserFn: func(_ context.Context, _ uint) ([]models.UserBan, error) { return nil, nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.UserBan, error) { return nil, nil },
		revokeFn:     func(_ context.Context, _ uint, _ time.Time) error { return nil },
	}
}

// banCheckerStub is a stub for the BanChecker gate.
type banCheckerStub struct {
	isBannedFn func(context.Context, uint, models.BanCategory) (bool, error)
}

func (s *banCheckerStub) IsBanned(ctx context.Context, userID uint, category models.BanCategory) (bool, error) {
	return s.isBannedFn(ctx, userID, category)
}

func neverBanned() *banCheckerStub {
	return &banCheckerStub{
		isBannedFn: func(_ context.Context, _ uint, _ models.BanCategory) (bool, error) { return false, nil },
	}
}

// photoStoreStub is a stub for storage.PhotoStorage.
type photoStoreStub struct {
	uploadFn       func(context.Context, string, string, io.Reader, int64) (string, error)
	deleteObjectFn func(context.Context, string) error
}

func (s *photoStoreStub) Upload(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (string, error) {
	return s.uploadFn(ctx, key, contentType, body, contentLength)
}
func (s *photoStoreStub) DeleteObject(ctx context.Context, key string) error {
	return s.deleteObjectFn(ctx, key)
}
func (s *photoStoreStub) PublicObjectURL(key string) string {
	return "https://example-bucket.s3.amazonaws.com/" + key
}

func noopPhotoStore() *photoStoreStub {
	return &photoStoreStub{
		uploadFn: func(_ context.Context, key, _ string, _ io.Reader, _ int64) (string, error) {
			return "https://example-bucket.s3.amazonaws.com/" + key, nil
		},
		deleteObjectFn: func(_ context.Context, _ string) error { return nil },
	}
}

func adminChecker(adminIDs ...uint) func(context.Context, uint) (bool, error) {
	return func(_ context.Context, userID uint) (bool, error) {
		for _, id := range adminIDs {
			if id == userID {
				return true, nil
			}
		}
		return false, nil
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "CONFLICT")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertBannedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "BANNED")
}
