// Package service implements the business logic of the court directory.
package service

import (
	"context"
	"fmt"

	"courtmap/internal/models"
	"courtmap/internal/observability"
	"courtmap/internal/repository"
	"courtmap/internal/validation"
)

// BanChecker gates content submission on active bans.
type BanChecker interface {
	IsBanned(ctx context.Context, userID uint, category models.BanCategory) (bool, error)
}

// SuggestionService implements the court edit-suggestion workflow: submission,
// submitter edits, and reviewer decisions at whole-suggestion or single-field
// granularity.
type SuggestionService struct {
	suggestionRepo repository.SuggestionRepository
	courtRepo      repository.CourtRepository
	userRepo       repository.UserRepository
	bans           BanChecker
}

// NewSuggestionService returns a new SuggestionService.
func NewSuggestionService(
	suggestionRepo repository.SuggestionRepository,
	courtRepo repository.CourtRepository,
	userRepo repository.UserRepository,
	bans BanChecker,
) *SuggestionService {
	return &SuggestionService{
		suggestionRepo: suggestionRepo,
		courtRepo:      courtRepo,
		userRepo:       userRepo,
		bans:           bans,
	}
}

// SuggestedFieldsInput carries the optional proposed values for a suggestion.
// A nil pointer means "no change proposed for this field".
type SuggestedFieldsInput struct {
	Name           *string
	Address        *string
	City           *string
	State          *string
	Zip            *string
	CourtType      *string
	NumberOfCourts *int
	Surface        *string
	Condition      *string
	HittingWall    *bool
	Lights         *bool
	IsPublic       *bool
}

// SubmitSuggestionInput is the input for creating a new suggestion.
type SubmitSuggestionInput struct {
	CourtID     uint
	SubmitterID uint
	Reason      string
	Fields      SuggestedFieldsInput
}

// UpdateSuggestionInput is the input for a submitter editing a pending suggestion.
type UpdateSuggestionInput struct {
	SuggestionID uint
	CallerID     uint
	Reason       *string
	Fields       SuggestedFieldsInput
}

// ReviewSuggestionInput is the input for a reviewer decision. Field empty
// means the decision resolves the whole suggestion.
type ReviewSuggestionInput struct {
	SuggestionID uint
	ReviewerID   uint
	Decision     models.SuggestionStatus
	ReviewNote   string
	Field        string
}

// ReviewResult is the outcome of a review decision: the suggestion in its new
// state and the court after any approved fields were merged in.
type ReviewResult struct {
	Suggestion *models.EditSuggestion `json:"suggestion"`
	Court      *models.Court          `json:"court"`
}

// normalizeFields turns a zero number-of-courts into "unknown" before
// validation, so blank or zero inputs never surface as errors or get stored.
func normalizeFields(in *SuggestedFieldsInput) {
	if in.NumberOfCourts != nil && *in.NumberOfCourts == 0 {
		in.NumberOfCourts = nil
	}
}

func validateSuggestedFields(in SuggestedFieldsInput) error {
	if in.Name != nil {
		if err := validation.ValidateCourtName(*in.Name); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if in.Zip != nil {
		if err := validation.ValidateZip(*in.Zip); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if in.Surface != nil {
		if err := validation.ValidateSurface(*in.Surface); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if in.Condition != nil {
		if err := validation.ValidateCondition(*in.Condition); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if err := validation.ValidateNumberOfCourts(in.NumberOfCourts); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// applyFields copies proposed values onto the suggestion record.
func applyFields(s *models.EditSuggestion, in SuggestedFieldsInput) {
	if in.Name != nil {
		s.SuggestedName = in.Name
	}
	if in.Address != nil {
		s.SuggestedAddress = in.Address
	}
	if in.City != nil {
		s.SuggestedCity = in.City
	}
	if in.State != nil {
		s.SuggestedState = in.State
	}
	if in.Zip != nil {
		s.SuggestedZip = in.Zip
	}
	if in.CourtType != nil {
		s.SuggestedCourtType = in.CourtType
	}
	if in.NumberOfCourts != nil {
		s.SuggestedNumberOfCourts = in.NumberOfCourts
	}
	if in.Surface != nil {
		s.SuggestedSurface = in.Surface
	}
	if in.Condition != nil {
		s.SuggestedCondition = in.Condition
	}
	if in.HittingWall != nil {
		s.SuggestedHittingWall = in.HittingWall
	}
	if in.Lights != nil {
		s.SuggestedLights = in.Lights
	}
	if in.IsPublic != nil {
		s.SuggestedIsPublic = in.IsPublic
	}
}

// Submit creates a new pending suggestion for a court.
func (s *SuggestionService) Submit(ctx context.Context, in SubmitSuggestionInput) (*models.EditSuggestion, error) {
	banned, err := s.bans.IsBanned(ctx, in.SubmitterID, models.BanCategorySuggestions)
	if err != nil {
		return nil, err
	}
	if banned {
		observability.SuggestionsSubmitted.WithLabelValues("rejected_ban").Inc()
		return nil, models.NewBannedError(models.BanCategorySuggestions)
	}

	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > models.MaxSuggestionReasonLen {
		return nil, models.NewValidationError(fmt.Sprintf("Reason too long (max %d characters)", models.MaxSuggestionReasonLen))
	}
	normalizeFields(&in.Fields)
	if err := validateSuggestedFields(in.Fields); err != nil {
		observability.SuggestionsSubmitted.WithLabelValues("rejected_validation").Inc()
		return nil, err
	}

	if _, err := s.courtRepo.GetByID(ctx, in.CourtID); err != nil {
		return nil, err
	}

	existing, err := s.suggestionRepo.FindPendingByCourtAndUser(ctx, in.CourtID, in.SubmitterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.SuggestionsSubmitted.WithLabelValues("rejected_duplicate").Inc()
		return nil, models.NewConflictError("You already have a pending suggestion for this court. Edit or delete it instead.")
	}

	submitter, err := s.userRepo.GetByID(ctx, in.SubmitterID)
	if err != nil {
		return nil, err
	}

	suggestion := &models.EditSuggestion{
		CourtID:             in.CourtID,
		SubmittedByUserID:   in.SubmitterID,
		SubmittedByUserName: submitter.Username,
		Reason:              in.Reason,
		Status:              models.SuggestionStatusPending,
	}
	applyFields(suggestion, in.Fields)
	if len(suggestion.ProposedFields()) == 0 {
		observability.SuggestionsSubmitted.WithLabelValues("rejected_validation").Inc()
		return nil, models.NewValidationError("Suggestion must propose at least one change")
	}

	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, err
	}
	observability.SuggestionsSubmitted.WithLabelValues("accepted").Inc()
	return suggestion, nil
}

// Update lets the original submitter edit a suggestion while it is pending.
func (s *SuggestionService) Update(ctx context.Context, in UpdateSuggestionInput) (*models.EditSuggestion, error) {
	suggestion, err := s.suggestionRepo.GetByID(ctx, in.SuggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.SubmittedByUserID != in.CallerID {
		return nil, models.NewForbiddenError("You can only edit your own suggestions")
	}
	if suggestion.Status != models.SuggestionStatusPending {
		return nil, models.NewConflictError("Suggestion has already been resolved")
	}

	if in.Reason != nil {
		if *in.Reason == "" {
			return nil, models.NewValidationError("Reason is required")
		}
		if len(*in.Reason) > models.MaxSuggestionReasonLen {
			return nil, models.NewValidationError(fmt.Sprintf("Reason too long (max %d characters)", models.MaxSuggestionReasonLen))
		}
	}
	normalizeFields(&in.Fields)
	if err := validateSuggestedFields(in.Fields); err != nil {
		return nil, err
	}

	if in.Reason != nil {
		suggestion.Reason = *in.Reason
	}
	applyFields(suggestion, in.Fields)

	if err := s.suggestionRepo.Save(ctx, suggestion); err != nil {
		return nil, err
	}
	return suggestion, nil
}

// Delete removes a still-pending suggestion. Only the submitter may delete it.
func (s *SuggestionService) Delete(ctx context.Context, suggestionID, callerID uint) error {
	suggestion, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if err != nil {
		return err
	}
	if suggestion.SubmittedByUserID != callerID {
		return models.NewForbiddenError("You can only delete your own suggestions")
	}
	if suggestion.Status != models.SuggestionStatusPending {
		return models.NewConflictError("Suggestion has already been resolved")
	}
	return s.suggestionRepo.Delete(ctx, suggestionID)
}

// GetByID returns one suggestion with its field decisions.
func (s *SuggestionService) GetByID(ctx context.Context, id uint) (*models.EditSuggestion, error) {
	return s.suggestionRepo.GetByID(ctx, id)
}

// ListByCourt returns suggestions for a court, optionally filtered by status.
func (s *SuggestionService) ListByCourt(ctx context.Context, courtID uint, status models.SuggestionStatus, limit, offset int) ([]models.EditSuggestion, error) {
	if status != "" {
		switch status {
		case models.SuggestionStatusPending, models.SuggestionStatusApproved, models.SuggestionStatusRejected:
		default:
			return nil, models.NewValidationError("Invalid status filter")
		}
	}
	if _, err := s.courtRepo.GetByID(ctx, courtID); err != nil {
		return nil, err
	}
	return s.suggestionRepo.ListByCourt(ctx, courtID, status, limit, offset)
}

// ListPending returns the moderation queue, oldest first.
func (s *SuggestionService) ListPending(ctx context.Context, limit, offset int) ([]models.EditSuggestion, error) {
	return s.suggestionRepo.ListPending(ctx, limit, offset)
}

// Review applies a reviewer decision to a suggestion. With Field empty the
// decision resolves the whole suggestion; with Field set it resolves that one
// proposed field, and the suggestion goes terminal once every proposed field
// has a decision.
func (s *SuggestionService) Review(ctx context.Context, in ReviewSuggestionInput) (*ReviewResult, error) {
	if in.Decision != models.SuggestionStatusApproved && in.Decision != models.SuggestionStatusRejected {
		return nil, models.NewValidationError("Decision must be approved or rejected")
	}

	suggestion, err := s.suggestionRepo.GetByID(ctx, in.SuggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.SubmittedByUserID == in.ReviewerID {
		return nil, models.NewForbiddenError("You cannot review your own suggestion")
	}
	if suggestion.Status != models.SuggestionStatusPending {
		return nil, models.NewConflictError("Suggestion has already been resolved")
	}

	reviewer, err := s.userRepo.GetByID(ctx, in.ReviewerID)
	if err != nil {
		return nil, err
	}

	if in.Field == "" {
		return s.reviewWhole(ctx, suggestion, reviewer, in)
	}
	return s.reviewField(ctx, suggestion, reviewer, in)
}

func (s *SuggestionService) reviewWhole(ctx context.Context, suggestion *models.EditSuggestion, reviewer *models.User, in ReviewSuggestionInput) (*ReviewResult, error) {
	// Fields already resolved individually keep their recorded outcome; the
	// whole-suggestion decision covers only the fields still undecided.
	decided := map[string]models.SuggestionStatus{}
	for _, d := range suggestion.FieldDecisions {
		decided[d.Field] = d.Status
	}

	if in.Decision == models.SuggestionStatusApproved {
		fields := map[string]interface{}{}
		for _, f := range suggestion.ProposedFieldNames() {
			if _, ok := decided[f]; ok {
				continue
			}
			value, _ := suggestion.ProposedValue(f)
			fields[f] = value
		}
		if len(fields) > 0 {
			if err := s.courtRepo.UpdateFields(ctx, suggestion.CourtID, fields); err != nil {
				return nil, err
			}
		}
	}

	// Back-fill a decision row for every field that was not already resolved
	// individually, so the per-field history stays complete.
	for _, f := range suggestion.ProposedFieldNames() {
		if _, ok := decided[f]; ok {
			continue
		}
		d := &models.SuggestionFieldDecision{
			SuggestionID:     suggestion.ID,
			Field:            f,
			Status:           in.Decision,
			ReviewedByUserID: reviewer.ID,
			ReviewNote:       in.ReviewNote,
		}
		if err := s.suggestionRepo.SaveFieldDecision(ctx, d); err != nil {
			return nil, err
		}
		decided[f] = in.Decision
	}

	// Overall status follows the field outcomes: approved when any field was
	// approved, rejected only when every field was rejected.
	suggestion.Status = models.SuggestionStatusRejected
	for _, st := range decided {
		if st == models.SuggestionStatusApproved {
			suggestion.Status = models.SuggestionStatusApproved
			break
		}
	}
	suggestion.ReviewNote = in.ReviewNote
	suggestion.ReviewedByUserID = &reviewer.ID
	suggestion.ReviewedByUserName = reviewer.Username
	if err := s.suggestionRepo.Save(ctx, suggestion); err != nil {
		return nil, err
	}

	observability.SuggestionDecisions.WithLabelValues(string(in.Decision), "suggestion").Inc()

	court, err := s.courtRepo.GetByID(ctx, suggestion.CourtID)
	if err != nil {
		return nil, err
	}
	return &ReviewResult{Suggestion: suggestion, Court: court}, nil
}

func (s *SuggestionService) reviewField(ctx context.Context, suggestion *models.EditSuggestion, reviewer *models.User, in ReviewSuggestionInput) (*ReviewResult, error) {
	value, proposed := suggestion.ProposedValue(in.Field)
	if !proposed {
		return nil, models.NewValidationError(fmt.Sprintf("Suggestion does not propose a change to %q", in.Field))
	}
	for _, d := range suggestion.FieldDecisions {
		if d.Field == in.Field {
			return nil, models.NewConflictError(fmt.Sprintf("Field %q has already been resolved", in.Field))
		}
	}

	if in.Decision == models.SuggestionStatusApproved {
		if err := s.courtRepo.UpdateFields(ctx, suggestion.CourtID, map[string]interface{}{in.Field: value}); err != nil {
			return nil, err
		}
	}

	decision := &models.SuggestionFieldDecision{
		SuggestionID:     suggestion.ID,
		Field:            in.Field,
		Status:           in.Decision,
		ReviewedByUserID: reviewer.ID,
		ReviewNote:       in.ReviewNote,
	}
	if err := s.suggestionRepo.SaveFieldDecision(ctx, decision); err != nil {
		return nil, err
	}
	suggestion.FieldDecisions = append(suggestion.FieldDecisions, *decision)

	// Terminal once every proposed field has a decision: approved when at
	// least one field was approved, rejected when all were rejected.
	decided := map[string]models.SuggestionStatus{}
	for _, d := range suggestion.FieldDecisions {
		decided[d.Field] = d.Status
	}
	allResolved := true
	anyApproved := false
	for _, f := range suggestion.ProposedFieldNames() {
		st, ok := decided[f]
		if !ok {
			allResolved = false
			break
		}
		if st == models.SuggestionStatusApproved {
			anyApproved = true
		}
	}
	if allResolved {
		if anyApproved {
			suggestion.Status = models.SuggestionStatusApproved
		} else {
			suggestion.Status = models.SuggestionStatusRejected
		}
		suggestion.ReviewNote = in.ReviewNote
		suggestion.ReviewedByUserID = &reviewer.ID
		suggestion.ReviewedByUserName = reviewer.Username
		if err := s.suggestionRepo.Save(ctx, suggestion); err != nil {
			return nil, err
		}
	}

	observability.SuggestionDecisions.WithLabelValues(string(in.Decision), "field").Inc()

	court, err := s.courtRepo.GetByID(ctx, suggestion.CourtID)
	if err != nil {
		return nil, err
	}
	return &ReviewResult{Suggestion: suggestion, Court: court}, nil
}
