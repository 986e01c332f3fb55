package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CourtKeyPrefix        = "court:%d"
	CourtListKeyPrefix    = "courts:city:%s:limit:%d"
	CourtReviewsPrefix    = "court:%d:reviews:limit:%d"
	CourtPhotosPrefix     = "court:%d:photos:limit:%d"
	SuggestionQueuePrefix = "moderation:pending_suggestions:limit:%d"
)

const (
	CourtTTL           = 10 * time.Minute
	CourtListTTL       = 5 * time.Minute
	CourtReviewsTTL    = 5 * time.Minute
	CourtPhotosTTL     = 10 * time.Minute
	SuggestionQueueTTL = time.Minute
)

func CourtKey(courtID uint) string {
	return fmt.Sprintf(CourtKeyPrefix, courtID)
}

// CourtListKey keys the court list by city filter and page size; an empty
// city means the unfiltered listing.
func CourtListKey(city string, limit int) string {
	if city == "" {
		city = "_all"
	}
	return fmt.Sprintf(CourtListKeyPrefix, city, limit)
}

func CourtReviewsKey(courtID uint, limit int) string {
	return fmt.Sprintf(CourtReviewsPrefix, courtID, limit)
}

func CourtPhotosKey(courtID uint, limit int) string {
	return fmt.Sprintf(CourtPhotosPrefix, courtID, limit)
}

func PendingSuggestionsKey(limit int) string {
	return fmt.Sprintf(SuggestionQueuePrefix, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateCourtLists drops every cached court listing, whatever city or
// page size it was keyed under.
func InvalidateCourtLists(ctx context.Context) {
	InvalidatePrefix(ctx, "courts:city:")
}

// InvalidateCourt drops the court record and every cached listing.
func InvalidateCourt(ctx context.Context, courtID uint) {
	Invalidate(ctx, CourtKey(courtID))
	InvalidateCourtLists(ctx)
}

func InvalidateCourtReviews(ctx context.Context, courtID uint) {
	InvalidatePrefix(ctx, fmt.Sprintf("court:%d:reviews:", courtID))
}

func InvalidateCourtPhotos(ctx context.Context, courtID uint) {
	InvalidatePrefix(ctx, fmt.Sprintf("court:%d:photos:", courtID))
}

func InvalidatePendingSuggestions(ctx context.Context) {
	InvalidatePrefix(ctx, "moderation:pending_suggestions:")
}
