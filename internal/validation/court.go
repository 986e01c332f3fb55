package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var zipRegex = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)

var knownSurfaces = map[string]struct{}{
	"hard":         {},
	"clay":         {},
	"grass":        {},
	"carpet":       {},
	"asphalt":      {},
	"concrete":     {},
	"acrylic":      {},
	"har-tru":      {},
	"artificial":   {},
	"cushioned":    {},
	"post-tension": {},
}

var knownConditions = map[string]struct{}{
	"excellent":  {},
	"good":       {},
	"fair":       {},
	"poor":       {},
	"unplayable": {},
}

// ValidateCourtName validates the court display name.
func ValidateCourtName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("court name is required")
	}
	if len(name) > 120 {
		return fmt.Errorf("court name must not exceed 120 characters")
	}
	return nil
}

// ValidateZip validates a US zip code in 5 or 5+4 form.
func ValidateZip(zip string) error {
	if zip == "" {
		return nil
	}
	if !zipRegex.MatchString(zip) {
		return fmt.Errorf("zip must be a 5-digit or ZIP+4 code")
	}
	return nil
}

// ValidateSurface validates a court surface value.
func ValidateSurface(surface string) error {
	if surface == "" {
		return nil
	}
	if _, ok := knownSurfaces[strings.ToLower(strings.TrimSpace(surface))]; !ok {
		return fmt.Errorf("unknown court surface %q", surface)
	}
	return nil
}

// ValidateCondition validates a court condition value.
func ValidateCondition(condition string) error {
	if condition == "" {
		return nil
	}
	if _, ok := knownConditions[strings.ToLower(strings.TrimSpace(condition))]; !ok {
		return fmt.Errorf("unknown court condition %q", condition)
	}
	return nil
}

// ValidateNumberOfCourts validates a proposed court count. Nil means unknown
// and is always valid; zero and negatives are rejected at normalization time.
func ValidateNumberOfCourts(n *int) error {
	if n == nil {
		return nil
	}
	if *n < 1 {
		return fmt.Errorf("number of courts must be at least 1")
	}
	if *n > 200 {
		return fmt.Errorf("number of courts is unreasonably large")
	}
	return nil
}
