package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCourtName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateCourtName("Riverside Park Courts"))
	assert.Error(t, ValidateCourtName(""))
	assert.Error(t, ValidateCourtName("   "))
	assert.Error(t, ValidateCourtName(strings.Repeat("a", 121)))
}

func TestValidateZip(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateZip(""))
	assert.NoError(t, ValidateZip("97201"))
	assert.NoError(t, ValidateZip("97201-1234"))
	assert.Error(t, ValidateZip("9720"))
	assert.Error(t, ValidateZip("97201-12"))
	assert.Error(t, ValidateZip("abcde"))
}

func TestValidateSurface(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateSurface(""))
	assert.NoError(t, ValidateSurface("Clay"))
	assert.NoError(t, ValidateSurface("har-tru"))
	assert.NoError(t, ValidateSurface("  HARD  "))
	assert.Error(t, ValidateSurface("lava"))
}

func TestValidateCondition(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateCondition(""))
	assert.NoError(t, ValidateCondition("good"))
	assert.NoError(t, ValidateCondition("Unplayable"))
	assert.Error(t, ValidateCondition("meh"))
}

func TestValidateNumberOfCourts(t *testing.T) {
	t.Parallel()

	n := func(v int) *int { return &v }

	assert.NoError(t, ValidateNumberOfCourts(nil))
	assert.NoError(t, ValidateNumberOfCourts(n(1)))
	assert.NoError(t, ValidateNumberOfCourts(n(200)))
	assert.Error(t, ValidateNumberOfCourts(n(0)))
	assert.Error(t, ValidateNumberOfCourts(n(-3)))
	assert.Error(t, ValidateNumberOfCourts(n(201)))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("CorrectHorse9!"))
	assert.Error(t, ValidatePassword("Short1!"))
	assert.Error(t, ValidatePassword("alllowercase9!aa"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE9!AA"))
	assert.Error(t, ValidatePassword("NoDigitsHere!!aa"))
	assert.Error(t, ValidatePassword("NoSpecials99aaBB"))
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateUsername("court_watcher"))
	assert.NoError(t, ValidateUsername("abc"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("_leading"))
	assert.Error(t, ValidateUsername("trailing-"))
	assert.Error(t, ValidateUsername("has spaces"))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail("player@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
}
