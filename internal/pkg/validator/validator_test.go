package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("staff-1"))
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidUUID("0190163d-8694-7b94-a4f3-41cb29c6e0c3"))
	assert.False(t, IsValidUUID("0190163d-8694-4b94-a4f3-41cb29c6e0c3"), "version 4 is rejected")
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	date, ok := IsValidDate("2025-06-02")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("02/06/2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-40")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	t.Parallel()

	_, ok := IsValidDateTime("2025-06-02T10:30:00Z")
	assert.True(t, ok)
	_, ok = IsValidDateTime("2025-06-02T10:30:00+10:00")
	assert.True(t, ok)
	_, ok = IsValidDateTime("2025-06-02 10:30")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "staff_id", Message: "staff_id is required"},
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
	}

	assert.Contains(t, errs.Error(), "staff_id: staff_id is required")
	assert.Equal(t, map[string]string{
		"staff_id": "staff_id is required",
		"latitude": "latitude must be between -90 and 90",
	}, errs.ToMap())
}
