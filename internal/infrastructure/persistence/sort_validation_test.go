package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{" asc ", "ASC"},
		{"desc", "DESC"},
		{"DESC", "DESC"},
		{"", "DESC"},
		{"sideways", "DESC"},
		{"; DROP TABLE assets", "DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidateSortOrder(tt.input), "input %q", tt.input)
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted fields", func(t *testing.T) {
		assert.Equal(t, "due_date", ValidateSortField("due_date", TaskSortFields, "created_at"))
		assert.Equal(t, "serial_number", ValidateSortField("serial_number", AssetSortFields, "created_at"))
		assert.Equal(t, "name", ValidateSortField("name", DepartmentSortFields, "name"))
	})

	t.Run("falls back on unknown fields", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("password", TaskSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("1; DELETE FROM tasks", TaskSortFields, "created_at"))
	})

	t.Run("whitelists only real columns", func(t *testing.T) {
		// assets carry no purchase_date and projects carry no
		// start_date/end_date; letting these through would break the
		// query instead of falling back.
		assert.Equal(t, "created_at", ValidateSortField("purchase_date", AssetSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("start_date", ProjectSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("end_date", ProjectSortFields, "created_at"))
	})

	t.Run("falls back on empty input", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("", CategorySortFields, "name"))
		assert.Equal(t, "created_at", ValidateSortField("   ", CommonSortFields, "created_at"))
	})
}
