package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates root category", func(t *testing.T) {
		category, err := NewCategory("Furniture", nil)
		require.NoError(t, err)
		assert.True(t, category.IsRoot())
	})

	t.Run("creates nested category", func(t *testing.T) {
		parentID := uuid.New()
		category, err := NewCategory("Desks", &parentID)
		require.NoError(t, err)
		assert.False(t, category.IsRoot())
		assert.Equal(t, &parentID, category.ParentID)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", nil)
		require.Error(t, err)
	})
}

func TestCategory_SetParent(t *testing.T) {
	t.Run("rejects self as parent", func(t *testing.T) {
		category, err := NewCategory("Electronics", nil)
		require.NoError(t, err)
		require.Error(t, category.SetParent(&category.ID))
	})

	t.Run("clears parent when nil", func(t *testing.T) {
		parentID := uuid.New()
		category, err := NewCategory("Laptops", &parentID)
		require.NoError(t, err)
		require.NoError(t, category.SetParent(nil))
		assert.True(t, category.IsRoot())
	})
}

func TestNewDepartment(t *testing.T) {
	t.Run("uppercases code", func(t *testing.T) {
		department, err := NewDepartment("Information Technology", "it")
		require.NoError(t, err)
		assert.Equal(t, "IT", department.Code)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewDepartment("Finance", "")
		require.Error(t, err)
	})
}
