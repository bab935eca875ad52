package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssetAssignment(t *testing.T) {
	assetID := uuid.New()
	userID := uuid.New()
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates open-ended assignment", func(t *testing.T) {
		assignment, err := NewAssetAssignment(assetID, userID, start)
		require.NoError(t, err)
		assert.Equal(t, assetID, assignment.AssetID)
		assert.Equal(t, userID, assignment.AssignedToID)
		assert.Nil(t, assignment.EndDate)
	})

	t.Run("fails without start date", func(t *testing.T) {
		_, err := NewAssetAssignment(assetID, userID, time.Time{})
		require.Error(t, err)
	})
}

func TestAssetAssignment_SetPeriod(t *testing.T) {
	assetID := uuid.New()
	userID := uuid.New()
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("accepts end after start", func(t *testing.T) {
		assignment, err := NewAssetAssignment(assetID, userID, start)
		require.NoError(t, err)

		end := start.AddDate(0, 1, 0)
		require.NoError(t, assignment.SetPeriod(start, &end))
		assert.Equal(t, &end, assignment.EndDate)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		assignment, err := NewAssetAssignment(assetID, userID, start)
		require.NoError(t, err)

		end := start.AddDate(0, 0, -1)
		require.Error(t, assignment.SetPeriod(start, &end))
	})
}

func TestNewAttachment(t *testing.T) {
	t.Run("requires a storage key", func(t *testing.T) {
		_, err := NewAttachment(uuid.New(), "Invoice", "", nil)
		require.Error(t, err)
	})

	t.Run("uploader is optional", func(t *testing.T) {
		attachment, err := NewAttachment(uuid.New(), "Invoice", "uploads/attachments/2026/01/doc.pdf", nil)
		require.NoError(t, err)
		assert.Nil(t, attachment.UploadedByID)
	})
}
