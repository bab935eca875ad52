package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/orgadmin/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3ObjectStorage(t *testing.T) {
	t.Run("requires configuration", func(t *testing.T) {
		s, err := NewS3ObjectStorage(nil)
		assert.Nil(t, s)
		assert.Error(t, err)
	})

	t.Run("requires bucket", func(t *testing.T) {
		s, err := NewS3ObjectStorage(&config.StorageConfig{
			AccessKey: "key",
			SecretKey: "secret",
		})
		assert.Nil(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket")
	})

	t.Run("requires credentials", func(t *testing.T) {
		s, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket: "attachments",
		})
		assert.Nil(t, s)
		assert.Error(t, err)
	})

	t.Run("creates client with defaults", func(t *testing.T) {
		s, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket:    "attachments",
			AccessKey: "key",
			SecretKey: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "attachments", s.GetBucket())
		assert.Equal(t, 15*time.Minute, s.presignExpiration)
	})

	t.Run("applies presign expiration option", func(t *testing.T) {
		s, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket:    "attachments",
			AccessKey: "key",
			SecretKey: "secret",
		}, WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.presignExpiration)
	})
}

func TestS3ObjectStorage_PresignedURLs(t *testing.T) {
	s, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:    "attachments",
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  "localhost:9000",
	})
	require.NoError(t, err)

	t.Run("generates upload URL", func(t *testing.T) {
		url, expiresAt, err := s.GenerateUploadURL(context.Background(),
			"uploads/attachments/2026/08/test.pdf", "application/pdf", 10*time.Minute)

		require.NoError(t, err)
		assert.Contains(t, url, "uploads/attachments/2026/08/test.pdf")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("generates download URL", func(t *testing.T) {
		url, _, err := s.GenerateDownloadURL(context.Background(),
			"uploads/attachments/2026/08/test.pdf", 0)

		require.NoError(t, err)
		assert.Contains(t, url, "uploads/attachments/2026/08/test.pdf")
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(context.Background(), "", "application/pdf", 0)
		assert.Error(t, err)

		_, _, err = s.GenerateDownloadURL(context.Background(), "", 0)
		assert.Error(t, err)
	})
}

func TestStubObjectStorage(t *testing.T) {
	stub := NewStubObjectStorage()

	t.Run("upload URL includes storage key", func(t *testing.T) {
		url, expiresAt, err := stub.GenerateUploadURL(context.Background(),
			"uploads/attachments/2026/08/file.png", "image/png", 5*time.Minute)

		require.NoError(t, err)
		assert.Contains(t, url, "/upload/uploads/attachments/2026/08/file.png")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("download URL includes storage key", func(t *testing.T) {
		url, _, err := stub.GenerateDownloadURL(context.Background(),
			"uploads/attachments/2026/08/file.png", 5*time.Minute)

		require.NoError(t, err)
		assert.Contains(t, url, "/download/uploads/attachments/2026/08/file.png")
	})

	t.Run("delete succeeds and exists reports true", func(t *testing.T) {
		assert.NoError(t, stub.DeleteObject(context.Background(), "some/key"))

		exists, err := stub.ObjectExists(context.Background(), "some/key")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		_, _, err := stub.GenerateUploadURL(context.Background(), "", "image/png", 0)
		assert.Error(t, err)
		assert.Error(t, stub.DeleteObject(context.Background(), ""))
	})
}

func TestNewAttachmentKey(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("partitions by year and month", func(t *testing.T) {
		key := NewAttachmentKey("invoice.pdf", now)
		assert.True(t, strings.HasPrefix(key, "uploads/attachments/2026/08/"))
		assert.True(t, strings.HasSuffix(key, ".pdf"))
	})

	t.Run("never reuses the original file name", func(t *testing.T) {
		key := NewAttachmentKey("secret report.pdf", now)
		assert.NotContains(t, key, "secret")
	})

	t.Run("drops suspicious extensions", func(t *testing.T) {
		key := NewAttachmentKey("file.reallylongextension", now)
		assert.NotContains(t, key, "reallylongextension")
	})

	t.Run("unique per call", func(t *testing.T) {
		assert.NotEqual(t, NewAttachmentKey("a.png", now), NewAttachmentKey("a.png", now))
	})

	t.Run("lowercases the extension", func(t *testing.T) {
		key := NewAttachmentKey("PHOTO.JPG", now)
		assert.True(t, strings.HasSuffix(key, ".jpg"))
	})
}
