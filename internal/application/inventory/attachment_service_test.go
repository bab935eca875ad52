package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// MockAssetRepository is a mock implementation of inventory.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Asset, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Asset), args.Error(1)
}

func (m *MockAssetRepository) Save(ctx context.Context, asset *inventory.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]inventory.Asset, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]inventory.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByDepartment(ctx context.Context, departmentID uuid.UUID, filter shared.Filter) ([]inventory.Asset, error) {
	args := m.Called(ctx, departmentID, filter)
	return args.Get(0).([]inventory.Asset), args.Error(1)
}

// MockAttachmentRepository is a mock implementation of inventory.AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Attachment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Save(ctx context.Context, attachment *inventory.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttachmentRepository) FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]inventory.Attachment, error) {
	args := m.Called(ctx, assetID, filter)
	return args.Get(0).([]inventory.Attachment), args.Error(1)
}

// fakeStorage is a canned ObjectStorageService for tests
type fakeStorage struct {
	uploadErr  error
	deleteErr  error
	deletedKey string
}

func (f *fakeStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if f.uploadErr != nil {
		return "", time.Time{}, f.uploadErr
	}
	return "https://storage.example.com/upload/" + storageKey, time.Now().Add(expiresIn), nil
}

func (f *fakeStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.example.com/download/" + storageKey, time.Now().Add(expiresIn), nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, storageKey string) error {
	f.deletedKey = storageKey
	return f.deleteErr
}

func (f *fakeStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	return true, nil
}

func testStorageKey(fileName string, now time.Time) string {
	return "uploads/attachments/2026/08/test-key.pdf"
}

func mustAsset(t *testing.T, name string) *inventory.Asset {
	t.Helper()
	asset, err := inventory.NewAsset(name)
	assert.NoError(t, err)
	return asset
}

func TestAttachmentService_InitiateUpload_Success(t *testing.T) {
	mockAttachmentRepo := new(MockAttachmentRepository)
	mockAssetRepo := new(MockAssetRepository)
	storage := &fakeStorage{}
	service := NewAttachmentService(mockAttachmentRepo, mockAssetRepo, storage, testStorageKey, nil)

	ctx := context.Background()
	asset := mustAsset(t, "Printer")

	mockAssetRepo.On("FindByID", ctx, asset.ID).Return(asset, nil)
	mockAttachmentRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Attachment")).Return(nil)

	result, err := service.InitiateUpload(ctx, InitiateUploadRequest{
		AssetID:     asset.ID,
		Title:       "Warranty",
		FileName:    "warranty.pdf",
		ContentType: "application/pdf",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "uploads/attachments/2026/08/test-key.pdf", result.StorageKey)
	assert.Contains(t, result.UploadURL, result.StorageKey)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	mockAttachmentRepo.AssertExpectations(t)
}

func TestAttachmentService_InitiateUpload_DisallowedContentType(t *testing.T) {
	mockAttachmentRepo := new(MockAttachmentRepository)
	mockAssetRepo := new(MockAssetRepository)
	service := NewAttachmentService(mockAttachmentRepo, mockAssetRepo, &fakeStorage{}, testStorageKey, nil)

	ctx := context.Background()
	asset := mustAsset(t, "Printer")

	mockAssetRepo.On("FindByID", ctx, asset.ID).Return(asset, nil)

	result, err := service.InitiateUpload(ctx, InitiateUploadRequest{
		AssetID:     asset.ID,
		FileName:    "payload.exe",
		ContentType: "application/x-msdownload",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DISALLOWED_CONTENT_TYPE", domainErr.Code)
	mockAttachmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAttachmentService_InitiateUpload_AssetMissing(t *testing.T) {
	mockAttachmentRepo := new(MockAttachmentRepository)
	mockAssetRepo := new(MockAssetRepository)
	service := NewAttachmentService(mockAttachmentRepo, mockAssetRepo, &fakeStorage{}, testStorageKey, nil)

	ctx := context.Background()
	assetID := uuid.New()

	mockAssetRepo.On("FindByID", ctx, assetID).Return(nil, shared.ErrNotFound)

	result, err := service.InitiateUpload(ctx, InitiateUploadRequest{
		AssetID:     assetID,
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ASSET", domainErr.Code)
}

// A presign failure must not leave an orphaned attachment row behind.
func TestAttachmentService_InitiateUpload_PresignFailureRollsBack(t *testing.T) {
	mockAttachmentRepo := new(MockAttachmentRepository)
	mockAssetRepo := new(MockAssetRepository)
	storage := &fakeStorage{uploadErr: errors.New("presign unavailable")}
	service := NewAttachmentService(mockAttachmentRepo, mockAssetRepo, storage, testStorageKey, nil)

	ctx := context.Background()
	asset := mustAsset(t, "Printer")

	mockAssetRepo.On("FindByID", ctx, asset.ID).Return(asset, nil)
	mockAttachmentRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Attachment")).Return(nil)
	mockAttachmentRepo.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	result, err := service.InitiateUpload(ctx, InitiateUploadRequest{
		AssetID:     asset.ID,
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockAttachmentRepo.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("uuid.UUID"))
}

func TestAttachmentService_GetByID_EnrichesDownloadURL(t *testing.T) {
	mockAttachmentRepo := new(MockAttachmentRepository)
	mockAssetRepo := new(MockAssetRepository)
	service := NewAttachmentService(mockAttachmentRepo, mockAssetRepo, &fakeStorage{}, testStorageKey, nil)

	ctx := context.Background()
	attachment, err := inventory.NewAttachment(uuid.New(), "Manual", "uploads/attachments/2026/08/abc.pdf", nil)
	assert.NoError(t, err)

	mockAttachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)

	result, err := service.GetByID(ctx, attachment.ID)

	assert.NoError(t, err)
	assert.Contains(t, result.URL, attachment.StorageKey)
}

// The record is removed even when the blob store object cannot be
// deleted; the object may already be gone.
func TestAttachmentService_Delete_StorageFailureIgnored(t *testing.T) {
	mockAttachmentRepo := new(MockAttachmentRepository)
	mockAssetRepo := new(MockAssetRepository)
	storage := &fakeStorage{deleteErr: errors.New("object store down")}
	service := NewAttachmentService(mockAttachmentRepo, mockAssetRepo, storage, testStorageKey, nil)

	ctx := context.Background()
	attachment, err := inventory.NewAttachment(uuid.New(), "Manual", "uploads/attachments/2026/08/abc.pdf", nil)
	assert.NoError(t, err)

	mockAttachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
	mockAttachmentRepo.On("Delete", ctx, attachment.ID).Return(nil)

	err = service.Delete(ctx, attachment.ID)

	assert.NoError(t, err)
	assert.Equal(t, attachment.StorageKey, storage.deletedKey)
	mockAttachmentRepo.AssertExpectations(t)
}
