package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
	"github.com/orgadmin/backend/internal/infrastructure/logger"
)

// AllowedContentTypes whitelists upload content types. Executables and
// scripts are rejected outright; SVG is excluded because it can carry
// inline script.
var AllowedContentTypes = map[string]bool{
	// Images
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	// Documents
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	// Text
	"text/plain": true,
	"text/csv":   true,
	// Archives
	"application/zip": true,
}

// ObjectStorageService is the contract with the external blob store.
// Implemented by the infrastructure layer (S3-compatible stores).
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned URL for uploading an object
	// together with its expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned URL for downloading an
	// object together with its expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks whether an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// StorageKeyFunc derives the storage key for a new upload from the
// client-reported file name.
type StorageKeyFunc func(fileName string, now time.Time) string

// AttachmentServiceConfig holds tunables for the attachment service
type AttachmentServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultAttachmentServiceConfig returns the default configuration
func DefaultAttachmentServiceConfig() AttachmentServiceConfig {
	return AttachmentServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// AttachmentService handles asset attachment operations. Attachment
// rows hold only the storage key; the bytes live in the blob store and
// move through presigned URLs, never through this API.
type AttachmentService struct {
	attachmentRepo inventory.AttachmentRepository
	assetRepo      inventory.AssetRepository
	storage        ObjectStorageService
	newStorageKey  StorageKeyFunc
	config         AttachmentServiceConfig
	recorder       ActivityRecorder
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	attachmentRepo inventory.AttachmentRepository,
	assetRepo inventory.AssetRepository,
	storage ObjectStorageService,
	newStorageKey StorageKeyFunc,
	recorder ActivityRecorder,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		assetRepo:      assetRepo,
		storage:        storage,
		newStorageKey:  newStorageKey,
		config:         DefaultAttachmentServiceConfig(),
		recorder:       recorder,
	}
}

// SetConfig sets the service configuration
func (s *AttachmentService) SetConfig(config AttachmentServiceConfig) {
	s.config = config
}

// InitiateUpload creates the attachment record and returns a presigned
// upload URL for the client to push the bytes to.
func (s *AttachmentService) InitiateUpload(ctx context.Context, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	if _, err := s.assetRepo.FindByID(ctx, req.AssetID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_ASSET", "Asset not found")
		}
		return nil, err
	}

	if !AllowedContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type %q is not allowed", req.ContentType))
	}

	storageKey := s.newStorageKey(req.FileName, time.Now())

	attachment, err := inventory.NewAttachment(req.AssetID, req.Title, storageKey, req.UploadedBy)
	if err != nil {
		return nil, err
	}
	attachment.ContentType = strings.ToLower(req.ContentType)

	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, attachment.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		// Undo the record so a failed presign leaves nothing behind.
		_ = s.attachmentRepo.Delete(ctx, attachment.ID)
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Added attachment to asset %s", req.AssetID), tracker.Metadata{
		"attachment_id": attachment.ID.String(),
		"asset_id":      req.AssetID.String(),
	})

	return &InitiateUploadResponse{
		AttachmentID: attachment.ID,
		StorageKey:   storageKey,
		UploadURL:    uploadURL,
		ExpiresAt:    expiresAt,
	}, nil
}

// GetByID retrieves an attachment by ID, enriched with a download URL
// when the stored object is reachable
func (s *AttachmentService) GetByID(ctx context.Context, id uuid.UUID) (*AttachmentResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToAttachmentResponse(attachment)
	s.enrichWithURL(ctx, resp)
	return resp, nil
}

// List retrieves attachments matching the filter
func (s *AttachmentService) List(ctx context.Context, filter AttachmentListFilter) (*shared.Paginated[AttachmentResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.AssetID != nil {
		domainFilter.Filters["asset_id"] = *filter.AssetID
	}
	if filter.ContentType != "" {
		domainFilter.Filters["content_type"] = filter.ContentType
	}

	attachments, err := s.attachmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.attachmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := ToAttachmentResponses(attachments)
	for i := range responses {
		s.enrichWithURL(ctx, &responses[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByAsset retrieves all attachments of one asset
func (s *AttachmentService) ListByAsset(ctx context.Context, assetID uuid.UUID, filter AttachmentListFilter) ([]AttachmentResponse, error) {
	if _, err := s.assetRepo.FindByID(ctx, assetID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_ASSET", "Asset not found")
		}
		return nil, err
	}

	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	attachments, err := s.attachmentRepo.FindByAsset(ctx, assetID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := ToAttachmentResponses(attachments)
	for i := range responses {
		s.enrichWithURL(ctx, &responses[i])
	}
	return responses, nil
}

// Delete removes the attachment record and its stored object. A
// storage failure is logged and does not block the record deletion;
// the object may already be gone.
func (s *AttachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, attachment.StorageKey); err != nil {
		logger.L(ctx).Warn("Failed to delete attachment object from storage",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("storage_key", attachment.StorageKey),
			zap.Error(err))
	}

	if err := s.attachmentRepo.Delete(ctx, attachment.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted attachment %s", attachment.ID), tracker.Metadata{
		"attachment_id": attachment.ID.String(),
		"asset_id":      attachment.AssetID.String(),
	})

	return nil
}

func (s *AttachmentService) enrichWithURL(ctx context.Context, resp *AttachmentResponse) {
	url, _, err := s.storage.GenerateDownloadURL(ctx, resp.StorageKey, s.config.DownloadURLExpiry)
	if err == nil {
		resp.URL = url
	}
}

func (s *AttachmentService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.recorder != nil {
		s.recorder.Record(ctx, action, message, metadata)
	}
}
