package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orgadmin/backend/internal/application/inventory"
)

// AttachmentHandler handles asset attachment endpoints
type AttachmentHandler struct {
	BaseHandler
	service *inventory.AttachmentService
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(service *inventory.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

type initiateUploadBody struct {
	Title       string     `json:"title" binding:"max=200"`
	FileName    string     `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string     `json:"content_type" binding:"required,min=1,max=100"`
	UploadedBy  *uuid.UUID `json:"uploaded_by"`
}

// InitiateUpload handles POST /assets/:id/attachments
func (h *AttachmentHandler) InitiateUpload(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid asset ID")
		return
	}

	var body initiateUploadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.InitiateUpload(c.Request.Context(), inventory.InitiateUploadRequest{
		AssetID:     assetID,
		Title:       body.Title,
		FileName:    body.FileName,
		ContentType: body.ContentType,
		UploadedBy:  body.UploadedBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /attachments/:id
func (h *AttachmentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid attachment ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	var filter inventory.AttachmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByAsset handles GET /assets/:id/attachments
func (h *AttachmentHandler) ListByAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid asset ID")
		return
	}

	var filter inventory.AttachmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.service.ListByAsset(c.Request.Context(), assetID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// Delete handles DELETE /attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid attachment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
