package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/inventory"
)

// CreateDepartmentRequest represents a request to create a department
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=150"`
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Description string `json:"description"`
}

// UpdateDepartmentRequest represents a request to update a department
type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	Code        *string `json:"code" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DepartmentListFilter represents filter options for the department list
type DepartmentListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=150"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=150"`
	IsActive *bool   `json:"is_active"`
}

// MoveCategoryRequest represents a request to reparent a category. A nil
// parent moves it to the root.
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CategoryTreeNode represents a category with its nested children
type CategoryTreeNode struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	ParentID *uuid.UUID         `json:"parent_id"`
	IsActive bool               `json:"is_active"`
	Children []CategoryTreeNode `json:"children"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	Search   string     `form:"search"`
	ParentID *uuid.UUID `form:"parent_id"`
	RootOnly bool       `form:"root_only"`
	IsActive *bool      `form:"is_active"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateAssetRequest represents a request to create an asset
type CreateAssetRequest struct {
	Name         string     `json:"name" binding:"required,min=1,max=200"`
	CategoryID   *uuid.UUID `json:"category_id"`
	DepartmentID *uuid.UUID `json:"department_id"`
	SerialNumber string     `json:"serial_number" binding:"max=100"`
	Quantity     *int       `json:"quantity" binding:"omitempty,min=1"`
	Condition    string     `json:"condition" binding:"omitempty,oneof=new good fair poor"`
	Notes        string     `json:"notes"`
}

// UpdateAssetRequest represents a request to update an asset
type UpdateAssetRequest struct {
	Name            *string    `json:"name" binding:"omitempty,min=1,max=200"`
	CategoryID      *uuid.UUID `json:"category_id"`
	ClearCategory   bool       `json:"clear_category"`
	DepartmentID    *uuid.UUID `json:"department_id"`
	ClearDepartment bool       `json:"clear_department"`
	SerialNumber    *string    `json:"serial_number" binding:"omitempty,max=100"`
	Quantity        *int       `json:"quantity" binding:"omitempty,min=1"`
	Condition       *string    `json:"condition" binding:"omitempty,oneof=new good fair poor"`
	Notes           *string    `json:"notes"`
	IsActive        *bool      `json:"is_active"`
}

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	CategoryID     *uuid.UUID `json:"category_id"`
	CategoryName   string     `json:"category_name,omitempty"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	DepartmentName string     `json:"department_name,omitempty"`
	SerialNumber   string     `json:"serial_number"`
	Quantity       int        `json:"quantity"`
	Condition      string     `json:"condition"`
	Notes          string     `json:"notes"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AssetListFilter represents filter options for the asset list
type AssetListFilter struct {
	Search       string     `form:"search"`
	CategoryID   *uuid.UUID `form:"category_id"`
	DepartmentID *uuid.UUID `form:"department_id"`
	Condition    string     `form:"condition" binding:"omitempty,oneof=new good fair poor"`
	IsActive     *bool      `form:"is_active"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InitiateUploadRequest represents a request to start an attachment upload
type InitiateUploadRequest struct {
	AssetID     uuid.UUID  `json:"asset_id" binding:"required"`
	Title       string     `json:"title" binding:"max=200"`
	FileName    string     `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string     `json:"content_type" binding:"required,min=1,max=100"`
	UploadedBy  *uuid.UUID `json:"uploaded_by"`
}

// InitiateUploadResponse carries the presigned upload URL for a new attachment
type InitiateUploadResponse struct {
	AttachmentID uuid.UUID `json:"attachment_id"`
	StorageKey   string    `json:"storage_key"`
	UploadURL    string    `json:"upload_url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AttachmentResponse represents an attachment in API responses
type AttachmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	AssetID      uuid.UUID  `json:"asset_id"`
	Title        string     `json:"title"`
	StorageKey   string     `json:"storage_key"`
	ContentType  string     `json:"content_type"`
	UploadedByID *uuid.UUID `json:"uploaded_by_id"`
	URL          string     `json:"url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AttachmentListFilter represents filter options for the attachment list
type AttachmentListFilter struct {
	Search      string     `form:"search"`
	AssetID     *uuid.UUID `form:"asset_id"`
	ContentType string     `form:"content_type"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateAssignmentRequest represents a request to hand an asset to a user
type CreateAssignmentRequest struct {
	AssetID      uuid.UUID  `json:"asset_id" binding:"required"`
	AssignedToID uuid.UUID  `json:"assigned_to_id" binding:"required"`
	AssignedByID *uuid.UUID `json:"assigned_by_id"`
	StartDate    time.Time  `json:"start_date" binding:"required"`
	EndDate      *time.Time `json:"end_date"`
	Note         string     `json:"note"`
}

// UpdateAssignmentRequest represents a request to update an assignment
type UpdateAssignmentRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	ClearEnd  bool       `json:"clear_end"`
	Note      *string    `json:"note"`
}

// AssignmentResponse represents an asset assignment in API responses
type AssignmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	AssetID      uuid.UUID  `json:"asset_id"`
	AssetName    string     `json:"asset_name,omitempty"`
	AssignedToID uuid.UUID  `json:"assigned_to_id"`
	AssignedByID *uuid.UUID `json:"assigned_by_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Note         string     `json:"note"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AssignmentListFilter represents filter options for the assignment list
type AssignmentListFilter struct {
	Search       string     `form:"search"`
	AssetID      *uuid.UUID `form:"asset_id"`
	AssignedToID *uuid.UUID `form:"assigned_to_id"`
	Open         *bool      `form:"open"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDepartmentResponse converts a domain Department to DepartmentResponse
func ToDepartmentResponse(d *inventory.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDepartmentResponses converts a slice of domain Departments
func ToDepartmentResponses(departments []inventory.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *ToDepartmentResponse(&departments[i])
	}
	return responses
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *inventory.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []inventory.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses
}

// ToAssetResponse converts a domain Asset to AssetResponse
func ToAssetResponse(a *inventory.Asset) *AssetResponse {
	resp := &AssetResponse{
		ID:           a.ID,
		Name:         a.Name,
		CategoryID:   a.CategoryID,
		DepartmentID: a.DepartmentID,
		SerialNumber: a.SerialNumber,
		Quantity:     a.Quantity,
		Condition:    string(a.Condition),
		Notes:        a.Notes,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Category != nil {
		resp.CategoryName = a.Category.Name
	}
	if a.Department != nil {
		resp.DepartmentName = a.Department.Name
	}
	return resp
}

// ToAssetResponses converts a slice of domain Assets
func ToAssetResponses(assets []inventory.Asset) []AssetResponse {
	responses := make([]AssetResponse, len(assets))
	for i := range assets {
		responses[i] = *ToAssetResponse(&assets[i])
	}
	return responses
}

// ToAttachmentResponse converts a domain Attachment to AttachmentResponse
func ToAttachmentResponse(a *inventory.Attachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:           a.ID,
		AssetID:      a.AssetID,
		Title:        a.Title,
		StorageKey:   a.StorageKey,
		ContentType:  a.ContentType,
		UploadedByID: a.UploadedByID,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToAttachmentResponses converts a slice of domain Attachments
func ToAttachmentResponses(attachments []inventory.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = *ToAttachmentResponse(&attachments[i])
	}
	return responses
}

// ToAssignmentResponse converts a domain AssetAssignment to AssignmentResponse
func ToAssignmentResponse(a *inventory.AssetAssignment) *AssignmentResponse {
	resp := &AssignmentResponse{
		ID:           a.ID,
		AssetID:      a.AssetID,
		AssignedToID: a.AssignedToID,
		AssignedByID: a.AssignedByID,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		Note:         a.Note,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Asset != nil {
		resp.AssetName = a.Asset.Name
	}
	return resp
}

// ToAssignmentResponses converts a slice of domain AssetAssignments
func ToAssignmentResponses(assignments []inventory.AssetAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = *ToAssignmentResponse(&assignments[i])
	}
	return responses
}
