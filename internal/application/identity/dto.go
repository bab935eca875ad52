package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
)

// CreateProfileRequest represents a request to create a profile for an
// existing external user
type CreateProfileRequest struct {
	UserID            uuid.UUID  `json:"user_id" binding:"required"`
	FullName          string     `json:"full_name" binding:"max=200"`
	Phone             string     `json:"phone" binding:"max=20"`
	NationalID        string     `json:"national_id" binding:"max=20"`
	Role              string     `json:"role" binding:"omitempty,oneof=admin manager staff user"`
	Gender            string     `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthDate         *time.Time `json:"birth_date"`
	PreferredLanguage string     `json:"preferred_language" binding:"max=10"`
	Timezone          string     `json:"timezone" binding:"max=64"`
	Notes             string     `json:"notes"`
}

// UpdateProfileRequest represents a request to update a profile
type UpdateProfileRequest struct {
	FullName          *string    `json:"full_name" binding:"omitempty,max=200"`
	Phone             *string    `json:"phone" binding:"omitempty,max=20"`
	NationalID        *string    `json:"national_id" binding:"omitempty,max=20"`
	Role              *string    `json:"role" binding:"omitempty,oneof=admin manager staff user"`
	Gender            *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthDate         *time.Time `json:"birth_date"`
	PreferredLanguage *string    `json:"preferred_language" binding:"omitempty,min=1,max=10"`
	Timezone          *string    `json:"timezone" binding:"omitempty,min=1,max=64"`
	Notes             *string    `json:"notes"`
	IsActive          *bool      `json:"is_active"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Username          string     `json:"username,omitempty"`
	Email             string     `json:"email,omitempty"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone"`
	NationalID        string     `json:"national_id"`
	Role              string     `json:"role"`
	Gender            string     `json:"gender"`
	BirthDate         *time.Time `json:"birth_date"`
	PreferredLanguage string     `json:"preferred_language"`
	Timezone          string     `json:"timezone"`
	Notes             string     `json:"notes"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ProfileListFilter represents filter options for the profile list
type ProfileListFilter struct {
	Search            string `form:"search"`
	Role              string `form:"role" binding:"omitempty,oneof=admin manager staff user"`
	Gender            string `form:"gender" binding:"omitempty,oneof=male female other"`
	PreferredLanguage string `form:"preferred_language"`
	IsActive          *bool  `form:"is_active"`
	Page              int    `form:"page" binding:"omitempty,min=1"`
	PageSize          int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy           string `form:"order_by"`
	OrderDir          string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateAddressRequest represents a request to add an address to a profile
type CreateAddressRequest struct {
	ProfileID  uuid.UUID `json:"profile_id" binding:"required"`
	Label      string    `json:"label" binding:"max=50"`
	City       string    `json:"city" binding:"required,min=1,max=100"`
	District   string    `json:"district" binding:"max=100"`
	Street     string    `json:"street" binding:"max=200"`
	PostalCode string    `json:"postal_code" binding:"max=20"`
	IsDefault  bool      `json:"is_default"`
}

// UpdateAddressRequest represents a request to update an address
type UpdateAddressRequest struct {
	Label      *string `json:"label" binding:"omitempty,max=50"`
	City       *string `json:"city" binding:"omitempty,min=1,max=100"`
	District   *string `json:"district" binding:"omitempty,max=100"`
	Street     *string `json:"street" binding:"omitempty,max=200"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=20"`
	IsDefault  *bool   `json:"is_default"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profile_id"`
	Label      string    `json:"label"`
	City       string    `json:"city"`
	District   string    `json:"district"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
	IsDefault  bool      `json:"is_default"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddressListFilter represents filter options for the address list
type AddressListFilter struct {
	Search    string     `form:"search"`
	ProfileID *uuid.UUID `form:"profile_id"`
	City      string     `form:"city"`
	IsDefault *bool      `form:"is_default"`
	IsActive  *bool      `form:"is_active"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProfileResponse converts a domain Profile to ProfileResponse
func ToProfileResponse(p *identity.Profile) *ProfileResponse {
	resp := &ProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		FullName:          p.FullName,
		Phone:             p.Phone,
		NationalID:        p.NationalID,
		Role:              string(p.Role),
		Gender:            string(p.Gender),
		BirthDate:         p.BirthDate,
		PreferredLanguage: p.PreferredLanguage,
		Timezone:          p.Timezone,
		Notes:             p.Notes,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.User != nil {
		resp.Username = p.User.Username
		resp.Email = p.User.Email
	}
	return resp
}

// ToProfileResponses converts a slice of domain Profiles
func ToProfileResponses(profiles []identity.Profile) []ProfileResponse {
	responses := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *ToProfileResponse(&profiles[i])
	}
	return responses
}

// ToAddressResponse converts a domain Address to AddressResponse
func ToAddressResponse(a *identity.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		ProfileID:  a.ProfileID,
		Label:      a.Label,
		City:       a.City,
		District:   a.District,
		Street:     a.Street,
		PostalCode: a.PostalCode,
		IsDefault:  a.IsDefault,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ToAddressResponses converts a slice of domain Addresses
func ToAddressResponses(addresses []identity.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = *ToAddressResponse(&addresses[i])
	}
	return responses
}
