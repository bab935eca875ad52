package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// AddressService handles profile address operations
type AddressService struct {
	addressRepo identity.AddressRepository
	profileRepo identity.ProfileRepository
	recorder    ActivityRecorder
}

// NewAddressService creates a new AddressService
func NewAddressService(
	addressRepo identity.AddressRepository,
	profileRepo identity.ProfileRepository,
	recorder ActivityRecorder,
) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		profileRepo: profileRepo,
		recorder:    recorder,
	}
}

// Create adds an address to a profile. More than one address of a
// profile may be flagged as default; no exclusivity is enforced.
func (s *AddressService) Create(ctx context.Context, req CreateAddressRequest) (*AddressResponse, error) {
	if _, err := s.profileRepo.FindByID(ctx, req.ProfileID); err != nil {
		return nil, notFoundAs(err, "INVALID_PROFILE", "Profile not found")
	}

	address, err := identity.NewAddress(req.ProfileID, req.City)
	if err != nil {
		return nil, err
	}
	address.Label = req.Label
	address.District = req.District
	address.Street = req.Street
	address.PostalCode = req.PostalCode
	address.IsDefault = req.IsDefault

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Added address in %s to profile %s", address.City, req.ProfileID), tracker.Metadata{
		"address_id": address.ID.String(),
		"profile_id": req.ProfileID.String(),
	})

	return ToAddressResponse(address), nil
}

// GetByID retrieves an address by ID
func (s *AddressService) GetByID(ctx context.Context, id uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAddressResponse(address), nil
}

// List retrieves addresses matching the filter
func (s *AddressService) List(ctx context.Context, filter AddressListFilter) (*shared.Paginated[AddressResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)

	if filter.ProfileID != nil {
		domainFilter.Filters["profile_id"] = *filter.ProfileID
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}
	if filter.IsDefault != nil {
		domainFilter.Filters["is_default"] = *filter.IsDefault
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	addresses, err := s.addressRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.addressRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToAddressResponses(addresses), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByProfile retrieves all addresses of one profile
func (s *AddressService) ListByProfile(ctx context.Context, profileID uuid.UUID, filter AddressListFilter) ([]AddressResponse, error) {
	if _, err := s.profileRepo.FindByID(ctx, profileID); err != nil {
		return nil, notFoundAs(err, "INVALID_PROFILE", "Profile not found")
	}

	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	addresses, err := s.addressRepo.FindByProfile(ctx, profileID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Update updates an existing address
func (s *AddressService) Update(ctx context.Context, id uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.City != nil {
		if err := address.SetCity(*req.City); err != nil {
			return nil, err
		}
	}
	if req.Label != nil {
		address.Label = *req.Label
		address.Touch()
	}
	if req.District != nil {
		address.District = *req.District
		address.Touch()
	}
	if req.Street != nil {
		address.Street = *req.Street
		address.Touch()
	}
	if req.PostalCode != nil {
		address.PostalCode = *req.PostalCode
		address.Touch()
	}
	if req.IsDefault != nil {
		address.IsDefault = *req.IsDefault
		address.Touch()
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated address %s", address.ID), tracker.Metadata{
		"address_id": address.ID.String(),
		"profile_id": address.ProfileID.String(),
	})

	return ToAddressResponse(address), nil
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, id uuid.UUID) error {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.addressRepo.Delete(ctx, address.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted address %s", address.ID), tracker.Metadata{
		"address_id": address.ID.String(),
		"profile_id": address.ProfileID.String(),
	})

	return nil
}

func (s *AddressService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.recorder != nil {
		s.recorder.Record(ctx, action, message, metadata)
	}
}
