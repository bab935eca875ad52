package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// ActivityRecorder appends audit trail entries for administrative
// actions. Implementations must never fail the calling operation;
// recording errors are swallowed and logged.
type ActivityRecorder interface {
	Record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata)
}

// ProfileService handles profile-related business operations
type ProfileService struct {
	profileRepo identity.ProfileRepository
	userRepo    identity.UserRefRepository
	recorder    ActivityRecorder
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo identity.ProfileRepository,
	userRepo identity.UserRefRepository,
	recorder ActivityRecorder,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		recorder:    recorder,
	}
}

// Create creates a profile for an existing external user. Exactly one
// profile may exist per user.
func (s *ProfileService) Create(ctx context.Context, req CreateProfileRequest) (*ProfileResponse, error) {
	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("INVALID_USER", "Referenced user does not exist")
	}

	taken, err := s.profileRepo.ExistsByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A profile already exists for this user")
	}

	profile := identity.NewProfile(req.UserID)
	profile.FullName = req.FullName
	profile.BirthDate = req.BirthDate
	profile.Notes = req.Notes

	if err := profile.SetPhone(req.Phone); err != nil {
		return nil, err
	}
	if err := profile.SetNationalID(req.NationalID); err != nil {
		return nil, err
	}
	if req.Role != "" {
		if err := profile.SetRole(identity.Role(req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Gender != "" {
		if err := profile.SetGender(identity.Gender(req.Gender)); err != nil {
			return nil, err
		}
	}
	if req.PreferredLanguage != "" {
		profile.PreferredLanguage = req.PreferredLanguage
	}
	if req.Timezone != "" {
		profile.Timezone = req.Timezone
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Created profile for user %s", req.UserID), tracker.Metadata{
		"profile_id": profile.ID.String(),
		"user_id":    req.UserID.String(),
	})

	return ToProfileResponse(profile), nil
}

// GetByID retrieves a profile by its ID
func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(profile), nil
}

// GetByUserID retrieves the profile attached to the given external user
func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(profile), nil
}

// List retrieves profiles matching the filter
func (s *ProfileService) List(ctx context.Context, filter ProfileListFilter) (*shared.Paginated[ProfileResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)

	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.Gender != "" {
		domainFilter.Filters["gender"] = filter.Gender
	}
	if filter.PreferredLanguage != "" {
		domainFilter.Filters["preferred_language"] = filter.PreferredLanguage
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	profiles, err := s.profileRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.profileRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProfileResponses(profiles), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates an existing profile
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
		profile.Touch()
	}
	if req.Phone != nil {
		if err := profile.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.NationalID != nil {
		if err := profile.SetNationalID(*req.NationalID); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := profile.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Gender != nil {
		if err := profile.SetGender(identity.Gender(*req.Gender)); err != nil {
			return nil, err
		}
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
		profile.Touch()
	}
	if req.PreferredLanguage != nil {
		profile.PreferredLanguage = *req.PreferredLanguage
		profile.Touch()
	}
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
		profile.Touch()
	}
	if req.Notes != nil {
		profile.Notes = *req.Notes
		profile.Touch()
	}
	if req.IsActive != nil {
		if *req.IsActive {
			profile.Enable()
		} else {
			profile.Disable()
		}
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated profile %s", profile.ID), tracker.Metadata{
		"profile_id": profile.ID.String(),
	})

	return ToProfileResponse(profile), nil
}

// Delete removes a profile and, by cascade, its addresses
func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.profileRepo.Delete(ctx, profile.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted profile %s", profile.ID), tracker.Metadata{
		"profile_id": profile.ID.String(),
		"user_id":    profile.UserID.String(),
	})

	return nil
}

func (s *ProfileService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.recorder != nil {
		s.recorder.Record(ctx, action, message, metadata)
	}
}

// buildFilter assembles a domain filter from the common list parameters
func buildFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}

// notFoundAs maps a repository not-found error to a module specific code
func notFoundAs(err error, code, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(code, message)
	}
	return err
}
