package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// MockProfileRepository is a mock implementation of identity.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Profile, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockAddressRepository is a mock implementation of identity.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Address), args.Error(1)
}

func (m *MockAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Address, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddressRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]identity.Address, error) {
	args := m.Called(ctx, profileID, filter)
	return args.Get(0).([]identity.Address), args.Error(1)
}

func (m *MockAddressRepository) CountByProfile(ctx context.Context, profileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRefRepository is a mock implementation of identity.UserRefRepository
type MockUserRefRepository struct {
	mock.Mock
}

func (m *MockUserRefRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.UserRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserRef), args.Error(1)
}

func (m *MockUserRefRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// recorderSpy captures recorded activity entries
type recorderSpy struct {
	entries []tracker.Action
}

func (r *recorderSpy) Record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	r.entries = append(r.entries, action)
}

func newTestUserID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func TestProfileService_Create_Success(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	spy := &recorderSpy{}
	service := NewProfileService(mockProfileRepo, mockUserRepo, spy)

	ctx := context.Background()
	userID := newTestUserID()
	req := CreateProfileRequest{
		UserID:   userID,
		FullName: "Sara Alfarsi",
		Phone:    "+966501234567",
		Role:     "staff",
	}

	mockUserRepo.On("Exists", ctx, userID).Return(true, nil)
	mockProfileRepo.On("ExistsByUserID", ctx, userID).Return(false, nil)
	mockProfileRepo.On("Save", ctx, mock.AnythingOfType("*identity.Profile")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, "Sara Alfarsi", result.FullName)
	assert.Equal(t, "staff", result.Role)
	assert.Equal(t, "ar", result.PreferredLanguage)
	assert.Equal(t, "Asia/Riyadh", result.Timezone)
	assert.Equal(t, []tracker.Action{tracker.ActionCreate}, spy.entries)
	mockProfileRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestProfileService_Create_UnknownUser(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProfileService(mockProfileRepo, mockUserRepo, nil)

	ctx := context.Background()
	userID := newTestUserID()

	mockUserRepo.On("Exists", ctx, userID).Return(false, nil)

	result, err := service.Create(ctx, CreateProfileRequest{UserID: userID})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_USER", domainErr.Code)
	mockUserRepo.AssertExpectations(t)
}

func TestProfileService_Create_DuplicateUser(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProfileService(mockProfileRepo, mockUserRepo, nil)

	ctx := context.Background()
	userID := newTestUserID()

	mockUserRepo.On("Exists", ctx, userID).Return(true, nil)
	mockProfileRepo.On("ExistsByUserID", ctx, userID).Return(true, nil)

	result, err := service.Create(ctx, CreateProfileRequest{UserID: userID})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_Create_InvalidPhone(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProfileService(mockProfileRepo, mockUserRepo, nil)

	ctx := context.Background()
	userID := newTestUserID()

	mockUserRepo.On("Exists", ctx, userID).Return(true, nil)
	mockProfileRepo.On("ExistsByUserID", ctx, userID).Return(false, nil)

	result, err := service.Create(ctx, CreateProfileRequest{
		UserID: userID,
		Phone:  "not-a-phone",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION", domainErr.Code)
	assert.Equal(t, "phone", domainErr.Field)
	mockProfileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileService_Update_RoleAndDeactivate(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProfileService(mockProfileRepo, mockUserRepo, nil)

	ctx := context.Background()
	profile := identity.NewProfile(newTestUserID())

	role := "manager"
	active := false

	mockProfileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	mockProfileRepo.On("Save", ctx, profile).Return(nil)

	result, err := service.Update(ctx, profile.ID, UpdateProfileRequest{
		Role:     &role,
		IsActive: &active,
	})

	assert.NoError(t, err)
	assert.Equal(t, "manager", result.Role)
	assert.False(t, result.IsActive)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_Update_InvalidRole(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProfileService(mockProfileRepo, mockUserRepo, nil)

	ctx := context.Background()
	profile := identity.NewProfile(newTestUserID())
	role := "superuser"

	mockProfileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)

	result, err := service.Update(ctx, profile.ID, UpdateProfileRequest{Role: &role})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockProfileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileService_Delete_RecordsActivity(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	spy := &recorderSpy{}
	service := NewProfileService(mockProfileRepo, mockUserRepo, spy)

	ctx := context.Background()
	profile := identity.NewProfile(newTestUserID())

	mockProfileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	mockProfileRepo.On("Delete", ctx, profile.ID).Return(nil)

	err := service.Delete(ctx, profile.ID)

	assert.NoError(t, err)
	assert.Equal(t, []tracker.Action{tracker.ActionDelete}, spy.entries)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_Delete_NotFound(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProfileService(mockProfileRepo, mockUserRepo, nil)

	ctx := context.Background()
	id := uuid.New()

	mockProfileRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	err := service.Delete(ctx, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockProfileRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddressService_Create_Success(t *testing.T) {
	mockAddressRepo := new(MockAddressRepository)
	mockProfileRepo := new(MockProfileRepository)
	service := NewAddressService(mockAddressRepo, mockProfileRepo, nil)

	ctx := context.Background()
	profile := identity.NewProfile(newTestUserID())

	mockProfileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	mockAddressRepo.On("Save", ctx, mock.AnythingOfType("*identity.Address")).Return(nil)

	result, err := service.Create(ctx, CreateAddressRequest{
		ProfileID: profile.ID,
		City:      "Riyadh",
		District:  "Olaya",
		IsDefault: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Riyadh", result.City)
	assert.True(t, result.IsDefault)
	mockAddressRepo.AssertExpectations(t)
}

func TestAddressService_Create_ProfileMissing(t *testing.T) {
	mockAddressRepo := new(MockAddressRepository)
	mockProfileRepo := new(MockProfileRepository)
	service := NewAddressService(mockAddressRepo, mockProfileRepo, nil)

	ctx := context.Background()
	profileID := uuid.New()

	mockProfileRepo.On("FindByID", ctx, profileID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, CreateAddressRequest{
		ProfileID: profileID,
		City:      "Jeddah",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PROFILE", domainErr.Code)
	mockAddressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// A second default address for the same profile is accepted; no
// exclusivity is enforced anywhere.
func TestAddressService_Create_SecondDefaultAccepted(t *testing.T) {
	mockAddressRepo := new(MockAddressRepository)
	mockProfileRepo := new(MockProfileRepository)
	service := NewAddressService(mockAddressRepo, mockProfileRepo, nil)

	ctx := context.Background()
	profile := identity.NewProfile(newTestUserID())

	mockProfileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	mockAddressRepo.On("Save", ctx, mock.AnythingOfType("*identity.Address")).Return(nil)

	first, err := service.Create(ctx, CreateAddressRequest{ProfileID: profile.ID, City: "Riyadh", IsDefault: true})
	assert.NoError(t, err)
	second, err := service.Create(ctx, CreateAddressRequest{ProfileID: profile.ID, City: "Dammam", IsDefault: true})
	assert.NoError(t, err)

	assert.True(t, first.IsDefault)
	assert.True(t, second.IsDefault)
	mockAddressRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestAddressService_Update_EmptyCityRejected(t *testing.T) {
	mockAddressRepo := new(MockAddressRepository)
	mockProfileRepo := new(MockProfileRepository)
	service := NewAddressService(mockAddressRepo, mockProfileRepo, nil)

	ctx := context.Background()
	address, err := identity.NewAddress(uuid.New(), "Riyadh")
	assert.NoError(t, err)

	empty := ""
	mockAddressRepo.On("FindByID", ctx, address.ID).Return(address, nil)

	result, err := service.Update(ctx, address.ID, UpdateAddressRequest{City: &empty})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockAddressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
