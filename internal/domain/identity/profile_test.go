package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("creates profile with defaults", func(t *testing.T) {
		profile := NewProfile(userID)
		require.NotNil(t, profile)

		assert.Equal(t, userID, profile.UserID)
		assert.Equal(t, RoleUser, profile.Role)
		assert.Equal(t, "ar", profile.PreferredLanguage)
		assert.Equal(t, "Asia/Riyadh", profile.Timezone)
		assert.True(t, profile.IsActive)
		assert.NotEqual(t, uuid.Nil, profile.ID)
		assert.False(t, profile.CreatedAt.IsZero())
	})

	t.Run("assigns distinct IDs", func(t *testing.T) {
		a := NewProfile(uuid.New())
		b := NewProfile(uuid.New())
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestProfile_SetPhone(t *testing.T) {
	t.Run("accepts international format", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		err := profile.SetPhone("+966512345678")
		require.NoError(t, err)
		assert.Equal(t, "+966512345678", profile.Phone)
	})

	t.Run("accepts local format", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.NoError(t, profile.SetPhone("0512345678"))
	})

	t.Run("accepts empty value", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.NoError(t, profile.SetPhone(""))
	})

	t.Run("rejects too short number", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		err := profile.SetPhone("12345")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION", domainErr.Code)
		assert.Equal(t, "phone", domainErr.Field)
	})

	t.Run("rejects non-digit characters", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.Error(t, profile.SetPhone("abc12345"))
	})

	t.Run("rejects more than 15 digits", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.Error(t, profile.SetPhone("+1234567890123456"))
	})

	t.Run("rejects plus in the middle", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.Error(t, profile.SetPhone("9665+1234567"))
	})
}

func TestProfile_SetNationalID(t *testing.T) {
	t.Run("accepts value of minimum length", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.NoError(t, profile.SetNationalID("12345678"))
		assert.Equal(t, "12345678", profile.NationalID)
	})

	t.Run("accepts empty value", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.NoError(t, profile.SetNationalID(""))
	})

	t.Run("rejects value shorter than 8 characters", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		err := profile.SetNationalID("1234567")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "national_id", domainErr.Field)
	})
}

func TestProfile_SetRole(t *testing.T) {
	t.Run("accepts known roles", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		for _, role := range []Role{RoleAdmin, RoleManager, RoleStaff, RoleUser} {
			require.NoError(t, profile.SetRole(role))
			assert.Equal(t, role, profile.Role)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.Error(t, profile.SetRole("superuser"))
	})
}

func TestProfile_SetGender(t *testing.T) {
	t.Run("accepts empty gender", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.NoError(t, profile.SetGender(""))
	})

	t.Run("rejects unknown gender", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		require.Error(t, profile.SetGender("unknown"))
	})
}

func TestBaseEntity_Disable(t *testing.T) {
	t.Run("disable is advisory and reversible", func(t *testing.T) {
		profile := NewProfile(uuid.New())
		profile.Disable()
		assert.False(t, profile.IsActive)
		profile.Enable()
		assert.True(t, profile.IsActive)
	})
}
