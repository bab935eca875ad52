package identity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// phonePattern accepts an optional leading + followed by 8 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?\d{8,15}$`)

// MinNationalIDLength is the minimum length of a national ID when present.
const MinNationalIDLength = 8

// Role is the coarse role of the profile within the organization
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleUser    Role = "user"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleUser:
		return true
	}
	return false
}

// Gender is an optional demographic attribute
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid reports whether the gender is known or empty
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, "":
		return true
	}
	return false
}

// Profile extends the external user with organizational identity data.
// Exactly one profile exists per user; the pairing is enforced by a
// unique constraint on user_id and the profile is deleted together with
// its user.
type Profile struct {
	shared.BaseEntity
	UserID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User              *UserRef   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	FullName          string     `gorm:"type:varchar(200)" json:"full_name"`
	Phone             string     `gorm:"type:varchar(20);index" json:"phone"`
	NationalID        string     `gorm:"type:varchar(20)" json:"national_id"`
	Role              Role       `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	Gender            Gender     `gorm:"type:varchar(10)" json:"gender"`
	BirthDate         *time.Time `gorm:"type:date" json:"birth_date"`
	PreferredLanguage string     `gorm:"type:varchar(10);not null;default:'ar';index" json:"preferred_language"`
	Timezone          string     `gorm:"type:varchar(64);not null;default:'Asia/Riyadh'" json:"timezone"`
	Notes             string     `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile creates a profile for the given external user
func NewProfile(userID uuid.UUID) *Profile {
	return &Profile{
		BaseEntity:        shared.NewBaseEntity(),
		UserID:            userID,
		Role:              RoleUser,
		PreferredLanguage: "ar",
		Timezone:          "Asia/Riyadh",
	}
}

// SetPhone validates and sets the phone number. An empty value clears it.
func (p *Profile) SetPhone(phone string) error {
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	p.Phone = phone
	p.Touch()
	return nil
}

// SetNationalID validates and sets the national ID. An empty value clears it.
func (p *Profile) SetNationalID(nationalID string) error {
	if err := ValidateNationalID(nationalID); err != nil {
		return err
	}
	p.NationalID = nationalID
	p.Touch()
	return nil
}

// SetRole validates and sets the role
func (p *Profile) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewValidationError("role", "Role must be one of admin, manager, staff, user")
	}
	p.Role = role
	p.Touch()
	return nil
}

// SetGender validates and sets the gender
func (p *Profile) SetGender(gender Gender) error {
	if !gender.IsValid() {
		return shared.NewValidationError("gender", "Gender must be one of male, female, other")
	}
	p.Gender = gender
	p.Touch()
	return nil
}

// ValidatePhone rejects non-empty values that do not match the phone
// pattern: optional leading +, then 8 to 15 digits.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewValidationError("phone", "Enter a valid phone number (8-15 digits), optionally starting with +")
	}
	return nil
}

// ValidateNationalID rejects non-empty values shorter than the minimum length
func ValidateNationalID(nationalID string) error {
	if nationalID == "" {
		return nil
	}
	if len(nationalID) < MinNationalIDLength {
		return shared.NewValidationError("national_id", "National ID must be at least 8 characters")
	}
	return nil
}
