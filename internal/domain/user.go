package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleRenter     UserRole = "renter"
	RoleOwner      UserRole = "owner"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super-admin"
)

// ValidSignUpRole reports whether a user may self-register with the given
// role. Admin accounts are provisioned, never self-registered.
func ValidSignUpRole(r UserRole) bool {
	return r == RoleRenter || r == RoleOwner
}

func (r UserRole) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is an account in the marketplace. The (email, role) pair is unique:
// the same address may hold separate renter and owner accounts.
type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string     `json:"email" gorm:"uniqueIndex:idx_users_email_role;not null"`
	PasswordHash   string     `json:"-" gorm:"not null;default:''"`
	IsPasswordLess bool       `json:"-" gorm:"not null;default:false"`
	Role           UserRole   `json:"role" gorm:"uniqueIndex:idx_users_email_role;not null;default:'renter'"`
	FullName       string     `json:"fullName"`
	PhoneNumber    string     `json:"phoneNumber"`
	CountryCode    string     `json:"countryCode"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	DateJoined     time.Time  `json:"dateJoined"`
	LastLogin      time.Time  `json:"lastLogin"`
	IsActive       bool       `json:"isActive" gorm:"not null;default:true"`

	ProfilePictureID *uuid.UUID `json:"-" gorm:"type:uuid"`
	ProfilePicture   *Image     `json:"profilePicture,omitempty" gorm:"foreignKey:ProfilePictureID;constraint:OnDelete:SET NULL"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefreshToken is a long-lived opaque credential used solely to mint new
// access tokens. A token is live iff ExpiresAt is in the future; revocation
// sets ExpiresAt to now rather than deleting the row.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *RefreshToken) Live(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
