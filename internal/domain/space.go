package domain

import (
	"time"

	"github.com/google/uuid"
)

type SpaceStatus string

const (
	SpaceStatusUnverified SpaceStatus = "unverified"
	SpaceStatusVerified   SpaceStatus = "verified"
)

// SpaceForRent is a rentable physical space listing. Lookup references are
// stored as foreign keys and join tables; they must point at existing rows,
// which the service layer validates before insert.
type SpaceForRent struct {
	ID                 uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name               string      `json:"name" gorm:"not null"`
	Description        string      `json:"description" gorm:"not null"`
	Location           string      `json:"location" gorm:"not null"`
	Area               float64     `json:"area" gorm:"not null"`
	Height             float64     `json:"height" gorm:"not null"`
	PricePerMonth      float64     `json:"pricePerMonth" gorm:"not null"`
	MinimumBookingDays int         `json:"minimumBookingDays" gorm:"not null;default:1"`
	Status             SpaceStatus `json:"status" gorm:"not null;default:'unverified'"`

	TypeID         uuid.UUID          `json:"type" gorm:"type:uuid;not null"`
	Type           *SpaceType         `json:"-" gorm:"foreignKey:TypeID"`
	AccessMethodID uuid.UUID          `json:"accessMethod" gorm:"type:uuid;not null"`
	AccessMethod   *SpaceAccessMethod `json:"-" gorm:"foreignKey:AccessMethodID"`

	StorageConditions []StorageCondition `json:"storageConditions" gorm:"many2many:space_storage_conditions;constraint:OnDelete:CASCADE"`
	UnloadingMovings  []UnloadingMoving  `json:"unloadingMovings" gorm:"many2many:space_unloading_movings;constraint:OnDelete:CASCADE"`
	SpaceSecurities   []SpaceSecurity    `json:"spaceSecurities" gorm:"many2many:space_space_securities;constraint:OnDelete:CASCADE"`
	SpaceSchedules    []SpaceSchedule    `json:"spaceSchedules" gorm:"many2many:space_space_schedules;constraint:OnDelete:CASCADE"`
	SpaceImages       []Image            `json:"spaceImages" gorm:"many2many:space_images;constraint:OnDelete:CASCADE"`

	CreatedBy  uuid.UUID  `json:"createdBy" gorm:"type:uuid;not null"`
	UpdatedBy  *uuid.UUID `json:"updatedBy" gorm:"type:uuid"`
	VerifiedBy *uuid.UUID `json:"verifiedBy" gorm:"type:uuid"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SpaceCard is the flattened card-view projection of a listing for
// list/grid display. Joined data that is absent comes back as zero values.
type SpaceCard struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Location           string    `json:"location"`
	PricePerMonth      float64   `json:"pricePerMonth"`
	MinimumBookingDays int       `json:"minimumBookingDays"`
	ReviewCount        int       `json:"reviewCount"`
	AverageRating      float64   `json:"averageRating"`
	CoverImage         string    `json:"coverImage"`
	AccessMethod       string    `json:"accessMethod"`
	VerifyingUserName  string    `json:"verifyingUserName"`
	VerifyingUserImage string    `json:"verifyingUserImage"`
}

// UserRef is the reduced identity projection used when populating audit
// references. Credentials never appear here.
type UserRef struct {
	Email          string  `json:"email"`
	FullName       string  `json:"fullName"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// SpaceDetail is a fully populated single-listing view.
type SpaceDetail struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Location           string      `json:"location"`
	Area               float64     `json:"area"`
	Height             float64     `json:"height"`
	PricePerMonth      float64     `json:"pricePerMonth"`
	MinimumBookingDays int         `json:"minimumBookingDays"`
	Status             SpaceStatus `json:"status"`

	Type         string `json:"type"`
	AccessMethod string `json:"accessMethod"`

	StorageConditions []string `json:"storageConditions"`
	UnloadingMovings  []string `json:"unloadingMovings"`
	SpaceSecurities   []string `json:"spaceSecurities"`
	SpaceSchedules    []string `json:"spaceSchedules"`
	SpaceImages       []Image  `json:"spaceImages"`

	CreatedBy  *UserRef `json:"createdBy"`
	UpdatedBy  *UserRef `json:"updatedBy"`
	VerifiedBy *UserRef `json:"verifiedBy"`
}
