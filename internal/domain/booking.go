package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingStatusPendingActions BookingStatus = "pending_actions"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCancelled      BookingStatus = "cancelled"
	BookingStatusCompleted      BookingStatus = "completed"
)

// SpaceBooking records a paid-for date range on a listing. BookingCode is
// the human-facing unique reference.
type SpaceBooking struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BookingCode string         `json:"bookingCode" gorm:"uniqueIndex;not null"`
	FromDate    datatypes.Date `json:"fromDate" gorm:"not null;index"`
	ToDate      datatypes.Date `json:"toDate" gorm:"not null;index"`

	BookingPrice float64       `json:"bookingPrice" gorm:"not null"`
	PlatformFee  float64       `json:"platformFee" gorm:"not null;default:0"`
	TotalPrice   float64       `json:"totalPrice" gorm:"not null"`
	Status       BookingStatus `json:"bookingStatus" gorm:"not null;default:'pending_actions'"`

	SpaceID          uuid.UUID     `json:"space" gorm:"type:uuid;not null;index"`
	Space            *SpaceForRent `json:"-" gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE"`
	PaymentReceiveID *uuid.UUID    `json:"paymentReceive" gorm:"type:uuid"`

	CreatedBy uuid.UUID  `json:"createdBy" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updatedBy" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
