package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SpaceReview is a reviewer's rating of a listing. Ratings run 1 to 5 in
// half-point increments. Nothing stops a reviewer submitting more than one
// review for the same space.
type SpaceReview struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SpaceID    uuid.UUID     `json:"space" gorm:"type:uuid;not null;index"`
	Space      *SpaceForRent `json:"-" gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE"`
	ReviewerID uuid.UUID     `json:"reviewer" gorm:"type:uuid;not null"`
	Reviewer   *User         `json:"-" gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE"`
	Rating     float64       `json:"rating" gorm:"not null"`
	Comment    string        `json:"comment"`

	CreatedBy uuid.UUID  `json:"createdBy" gorm:"type:uuid"`
	UpdatedBy *uuid.UUID `json:"updatedBy" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ValidRating reports whether r is between 1 and 5 on a half-point step.
func ValidRating(r float64) bool {
	if r < 1 || r > 5 {
		return false
	}
	return math.Mod(r*2, 1) == 0
}
