package domain

import (
	"time"

	"github.com/google/uuid"
)

// LookupBase is the shared shape of the small reference collections
// attached to listings (access methods, security features, etc.). Name is
// unique within each lookup table.
type LookupBase struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null"`
	CreatedBy uuid.UUID  `json:"createdBy" gorm:"type:uuid"`
	UpdatedBy *uuid.UUID `json:"updatedBy" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Base exposes the embedded lookup fields to generic code that needs to
// mutate them.
func (b *LookupBase) Base() *LookupBase { return b }

// LookupName returns the display name; value receiver so both T and *T
// satisfy LookupRecord.
func (b LookupBase) LookupName() string { return b.Name }

// LookupRecord is implemented by every lookup entity via LookupBase.
type LookupRecord interface {
	LookupName() string
}

type SpaceType struct{ LookupBase }

func (SpaceType) TableName() string { return "space_types" }

type SpaceAccessMethod struct{ LookupBase }

func (SpaceAccessMethod) TableName() string { return "space_access_methods" }

type SpaceAccessOption struct{ LookupBase }

func (SpaceAccessOption) TableName() string { return "space_access_options" }

type StorageCondition struct{ LookupBase }

func (StorageCondition) TableName() string { return "storage_conditions" }

type UnloadingMoving struct{ LookupBase }

func (UnloadingMoving) TableName() string { return "unloading_movings" }

type SpaceSecurity struct{ LookupBase }

func (SpaceSecurity) TableName() string { return "space_securities" }

type SpaceSchedule struct{ LookupBase }

func (SpaceSchedule) TableName() string { return "space_schedules" }
