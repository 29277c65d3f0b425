package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image is the metadata row for an asset held in the remote object store.
// AssetKey is the opaque identifier the store needs for deletion; the row
// must outlive the remote asset, never the other way around.
type Image struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	URL       string    `json:"url" gorm:"not null"`
	AssetKey  string    `json:"name" gorm:"column:asset_key;not null"`
	Extension string    `json:"extension"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	OwnerID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
}
