package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/domain"
)

// Filter narrows Find/Count/FindOneWhere queries. Eq matches columns
// exactly; Like matches case-insensitive substrings.
type Filter struct {
	Eq   map[string]any
	Like map[string]string
}

type ListOptions struct {
	Limit  int
	Offset int
}

// Repository is the generic record-store contract every entity shares.
// Create reports Conflict on a uniqueness violation; UpdateByID reports
// NotFound when no row matches; read paths surface store errors rather
// than swallowing them.
type Repository[T any] interface {
	Create(ctx context.Context, rec *T) error
	Find(ctx context.Context, filter Filter, opts ListOptions) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindOneWhere(ctx context.Context, filter Filter) (*T, error)
	UpdateByID(ctx context.Context, id uuid.UUID, changes map[string]any) (*T, error)
	RemoveByID(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	ValidateIDs(ctx context.Context, ids []uuid.UUID) (bool, error)
}

type UserRepository interface {
	Repository[domain.User]
	FindByEmailAndRole(ctx context.Context, email string, role domain.UserRole) (*domain.User, error)
	FindByIDWithPicture(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type TokenRepository interface {
	Repository[domain.RefreshToken]
	// FindLive returns the token row with its owning user joined, only if
	// the token has not expired.
	FindLive(ctx context.Context, token string) (*domain.RefreshToken, error)
}

type SpaceRepository interface {
	Repository[domain.SpaceForRent]
	FindForCardView(ctx context.Context, filter Filter, offset, limit int) ([]domain.SpaceCard, error)
	FindOnePopulatedByID(ctx context.Context, id uuid.UUID) (*domain.SpaceDetail, error)
	ReplaceAssociations(ctx context.Context, space *domain.SpaceForRent) error
}

type ReviewRepository interface {
	Repository[domain.SpaceReview]
	FindWithReviewer(ctx context.Context, filter Filter, opts ListOptions) ([]domain.SpaceReview, error)
}

type Repositories struct {
	User    UserRepository
	Token   TokenRepository
	Space   SpaceRepository
	Review  ReviewRepository
	Booking Repository[domain.SpaceBooking]
	Image   Repository[domain.Image]

	SpaceType         Repository[domain.SpaceType]
	SpaceAccessMethod Repository[domain.SpaceAccessMethod]
	SpaceAccessOption Repository[domain.SpaceAccessOption]
	StorageCondition  Repository[domain.StorageCondition]
	UnloadingMoving   Repository[domain.UnloadingMoving]
	SpaceSecurity     Repository[domain.SpaceSecurity]
	SpaceSchedule     Repository[domain.SpaceSchedule]
}
