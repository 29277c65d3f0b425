package service

import (
	"github.com/spacerent/space-rental-backend/internal/cache"
	"github.com/spacerent/space-rental-backend/internal/config"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"github.com/spacerent/space-rental-backend/internal/storage"
	"github.com/spacerent/space-rental-backend/internal/token"
)

// Notifier dispatches outbound notifications without blocking the request
// path. Implementations must never let a delivery failure reach callers.
type Notifier interface {
	NotifySignUp(email, fullName string)
	NotifySignIn(email, fullName string)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifySignUp(string, string) {}
func (NopNotifier) NotifySignIn(string, string) {}

// ListQuery is the shared pagination + name-search query for list
// endpoints.
type ListQuery struct {
	Page     int
	PageSize int
	Name     string
}

func (q ListQuery) normalize() (page, pageSize, offset int) {
	page = q.Page
	if page < 1 {
		page = 1
	}
	pageSize = q.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize, (page - 1) * pageSize
}

// Paginated wraps a page of records with the total count.
type Paginated[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Records  []T   `json:"records"`
}

type Services struct {
	Auth    *AuthService
	User    *UserService
	Image   *ImageService
	Space   *SpaceService
	Review  *ReviewService
	Booking *BookingService

	SpaceType         *LookupService[domain.SpaceType, *domain.SpaceType]
	SpaceAccessMethod *LookupService[domain.SpaceAccessMethod, *domain.SpaceAccessMethod]
	SpaceAccessOption *LookupService[domain.SpaceAccessOption, *domain.SpaceAccessOption]
	StorageCondition  *LookupService[domain.StorageCondition, *domain.StorageCondition]
	UnloadingMoving   *LookupService[domain.UnloadingMoving, *domain.UnloadingMoving]
	SpaceSecurity     *LookupService[domain.SpaceSecurity, *domain.SpaceSecurity]
	SpaceSchedule     *LookupService[domain.SpaceSchedule, *domain.SpaceSchedule]
}

func NewServices(
	repos *repository.Repositories,
	cfg *config.Config,
	tokens *token.Manager,
	notifier Notifier,
	store storage.ObjectStore,
	cardCache *cache.Store,
) *Services {
	imageService := NewImageService(repos.Image, store)

	return &Services{
		Auth:    NewAuthService(repos.User, repos.Token, tokens, notifier, cfg.RefreshTokenTTL),
		User:    NewUserService(repos.User, tokens, imageService),
		Image:   imageService,
		Space:   NewSpaceService(repos, imageService, cardCache),
		Review:  NewReviewService(repos.Review, repos.Space, cardCache),
		Booking: NewBookingService(repos.Booking, repos.Space),

		SpaceType:         NewLookupService[domain.SpaceType](repos.SpaceType),
		SpaceAccessMethod: NewLookupService[domain.SpaceAccessMethod](repos.SpaceAccessMethod),
		SpaceAccessOption: NewLookupService[domain.SpaceAccessOption](repos.SpaceAccessOption),
		StorageCondition:  NewLookupService[domain.StorageCondition](repos.StorageCondition),
		UnloadingMoving:   NewLookupService[domain.UnloadingMoving](repos.UnloadingMoving),
		SpaceSecurity:     NewLookupService[domain.SpaceSecurity](repos.SpaceSecurity),
		SpaceSchedule:     NewLookupService[domain.SpaceSchedule](repos.SpaceSchedule),
	}
}
