package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"github.com/spacerent/space-rental-backend/internal/token"
)

type UserService struct {
	users  repository.UserRepository
	tokens *token.Manager
	images *ImageService
}

func NewUserService(users repository.UserRepository, tokens *token.Manager, images *ImageService) *UserService {
	return &UserService{users: users, tokens: tokens, images: images}
}

type CreateUserInput struct {
	Email       string
	Password    string
	Role        domain.UserRole
	FullName    string
	PhoneNumber string
	CountryCode string
	DateOfBirth *time.Time
}

type UpdateUserInput struct {
	FullName    *string
	PhoneNumber *string
	CountryCode *string
	DateOfBirth *time.Time
	IsActive    *bool
}

type ListUserQuery struct {
	ListQuery
	Email string
	Role  domain.UserRole
}

// Create registers a user on behalf of an administrator. Unlike sign-up
// it accepts any role, including administrative ones.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	hash, err := s.tokens.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not create user")
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Role:         input.Role,
		PasswordHash: hash,
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		CountryCode:  input.CountryCode,
		DateOfBirth:  input.DateOfBirth,
		DateJoined:   now,
		LastLogin:    now,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.Reclassify(err, "could not create user")
	}
	return user, nil
}

// List returns one page of users, optionally narrowed by email, full
// name and role.
func (s *UserService) List(ctx context.Context, query ListUserQuery) (*Paginated[domain.User], error) {
	page, pageSize, offset := query.normalize()

	filter := repository.Filter{Eq: map[string]any{}, Like: map[string]string{}}
	if query.Email != "" {
		filter.Like["email"] = query.Email
	}
	if query.Name != "" {
		filter.Like["full_name"] = query.Name
	}
	if query.Role != "" {
		filter.Eq["role"] = query.Role
	}

	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list users")
	}
	records, err := s.users.Find(ctx, filter, repository.ListOptions{Limit: pageSize, Offset: offset})
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list users")
	}
	return &Paginated[domain.User]{Total: total, Page: page, PageSize: pageSize, Records: records}, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByIDWithPicture(ctx, id)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not get user")
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	changes := map[string]any{}
	setIf(changes, "full_name", input.FullName)
	setIf(changes, "phone_number", input.PhoneNumber)
	setIf(changes, "country_code", input.CountryCode)
	setIf(changes, "date_of_birth", input.DateOfBirth)
	setIf(changes, "is_active", input.IsActive)
	if len(changes) == 0 {
		return nil, apperror.Validation("no fields provided to update")
	}

	user, err := s.users.UpdateByID(ctx, id, changes)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not update user")
	}
	return user, nil
}

func (s *UserService) Remove(ctx context.Context, id uuid.UUID) error {
	removed, err := s.users.RemoveByID(ctx, id)
	if err != nil {
		return apperror.Reclassify(err, "could not delete user")
	}
	if !removed {
		return apperror.Validation("could not delete user with provided ID")
	}
	return nil
}

// UpdateProfilePicture replaces the user's avatar. The previous image
// and its stored asset are removed before the new one is linked.
func (s *UserService) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, upload ImageUpload) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not update profile picture")
	}

	if user.ProfilePictureID != nil {
		// users.profile_picture_id references the image row, so the
		// reference has to be released before the row can be deleted.
		oldImageID := *user.ProfilePictureID
		if _, err := s.users.UpdateByID(ctx, userID, map[string]any{"profile_picture_id": nil}); err != nil {
			return nil, apperror.Reclassify(err, "could not update profile picture")
		}
		if err := s.images.Remove(ctx, oldImageID, userID); err != nil {
			return nil, apperror.Reclassify(err, "could not update profile picture")
		}
	}

	image, err := s.images.CreateSingle(ctx, upload, userID)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not update profile picture")
	}

	if _, err := s.users.UpdateByID(ctx, userID, map[string]any{"profile_picture_id": image.ID}); err != nil {
		return nil, apperror.Reclassify(err, "could not update profile picture")
	}
	return s.users.FindByIDWithPicture(ctx, userID)
}
