package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	*Repo[domain.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{Repo: NewRepo[domain.User](db), db: db}
}

func (r *userRepository) FindByEmailAndRole(ctx context.Context, email string, role domain.UserRole) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ? AND role = ?", email, role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no user found with provided email")
		}
		return nil, apperror.Unexpected("failed to query user", err)
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithPicture(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("ProfilePicture").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no user found with provided ID")
		}
		return nil, apperror.Unexpected("failed to query user", err)
	}
	return &user, nil
}
