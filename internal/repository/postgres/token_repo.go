package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"gorm.io/gorm"
)

type tokenRepository struct {
	*Repo[domain.RefreshToken]
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *tokenRepository {
	return &tokenRepository{Repo: NewRepo[domain.RefreshToken](db), db: db}
}

// FindLive looks up a refresh token that has not yet expired, with its
// owning user joined. Expired and unknown tokens are indistinguishable to
// callers on purpose.
func (r *tokenRepository) FindLive(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var rec domain.RefreshToken
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&rec, "token = ? AND expires_at > ?", token, time.Now()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("refresh token is invalid or expired")
		}
		return nil, apperror.Unexpected("failed to query refresh token", err)
	}
	return &rec, nil
}
