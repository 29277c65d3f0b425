package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"github.com/spacerent/space-rental-backend/internal/token"
)

type AuthService struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	tm         *token.Manager
	notifier   Notifier
	refreshTTL time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	tm *token.Manager,
	notifier Notifier,
	refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		tm:         tm,
		notifier:   notifier,
		refreshTTL: refreshTTL,
	}
}

type SignUpInput struct {
	Email       string
	Password    string
	Role        domain.UserRole
	FullName    string
	PhoneNumber string
	CountryCode string
}

type SignInInput struct {
	Email    string
	Password string
	Role     domain.UserRole
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// SignUp registers a new account, issues a token pair, and queues a
// welcome notification. The (email, role) pair must not exist yet.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	if !domain.ValidSignUpRole(input.Role) {
		return nil, apperror.Validation("role must be renter or owner")
	}

	hash, err := s.tm.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not register user")
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		CountryCode:  input.CountryCode,
		DateJoined:   now,
		LastLogin:    now,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.Reclassify(err, "could not register user")
	}

	result, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not register user")
	}

	s.notifier.NotifySignUp(user.Email, user.FullName)
	return result, nil
}

// SignIn authenticates against the (email, role) pair. A missing account
// is NotFound, a wrong password Unauthorized, and an account provisioned
// through a social-login path with no local password a Validation failure.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*AuthResult, error) {
	user, err := s.users.FindByEmailAndRole(ctx, input.Email, input.Role)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not authenticate user")
	}

	if user.IsPasswordLess {
		log.Printf("ERROR [service.Auth] password-less login attempted with email: %s", user.Email)
		return nil, apperror.Validation("to enable password-based login, set up a password for your account alongside social login")
	}

	if !s.tm.VerifyPassword(input.Password, user.PasswordHash) {
		log.Printf("ERROR [service.Auth] invalid credentials provided with email: %s", user.Email)
		return nil, apperror.Unauthorized("invalid credentials provided")
	}

	user, err = s.users.UpdateByID(ctx, user.ID, map[string]any{"last_login": time.Now()})
	if err != nil {
		return nil, apperror.Reclassify(err, "could not authenticate user")
	}

	result, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not authenticate user")
	}

	s.notifier.NotifySignIn(user.Email, user.FullName)
	return result, nil
}

// AdminSignIn is SignIn constrained to the admin role.
func (s *AuthService) AdminSignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	return s.SignIn(ctx, SignInInput{Email: email, Password: password, Role: domain.RoleAdmin})
}

// RefreshAccessToken mints a new access token bound to a live refresh
// token. The refresh token itself is not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	rec, err := s.tokens.FindLive(ctx, refreshToken)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, apperror.Validation("refresh token is invalid or expired")
		}
		return nil, apperror.Reclassify(err, "could not refresh token")
	}

	accessToken, err := s.tm.GenerateAccessToken(rec.UserID, rec.User.Role)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not refresh token")
	}

	return &AuthResult{
		User:         rec.User,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RevokeRefreshToken expires a live refresh token immediately. Revoking a
// token that is already expired or unknown fails the same way.
func (s *AuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	rec, err := s.tokens.FindLive(ctx, refreshToken)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return apperror.Validation("refresh token is invalid or expired")
		}
		return apperror.Reclassify(err, "could not revoke token")
	}

	if _, err := s.tokens.UpdateByID(ctx, rec.ID, map[string]any{"expires_at": time.Now()}); err != nil {
		return apperror.Reclassify(err, "could not revoke token")
	}
	return nil
}

// ChangePassword swaps the stored hash after verifying the old password.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperror.Reclassify(err, "could not change password")
	}

	if !s.tm.VerifyPassword(oldPassword, user.PasswordHash) {
		log.Printf("ERROR [service.Auth] user %s tried to change password with an incorrect old password", userID)
		return apperror.Validation("old password is incorrect")
	}

	hash, err := s.tm.HashPassword(newPassword)
	if err != nil {
		return apperror.Reclassify(err, "could not change password")
	}

	if _, err := s.users.UpdateByID(ctx, userID, map[string]any{"password_hash": hash}); err != nil {
		return apperror.Reclassify(err, "could not change password")
	}
	return nil
}

// CurrentUser fetches the authenticated user with the profile-picture URL
// resolved.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByIDWithPicture(ctx, userID)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not get user info")
	}
	return user, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.tm.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, apperror.Unexpected("error generating access token", err)
	}

	opaque, err := s.tm.GenerateOpaqueToken()
	if err != nil {
		return nil, apperror.Unexpected("error generating refresh token", err)
	}

	rec := &domain.RefreshToken{
		ID:        uuid.New(),
		Token:     opaque,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokens.Create(ctx, rec); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: opaque,
	}, nil
}
