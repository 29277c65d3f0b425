// Package token covers the credential primitives: bcrypt password
// hashing, opaque refresh-token generation, and signed access tokens.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingClaims = errors.New("token is missing required claims")
)

// Claims is the payload embedded in every access token.
type Claims struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	bcryptCost int
}

func NewManager(secret string, accessTTL time.Duration, bcryptCost int) *Manager {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Manager{secret: []byte(secret), accessTTL: accessTTL, bcryptCost: bcryptCost}
}

func (m *Manager) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), m.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (m *Manager) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// GenerateOpaqueToken returns a URL-safe random string with 256 bits of
// entropy, used as the refresh-token value.
func (m *Manager) GenerateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (m *Manager) GenerateAccessToken(userID uuid.UUID, role domain.UserRole) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   userID.String(),
		"userRole": string(role),
		"iat":      now.Unix(),
		"exp":      now.Add(m.accessTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// VerifyAccessToken checks the signature and expiry and rejects tokens
// with missing identity claims.
func (m *Manager) VerifyAccessToken(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}

	rawID, _ := claims["userId"].(string)
	rawRole, _ := claims["userRole"].(string)
	if rawID == "" || rawRole == "" {
		return nil, ErrMissingClaims
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Role: domain.UserRole(rawRole)}, nil
}
