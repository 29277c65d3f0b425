package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// FakeObjectStore keeps uploaded assets in memory so image flows can run
// without a MinIO instance.
type FakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewFakeObjectStore() *FakeObjectStore {
	return &FakeObjectStore{objects: make(map[string][]byte)}
}

func (f *FakeObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	f.objects[key] = data
	f.mu.Unlock()
	return "http://fake-store/" + key, nil
}

func (f *FakeObjectStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	delete(f.objects, key)
	f.mu.Unlock()
	return nil
}

// Has reports whether an asset is currently stored under key.
func (f *FakeObjectStore) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	role     domain.UserRole
	fullName string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		role:     domain.RoleRenter,
		fullName: "Test User",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

// WithFullName sets the full name
func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Role:         b.role,
		PasswordHash: string(hashedPassword),
		FullName:     b.fullName,
		DateJoined:   now,
		LastLogin:    now,
		IsActive:     true,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates the user in the database and mints an
// access token for it.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, _ := b.Build(t, ts.DB.DB)
	accessToken, err := ts.Tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("failed to mint access token: %v", err)
	}
	return user, accessToken
}

// SeedLookup inserts one named row into any lookup table.
func SeedLookup[T any](t *testing.T, db *gorm.DB, name string, createdBy uuid.UUID) *T {
	t.Helper()

	rec := new(T)
	if base, ok := any(rec).(interface{ Base() *domain.LookupBase }); ok {
		base.Base().ID = uuid.New()
		base.Base().Name = name
		base.Base().CreatedBy = createdBy
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to seed lookup %q: %v", name, err)
	}
	return rec
}

// SpaceBuilder creates test listings with a builder pattern
type SpaceBuilder struct {
	name         string
	location     string
	price        float64
	minDays      int
	status       domain.SpaceStatus
	creator      *domain.User
	verifier     *domain.User
	spaceType    *domain.SpaceType
	accessMethod *domain.SpaceAccessMethod
}

// NewSpaceBuilder creates a new SpaceBuilder with default values
func NewSpaceBuilder() *SpaceBuilder {
	return &SpaceBuilder{
		name:     fmt.Sprintf("Test Space %s", uuid.New().String()[:8]),
		location: "Test City",
		price:    300,
		minDays:  1,
		status:   domain.SpaceStatusUnverified,
	}
}

// WithName sets the listing name
func (b *SpaceBuilder) WithName(name string) *SpaceBuilder {
	b.name = name
	return b
}

// WithPricePerMonth sets the monthly price
func (b *SpaceBuilder) WithPricePerMonth(price float64) *SpaceBuilder {
	b.price = price
	return b
}

// WithMinimumBookingDays sets the minimum booking period
func (b *SpaceBuilder) WithMinimumBookingDays(days int) *SpaceBuilder {
	b.minDays = days
	return b
}

// WithCreator sets the owning user
func (b *SpaceBuilder) WithCreator(user *domain.User) *SpaceBuilder {
	b.creator = user
	return b
}

// WithVerifier marks the listing verified by the given user
func (b *SpaceBuilder) WithVerifier(user *domain.User) *SpaceBuilder {
	b.verifier = user
	b.status = domain.SpaceStatusVerified
	return b
}

// WithType sets the space type lookup
func (b *SpaceBuilder) WithType(spaceType *domain.SpaceType) *SpaceBuilder {
	b.spaceType = spaceType
	return b
}

// WithAccessMethod sets the access method lookup
func (b *SpaceBuilder) WithAccessMethod(method *domain.SpaceAccessMethod) *SpaceBuilder {
	b.accessMethod = method
	return b
}

// Build creates the listing in the database, seeding any missing
// references.
func (b *SpaceBuilder) Build(t *testing.T, db *gorm.DB) *domain.SpaceForRent {
	t.Helper()

	if b.creator == nil {
		user, _ := NewUserBuilder().WithRole(domain.RoleOwner).Build(t, db)
		b.creator = user
	}
	if b.spaceType == nil {
		b.spaceType = SeedLookup[domain.SpaceType](t, db, fmt.Sprintf("type-%s", uuid.New().String()[:8]), b.creator.ID)
	}
	if b.accessMethod == nil {
		b.accessMethod = SeedLookup[domain.SpaceAccessMethod](t, db, fmt.Sprintf("access-%s", uuid.New().String()[:8]), b.creator.ID)
	}

	space := &domain.SpaceForRent{
		ID:                 uuid.New(),
		Name:               b.name,
		Description:        "A test space",
		Location:           b.location,
		Area:               40,
		Height:             3,
		PricePerMonth:      b.price,
		MinimumBookingDays: b.minDays,
		Status:             b.status,
		TypeID:             b.spaceType.ID,
		AccessMethodID:     b.accessMethod.ID,
		CreatedBy:          b.creator.ID,
	}
	if b.verifier != nil {
		space.VerifiedBy = &b.verifier.ID
	}

	if err := db.Create(space).Error; err != nil {
		t.Fatalf("failed to create space: %v", err)
	}

	return space
}

// SeedReview inserts one review for a space.
func SeedReview(t *testing.T, db *gorm.DB, space *domain.SpaceForRent, reviewer *domain.User, rating float64) *domain.SpaceReview {
	t.Helper()

	review := &domain.SpaceReview{
		ID:         uuid.New(),
		SpaceID:    space.ID,
		ReviewerID: reviewer.ID,
		Rating:     rating,
		Comment:    "test review",
		CreatedBy:  reviewer.ID,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
