package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"gorm.io/datatypes"
)

// platformFeeRate is the marketplace cut applied on top of the pro-rated
// booking price.
const platformFeeRate = 0.05

type BookingService struct {
	bookings repository.Repository[domain.SpaceBooking]
	spaces   repository.SpaceRepository
}

func NewBookingService(bookings repository.Repository[domain.SpaceBooking], spaces repository.SpaceRepository) *BookingService {
	return &BookingService{bookings: bookings, spaces: spaces}
}

type CreateBookingInput struct {
	SpaceID  uuid.UUID
	FromDate time.Time
	ToDate   time.Time
}

// Create prices a booking from the space's monthly rate pro-rated by day,
// adds the platform fee, and stores it in the pending state.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput, userID uuid.UUID) (*domain.SpaceBooking, error) {
	space, err := s.spaces.FindByID(ctx, input.SpaceID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, apperror.Validation("invalid space")
		}
		return nil, apperror.Reclassify(err, "could not create booking")
	}

	days := bookingDays(input.FromDate, input.ToDate)
	if days < 1 {
		return nil, apperror.Validation("booking end date must be after the start date")
	}
	if days < space.MinimumBookingDays {
		return nil, apperror.Validation("booking is shorter than the space's minimum booking period")
	}

	dailyRate := space.PricePerMonth / 30
	bookingPrice := roundMoney(dailyRate * float64(days))
	platformFee := roundMoney(bookingPrice * platformFeeRate)

	code, err := newBookingCode()
	if err != nil {
		return nil, apperror.Unexpected("could not generate booking code", err)
	}

	booking := &domain.SpaceBooking{
		ID:           uuid.New(),
		BookingCode:  code,
		FromDate:     datatypes.Date(input.FromDate),
		ToDate:       datatypes.Date(input.ToDate),
		BookingPrice: bookingPrice,
		PlatformFee:  platformFee,
		TotalPrice:   roundMoney(bookingPrice + platformFee),
		Status:       domain.BookingStatusPendingActions,
		SpaceID:      space.ID,
		CreatedBy:    userID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperror.Reclassify(err, "could not create booking")
	}
	return booking, nil
}

// ListForUser returns one page of the user's own bookings.
func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID, query ListQuery) (*Paginated[domain.SpaceBooking], error) {
	page, pageSize, offset := query.normalize()
	filter := repository.Filter{Eq: map[string]any{"created_by": userID}}

	total, err := s.bookings.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list bookings")
	}
	records, err := s.bookings.Find(ctx, filter, repository.ListOptions{Limit: pageSize, Offset: offset})
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list bookings")
	}
	return &Paginated[domain.SpaceBooking]{Total: total, Page: page, PageSize: pageSize, Records: records}, nil
}

// Get returns a booking to its creator or to an administrator.
func (s *BookingService) Get(ctx context.Context, id, userID uuid.UUID, role domain.UserRole) (*domain.SpaceBooking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not get booking")
	}
	if booking.CreatedBy != userID && !role.IsAdministrative() {
		return nil, apperror.Forbidden("you do not have access to this booking")
	}
	return booking, nil
}

// bookingDays counts the nights between two calendar dates, ignoring the
// time-of-day component.
func bookingDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// newBookingCode carries 64 bits of randomness, enough that the unique
// index on booking_code never fires in practice.
func newBookingCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "BK-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
