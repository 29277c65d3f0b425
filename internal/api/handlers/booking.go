package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/api/middleware"
	"github.com/spacerent/space-rental-backend/internal/service"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type CreateBookingRequest struct {
	Space    string `json:"space"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	spaceID, err := uuid.Parse(req.Space)
	if err != nil {
		respondBadRequest(w, "Invalid space ID")
		return
	}

	fromDate, err := time.Parse(time.DateOnly, req.FromDate)
	if err != nil {
		respondBadRequest(w, "Invalid fromDate, expected YYYY-MM-DD")
		return
	}
	toDate, err := time.Parse(time.DateOnly, req.ToDate)
	if err != nil {
		respondBadRequest(w, "Invalid toDate, expected YYYY-MM-DD")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), service.CreateBookingInput{
		SpaceID:  spaceID,
		FromDate: fromDate,
		ToDate:   toDate,
	}, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page, err := h.bookingService.ListForUser(r.Context(), claims.UserID, listQueryFromRequest(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Get(r.Context(), id, claims.UserID, claims.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}
