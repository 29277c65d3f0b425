package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/api/middleware"
	"github.com/spacerent/space-rental-backend/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type CreateReviewRequest struct {
	Space   string  `json:"space"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	spaceID, err := uuid.Parse(req.Space)
	if err != nil {
		respondBadRequest(w, "Invalid space ID")
		return
	}

	review, err := h.reviewService.Create(r.Context(), service.CreateReviewInput{
		SpaceID: spaceID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.reviewService.List(r.Context(), listQueryFromRequest(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ReviewHandler) ListBySpace(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceId"))
	if err != nil {
		respondBadRequest(w, "Invalid space ID")
		return
	}

	reviews, err := h.reviewService.ListBySpace(r.Context(), spaceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid review ID")
		return
	}

	if err := h.reviewService.Remove(r.Context(), id, claims.UserID, claims.Role); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "review deleted")
}
