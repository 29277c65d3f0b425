package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/api/middleware"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Role        string     `json:"role"`
	FullName    string     `json:"fullName"`
	PhoneNumber string     `json:"phoneNumber"`
	CountryCode string     `json:"countryCode"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

type UpdateUserRequest struct {
	FullName    *string    `json:"fullName"`
	PhoneNumber *string    `json:"phoneNumber"`
	CountryCode *string    `json:"countryCode"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	IsActive    *bool      `json:"isActive"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		respondBadRequest(w, "Email, password and role are required")
		return
	}

	user, err := h.userService.Create(r.Context(), service.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.UserRole(req.Role),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := service.ListUserQuery{
		ListQuery: listQueryFromRequest(r),
		Email:     r.URL.Query().Get("email"),
		Role:      domain.UserRole(r.URL.Query().Get("role")),
	}

	page, err := h.userService.List(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, service.UpdateUserInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
		DateOfBirth: req.DateOfBirth,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid user ID")
		return
	}

	if err := h.userService.Remove(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "user deleted")
}

// UpdateProfilePicture accepts a multipart form with a single file under
// the "image" field and swaps it in as the caller's avatar.
func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	uploads, cleanup, err := formFileUploads(r, "image")
	if err != nil {
		respondBadRequest(w, "Invalid multipart form")
		return
	}
	defer cleanup()

	if len(uploads) == 0 {
		respondBadRequest(w, "No image file provided")
		return
	}

	user, err := h.userService.UpdateProfilePicture(r.Context(), claims.UserID, uploads[0])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// listQueryFromRequest reads the shared page/pageSize/name query params.
func listQueryFromRequest(r *http.Request) service.ListQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	return service.ListQuery{Page: page, PageSize: pageSize, Name: q.Get("name")}
}
