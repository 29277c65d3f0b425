package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/api/middleware"
	"github.com/spacerent/space-rental-backend/internal/service"
)

// LookupAPI is the shared CRUD surface every lookup service exposes. The
// handler is generic so one implementation serves all lookup tables.
type LookupAPI[T any] interface {
	Create(ctx context.Context, name string, userID uuid.UUID) (*T, error)
	List(ctx context.Context, query service.ListQuery) (*service.Paginated[T], error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, name string, userID uuid.UUID) (*T, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type LookupHandler[T any] struct {
	svc LookupAPI[T]
}

func NewLookupHandler[T any](svc LookupAPI[T]) *LookupHandler[T] {
	return &LookupHandler[T]{svc: svc}
}

type LookupRequest struct {
	Name string `json:"name"`
}

func (h *LookupHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	rec, err := h.svc.Create(r.Context(), req.Name, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *LookupHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), listQueryFromRequest(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *LookupHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid ID")
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *LookupHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid ID")
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	rec, err := h.svc.Update(r.Context(), id, req.Name, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *LookupHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid ID")
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "record deleted")
}

// Routes mounts the standard lookup CRUD surface. Reads are open to any
// authenticated user; writes require an administrative role.
func (h *LookupHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
