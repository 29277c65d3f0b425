package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/api/middleware"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/service"
)

type SpaceHandler struct {
	spaceService *service.SpaceService
}

func NewSpaceHandler(spaceService *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{spaceService: spaceService}
}

type UpdateSpaceRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Location           *string  `json:"location"`
	Area               *float64 `json:"area"`
	Height             *float64 `json:"height"`
	PricePerMonth      *float64 `json:"pricePerMonth"`
	MinimumBookingDays *int     `json:"minimumBookingDays"`

	Type         *uuid.UUID `json:"type"`
	AccessMethod *uuid.UUID `json:"accessMethod"`

	StorageConditions []uuid.UUID `json:"storageConditions"`
	UnloadingMovings  []uuid.UUID `json:"unloadingMovings"`
	SpaceSecurities   []uuid.UUID `json:"spaceSecurities"`
	SpaceSchedules    []uuid.UUID `json:"spaceSchedules"`
}

// Create accepts a multipart form: scalar listing fields as form values,
// lookup references as repeated ID values, and listing photos as files
// under the "images" field.
func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	uploads, cleanup, err := formFileUploads(r, "images")
	if err != nil {
		respondBadRequest(w, "Invalid multipart form")
		return
	}
	defer cleanup()

	input := service.CreateSpaceInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Images:      uploads,
	}
	if input.Name == "" || input.Location == "" {
		respondBadRequest(w, "Name and location are required")
		return
	}

	input.Area, _ = strconv.ParseFloat(r.FormValue("area"), 64)
	input.Height, _ = strconv.ParseFloat(r.FormValue("height"), 64)
	input.PricePerMonth, _ = strconv.ParseFloat(r.FormValue("pricePerMonth"), 64)
	input.MinimumBookingDays, _ = strconv.Atoi(r.FormValue("minimumBookingDays"))

	if input.TypeID, err = uuid.Parse(r.FormValue("type")); err != nil {
		respondBadRequest(w, "Invalid space type ID")
		return
	}
	if input.AccessMethodID, err = uuid.Parse(r.FormValue("accessMethod")); err != nil {
		respondBadRequest(w, "Invalid access method ID")
		return
	}

	for field, dst := range map[string]*[]uuid.UUID{
		"storageConditions": &input.StorageConditionIDs,
		"unloadingMovings":  &input.UnloadingMovingIDs,
		"spaceSecurities":   &input.SpaceSecurityIDs,
		"spaceSchedules":    &input.SpaceScheduleIDs,
	} {
		ids, err := parseIDValues(r, field)
		if err != nil {
			respondBadRequest(w, "Invalid "+field+" ID")
			return
		}
		*dst = ids
	}

	space, err := h.spaceService.Create(r.Context(), input, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, space)
}

// Cards serves the paginated card-view projection.
func (h *SpaceHandler) Cards(w http.ResponseWriter, r *http.Request) {
	query := service.ListSpaceQuery{
		ListQuery: listQueryFromRequest(r),
		Status:    domain.SpaceStatus(r.URL.Query().Get("status")),
	}

	page, err := h.spaceService.CardView(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid space ID")
		return
	}

	detail, err := h.spaceService.Detail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *SpaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid space ID")
		return
	}

	var req UpdateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	space, err := h.spaceService.Update(r.Context(), id, service.UpdateSpaceInput{
		Name:                req.Name,
		Description:         req.Description,
		Location:            req.Location,
		Area:                req.Area,
		Height:              req.Height,
		PricePerMonth:       req.PricePerMonth,
		MinimumBookingDays:  req.MinimumBookingDays,
		TypeID:              req.Type,
		AccessMethodID:      req.AccessMethod,
		StorageConditionIDs: req.StorageConditions,
		UnloadingMovingIDs:  req.UnloadingMovings,
		SpaceSecurityIDs:    req.SpaceSecurities,
		SpaceScheduleIDs:    req.SpaceSchedules,
	}, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, space)
}

func (h *SpaceHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid space ID")
		return
	}

	space, err := h.spaceService.Verify(r.Context(), id, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, space)
}

func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "Invalid space ID")
		return
	}

	if err := h.spaceService.Remove(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "space deleted")
}

// parseIDValues reads every repeated form value under field as a UUID.
func parseIDValues(r *http.Request, field string) ([]uuid.UUID, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	values := r.MultipartForm.Value[field]
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
