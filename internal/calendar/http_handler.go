package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pressops/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	BookSlug     string    `json:"book_slug" validate:"omitempty,slug,max=100"`
	Platform     string    `json:"platform" validate:"required,oneof=instagram tiktok pinterest x"`
	Copy         string    `json:"copy" validate:"required,max=2200"`
	AssetURL     string    `json:"asset_url" validate:"omitempty,url"`
	ScheduledFor time.Time `json:"scheduled_for" validate:"required"`
}

// Create handles POST /calendar
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	e := Entry{
		BookSlug:     req.BookSlug,
		Platform:     req.Platform,
		Copy:         req.Copy,
		AssetURL:     req.AssetURL,
		ScheduledFor: req.ScheduledFor,
	}

	if err := h.service.Create(r.Context(), &e); err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, e)
}

// List handles GET /calendar
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		Platform: query.Get("platform"),
		Status:   query.Get("status"),
	}

	if fromStr := query.Get("from"); fromStr != "" {
		if val, err := time.Parse(time.RFC3339, fromStr); err == nil {
			params.From = &val
		}
	}
	if toStr := query.Get("to"); toStr != "" {
		if val, err := time.Parse(time.RFC3339, toStr); err == nil {
			params.To = &val
		}
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	params.Limit = pageSize
	params.Offset = (page - 1) * pageSize

	entries, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, entries, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

type statusReq struct {
	Status string `json:"status" validate:"required,oneof=planned drafted posted skipped"`
}

// UpdateStatus handles PATCH /calendar/{id}
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req statusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	e, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Calendar entry not found", nil)
		case errors.Is(err, ErrBadTransition):
			httpx.JSONError(w, r, http.StatusConflict, "INVALID_TRANSITION", "Status change not allowed", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, e, nil)
}

// Due handles GET /calendar/due
func (h *HTTPHandler) Due(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Due(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, entries, map[string]any{"count": len(entries)})
}
