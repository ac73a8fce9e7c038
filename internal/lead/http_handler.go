package lead

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pressops/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type captureReq struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=100"`
	Source    string `json:"source" validate:"max=100"`
	BookSlug  string `json:"book_slug" validate:"omitempty,slug,max=100"`
}

// Capture handles POST /leads. Public, cross-origin from the landing page.
func (h *HTTPHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req captureReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	l := Lead{
		Email:     req.Email,
		FirstName: req.FirstName,
		Source:    req.Source,
		BookSlug:  req.BookSlug,
	}

	if err := h.service.Capture(r.Context(), &l); err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessAccepted(w, r, map[string]any{
		"id":     l.ID,
		"status": l.Status,
	})
}

// List handles GET /leads. Admin only.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		Status: query.Get("status"),
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

	leads, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, leads, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// Unsubscribe handles GET /leads/unsubscribe?token=...
func (h *HTTPHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Missing token", nil)
		return
	}

	if err := h.service.Unsubscribe(r.Context(), token); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Unknown token", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{"status": StatusUnsubscribed}, nil)
}
