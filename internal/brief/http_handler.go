package brief

import (
	"encoding/json"
	"errors"
	"net/http"

	"pressops/internal/httpx"
)

type HTTPHandler struct {
	repo Repository
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

type upsertReq struct {
	Palette   string `json:"palette" validate:"required,max=200"`
	ArtPrompt string `json:"art_prompt" validate:"required,max=4000"`
	Typeface  string `json:"typeface" validate:"max=100"`
	Finish    string `json:"finish" validate:"required,oneof=matte glossy"`
	Notes     string `json:"notes" validate:"max=4000"`
}

// Upsert handles PUT /books/{slug}/brief
func (h *HTTPHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var req upsertReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	b := Brief{
		BookSlug:  slug,
		Palette:   req.Palette,
		ArtPrompt: req.ArtPrompt,
		Typeface:  req.Typeface,
		Finish:    req.Finish,
		Notes:     req.Notes,
	}

	if err := h.repo.Upsert(r.Context(), &b); err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, b, nil)
}

// Get handles GET /books/{slug}/brief
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	b, err := h.repo.GetByBookSlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "No brief for this book", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, b, nil)
}
