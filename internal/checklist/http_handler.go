package checklist

import (
	"encoding/json"
	"errors"
	"net/http"

	"pressops/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type instanceView struct {
	Instance
	Progress Progress `json:"progress"`
}

func viewOf(inst Instance) instanceView {
	return instanceView{Instance: inst, Progress: ProgressOf(inst.Items)}
}

type instantiateReq struct {
	Template string `json:"template" validate:"required,max=100"`
}

// Instantiate handles POST /books/{slug}/checklists
func (h *HTTPHandler) Instantiate(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var req instantiateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	inst, err := h.service.Instantiate(r.Context(), slug, req.Template)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTemplate):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown template", nil)
		case errors.Is(err, ErrTemplateMismatch):
			httpx.JSONError(w, r, http.StatusConflict, "TEMPLATE_MISMATCH", "Template does not apply to this book", nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, viewOf(inst))
}

// ListForBook handles GET /books/{slug}/checklists
func (h *HTTPHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	instances, err := h.service.ListForBook(r.Context(), slug)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	views := make([]instanceView, len(instances))
	for i, inst := range instances {
		views[i] = viewOf(inst)
	}
	httpx.JSONSuccess(w, r, views, nil)
}

// Get handles GET /books/{slug}/checklists/{template}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	template := r.PathValue("template")

	inst, err := h.service.Get(r.Context(), slug, template)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Checklist not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, viewOf(inst), nil)
}

type setItemReq struct {
	Done *bool `json:"done" validate:"required"`
}

// SetItem handles PATCH /books/{slug}/checklists/{template}/items/{key}
func (h *HTTPHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	template := r.PathValue("template")
	key := r.PathValue("key")

	var req setItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	item, err := h.service.SetItemDone(r.Context(), slug, template, key, *req.Done)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Checklist item not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, item, nil)
}
