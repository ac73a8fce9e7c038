package book

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

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		PuzzleType: query.Get("puzzle_type"),
		Difficulty: query.Get("difficulty"),
		Status:     query.Get("status"),
		Q:          query.Get("q"),
		Sort:       query.Get("sort"),
		Desc:       query.Get("desc") == "true",
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	params.Limit = pageSize
	params.Offset = (page - 1) * pageSize

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

type bookDetail struct {
	Book
	Print PrintSpec `json:"print"`
}

// GetBySlug handles GET /books/{slug}
func (h *HTTPHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	b, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	spec, err := PrintSpecFor(b)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, bookDetail{Book: b, Print: spec}, nil)
}

type createReq struct {
	Slug           string   `json:"slug" validate:"omitempty,slug,max=100"`
	Title          string   `json:"title" validate:"required,min=1,max=200"`
	Subtitle       string   `json:"subtitle" validate:"max=200"`
	PuzzleType     string   `json:"puzzle_type" validate:"required,oneof=crossword sudoku word_search mixed"`
	Difficulty     string   `json:"difficulty" validate:"required,oneof=easy medium hard mixed"`
	TrimSize       string   `json:"trim_size" validate:"required,trim_size"`
	PageCount      int      `json:"page_count" validate:"required,gte=24,lte=828"`
	PaperType      string   `json:"paper_type" validate:"required,oneof=white cream premium_color"`
	ListPriceCents int      `json:"list_price_cents" validate:"required,gte=99"`
	Description    string   `json:"description" validate:"max=4000"`
	Keywords       []string `json:"keywords" validate:"max=7,dive,max=50"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	b := Book{
		Slug:           req.Slug,
		Title:          req.Title,
		Subtitle:       req.Subtitle,
		PuzzleType:     req.PuzzleType,
		Difficulty:     req.Difficulty,
		TrimSize:       req.TrimSize,
		PageCount:      req.PageCount,
		PaperType:      req.PaperType,
		ListPriceCents: req.ListPriceCents,
		Description:    req.Description,
		Keywords:       req.Keywords,
	}

	if err := h.service.Create(r.Context(), &b); err != nil {
		switch {
		case errors.Is(err, ErrSlugTaken):
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Slug already exists", nil)
		case errors.Is(err, ErrPageCountRange), errors.Is(err, ErrUnknownPaperType):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, b)
}

type updateReq struct {
	Title          *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Subtitle       *string   `json:"subtitle" validate:"omitempty,max=200"`
	PuzzleType     *string   `json:"puzzle_type" validate:"omitempty,oneof=crossword sudoku word_search mixed"`
	Difficulty     *string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
	TrimSize       *string   `json:"trim_size" validate:"omitempty,trim_size"`
	PageCount      *int      `json:"page_count" validate:"omitempty,gte=24,lte=828"`
	PaperType      *string   `json:"paper_type" validate:"omitempty,oneof=white cream premium_color"`
	ListPriceCents *int      `json:"list_price_cents" validate:"omitempty,gte=99"`
	ASIN           *string   `json:"asin" validate:"omitempty,len=10"`
	Status         *string   `json:"status" validate:"omitempty,oneof=draft in_review live retired"`
	Description    *string   `json:"description" validate:"omitempty,max=4000"`
	Keywords       *[]string `json:"keywords" validate:"omitempty,max=7,dive,max=50"`
}

// Update handles PATCH /books/{slug}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	updated, err := h.service.Update(r.Context(), slug, func(b *Book) {
		if req.Title != nil {
			b.Title = strings.TrimSpace(*req.Title)
		}
		if req.Subtitle != nil {
			b.Subtitle = *req.Subtitle
		}
		if req.PuzzleType != nil {
			b.PuzzleType = *req.PuzzleType
		}
		if req.Difficulty != nil {
			b.Difficulty = *req.Difficulty
		}
		if req.TrimSize != nil {
			b.TrimSize = *req.TrimSize
		}
		if req.PageCount != nil {
			b.PageCount = *req.PageCount
		}
		if req.PaperType != nil {
			b.PaperType = *req.PaperType
		}
		if req.ListPriceCents != nil {
			b.ListPriceCents = *req.ListPriceCents
		}
		if req.ASIN != nil {
			b.ASIN = req.ASIN
		}
		if req.Status != nil {
			b.Status = *req.Status
		}
		if req.Description != nil {
			b.Description = *req.Description
		}
		if req.Keywords != nil {
			b.Keywords = *req.Keywords
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, ErrBadTransition):
			httpx.JSONError(w, r, http.StatusConflict, "INVALID_TRANSITION", "Status change not allowed", nil)
		case errors.Is(err, ErrPageCountRange), errors.Is(err, ErrUnknownPaperType):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, updated, nil)
}
