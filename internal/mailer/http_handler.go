package mailer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pressops/internal/httpx"
)

type HTTPHandler struct {
	mailer *Mailer
}

func NewHTTPHandler(mailer *Mailer) *HTTPHandler {
	return &HTTPHandler{mailer: mailer}
}

type sendReq struct {
	To       string            `json:"to" validate:"required,email"`
	Template string            `json:"template" validate:"required"`
	Params   map[string]string `json:"params"`
}

// Send handles POST /hooks/send-email: render a named template and push
// it through the relay. A relay that is down after retries is a gateway
// problem, not an internal one.
func (h *HTTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.To = strings.TrimSpace(req.To)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.mailer.SendTemplate(r.Context(), req.To, req.Template, req.Params); err != nil {
		switch {
		case errors.Is(err, ErrUnknownTemplate):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		case errors.Is(err, ErrRelay):
			httpx.JSONError(w, r, http.StatusBadGateway, "RELAY_FAILURE", "Mail relay unavailable", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{"sent": true}, nil)
}
