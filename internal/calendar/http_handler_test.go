package calendar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pressops/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	entries map[string]*Entry
}

func newStubRepo(entries ...Entry) *stubRepo {
	s := &stubRepo{entries: make(map[string]*Entry)}
	for i := range entries {
		e := entries[i]
		s.entries[e.ID] = &e
	}
	return s
}

func (s *stubRepo) Create(_ context.Context, e *Entry) error {
	e.ID = fmt.Sprintf("entry-%d", len(s.entries)+1)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	stored := *e
	s.entries[e.ID] = &stored
	return nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return *e, nil
}

func (s *stubRepo) List(_ context.Context, q Query) ([]Entry, int, error) {
	var out []Entry
	for _, e := range s.entries {
		if q.Platform != "" && e.Platform != q.Platform {
			continue
		}
		if q.Status != "" && e.Status != q.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id, status string) (Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	return *e, nil
}

func (s *stubRepo) Due(_ context.Context, now time.Time) ([]Entry, error) {
	var out []Entry
	for _, e := range s.entries {
		if !e.ScheduledFor.After(now) && (e.Status == StatusPlanned || e.Status == StatusDrafted) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPlanned, StatusDrafted, true},
		{StatusPlanned, StatusPosted, true},
		{StatusPlanned, StatusSkipped, true},
		{StatusDrafted, StatusPosted, true},
		{StatusDrafted, StatusPlanned, false},
		{StatusPosted, StatusDrafted, false},
		{StatusPosted, StatusSkipped, false},
		{StatusSkipped, StatusPlanned, false},
		{StatusPosted, StatusPosted, true},
	}
	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCreateEntry(t *testing.T) {
	t.Run("creates planned entry", func(t *testing.T) {
		repo := newStubRepo()
		handler := NewHTTPHandler(NewService(repo))

		r := testutil.NewRequest(http.MethodPost, "/calendar", map[string]interface{}{
			"book_slug":     "easy-crosswords-vol-1",
			"platform":      "instagram",
			"copy":          "Launch week! Link in bio.",
			"scheduled_for": "2026-09-01T09:00:00Z",
		})
		w := httptest.NewRecorder()

		handler.Create(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		assert.Equal(t, StatusPlanned, data["status"])
		assert.Equal(t, "instagram", data["platform"])
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newStubRepo()))

		r := testutil.NewRequest(http.MethodPost, "/calendar", map[string]interface{}{
			"platform":      "myspace",
			"copy":          "hello",
			"scheduled_for": "2026-09-01T09:00:00Z",
		})
		w := httptest.NewRecorder()

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errObj := testutil.DecodeBody(w)["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	})

	t.Run("rejects missing copy", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newStubRepo()))

		r := testutil.NewRequest(http.MethodPost, "/calendar", map[string]interface{}{
			"platform":      "tiktok",
			"scheduled_for": "2026-09-01T09:00:00Z",
		})
		w := httptest.NewRecorder()

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateEntryStatus(t *testing.T) {
	entry := Entry{
		ID:           "entry-1",
		Platform:     "instagram",
		Copy:         "draft copy",
		ScheduledFor: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Status:       StatusPlanned,
	}

	t.Run("planned to drafted", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newStubRepo(entry)))

		r := testutil.NewRequest(http.MethodPatch, "/calendar/entry-1",
			map[string]string{"status": StatusDrafted})
		r.SetPathValue("id", "entry-1")
		w := httptest.NewRecorder()

		handler.UpdateStatus(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		assert.Equal(t, StatusDrafted, data["status"])
	})

	t.Run("posted is terminal", func(t *testing.T) {
		posted := entry
		posted.Status = StatusPosted
		handler := NewHTTPHandler(NewService(newStubRepo(posted)))

		r := testutil.NewRequest(http.MethodPatch, "/calendar/entry-1",
			map[string]string{"status": StatusDrafted})
		r.SetPathValue("id", "entry-1")
		w := httptest.NewRecorder()

		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
		errObj := testutil.DecodeBody(w)["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_TRANSITION", errObj["code"])
	})

	t.Run("unknown entry returns 404", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newStubRepo()))

		r := testutil.NewRequest(http.MethodPatch, "/calendar/missing",
			map[string]string{"status": StatusPosted})
		r.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects unknown status value", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newStubRepo(entry)))

		r := testutil.NewRequest(http.MethodPatch, "/calendar/entry-1",
			map[string]string{"status": "published"})
		r.SetPathValue("id", "entry-1")
		w := httptest.NewRecorder()

		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDue(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	repo := newStubRepo(
		Entry{ID: "e1", Platform: "instagram", Copy: "a", ScheduledFor: past, Status: StatusPlanned},
		Entry{ID: "e2", Platform: "tiktok", Copy: "b", ScheduledFor: past, Status: StatusPosted},
		Entry{ID: "e3", Platform: "pinterest", Copy: "c", ScheduledFor: future, Status: StatusPlanned},
		Entry{ID: "e4", Platform: "x", Copy: "d", ScheduledFor: past, Status: StatusDrafted},
	)
	handler := NewHTTPHandler(NewService(repo))

	r := testutil.NewRequest(http.MethodGet, "/calendar/due", nil)
	w := httptest.NewRecorder()

	handler.Due(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeBody(w)
	assert.Len(t, body["data"], 2)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["count"])
}
