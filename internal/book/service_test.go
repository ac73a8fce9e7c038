package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	books     map[string]Book
	createErr error
	updateErr error
	listErr   error
}

func newStubRepo(books ...Book) *stubRepo {
	r := &stubRepo{books: make(map[string]Book)}
	for _, b := range books {
		r.books[b.Slug] = b
	}
	return r
}

func (r *stubRepo) List(_ context.Context, q Query) ([]Book, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []Book
	for _, b := range r.books {
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *stubRepo) GetBySlug(_ context.Context, slug string) (Book, error) {
	b, ok := r.books[slug]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *stubRepo) Create(_ context.Context, b *Book) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.books[b.Slug]; exists {
		return ErrSlugTaken
	}
	b.ID = "stub-id"
	r.books[b.Slug] = *b
	return nil
}

func (r *stubRepo) Update(_ context.Context, b *Book) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, exists := r.books[b.Slug]; !exists {
		return ErrNotFound
	}
	r.books[b.Slug] = *b
	return nil
}

func validBook() Book {
	return Book{
		Slug:           "test-crosswords",
		Title:          "Test Crosswords",
		PuzzleType:     "crossword",
		Difficulty:     "easy",
		TrimSize:       "8.5x11",
		PageCount:      110,
		PaperType:      PaperWhite,
		ListPriceCents: 899,
		Status:         StatusDraft,
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Large Print Crosswords", "large-print-crosswords"},
		{"Sudoku: Vol. 2!", "sudoku-vol-2"},
		{"  spaced  out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"100 Puzzles", "100-puzzles"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusInReview, true},
		{StatusInReview, StatusLive, true},
		{StatusInReview, StatusDraft, true},
		{StatusLive, StatusRetired, true},
		{StatusLive, StatusInReview, true},
		{StatusDraft, StatusLive, false},
		{StatusRetired, StatusLive, false},
		{StatusRetired, StatusDraft, false},
		{StatusLive, StatusLive, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("slug generated from title", func(t *testing.T) {
		repo := newStubRepo()
		svc := NewService(repo)

		b := validBook()
		b.Slug = ""
		require.NoError(t, svc.Create(context.Background(), &b))
		assert.Equal(t, "test-crosswords", b.Slug)
		assert.Equal(t, StatusDraft, b.Status)
	})

	t.Run("invalid print spec rejected before store", func(t *testing.T) {
		repo := newStubRepo()
		svc := NewService(repo)

		b := validBook()
		b.PageCount = 10
		err := svc.Create(context.Background(), &b)
		assert.ErrorIs(t, err, ErrPageCountRange)
		assert.Empty(t, repo.books)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Run("legal status change", func(t *testing.T) {
		repo := newStubRepo(validBook())
		svc := NewService(repo)

		updated, err := svc.Update(context.Background(), "test-crosswords", func(b *Book) {
			b.Status = StatusInReview
		})
		require.NoError(t, err)
		assert.Equal(t, StatusInReview, updated.Status)
	})

	t.Run("illegal status change", func(t *testing.T) {
		repo := newStubRepo(validBook())
		svc := NewService(repo)

		_, err := svc.Update(context.Background(), "test-crosswords", func(b *Book) {
			b.Status = StatusLive
		})
		assert.ErrorIs(t, err, ErrBadTransition)
		assert.Equal(t, StatusDraft, repo.books["test-crosswords"].Status)
	})

	t.Run("slug and id are immutable", func(t *testing.T) {
		existing := validBook()
		existing.ID = "original-id"
		repo := newStubRepo(existing)
		svc := NewService(repo)

		updated, err := svc.Update(context.Background(), "test-crosswords", func(b *Book) {
			b.ID = "hijacked"
			b.Slug = "other-slug"
			b.Title = "New Title"
		})
		require.NoError(t, err)
		assert.Equal(t, "original-id", updated.ID)
		assert.Equal(t, "test-crosswords", updated.Slug)
		assert.Equal(t, "New Title", updated.Title)
	})

	t.Run("unknown slug", func(t *testing.T) {
		svc := NewService(newStubRepo())
		_, err := svc.Update(context.Background(), "nope", func(b *Book) {})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
