package user

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pressops/internal/auth"
	"pressops/internal/httpx"
	"pressops/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newStubRepo(users ...User) *stubRepo {
	s := &stubRepo{byEmail: make(map[string]*User), byID: make(map[string]*User)}
	for i := range users {
		u := users[i]
		s.byEmail[u.Email] = &u
		s.byID[u.ID] = &u
	}
	return s
}

func (s *stubRepo) Create(_ context.Context, u *User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	u.ID = fmt.Sprintf("user-%d", len(s.byID)+1)
	stored := *u
	s.byEmail[u.Email] = &stored
	s.byID[u.ID] = &stored
	return nil
}

func (s *stubRepo) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (User, error) {
	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

const (
	testSecret    = "test-secret"
	testBootstrap = "bootstrap-me"
)

func registerBody(overrides map[string]string) map[string]string {
	body := map[string]string{
		"email":           "ops@example.com",
		"name":            "Ops",
		"password":        "Sup3r$ecret",
		"role":            RoleAdmin,
		"bootstrap_token": testBootstrap,
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func TestRegister(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		repo := newStubRepo()
		handler := NewHTTPHandler(repo, testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/register", registerBody(nil))
		w := httptest.NewRecorder()
		handler.Register(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		assert.Equal(t, "ops@example.com", data["email"])
		assert.NotContains(t, data, "password")

		stored := repo.byEmail["ops@example.com"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "Sup3r$ecret", stored.Password)
		assert.True(t, auth.VerifyPassword(stored.Password, "Sup3r$ecret"))
	})

	t.Run("wrong bootstrap token is forbidden", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(), testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/register",
			registerBody(map[string]string{"bootstrap_token": "guess"}))
		w := httptest.NewRecorder()
		handler.Register(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := newStubRepo(User{ID: "user-1", Email: "ops@example.com"})
		handler := NewHTTPHandler(repo, testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/register", registerBody(nil))
		w := httptest.NewRecorder()
		handler.Register(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
		errObj := testutil.DecodeBody(w)["error"].(map[string]interface{})
		assert.Equal(t, "ALREADY_EXISTS", errObj["code"])
	})

	t.Run("weak password rejected", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(), testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/register",
			registerBody(map[string]string{"password": "weak"}))
		w := httptest.NewRecorder()
		handler.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(), testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/register",
			registerBody(map[string]string{"role": "SUPERUSER"}))
		w := httptest.NewRecorder()
		handler.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("email is normalized", func(t *testing.T) {
		repo := newStubRepo()
		handler := NewHTTPHandler(repo, testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/register",
			registerBody(map[string]string{"email": "  Ops@Example.COM "}))
		w := httptest.NewRecorder()
		handler.Register(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotNil(t, repo.byEmail["ops@example.com"])
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	existing := User{ID: "user-1", Email: "ops@example.com", Name: "Ops", Password: hash, Role: RoleAdmin}

	t.Run("valid credentials return token", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(existing), testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/login",
			map[string]string{"email": "ops@example.com", "password": "Sup3r$ecret"})
		w := httptest.NewRecorder()
		handler.Login(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		tokenStr, _ := data["token"].(string)
		require.NotEmpty(t, tokenStr)

		claims, err := auth.ParseToken(testSecret, tokenStr)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Sub)
		assert.Equal(t, RoleAdmin, claims.Role)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(existing), testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/login",
			map[string]string{"email": "ops@example.com", "password": "nope-nope"})
		w := httptest.NewRecorder()
		handler.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email is unauthorized, not 404", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(), testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodPost, "/users/login",
			map[string]string{"email": "ghost@example.com", "password": "Sup3r$ecret"})
		w := httptest.NewRecorder()
		handler.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMe(t *testing.T) {
	existing := User{ID: "user-1", Email: "ops@example.com", Name: "Ops", Role: RoleAdmin}

	t.Run("returns the authenticated user", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(existing), testSecret, testBootstrap)

		r := testutil.NewRequest(http.MethodGet, "/me", nil)
		r = r.WithContext(httpx.ContextWithUser(r.Context(), "user-1", RoleAdmin))
		w := httptest.NewRecorder()
		handler.Me(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		assert.Equal(t, "ops@example.com", data["email"])
	})

	t.Run("no identity in context is unauthorized", func(t *testing.T) {
		handler := NewHTTPHandler(newStubRepo(existing), testSecret, testBootstrap)

		w := httptest.NewRecorder()
		handler.Me(w, testutil.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
