package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		From:    "hello@example.com",
		To:      "solver@example.com",
		Subject: "Test",
		Text:    "Body",
	}
}

func TestRelayClientSend(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got Message
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"msg-1"}`))
		}))
		defer server.Close()

		client := NewRelayClient(server.URL, "test-key", 100, 0)
		err := client.Send(context.Background(), testMessage())

		require.NoError(t, err)
		assert.Equal(t, "solver@example.com", got.To)
	})

	t.Run("retries on 500 then succeeds", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"id":"msg-2"}`))
		}))
		defer server.Close()

		client := NewRelayClient(server.URL, "test-key", 100, 2)
		err := client.Send(context.Background(), testMessage())

		require.NoError(t, err)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("gives up after retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewRelayClient(server.URL, "test-key", 100, 1)
		err := client.Send(context.Background(), testMessage())

		assert.ErrorIs(t, err, ErrRelay)
	})

	t.Run("does not retry a 4xx rejection", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := NewRelayClient(server.URL, "test-key", 100, 3)
		err := client.Send(context.Background(), testMessage())

		assert.ErrorIs(t, err, ErrRelay)
		assert.EqualValues(t, 1, calls.Load())
	})

	t.Run("honors context cancellation during backoff", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		client := NewRelayClient(server.URL, "test-key", 100, 5)
		err := client.Send(ctx, testMessage())

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
