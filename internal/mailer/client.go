package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrRelay wraps a terminal failure from the mail relay, after retries.
var ErrRelay = errors.New("mail relay failure")

// Message is one outbound email.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// RelayClient speaks to an HTTP mail-relay API: one JSON POST per
// message, Bearer auth, client-side throttling and bounded retries with
// exponential backoff on 429/5xx.
type RelayClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
}

func NewRelayClient(baseURL, apiKey string, rps int, maxRetries int) *RelayClient {
	return &RelayClient{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

type relayResponse struct {
	ID string `json:"id"`
}

func (c *RelayClient) Send(ctx context.Context, m Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
			var res relayResponse
			err := json.NewDecoder(resp.Body).Decode(&res)
			resp.Body.Close()
			if err != nil {
				return err
			}
			return nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("unexpected status code: %d (%s)", resp.StatusCode, bytes.TrimSpace(body))
			continue
		}
		return fmt.Errorf("%w: status %d (%s)", ErrRelay, resp.StatusCode, bytes.TrimSpace(body))
	}
	return fmt.Errorf("%w: after %d retries: %v", ErrRelay, c.maxRetries, lastErr)
}
