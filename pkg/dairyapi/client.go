package dairyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// SessionCookieName is the backend session cookie carried on every
// authenticated call.
const SessionCookieName = "sessionid"

// Client is a minimal HTTP client for the external dairy backend. All business
// logic lives behind this API; the client only moves JSON and session cookies.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
	onRefresh  func(ctx context.Context, oldSession, newSession string)
}

// NewClient constructs a dairy API client with sane defaults.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		debug:      os.Getenv("ENV") == "development",
	}
}

// OnSessionRefresh registers fn to run whenever the backend rotates the
// session cookie on an authenticated call. fn receives the cookie value the
// request carried and the rotated value. Anonymous calls and the initial
// login/signup cookie never trigger it.
func (c *Client) OnSessionRefresh(fn func(ctx context.Context, oldSession, newSession string)) {
	c.onRefresh = fn
}

func (c *Client) notifyRefresh(ctx context.Context, oldSession, newSession string) {
	if c.onRefresh == nil || oldSession == "" || newSession == "" || newSession == oldSession {
		return
	}
	c.onRefresh(ctx, oldSession, newSession)
}

// do performs one HTTP round trip. session is the backend session cookie value
// ("" for anonymous calls). The returned cookie is the refreshed session value
// when the backend set one, otherwise "".
func (c *Client) do(ctx context.Context, method, path string, query url.Values, session string, body, result any) (string, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session})
	}

	if c.debug {
		evt := log.Debug().Str("method", method).Str("endpoint", endpoint)
		if payload != nil {
			evt = evt.RawJSON("request", payload)
		}
		evt.Msg("[DAIRY] Outgoing request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[DAIRY] Incoming response")
	}

	newSession := ""
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName {
			newSession = cookie.Value
		}
	}
	c.notifyRefresh(ctx, session, newSession)

	if resp.StatusCode >= 400 {
		return newSession, parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return newSession, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return newSession, nil
}

// doCollection is do for list endpoints, normalizing both envelope shapes.
func doCollection[T any](ctx context.Context, c *Client, path string, query url.Values, session string) ([]T, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[DAIRY] Collection response")
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName {
			c.notifyRefresh(ctx, session, cookie.Value)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return decodeCollection[T](body)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
