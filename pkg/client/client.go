// Package client is a Go client for the journal HTTP API.
//
// A signed in Client keeps its access token fresh in the background while
// resumed. Call Pause when the host application goes to the background and
// Resume when it returns to the foreground; both are idempotent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultRefreshInterval = time.Minute
	refreshTimeout         = 30 * time.Second

	// TimezoneHeader carries the local zone that defines "today"
	TimezoneHeader = "X-Timezone"
)

// Client talks to the journal API
type Client struct {
	baseURL         string
	httpClient      *http.Client
	timezone        string
	refreshInterval time.Duration
	logger          *zap.Logger
	now             func() time.Time

	mu        sync.Mutex
	tokens    *Tokens
	scheduler *cron.Cron
	catchUp   sync.WaitGroup
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The default client has no
// timeout; API calls end when the server answers or the context is done.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimezone sends zone (IANA name or UTC offset) with every request
func WithTimezone(zone string) Option {
	return func(c *Client) { c.timezone = zone }
}

// WithRefreshInterval sets how often the background refresher checks the token
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Client) { c.refreshInterval = d }
}

// WithLogger sets the logger used by the background refresher
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{},
		refreshInterval: defaultRefreshInterval,
		logger:          zap.NewNop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens returns a copy of the current token pair, or nil when signed out
func (c *Client) Tokens() *Tokens {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens == nil {
		return nil
	}
	t := *c.tokens
	return &t
}

// SetTokens restores a previously stored session
func (c *Client) SetTokens(t *Tokens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t == nil {
		c.tokens = nil
		return
	}
	cp := *t
	c.tokens = &cp
}

// Resume starts the background token refresh. Calling it while already
// resumed does nothing.
func (c *Client) Resume() error {
	c.mu.Lock()
	if c.scheduler != nil {
		c.mu.Unlock()
		return nil
	}

	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", c.refreshInterval), c.refreshJob); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to schedule token refresh: %w", err)
	}
	scheduler.Start()
	// registered before the scheduler is visible so a concurrent Pause waits for it
	c.catchUp.Add(1)
	c.scheduler = scheduler
	c.mu.Unlock()

	// the token may have expired while paused
	go func() {
		defer c.catchUp.Done()
		c.refreshJob()
	}()

	return nil
}

// Pause stops the background token refresh and waits for a running refresh
// to finish. Calling it while paused does nothing.
func (c *Client) Pause() {
	c.mu.Lock()
	scheduler := c.scheduler
	c.scheduler = nil
	c.mu.Unlock()

	if scheduler == nil {
		return
	}
	<-scheduler.Stop().Done()
	c.catchUp.Wait()
}

// Resumed reports whether the background refresh is running
func (c *Client) Resumed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scheduler != nil
}

// refreshJob bounds background refreshes so Pause never blocks on a hung server
func (c *Client) refreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := c.RefreshIfDue(ctx); err != nil {
		c.logger.Warn("background token refresh failed", zap.Error(err))
	}
}

// RefreshIfDue refreshes the session when the access token expires within
// two refresh intervals. It reports whether a refresh happened.
func (c *Client) RefreshIfDue(ctx context.Context) (bool, error) {
	tokens := c.Tokens()
	if tokens == nil {
		return false, nil
	}
	if c.now().Add(2 * c.refreshInterval).Before(tokens.AccessTokenExpiresAt) {
		return false, nil
	}
	if err := c.Refresh(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Register creates an account; the email must be verified before Login
func (c *Client) Register(ctx context.Context, email, password, fullName, timezone string) (*User, error) {
	req := map[string]interface{}{
		"email":    email,
		"password": password,
		"timezone": timezone,
	}
	if fullName != "" {
		req["full_name"] = fullName
	}

	var resp struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil, req, &resp, false); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login signs in and keeps the returned tokens
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp struct {
		User *User `json:"user"`
		Tokens
	}
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, req, &resp, false); err != nil {
		return nil, err
	}

	c.SetTokens(&resp.Tokens)
	return resp.User, nil
}

// Refresh exchanges the refresh token for a new pair
func (c *Client) Refresh(ctx context.Context) error {
	tokens := c.Tokens()
	if tokens == nil {
		return ErrNotSignedIn
	}

	var resp Tokens
	req := map[string]string{"refresh_token": tokens.RefreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, req, &resp, false); err != nil {
		return err
	}

	c.SetTokens(&resp)
	return nil
}

// Logout ends the session, stops the refresher and forgets the tokens
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, nil, true)
	c.Pause()
	c.SetTokens(nil)
	return err
}

// ResendVerification asks for a new verification email
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/resend-verification", nil, map[string]string{"email": email}, nil, false)
}

// Account returns the profile
func (c *Client) Account(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/account", nil, nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAccount changes profile fields
func (c *Client) UpdateAccount(ctx context.Context, update *ProfileUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/v1/account", nil, update, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// RateToday sets today's rating (1..5)
func (c *Client) RateToday(ctx context.Context, rating int32) (*Entry, error) {
	var entry Entry
	req := map[string]int32{"rating": rating}
	if err := c.do(ctx, http.MethodPut, "/api/v1/entries/today/rating", nil, req, &entry, true); err != nil {
		return nil, err
	}
	return &entry, nil
}

// WriteToday saves today's journal text, optionally asking for feedback
func (c *Client) WriteToday(ctx context.Context, text string, withFeedback bool) (*SubmitResult, error) {
	query := url.Values{}
	if withFeedback {
		query.Set("feedback", "true")
	}

	var result SubmitResult
	req := map[string]string{"journal_entry": text}
	if err := c.do(ctx, http.MethodPut, "/api/v1/entries/today/journal", query, req, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// Today returns today's entry or an error matching ErrNotFound
func (c *Client) Today(ctx context.Context) (*Entry, error) {
	var entry Entry
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries/today", nil, nil, &entry, true); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Entries returns all entries, newest first
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	var resp struct {
		Entries []Entry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Weekly returns the ratings of the last seven days
func (c *Client) Weekly(ctx context.Context) (*WeeklySummary, error) {
	var summary WeeklySummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries/weekly", nil, nil, &summary, true); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FeedbackToday requests feedback on today's saved text
func (c *Client) FeedbackToday(ctx context.Context) (*Feedback, error) {
	var feedback Feedback
	if err := c.do(ctx, http.MethodPost, "/api/v1/entries/today/feedback", nil, nil, &feedback, true); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.timezone != "" {
		req.Header.Set(TimezoneHeader, c.timezone)
	}

	if authed {
		tokens := c.Tokens()
		if tokens == nil {
			return ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
