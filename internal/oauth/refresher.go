// Package oauth exchanges stored refresh tokens for fresh access tokens.
// The refresher performs exactly one HTTP exchange and no persistence;
// deciding staleness and saving the rotated token are the caller's job.
package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
)

// DefaultTokenURL is Google's OAuth2 token endpoint.
const DefaultTokenURL = "https://oauth2.googleapis.com/token"

// Token is a freshly minted access token with its absolute expiry,
// computed as call start + expires_in.
type Token struct {
	AccessToken string
	Expiry      time.Time
}

// Refresher calls the OAuth token endpoint with the refresh_token grant.
type Refresher struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpc        *http.Client
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithTokenURL overrides the token endpoint (used by tests).
func WithTokenURL(u string) Option {
	return func(r *Refresher) { r.tokenURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(r *Refresher) { r.httpc = h }
}

// NewRefresher creates a refresher with the application's OAuth client
// credentials.
func NewRefresher(clientID, clientSecret string, opts ...Option) *Refresher {
	r := &Refresher{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     DefaultTokenURL,
		httpc:        &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh exchanges refreshToken for a new access token. A rejected
// exchange (revoked or invalid token) surfaces as an AuthError carrying the
// upstream error description; transport failure surfaces as UpstreamError.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	form := url.Values{}
	form.Set("client_id", r.clientID)
	form.Set("client_secret", r.clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &apperr.UpstreamError{Op: "oauth.token", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, &apperr.UpstreamError{Op: "oauth.token", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rejection struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&rejection)
		desc := rejection.ErrorDescription
		if desc == "" {
			desc = rejection.Error
		}
		return nil, &apperr.AuthError{Description: desc}
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &apperr.UpstreamError{Op: "oauth.token", Err: err}
	}

	return &Token{
		AccessToken: body.AccessToken,
		Expiry:      start.Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
