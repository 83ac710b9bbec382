// Package google owns the OAuth client used by the Calendar and Gmail
// adapters. The client is constructed once at startup and injected where
// needed; there is no process-global state.
package google

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"tabsy-backend/pkg/config"
)

// ErrNotAuthenticated is returned when no Google credentials are available.
// The message is user-actionable: the caller should visit the auth endpoint.
var ErrNotAuthenticated = errors.New("not authenticated with Google, visit /api/auth/google to authenticate")

var scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.compose",
}

// Manager holds the OAuth configuration and the current token set.
type Manager struct {
	oauthConfig *oauth2.Config

	mu    sync.RWMutex
	token *oauth2.Token
}

func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       scopes,
			Endpoint:     googleoauth.Endpoint,
		},
	}

	// A refresh token from the environment lets the server start already
	// authenticated, as after a previous consent flow.
	if cfg.GoogleRefreshToken != "" {
		m.token = &oauth2.Token{
			RefreshToken: cfg.GoogleRefreshToken,
			TokenType:    "Bearer",
			Expiry:       time.Now(), // force an access token refresh on first use
		}
	}

	return m
}

// AuthURL returns the Google consent page URL for the initial OAuth flow.
func (m *Manager) AuthURL() string {
	return m.oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for tokens and stores them.
func (m *Manager) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := m.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	if token.RefreshToken != "" {
		log.Printf("[DEBUG] New refresh token received, add GOOGLE_REFRESH_TOKEN to .env to persist it")
	}
	return token, nil
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != nil && m.token.RefreshToken != ""
}

// TokenSource returns a refreshing token source bound to the stored token.
// Refreshed tokens are written back so subsequent calls reuse them.
func (m *Manager) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == nil {
		return nil, ErrNotAuthenticated
	}

	return &storingTokenSource{
		src: m.oauthConfig.TokenSource(ctx, token),
		mgr: m,
	}, nil
}

// HTTPClient returns an authenticated client for the Google API services.
func (m *Manager) HTTPClient(ctx context.Context) (*http.Client, error) {
	src, err := m.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, src), nil
}

type storingTokenSource struct {
	src oauth2.TokenSource
	mgr *Manager
}

func (s *storingTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mgr.mu.Lock()
	if s.mgr.token == nil || s.mgr.token.AccessToken != t.AccessToken {
		s.mgr.token = t
	}
	s.mgr.mu.Unlock()

	return t, nil
}

// IsAuthError reports whether err indicates missing or expired credentials,
// so the HTTP layer can direct the user to re-authenticate instead of
// retrying.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "invalid_grant") ||
		strings.Contains(msg, "Invalid Credentials") ||
		strings.Contains(msg, "401")
}
