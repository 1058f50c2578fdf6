// Package gcal implements the calendar gateway over the Google
// Calendar API, with an explicit credential provider instead of
// package-level auth state.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	api "google.golang.org/api/calendar/v3"
)

// Credentials holds the OAuth client configuration and the on-disk
// token cache. Construct one per process with LoadCredentials and pass
// it to NewClient; there is no package-level auth state.
type Credentials struct {
	config    *oauth2.Config
	tokenFile string
}

// LoadCredentials reads the OAuth client secrets JSON (as downloaded
// from the Google Cloud console) and remembers where the user token is
// cached. Fails with setup guidance when the secrets file is missing.
func LoadCredentials(credentialsFile, tokenFile string) (*Credentials, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(
				"credentials file not found: %s (download OAuth client credentials from the Google Cloud console and save them there)",
				credentialsFile)
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, api.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", credentialsFile, err)
	}

	return &Credentials{config: config, tokenFile: tokenFile}, nil
}

// Token loads the cached user token. Refreshing is handled lazily by
// the TokenSource built from it.
func (c *Credentials) Token() (*oauth2.Token, error) {
	f, err := os.Open(c.tokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no cached token at %s: run \"calsync authorize\" first", c.tokenFile)
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", c.tokenFile, err)
	}
	return &tok, nil
}

// SaveToken caches a user token to disk with owner-only permissions.
func (c *Credentials) SaveToken(tok *oauth2.Token) error {
	if dir := filepath.Dir(c.tokenFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(c.tokenFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return nil
}

// TokenSource returns a lazily-refreshing token source backed by the
// cached token.
func (c *Credentials) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := c.Token()
	if err != nil {
		return nil, err
	}
	return c.config.TokenSource(ctx, tok), nil
}

// AuthCodeURL returns the URL the user visits to authorize access.
// Offline access is requested so a refresh token is issued.
func (c *Credentials) AuthCodeURL() string {
	return c.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and caches it.
func (c *Credentials) Exchange(ctx context.Context, code string) error {
	tok, err := c.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return c.SaveToken(tok)
}
