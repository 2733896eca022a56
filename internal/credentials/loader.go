// Package credentials loads the Google service account key file that
// supplies the bearer header on the TradingView token exchange call.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrCredentialLoad covers any failure to produce a usable credential:
// missing or unreadable file, malformed key JSON, or an empty token.
var ErrCredentialLoad = errors.New("credential load failed")

// cloudPlatformScope is the OAuth scope requested for the loaded key.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Credential is an identity proof loaded from a key file, able to produce
// a bearer-usable access token.
type Credential struct {
	accessToken string
}

// AccessToken returns the bearer token value. Non-empty for any Credential
// returned by Load.
func (c *Credential) AccessToken() string {
	return c.accessToken
}

// Load reads the key file at path and materializes an access token from it.
// Failures are terminal; the caller is expected to abort, not retry.
func Load(ctx context.Context, path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCredentialLoad, path, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCredentialLoad, path, err)
	}

	token, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", ErrCredentialLoad, err)
	}

	return newCredential(token)
}

// newCredential wraps an issued oauth2 token, rejecting empty token values.
func newCredential(token *oauth2.Token) (*Credential, error) {
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrCredentialLoad)
	}
	return &Credential{accessToken: token.AccessToken}, nil
}
