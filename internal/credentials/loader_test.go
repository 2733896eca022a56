package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCredentialLoad))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCredentialLoad))
}

func TestLoad_UnknownKeyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"bogus_credential_kind"}`), 0o600))

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCredentialLoad))
}

func TestNewCredential_NonEmptyToken(t *testing.T) {
	cred, err := newCredential(&oauth2.Token{AccessToken: "tok-1"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", cred.AccessToken())
}

func TestNewCredential_EmptyToken(t *testing.T) {
	_, err := newCredential(&oauth2.Token{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCredentialLoad))
}
