package tradingview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// well-known RFC 6238 style base32 test secret
const testTOTPSecret = "JBSWY3DPEHPK3PXP"

func testUser() *User {
	return &User{
		ID:             42,
		Username:       "trader42",
		SessionHash:    "hash-42",
		PrivateChannel: "private-42",
		AuthToken:      "auth-token-42",
	}
}

func setSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "sess-1"})
	http.SetCookie(w, &http.Cookie{Name: "sessionid_sign", Value: "sign-1"})
	http.SetCookie(w, &http.Cookie{Name: "device_t", Value: "dev-1"})
}

func newUserServiceFor(srv *httptest.Server) *UserService {
	return NewUserService(zap.NewNop(),
		srv.URL+"/accounts/signin/",
		srv.URL+"/accounts/two-factor/signin/totp/",
		srv.URL+"/")
}

// ─── LoginUser: no 2FA ───────────────────────────────────────────────────────

func TestUserService_LoginUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/signin/", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "trader42", r.PostForm.Get("username"))
		assert.Equal(t, "hunter2", r.PostForm.Get("password"))
		assert.Equal(t, "true", r.PostForm.Get("remember"))

		setSessionCookies(w)
		writeJSON(w, signinResponse{User: testUser()})
	}))
	defer srv.Close()

	users := newUserServiceFor(srv)
	user, err := users.LoginUser(context.Background(), "trader42", "hunter2", "")
	require.NoError(t, err)

	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "trader42", user.Username)
	assert.Equal(t, "sess-1", user.Session)
	assert.Equal(t, "sign-1", user.SessionSignature)
	assert.Equal(t, "dev-1", user.DeviceToken)
	assert.Equal(t, "auth-token-42", user.AuthToken)
}

// ─── LoginUser: wrong credentials → no session cookies ───────────────────────

func TestUserService_LoginUser_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, signinResponse{Error: "Invalid username or password"})
	}))
	defer srv.Close()

	users := newUserServiceFor(srv)
	_, err := users.LoginUser(context.Background(), "trader42", "wrong", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

// ─── LoginUser: 2FA account, no secret ───────────────────────────────────────

func TestUserService_LoginUser_MFARequiredWithoutSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSessionCookies(w)
		writeJSON(w, signinResponse{Error: "2FA_required", Code: "2FA_required"})
	}))
	defer srv.Close()

	users := newUserServiceFor(srv)
	_, err := users.LoginUser(context.Background(), "trader42", "hunter2", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMFARequired))
}

// ─── LoginUser: 2FA account, TOTP secret provided ────────────────────────────

func TestUserService_LoginUser_TOTPChallenge(t *testing.T) {
	var totpCode, totpCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/signin/":
			setSessionCookies(w)
			writeJSON(w, signinResponse{Error: "2FA_required", Code: "2FA_required"})
		case "/accounts/two-factor/signin/totp/":
			require.NoError(t, r.ParseForm())
			totpCode = r.PostForm.Get("code")
			totpCookie = r.Header.Get("Cookie")
			writeJSON(w, signinResponse{User: testUser()})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	users := newUserServiceFor(srv)
	user, err := users.LoginUser(context.Background(), "trader42", "hunter2", testTOTPSecret)
	require.NoError(t, err)

	assert.Len(t, totpCode, 6, "expected a 6-digit TOTP code")
	assert.Contains(t, totpCookie, "sessionid=sess-1")
	assert.Contains(t, totpCookie, "sessionid_sign=sign-1")
	assert.Equal(t, "trader42", user.Username)
	assert.Equal(t, "sess-1", user.Session)
}

// ─── LoginUser: 2FA challenge rejected ───────────────────────────────────────

func TestUserService_LoginUser_TOTPRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/signin/":
			setSessionCookies(w)
			writeJSON(w, signinResponse{Error: "2FA_required", Code: "2FA_required"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	users := newUserServiceFor(srv)
	_, err := users.LoginUser(context.Background(), "trader42", "hunter2", testTOTPSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

// ─── FetchUser: valid session ────────────────────────────────────────────────

func TestUserService_FetchUser_ScrapesUserData(t *testing.T) {
	var cookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie = r.Header.Get("Cookie")
		_, _ = w.Write([]byte(signinPage(42, "trader42", "hash-42", "private-42", "auth-token-42")))
	}))
	defer srv.Close()

	users := newUserServiceFor(srv)
	user, err := users.FetchUser(context.Background(), "sess-1", "sign-1")
	require.NoError(t, err)

	assert.Contains(t, cookie, "sessionid=sess-1")
	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "trader42", user.Username)
	assert.Equal(t, "hash-42", user.SessionHash)
	assert.Equal(t, "private-42", user.PrivateChannel)
	assert.Equal(t, "auth-token-42", user.AuthToken)
}

// ─── FetchUser: expired session ──────────────────────────────────────────────

func TestUserService_FetchUser_SessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>anonymous landing page</html>`))
	}))
	defer srv.Close()

	users := newUserServiceFor(srv)
	_, err := users.FetchUser(context.Background(), "stale", "stale-sign")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionExpired))
}
