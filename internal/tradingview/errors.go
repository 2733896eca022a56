package tradingview

import "errors"

// Sentinel errors for the login flow. Callers match with errors.Is.
var (
	// ErrTokenExchange covers any failure of the authorization code
	// exchange: transport error, non-2xx status, undecodable body, or a
	// response with no access_token.
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrLoginRequest covers a network-level failure of the bearer login
	// call. A non-200 status is not an error; see LoginResult.
	ErrLoginRequest = errors.New("login request failed")

	// ErrInvalidCredentials indicates the signin endpoint rejected the
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMFARequired indicates the account has 2FA enabled and no TOTP
	// secret was supplied.
	ErrMFARequired = errors.New("account requires TOTP code")

	// ErrSessionExpired indicates the sessionid/signature cookie pair is
	// wrong or no longer valid.
	ErrSessionExpired = errors.New("wrong or expired session")
)
