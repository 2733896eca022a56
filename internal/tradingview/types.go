package tradingview

//
// ────────────────────────────────────────────────
//   OAuth Client Configuration
// ────────────────────────────────────────────────
//

// OAuthClientConfig holds the OAuth client identity used on the token
// exchange call. Resolved from AWS Secrets Manager or the environment.
// Secret format: {"client_id": "...", "client_secret": "..."}
type OAuthClientConfig struct {
	ClientID     string // OAuth2 client_id for the token exchange
	ClientSecret string // OAuth2 client_secret for the token exchange
}

//
// ────────────────────────────────────────────────
//   Token Exchange Types
// ────────────────────────────────────────────────
//

// TokenRequest carries the parameters for the authorization code exchange.
// All four values travel as URL query parameters; BearerToken travels in the
// Authorization header.
type TokenRequest struct {
	ClientID     string
	ClientSecret string
	GrantType    string
	Code         string
	BearerToken  string // credential access token for the Authorization header
}

// TokenResponse is the JSON body returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

//
// ────────────────────────────────────────────────
//   Login Types
// ────────────────────────────────────────────────
//

// LoginResult is the outcome of the bearer login call.
type LoginResult struct {
	StatusCode int
}

// OK reports whether the login endpoint accepted the token.
func (r LoginResult) OK() bool {
	return r.StatusCode == 200
}

// Message returns the user-facing outcome line.
func (r LoginResult) Message() string {
	if r.OK() {
		return "Successfully logged in to TradingView."
	}
	return "Login failed."
}

//
// ────────────────────────────────────────────────
//   Password Session Types
// ────────────────────────────────────────────────
//

// User holds the account data returned by a password session login or
// recovered from an existing session.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	SessionHash    string `json:"session_hash"`
	PrivateChannel string `json:"private_channel"`
	AuthToken      string `json:"auth_token"`

	// Session cookies captured from the signin response. Not part of the
	// JSON body.
	Session          string `json:"-"`
	SessionSignature string `json:"-"`
	DeviceToken      string `json:"-"`
}

// signinResponse is the JSON body of POST /accounts/signin/.
// A non-empty Error with a 2FA code means a TOTP challenge is required.
type signinResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	User  *User  `json:"user"`
}

//
// ────────────────────────────────────────────────
//   Pine Facade Types
// ────────────────────────────────────────────────
//

// Indicator is one entry of the pine-facade builtin indicator catalog.
type Indicator struct {
	Name    string         `json:"scriptName"`
	ID      string         `json:"scriptIdPart"`
	Version string         `json:"version"`
	Info    IndicatorExtra `json:"extra"`
}

// IndicatorExtra carries secondary indicator metadata.
type IndicatorExtra struct {
	Kind             string `json:"kind"`
	ShortDescription string `json:"shortDescription"`
}
