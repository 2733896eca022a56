package tradingview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/117.0"

var (
	idRegex             = regexp.MustCompile(`"id":([0-9]{1,10}),`)
	usernameRegex       = regexp.MustCompile(`"username":"(.*?)"`)
	sessionHashRegex    = regexp.MustCompile(`"session_hash":"(.*?)"`)
	privateChannelRegex = regexp.MustCompile(`"private_channel":"(.*?)"`)
	authTokenRegex      = regexp.MustCompile(`"auth_token":"(.*?)"`)
)

// UserService handles password session login and session recovery against
// the TradingView accounts endpoints. Unlike the OAuth flow, these calls
// authenticate with cookies rather than a bearer header.
type UserService struct {
	logger    *zap.Logger
	client    *http.Client
	signinURL string
	twoFAURL  string
	baseURL   string
}

// NewUserService creates a UserService against the given endpoints.
func NewUserService(logger *zap.Logger, signinURL, twoFAURL, baseURL string) *UserService {
	return &UserService{
		logger:    logger,
		client:    &http.Client{Timeout: 30 * time.Second},
		signinURL: signinURL,
		twoFAURL:  twoFAURL,
		baseURL:   baseURL,
	}
}

// LoginUser signs in with username/password and returns the user together
// with the captured session cookies. When the account has 2FA enabled, a
// TOTP code is generated from totpSecret and submitted as a second step;
// an empty secret on a 2FA account fails with ErrMFARequired.
func (u *UserService) LoginUser(ctx context.Context, username, password, totpSecret string) (*User, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("remember", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.signinURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("signin: build request: %w", err)
	}
	setBrowserHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("signin: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	session, signature, deviceToken := sessionCookies(resp)
	if session == "" || signature == "" {
		u.logger.Warn("tradingview.signin_rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	var signin signinResponse
	if err := json.NewDecoder(resp.Body).Decode(&signin); err != nil {
		return nil, fmt.Errorf("signin: decode response: %w", err)
	}

	if signin.Error != "" {
		// Account has 2FA enabled; the body carries no user yet.
		if totpSecret == "" {
			return nil, ErrMFARequired
		}
		return u.loginTOTP(ctx, totpSecret, session, signature, deviceToken)
	}

	if signin.User == nil {
		return nil, fmt.Errorf("signin: response has no user")
	}

	user := *signin.User
	user.Session = session
	user.SessionSignature = signature
	user.DeviceToken = deviceToken

	u.logger.Info("tradingview.user_logged_in",
		zap.String("username", user.Username),
		zap.Int("id", user.ID))

	return &user, nil
}

// loginTOTP completes a 2FA challenge with a generated TOTP code, reusing
// the session cookies from the first signin step.
func (u *UserService) loginTOTP(ctx context.Context, totpSecret, session, signature, deviceToken string) (*User, error) {
	code, err := totp.GenerateCode(totpSecret, time.Now())
	if err != nil {
		return nil, fmt.Errorf("totp: generate code: %w", err)
	}

	form := url.Values{}
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.twoFAURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("totp signin: build request: %w", err)
	}
	setBrowserHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", fmt.Sprintf("sessionid=%s; sessionid_sign=%s;", session, signature))

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("totp signin: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		u.logger.Warn("tradingview.totp_rejected", zap.Int("status", resp.StatusCode))
		return nil, ErrInvalidCredentials
	}

	var signin signinResponse
	if err := json.NewDecoder(resp.Body).Decode(&signin); err != nil {
		return nil, fmt.Errorf("totp signin: decode response: %w", err)
	}
	if signin.User == nil {
		return nil, fmt.Errorf("totp signin: response has no user")
	}

	user := *signin.User
	user.Session = session
	user.SessionSignature = signature
	user.DeviceToken = deviceToken

	u.logger.Info("tradingview.user_logged_in",
		zap.String("username", user.Username),
		zap.Int("id", user.ID),
		zap.Bool("totp", true))

	return &user, nil
}

// FetchUser recovers user data from an existing sessionid/signature cookie
// pair by scraping the embedded auth payload from the landing page.
func (u *UserService) FetchUser(ctx context.Context, session, signature string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch user: build request: %w", err)
	}
	setBrowserHeaders(req)
	req.Header.Set("Cookie", fmt.Sprintf("sessionid=%s; sessionid_sign=%s;", session, signature))

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch user: read body: %w", err)
	}

	page := string(body)
	if !strings.Contains(page, "auth_token") {
		return nil, ErrSessionExpired
	}

	user := &User{
		Session:          session,
		SessionSignature: signature,
	}
	if m := idRegex.FindStringSubmatch(page); m != nil {
		user.ID, _ = strconv.Atoi(m[1])
	}
	if m := usernameRegex.FindStringSubmatch(page); m != nil {
		user.Username = m[1]
	}
	if m := sessionHashRegex.FindStringSubmatch(page); m != nil {
		user.SessionHash = m[1]
	}
	if m := privateChannelRegex.FindStringSubmatch(page); m != nil {
		user.PrivateChannel = m[1]
	}
	if m := authTokenRegex.FindStringSubmatch(page); m != nil {
		user.AuthToken = m[1]
	}
	if user.AuthToken == "" {
		return nil, fmt.Errorf("fetch user: cannot parse auth token")
	}

	u.logger.Info("tradingview.session_recovered",
		zap.String("username", user.Username),
		zap.Int("id", user.ID))

	return user, nil
}

// sessionCookies extracts the session cookie triple from a signin response.
func sessionCookies(resp *http.Response) (session, signature, deviceToken string) {
	for _, c := range resp.Cookies() {
		switch c.Name {
		case "sessionid":
			session = c.Value
		case "sessionid_sign":
			signature = c.Value
		case "device_t":
			deviceToken = c.Value
		}
	}
	return session, signature, deviceToken
}

// setBrowserHeaders sets the headers TradingView expects from a browser
// originated request.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("Origin", "https://www.tradingview.com")
	req.Header.Set("Referer", "https://www.tradingview.com/")
	req.Header.Set("User-Agent", userAgent)
}
