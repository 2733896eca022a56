package tradingview

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Session performs the authenticated login call against the user login
// endpoint. The status code is the whole outcome: 200 means the token was
// accepted, anything else means it was not.
type Session struct {
	logger   *zap.Logger
	client   *http.Client
	loginURL string
}

// NewSession creates a Session against the given login endpoint.
func NewSession(logger *zap.Logger, loginURL string) *Session {
	return &Session{
		logger:   logger,
		client:   &http.Client{Timeout: 30 * time.Second},
		loginURL: loginURL,
	}
}

// Login posts the bearer token to the login endpoint and reports the
// resulting status. Only transport failures are errors; a rejection shows
// up as LoginResult.OK() == false.
func (s *Session) Login(ctx context.Context, accessToken string) (*LoginResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.loginURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrLoginRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginRequest, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	s.logger.Info("tradingview.login_attempted",
		zap.Int("status", resp.StatusCode))

	return &LoginResult{StatusCode: resp.StatusCode}, nil
}
