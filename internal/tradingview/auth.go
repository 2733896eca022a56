package tradingview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/tradingview-adapter/pkg/utils"
)

// Exchanger trades an OAuth authorization code for a TradingView access
// token. One POST per call; failures are terminal, there is no retry or
// token caching here.
type Exchanger struct {
	logger   *zap.Logger
	client   *http.Client
	tokenURL string
}

// NewExchanger creates an Exchanger against the given token endpoint.
func NewExchanger(logger *zap.Logger, tokenURL string) *Exchanger {
	return &Exchanger{
		logger:   logger,
		client:   &http.Client{Timeout: 30 * time.Second},
		tokenURL: tokenURL,
	}
}

// ExchangeCode posts the authorization code grant and returns the issued
// access token. The request shape follows the TradingView endpoint: the
// client identity and code travel as query parameters while the credential
// access token rides in the Authorization header.
func (e *Exchanger) ExchangeCode(ctx context.Context, treq *TokenRequest) (string, error) {
	q := url.Values{}
	q.Set("client_id", treq.ClientID)
	q.Set("client_secret", treq.ClientSecret)
	q.Set("grant_type", treq.GrantType)
	q.Set("code", treq.Code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.tokenURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTokenExchange, err)
	}
	req.Header.Set("Authorization", "Bearer "+treq.BearerToken)
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrTokenExchange, resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", ErrTokenExchange, err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: response has no access_token", ErrTokenExchange)
	}

	e.logger.Info("tradingview.token_exchanged",
		zap.String("access_token", utils.MaskToken(tokenResp.AccessToken)),
		zap.Int64("expires_in_sec", tokenResp.ExpiresIn))

	return tokenResp.AccessToken, nil
}
