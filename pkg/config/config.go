package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the tv-login client.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	// Credential file in the Google service account / authorized user JSON
	// key format. The loaded credential supplies the bearer header on the
	// token exchange call.
	CredentialsFile string

	// OAuth client identity. Resolved from AWS Secrets Manager when
	// OAUTH_SECRET_NAME is set, otherwise taken from the environment as-is.
	ClientID          string
	ClientSecret      string
	AuthorizationCode string
	OAuthSecretName   string
	AWSRegion         string
	SecretsCacheTTL   time.Duration

	// TradingView endpoints. Overridable for testing against a stub server.
	TokenURL  string
	LoginURL  string
	SigninURL string
	TwoFAURL  string
	BaseURL   string
	PineURL   string

	HTTPTimeout time.Duration

	// Password-session login (tv-session command only).
	Username   string
	Password   string
	TOTPSecret string
}

// Load loads configuration from environment variables and optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:       GetEnv("SERVICE_NAME", "tv-login"),
		Env:               GetEnv("ENV", "dev"),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		CredentialsFile:   GetEnv("CREDENTIALS_FILE", "credentials.json"),
		ClientID:          GetEnv("TV_CLIENT_ID", "YOUR_CLIENT_ID"),
		ClientSecret:      GetEnv("TV_CLIENT_SECRET", "YOUR_CLIENT_SECRET"),
		AuthorizationCode: GetEnv("TV_AUTH_CODE", "YOUR_AUTHORIZATION_CODE"),
		OAuthSecretName:   GetEnv("OAUTH_SECRET_NAME", ""),
		AWSRegion:         GetEnv("AWS_REGION", "us-east-2"),
		SecretsCacheTTL:   GetEnvDuration("SECRETS_CACHE_TTL", 24*time.Hour),
		TokenURL:          GetEnv("TV_TOKEN_URL", "https://www.tradingview.com/oauth/token"),
		LoginURL:          GetEnv("TV_LOGIN_URL", "https://www.tradingview.com/api/v1/user/login"),
		SigninURL:         GetEnv("TV_SIGNIN_URL", "https://www.tradingview.com/accounts/signin/"),
		TwoFAURL:          GetEnv("TV_TWOFA_URL", "https://www.tradingview.com/accounts/two-factor/signin/totp/"),
		BaseURL:           GetEnv("TV_BASE_URL", "https://www.tradingview.com/"),
		PineURL:           GetEnv("TV_PINE_URL", "https://pine-facade.tradingview.com/pine-facade/list/"),
		HTTPTimeout:       GetEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		Username:          GetEnv("TV_USERNAME", ""),
		Password:          GetEnv("TV_PASSWORD", ""),
		TOTPSecret:        GetEnv("TV_TOTP_SECRET", ""),
	}
}
