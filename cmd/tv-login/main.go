package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/Checker-Finance/tradingview-adapter/internal/credentials"
	internalsecrets "github.com/Checker-Finance/tradingview-adapter/internal/secrets"
	"github.com/Checker-Finance/tradingview-adapter/internal/tradingview"
	"github.com/Checker-Finance/tradingview-adapter/pkg/config"
	"github.com/Checker-Finance/tradingview-adapter/pkg/logger"
	"github.com/Checker-Finance/tradingview-adapter/pkg/secrets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()
	cfg.ServiceName = "tv-login"

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S().With("run_id", uuid.NewString())
	logg.Info("starting [tv-login]...")

	// --- Credential file ---
	cred, err := credentials.Load(ctx, cfg.CredentialsFile)
	if err != nil {
		logg.Fatalw("failed to load credential file",
			"path", cfg.CredentialsFile,
			"error", err)
	}

	// --- OAuth client identity (AWS Secrets Manager or env) ---
	clientCfg := &tradingview.OAuthClientConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}
	if cfg.OAuthSecretName != "" {
		awsProvider, err := secrets.NewAWSProvider(cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to create AWS Secrets Manager provider", "error", err)
		}
		cache := secrets.NewCache[tradingview.OAuthClientConfig](cfg.SecretsCacheTTL)
		resolver := internalsecrets.NewResolver(logg.Desugar(), awsProvider, cache)
		clientCfg, err = resolver.Resolve(ctx, cfg.OAuthSecretName)
		if err != nil {
			logg.Fatalw("failed to resolve OAuth client config", "error", err)
		}
	}

	// --- Exchange the authorization code for an access token ---
	exchanger := tradingview.NewExchanger(logg.Desugar(), cfg.TokenURL)
	accessToken, err := exchanger.ExchangeCode(ctx, &tradingview.TokenRequest{
		ClientID:     clientCfg.ClientID,
		ClientSecret: clientCfg.ClientSecret,
		GrantType:    "authorization_code",
		Code:         cfg.AuthorizationCode,
		BearerToken:  cred.AccessToken(),
	})
	if err != nil {
		logg.Fatalw("token exchange failed", "error", err)
	}

	// --- Use the token against the login endpoint ---
	session := tradingview.NewSession(logg.Desugar(), cfg.LoginURL)
	result, err := session.Login(ctx, accessToken)
	if err != nil {
		logg.Fatalw("login request failed", "error", err)
	}

	fmt.Println(result.Message())
}
