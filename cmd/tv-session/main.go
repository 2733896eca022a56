package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Checker-Finance/tradingview-adapter/internal/tradingview"
	"github.com/Checker-Finance/tradingview-adapter/pkg/config"
	"github.com/Checker-Finance/tradingview-adapter/pkg/logger"
)

// tv-session signs in with username/password (plus TOTP when the account
// has 2FA enabled) and verifies the captured session cookies by fetching
// the user back from the landing page.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	cfg.ServiceName = "tv-session"

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [tv-session]...")

	if cfg.Username == "" || cfg.Password == "" {
		logg.Fatal("TV_USERNAME and TV_PASSWORD must be set")
	}

	users := tradingview.NewUserService(logg.Desugar(), cfg.SigninURL, cfg.TwoFAURL, cfg.BaseURL)

	user, err := users.LoginUser(ctx, cfg.Username, cfg.Password, cfg.TOTPSecret)
	if err != nil {
		logg.Fatalw("session login failed", "username", cfg.Username, "error", err)
	}

	verified, err := users.FetchUser(ctx, user.Session, user.SessionSignature)
	if err != nil {
		logg.Fatalw("session verification failed", "error", err)
	}

	logg.Infow("session established",
		"username", verified.Username,
		"id", verified.ID,
		"session_hash", verified.SessionHash,
		"private_channel", verified.PrivateChannel)
}
