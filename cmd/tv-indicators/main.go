package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Checker-Finance/tradingview-adapter/internal/httpclient"
	"github.com/Checker-Finance/tradingview-adapter/internal/rate"
	"github.com/Checker-Finance/tradingview-adapter/internal/tradingview"
	"github.com/Checker-Finance/tradingview-adapter/pkg/config"
	"github.com/Checker-Finance/tradingview-adapter/pkg/logger"
)

// tv-indicators lists the builtin pine indicator catalog.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	cfg.ServiceName = "tv-indicators"

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()

	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: 5,
		Burst:             5,
		Cooldown:          1 * time.Second,
	})
	exec := httpclient.New(logg.Desugar(), rateMgr, &http.Client{Timeout: cfg.HTTPTimeout}, 2, "pine")

	pine := tradingview.NewPineService(logg.Desugar(), exec, cfg.PineURL)

	indicators, err := pine.BuiltinIndicators(ctx)
	if err != nil {
		logg.Fatalw("failed to list builtin indicators", "error", err)
	}

	for _, ind := range indicators {
		fmt.Printf("%s\t%s\t%s\n", ind.ID, ind.Version, ind.Name)
	}
}
