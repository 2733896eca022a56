package tradingview

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/Checker-Finance/tradingview-adapter/internal/httpclient"
)

// builtinFilters are the pine-facade catalog slices fetched by
// BuiltinIndicators.
var builtinFilters = []string{"standard", "candlestick", "fundamental"}

// PineService fetches the builtin indicator catalog from the pine-facade
// endpoint. Catalog fetches go through the retrying executor; a transient
// failure here is not terminal the way it is for the login flow.
type PineService struct {
	logger  *zap.Logger
	exec    *httpclient.Executor
	pineURL string
}

// NewPineService creates a PineService against the given pine-facade list
// endpoint.
func NewPineService(logger *zap.Logger, exec *httpclient.Executor, pineURL string) *PineService {
	return &PineService{
		logger:  logger,
		exec:    exec,
		pineURL: pineURL,
	}
}

// BuiltinIndicators returns the merged builtin indicator list across all
// catalog filters.
func (p *PineService) BuiltinIndicators(ctx context.Context) ([]Indicator, error) {
	var indicators []Indicator
	for _, filter := range builtinFilters {
		listURL := p.pineURL + "?filter=" + url.QueryEscape(filter)

		var page []Indicator
		if err := p.exec.GetJSON(ctx, listURL, "pine", &page); err != nil {
			return nil, fmt.Errorf("pine list %q: %w", filter, err)
		}
		indicators = append(indicators, page...)
	}

	p.logger.Info("tradingview.indicators_listed",
		zap.Int("count", len(indicators)))

	return indicators, nil
}
