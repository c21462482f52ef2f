package state

import (
	"context"

	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
)

// Instrument wraps a store so malformed entries are logged and counted.
func Instrument(store Store, logg *logger.Logger, m *metrics.Storefront) Store {
	return &instrumented{Store: store, logg: logg, metrics: m}
}

type instrumented struct {
	Store
	logg    *logger.Logger
	metrics *metrics.Storefront
}

func (i *instrumented) ReportFallback(ctx context.Context, key string, cause error) {
	i.metrics.IncStateFallback(key)
	if i.logg == nil {
		return
	}
	ctx = i.logg.WithFields(ctx, map[string]any{"state_key": key, "cause": cause.Error()})
	i.logg.Warn(ctx, "malformed state entry replaced by default")
}
