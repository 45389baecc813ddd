// Package factory constructs configured carriers and hands them to an
// orchestrator. It is pure construction: no carrier is contacted.
package factory

import (
	"fmt"
	"sort"
	"time"

	"github.com/tournevent/rateshop/pkg/carrier"
	"github.com/tournevent/rateshop/pkg/carrier/mock"
	"github.com/tournevent/rateshop/pkg/carrier/ups"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

// BackendConfig is one carrier's configuration block.
type BackendConfig struct {
	ClientID           string
	ClientSecret       string
	BaseURL            string
	HTTPTimeout        time.Duration
	TokenRefreshBuffer time.Duration
	UseMock            bool
}

// New builds an orchestrator from the configuration blocks present in cfgs,
// keyed by carrier name. Carriers without a block are simply not registered;
// a block naming an unknown carrier is a configuration error. Registration
// order is the sorted key order so result ordering is stable across runs.
func New(cfgs map[string]BackendConfig, logger *otelzap.Logger, tracer trace.Tracer) (*carrier.Orchestrator, error) {
	names := make([]string, 0, len(cfgs))
	for name := range cfgs {
		names = append(names, name)
	}
	sort.Strings(names)

	carriers := make([]carrier.Carrier, 0, len(names))
	for _, name := range names {
		c, err := build(name, cfgs[name], logger, tracer)
		if err != nil {
			return nil, err
		}
		carriers = append(carriers, c)
	}

	return carrier.NewOrchestrator(carriers...)
}

func build(name string, cfg BackendConfig, logger *otelzap.Logger, tracer trace.Tracer) (carrier.Carrier, error) {
	switch name {
	case "ups":
		return ups.New(ups.Config{
			ClientID:      cfg.ClientID,
			ClientSecret:  cfg.ClientSecret,
			BaseURL:       cfg.BaseURL,
			HTTPTimeout:   cfg.HTTPTimeout,
			RefreshBuffer: cfg.TokenRefreshBuffer,
			UseMock:       cfg.UseMock,
		}, logger, tracer), nil
	case "mock":
		return mock.New("mock"), nil
	default:
		return nil, fmt.Errorf("unknown carrier in configuration: %s", name)
	}
}
