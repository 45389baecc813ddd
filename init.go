package main

import (
	"context"

	"github.com/tournevent/rateshop/internal/config"
	"github.com/tournevent/rateshop/internal/telemetry"
	"github.com/tournevent/rateshop/pkg/carrier"
	"github.com/tournevent/rateshop/pkg/carrier/factory"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initOrchestrator(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) (*carrier.Orchestrator, error) {
	return factory.New(cfg.Carriers(), logger, tracer)
}
