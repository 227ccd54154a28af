package cli

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"github.com/matzehuels/graphalign/pkg/buildinfo"
	"github.com/matzehuels/graphalign/pkg/observability"
)

// setupMetrics installs OpenTelemetry hooks that export to stderr. The
// collected metrics are flushed by c.shutdown when the command finishes.
func (c *CLI) setupMetrics(ctx context.Context) error {
	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr), stdoutmetric.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("create stdout metric exporter: %w", err)
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exporter)))

	hooks, err := observability.NewOTelHooks(mp.Meter(appName, otelmetric.WithInstrumentationVersion(buildinfo.Version)))
	if err != nil {
		_ = mp.Shutdown(ctx)
		return err
	}
	observability.SetAlignHooks(hooks)
	observability.SetBuildHooks(hooks)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	c.shutdown = func(ctx context.Context) error {
		defer observability.Reset()
		return mp.Shutdown(ctx)
	}
	c.Logger.Debug("metrics enabled")
	return nil
}
