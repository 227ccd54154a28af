package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelHooks implements every hook interface on top of an OpenTelemetry meter.
type OTelHooks struct {
	alignLatency  metric.Float64Histogram
	alignTotal    metric.Int64Counter
	alignCells    metric.Int64Histogram
	editTotal     metric.Int64Counter
	graphNodes    metric.Int64Histogram
	linearLatency metric.Float64Histogram
	roundLatency  metric.Float64Histogram
	cacheOps      metric.Int64Counter
	cacheBytes    metric.Int64Counter
}

var (
	_ AlignHooks    = (*OTelHooks)(nil)
	_ BuildHooks    = (*OTelHooks)(nil)
	_ PipelineHooks = (*OTelHooks)(nil)
	_ CacheHooks    = (*OTelHooks)(nil)
)

// NewOTelHooks creates the instruments on meter.
func NewOTelHooks(meter metric.Meter) (*OTelHooks, error) {
	h := &OTelHooks{}
	var err error

	if h.alignLatency, err = meter.Float64Histogram(
		"graphalign_align_duration_seconds",
		metric.WithDescription("Duration of alignments"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if h.alignTotal, err = meter.Int64Counter(
		"graphalign_align_total",
		metric.WithDescription("Total number of alignments"),
	); err != nil {
		return nil, err
	}
	if h.alignCells, err = meter.Int64Histogram(
		"graphalign_align_cells",
		metric.WithDescription("DP cells filled per alignment"),
	); err != nil {
		return nil, err
	}
	if h.editTotal, err = meter.Int64Counter(
		"graphalign_edit_total",
		metric.WithDescription("Composite graph edits by kind"),
	); err != nil {
		return nil, err
	}
	if h.graphNodes, err = meter.Int64Histogram(
		"graphalign_graph_nodes",
		metric.WithDescription("Node count of linearized graphs"),
	); err != nil {
		return nil, err
	}
	if h.linearLatency, err = meter.Float64Histogram(
		"graphalign_linearize_duration_seconds",
		metric.WithDescription("Duration of graph linearization"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if h.roundLatency, err = meter.Float64Histogram(
		"graphalign_round_duration_seconds",
		metric.WithDescription("Duration of construction rounds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if h.cacheOps, err = meter.Int64Counter(
		"graphalign_cache_operations_total",
		metric.WithDescription("Cache operations by result"),
	); err != nil {
		return nil, err
	}
	if h.cacheBytes, err = meter.Int64Counter(
		"graphalign_cache_written_bytes_total",
		metric.WithDescription("Bytes written to the cache"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *OTelHooks) OnAlignStart(context.Context, int, int) {}

func (h *OTelHooks) OnAlignComplete(ctx context.Context, rows, cols, _ int, d time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	h.alignLatency.Record(ctx, d.Seconds(), attrs)
	h.alignTotal.Add(ctx, 1, attrs)
	if err == nil {
		h.alignCells.Record(ctx, int64(rows+1)*int64(cols+1))
	}
}

func (h *OTelHooks) OnEdit(kind string, _ int) {
	h.editTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (h *OTelHooks) OnLinearize(nodes, _ int, d time.Duration, err error) {
	ctx := context.Background()
	h.linearLatency.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.Bool("success", err == nil)))
	if err == nil {
		h.graphNodes.Record(ctx, int64(nodes))
	}
}

func (h *OTelHooks) OnRoundStart(context.Context, int, int) {}

func (h *OTelHooks) OnRoundComplete(ctx context.Context, _, _ int, d time.Duration, err error) {
	h.roundLatency.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.Bool("success", err == nil)))
}

func (h *OTelHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.cacheOps.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType), attribute.String("result", "hit")))
}

func (h *OTelHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.cacheOps.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType), attribute.String("result", "miss")))
}

func (h *OTelHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.cacheOps.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType), attribute.String("result", "set")))
	h.cacheBytes.Add(ctx, int64(size), metric.WithAttributes(attribute.String("key_type", keyType)))
}
