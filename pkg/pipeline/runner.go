package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/graphalign/pkg/align"
	"github.com/matzehuels/graphalign/pkg/builder"
	"github.com/matzehuels/graphalign/pkg/cache"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	graphio "github.com/matzehuels/graphalign/pkg/io"
	"github.com/matzehuels/graphalign/pkg/observability"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// Runner executes alignment and construction rounds with caching.
//
// The Runner keeps no results itself; everything reusable lives in the
// cache. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Refresh skips cache reads; results are still written.
	Refresh bool

	aligner *align.Aligner
	hooks   observability.PipelineHooks
	group   singleflight.Group
}

// NewRunner creates a runner around aligner.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, aligner *align.Aligner, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		Logger:  logger,
		aligner: aligner,
		hooks:   observability.Pipeline(),
	}
}

// Aligner returns the aligner the runner was created with.
func (r *Runner) Aligner() *align.Aligner { return r.aligner }

// Align aligns seq to g, reusing a cached result when one exists. Concurrent
// calls for the same inputs share one computation and one *align.Result,
// which callers must treat as read-only.
func (r *Runner) Align(ctx context.Context, g *seqgraph.Graph, seq seqgraph.Sequence) (*align.Result, error) {
	res, _, err := r.AlignWithCacheInfo(ctx, g, seq)
	return res, err
}

// AlignWithCacheInfo is like Align and also reports whether the result came
// from the cache.
func (r *Runner) AlignWithCacheInfo(ctx context.Context, g *seqgraph.Graph, seq seqgraph.Sequence) (*align.Result, bool, error) {
	graphData, err := graphio.MarshalGraph(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	key := r.Keyer.AlignKey(cache.Hash(graphData), cache.Hash(sequenceBytes(seq)), r.keyOpts())

	type outcome struct {
		res *align.Result
		hit bool
	}
	v, err, _ := r.group.Do(key, func() (any, error) {
		if !r.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err != nil {
				r.Logger.Warn("cache read failed", "key", key, "err", err)
			} else if hit {
				if res, err := graphio.UnmarshalResult(data); err == nil {
					return outcome{res: res, hit: true}, nil
				}
			}
		}

		res, err := r.aligner.Align(ctx, g, seq)
		if err != nil {
			return nil, err
		}
		if data, err := graphio.MarshalResult(res); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLAlignment); err != nil {
				r.Logger.Warn("cache write failed", "key", key, "err", err)
			}
		}
		return outcome{res: res}, nil
	})
	if err != nil {
		return nil, false, err
	}
	o := v.(outcome)
	return o.res, o.hit, nil
}

// Augment extends g with a path spelling seq according to res. See the
// package-level [Augment].
func (r *Runner) Augment(g *seqgraph.Graph, seq seqgraph.Sequence, res *align.Result) (*seqgraph.Graph, error) {
	return Augment(g, seq, res, builder.WithLogger(r.Logger))
}

// Build constructs a graph spelling every sequence, starting from the trivial
// graph of the first one and adding the others in order.
func (r *Runner) Build(ctx context.Context, seqs []seqgraph.Sequence) (*seqgraph.Graph, error) {
	if err := ValidateSequences(seqs); err != nil {
		return nil, err
	}

	hashes := make([]string, len(seqs))
	for i, s := range seqs {
		hashes[i] = cache.Hash(sequenceBytes(s))
	}
	key := r.Keyer.GraphKey(hashes, r.keyOpts())
	if !r.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := graphio.UnmarshalGraph(data); err == nil {
				r.Logger.Info("graph loaded from cache", "sequences", len(seqs), "nodes", g.NodeCount())
				return g, nil
			}
		}
	}

	start := time.Now()
	g := seqgraph.Naive(seqs[0])
	for i := 1; i < len(seqs); i++ {
		next, err := r.round(ctx, i, g, seqs[i])
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		g = next
	}

	r.Logger.Info("built graph",
		"sequences", len(seqs),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"symbols", g.Len(),
		"duration", time.Since(start))

	if data, err := graphio.MarshalGraph(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLGraph); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return g, nil
}

func (r *Runner) round(ctx context.Context, n int, g *seqgraph.Graph, seq seqgraph.Sequence) (out *seqgraph.Graph, err error) {
	r.hooks.OnRoundStart(ctx, n, g.Len())
	start := time.Now()
	defer func() {
		nodes := 0
		if out != nil {
			nodes = out.NodeCount()
		}
		r.hooks.OnRoundComplete(ctx, n, nodes, time.Since(start), err)
	}()

	res, hit, err := r.AlignWithCacheInfo(ctx, g, seq)
	if err != nil {
		return nil, err
	}
	out, err = r.Augment(g, seq, res)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("added sequence",
		"round", n,
		"score", res.Score,
		"cached", hit,
		"nodes", out.NodeCount(),
		"duration", time.Since(start))
	return out, nil
}

// Pairwise aligns two plain sequences and converts the alignment directly
// into a graph with a shared node per matching run and a bubble per
// substitution.
func (r *Runner) Pairwise(ctx context.Context, a, b seqgraph.Sequence) (*seqgraph.Graph, error) {
	if err := ValidateSequences([]seqgraph.Sequence{a, b}); err != nil {
		return nil, err
	}
	res, err := r.Align(ctx, seqgraph.Naive(a), b)
	if err != nil {
		return nil, err
	}
	g, err := builder.AlignmentToSequenceGraph(res.Alignment, builder.WithLogger(r.Logger))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "convert alignment")
	}
	return g, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) keyOpts() cache.AlignKeyOpts {
	s := r.aligner.Scoring()
	return cache.AlignKeyOpts{
		Match:     s.Match,
		Mismatch:  s.Mismatch,
		GapOpen:   s.GapOpen,
		GapExtend: s.GapExtend,
		Alphabet:  s.Alphabet.Letters(),
	}
}
