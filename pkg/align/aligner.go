package align

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/observability"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// Step is one alignment column expressed as flat symbol positions in the two
// inputs. A value of -1 marks the side holding a gap.
type Step struct {
	A int
	B int
}

// Result is an optimal global alignment together with its score.
type Result struct {
	Alignment seqgraph.Alignment
	Score     int
	Path      []Step
}

// Identity returns the fraction of alignment columns that pair equal symbols.
func (r *Result) Identity() float64 {
	if r.Alignment.Len() == 0 {
		return 0
	}
	matches := 0
	for k, s := range r.Alignment.A {
		if s != seqgraph.Gap && s == r.Alignment.B[k] {
			matches++
		}
	}
	return float64(matches) / float64(r.Alignment.Len())
}

// Aligner computes global affine-gap alignments between sequence graphs.
// An Aligner holds no per-call state and may be shared between goroutines.
type Aligner struct {
	scoring Scoring
	sub     [][]int
	logger  *log.Logger
	hooks   observability.AlignHooks
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithLogger sets the logger receiving one debug line per alignment.
func WithLogger(l *log.Logger) Option {
	return func(a *Aligner) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHooks overrides the globally registered alignment hooks.
func WithHooks(h observability.AlignHooks) Option {
	return func(a *Aligner) {
		if h != nil {
			a.hooks = h
		}
	}
}

// New returns an Aligner for the given scoring scheme.
func New(scoring Scoring, opts ...Option) (*Aligner, error) {
	if err := scoring.Validate(); err != nil {
		return nil, err
	}
	a := &Aligner{
		scoring: scoring,
		sub:     scoring.SubstitutionMatrix(),
		logger:  log.New(io.Discard),
		hooks:   observability.Align(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Scoring returns the scoring scheme the aligner was built with.
func (a *Aligner) Scoring() Scoring { return a.scoring }

// Score returns the optimal global alignment score of x against y without
// allocating backtracking pointers.
func (a *Aligner) Score(ctx context.Context, x, y seqgraph.Linear) (int, error) {
	t, err := a.run(ctx, x, y, false)
	if err != nil {
		return 0, err
	}
	return t.score, nil
}

// Align returns one optimal global alignment of x against y.
//
// When both inputs are graphs the alignment spells one source-to-sink path of
// each. Among equal-scoring alignments the diagonal move is preferred over a
// gap in y, which is preferred over a gap in x.
func (a *Aligner) Align(ctx context.Context, x, y seqgraph.Linear) (*Result, error) {
	t, err := a.run(ctx, x, y, true)
	if err != nil {
		return nil, err
	}
	path := t.traceback()
	return &Result{
		Alignment: t.spell(path),
		Score:     t.score,
		Path:      path,
	}, nil
}

func (a *Aligner) run(ctx context.Context, x, y seqgraph.Linear, trace bool) (t *table, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ga, gb := x.AsGraph(), y.AsGraph()
	if err := a.scoring.Alphabet.Validate(ga.Symbols); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "first input")
	}
	if err := a.scoring.Alphabet.Validate(gb.Symbols); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "second input")
	}

	rows, cols := ga.Len(), gb.Len()
	a.hooks.OnAlignStart(ctx, rows, cols)
	start := time.Now()
	defer func() {
		score := 0
		if t != nil {
			score = t.score
		}
		a.hooks.OnAlignComplete(ctx, rows, cols, score, time.Since(start), err)
	}()

	t = newTable(ga, gb, trace)
	t.fill(a.sub, a.scoring.GapOpen, a.scoring.GapExtend)
	t.terminate()

	a.logger.Debug("aligned", "rows", rows, "cols", cols, "score", t.score, "elapsed", time.Since(start))
	return t, nil
}
