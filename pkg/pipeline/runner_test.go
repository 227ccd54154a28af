package pipeline

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphalign/pkg/cache"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

func newRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(c, newAligner(t), log.New(io.Discard))
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, newAligner(t), nil)
	assert.NotNil(t, r.Cache)
	assert.NotNil(t, r.Keyer)
	assert.NotNil(t, r.Logger)
	assert.NotNil(t, r.Aligner())
	assert.NoError(t, r.Close())
}

func TestRunnerBuild(t *testing.T) {
	r := newRunner(t, nil)
	seqs := []seqgraph.Sequence{
		enc("ACGTACGTTGCA"),
		enc("ACGAACGTTGCA"),
		enc("ACGTACTTGCA"),
		enc("ACGTACGTTTGCAA"),
		enc("GGACGTACGTTGCA"),
	}

	g, err := r.Build(context.Background(), seqs)
	require.NoError(t, err)
	requireSpells(t, r.Aligner(), g, seqs...)
}

func TestRunnerBuildSingle(t *testing.T) {
	r := newRunner(t, nil)
	g, err := r.Build(context.Background(), []seqgraph.Sequence{enc("ACGT")})
	require.NoError(t, err)
	assert.True(t, g.Equal(seqgraph.Naive(enc("ACGT"))))
}

func TestRunnerBuildRandom(t *testing.T) {
	r := newRunner(t, nil)
	rng := rand.New(rand.NewSource(5))

	for trial := 0; trial < 10; trial++ {
		base := randomSequence(rng, 20+rng.Intn(20))
		seqs := []seqgraph.Sequence{base}
		for range 5 {
			seqs = append(seqs, mutate(rng, seqs[rng.Intn(len(seqs))]))
		}
		g, err := r.Build(context.Background(), seqs)
		require.NoError(t, err)
		requireSpells(t, r.Aligner(), g, seqs...)
	}
}

func TestRunnerBuildInvalid(t *testing.T) {
	r := newRunner(t, nil)
	ctx := context.Background()

	_, err := r.Build(ctx, nil)
	assert.True(t, errs.IsInvalidInput(err))

	_, err = r.Build(ctx, []seqgraph.Sequence{enc("ACGT"), nil})
	assert.True(t, errs.IsInvalidInput(err))
}

func TestRunnerBuildCanceled(t *testing.T) {
	r := newRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Build(ctx, []seqgraph.Sequence{enc("ACGT"), enc("ACCT")})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "round 1")
}

func TestRunnerAlignCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := newRunner(t, fc)
	ctx := context.Background()
	g, seq := seqgraph.Naive(enc("ACGTACG")), enc("ACTACG")

	first, hit, err := r.AlignWithCacheInfo(ctx, g, seq)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := r.AlignWithCacheInfo(ctx, g, seq)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Alignment, second.Alignment)

	r.Refresh = true
	_, hit, err = r.AlignWithCacheInfo(ctx, g, seq)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRunnerAlignConcurrent(t *testing.T) {
	r := newRunner(t, nil)
	g, seq := seqgraph.Naive(enc("ACGTACGTACGT")), enc("ACGTTCGTACT")

	var wg sync.WaitGroup
	scores := make([]int, 8)
	for i := range scores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Align(context.Background(), g, seq)
			if assert.NoError(t, err) {
				scores[i] = res.Score
			}
		}()
	}
	wg.Wait()
	for _, s := range scores {
		assert.Equal(t, scores[0], s)
	}
}

func TestRunnerBuildCache(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	require.NoError(t, err)
	r := newRunner(t, fc)
	ctx := context.Background()
	seqs := []seqgraph.Sequence{enc("ACGTACG"), enc("ACGAACG"), enc("ACGACG")}

	first, err := r.Build(ctx, seqs)
	require.NoError(t, err)

	// A second runner over the same directory reads the stored graph.
	fc2, err := cache.NewFileCache(dir)
	require.NoError(t, err)
	second, err := newRunner(t, fc2).Build(ctx, seqs)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestRunnerPairwise(t *testing.T) {
	r := newRunner(t, nil)
	a, b := enc("ACGTACG"), enc("ACGAACG")

	g, err := r.Pairwise(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 4, g.EdgeCount())
	requireSpells(t, r.Aligner(), g, a, b)

	_, err = r.Pairwise(context.Background(), a, nil)
	assert.True(t, errs.IsInvalidInput(err))
}
