package align

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

func TestScoreAll(t *testing.T) {
	a := newAligner(t, DefaultScoring())
	queries := []seqgraph.Linear{
		enc("ACGTCAT"),
		enc("ACGACAT"),
		enc("ACGGCAT"),
		enc("ACGCAT"),
		bubble(t),
	}

	for _, limit := range []int{0, 1, 2} {
		scores, err := a.ScoreAll(context.Background(), bubble(t), queries, limit)
		require.NoError(t, err)
		assert.Equal(t, []int{7, 7, 5, 5, 7}, scores, "limit %d", limit)
	}
}

func TestScoreAllFailure(t *testing.T) {
	a := newAligner(t, DefaultScoring())
	queries := []seqgraph.Linear{enc("ACG"), seqgraph.Sequence{9}}

	_, err := a.ScoreAll(context.Background(), enc("ACG"), queries, 1)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "query 1")
}

func TestScoreAllEmpty(t *testing.T) {
	a := newAligner(t, DefaultScoring())
	scores, err := a.ScoreAll(context.Background(), enc("ACG"), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
