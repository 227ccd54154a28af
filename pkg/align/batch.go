package align

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// ScoreAll scores every query against target concurrently. At most limit
// alignments run at once; limit <= 0 means no limit. The first failure
// cancels the remaining work.
func (a *Aligner) ScoreAll(ctx context.Context, target seqgraph.Linear, queries []seqgraph.Linear, limit int) ([]int, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	tg := target.AsGraph()
	scores := make([]int, len(queries))
	for i, q := range queries {
		g.Go(func() error {
			s, err := a.Score(ctx, tg, q)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
