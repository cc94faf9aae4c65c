package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/scene"
)

// Input is one document of a batch.
type Input struct {
	Name   string
	Data   []byte
	Format dsio.Format // overrides Options.DocFormat when set
}

// BatchResult is the outcome for one Input. A failed document does not
// stop the rest of the batch.
type BatchResult struct {
	Name  string
	Scene *scene.Scene
	Err   error
}

// CompileAll compiles independent documents in parallel, at most limit at
// a time (DefaultConcurrency when limit <= 0). Results keep input order.
// The returned error is non-nil only when ctx is done.
func (r *Runner) CompileAll(ctx context.Context, inputs []Input, opts Options, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := opts
			if in.Format != "" {
				o.DocFormat = in.Format
			}
			s, err := r.Compile(gctx, in.Data, o)
			results[i] = BatchResult{Name: in.Name, Scene: s, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
