package frames

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/nosgen/internal/system"
)

// LoadResult reports the outcome of decoding one source entry.
type LoadResult struct {
	Index int
	Name  string
	Err   error
}

// LoadAll decodes every entry of src with at most workers decodes in flight.
// A file that fails to decode is reported in its LoadResult and left out of
// the returned frames; it never stops the rest of the batch. Frames keep the
// source order.
func LoadAll(ctx context.Context, src Source, workers int) ([]*FrameData, []LoadResult) {
	n := src.Len()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	loaded := make([]*FrameData, n)
	results := make([]LoadResult, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		name := src.Name(i)
		results[i] = LoadResult{Index: i, Name: name}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			img, err := src.Decode(i)
			if err != nil {
				results[i].Err = errors.Wrapf(err, "decode %s", name)
				system.Logger().Warn("frame decode failed", "frame", name, "error", err)
				return nil
			}

			// only file-backed frames record where they came from
			var source string
			if is, ok := src.(*ImageSource); ok {
				source = is.Path(i)
			}
			loaded[i] = NewFrame(name, source, img)
			system.Logger().Debug("frame decoded", "frame", name,
				"width", loaded[i].Width, "height", loaded[i].Height)
			return nil
		})
	}
	_ = g.Wait()

	frames := make([]*FrameData, 0, n)
	for _, f := range loaded {
		if f != nil {
			frames = append(frames, f)
		}
	}
	return frames, results
}

// Failed filters results down to the entries that did not load.
func Failed(results []LoadResult) []LoadResult {
	var failed []LoadResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
