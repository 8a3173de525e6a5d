package reconcile

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options are the execution settings shared by all operations.
type Options struct {
	// Workers bounds parallel fingerprint construction. Zero uses GOMAXPROCS.
	Workers int
	// Progress is called at a bounded frequency. Nil disables reporting.
	Progress ProgressFunc
	// ProgressEvery is the reporting period in records. Zero means 100.
	ProgressEvery int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// built is one pipeline result, tagged with its input position.
type built struct {
	pos  int
	item Item
	fp   Fingerprint
	err  error
}

func buildOne(pos int, it Item, idPrefix string) built {
	b := built{pos: pos, item: it}
	if err := it.usable(); err != nil {
		b.err = err
		return b
	}
	b.fp = Build(*it.Record, idPrefix+it.ID, it.SourceFile, it.FolderPath)
	return b
}

// fingerprints builds fingerprints for items on a bounded worker pool and
// hands them to reduce one at a time in input order. At most a fixed window
// of items is in flight, so memory stays bounded however slow one item is.
// Cancellation is checked before each reduce call; a cancelled run returns
// ctx.Err() after the last fully reduced record.
func (o Options) fingerprints(ctx context.Context, items []Item, idPrefix string, reduce func(built) error) error {
	workers := o.workers()
	window := workers * 2

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(workers)

	tokens := make(chan struct{}, window)
	results := make(chan built, window)

	go func() {
		defer close(results)
	feed:
		for i := range items {
			select {
			case tokens <- struct{}{}:
			case <-gctx.Done():
				break feed
			}
			i := i
			g.Go(func() error {
				b := buildOne(i, items[i], idPrefix)
				select {
				case results <- b:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		_ = g.Wait()
	}()

	pending := make(map[int]built, window)
	next := 0
	for b := range results {
		pending[b.pos] = b
		for {
			nb, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			<-tokens

			if err := ctx.Err(); err != nil {
				cancel()
				for range results {
				}
				return err
			}
			if err := reduce(nb); err != nil {
				cancel()
				for range results {
				}
				return err
			}
		}
	}

	if next < len(items) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("pipeline stopped after %d of %d records", next, len(items))
	}
	return nil
}

// checkIDs rejects collections where two items share an ID.
func checkIDs(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
