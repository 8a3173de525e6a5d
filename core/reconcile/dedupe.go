package reconcile

import "context"

// Deduplicator removes duplicates inside one collection. The first
// occurrence of a message is kept; later ones are reported as duplicates.
type Deduplicator struct {
	Config  DedupeConfig
	Options Options
}

// NewDeduplicator returns a Deduplicator with default configuration.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{Config: DefaultDedupeConfig()}
}

// Process partitions items into unique and duplicate IDs. Unusable items are
// kept as unique and reported as warnings. The returned error is non-nil only
// when ctx was cancelled; the result then holds the records seen so far.
func (d *Deduplicator) Process(ctx context.Context, items []Item) (*DedupeResult, error) {
	res := &DedupeResult{
		Outcome:    newOutcome(),
		Unique:     []string{},
		Duplicates: []string{},
		Matches:    []Match{},
	}
	res.Total = len(items)

	if err := checkIDs(items); err != nil {
		res.fail(err)
		return res, nil
	}
	if len(items) == 0 {
		res.fail(ErrNoRecords)
		return res, nil
	}

	strategy := d.Config.Strategy()
	idx := NewIndex()
	prog := d.Options.progress(len(items), "deduplicating")

	err := d.Options.fingerprints(ctx, items, "", func(b built) error {
		prog.step(b.pos + 1)
		if b.err != nil {
			res.warn(b.item.ID, b.err)
			res.Unique = append(res.Unique, b.item.ID)
			return nil
		}
		if m := strategy.Find(idx, b.fp); m != nil {
			res.Duplicates = append(res.Duplicates, b.item.ID)
			res.Matches = append(res.Matches, *m)
			return nil
		}
		idx.Add(b.fp)
		res.Unique = append(res.Unique, b.item.ID)
		return nil
	})
	res.Index = idx.Stats()
	if err != nil {
		res.fail(err)
		return res, err
	}
	return res, nil
}
