package reconcile

import (
	"context"
	"fmt"
)

// Merger concatenates collections in the order given, optionally removing
// cross-collection duplicates through one shared index. Because the first
// occurrence wins, the input order decides which copy survives.
type Merger struct {
	Config  MatchConfig
	Options Options
}

// NewMerger returns a Merger with the cross-mailbox defaults.
func NewMerger() *Merger {
	return &Merger{Config: DefaultMatchConfig()}
}

// Merge returns the union of collections. Without dedupe the union is the
// plain concatenation.
func (m *Merger) Merge(ctx context.Context, collections []Collection, dedupe bool) (*MergeResult, error) {
	res := &MergeResult{
		Outcome:     newOutcome(),
		Collections: len(collections),
		Unique:      []ItemRef{},
		Matches:     []Match{},
	}
	if len(collections) == 0 {
		res.fail(fmt.Errorf("no collections to merge"))
		return res, nil
	}
	for i := range collections {
		if err := checkIDs(collections[i].Items); err != nil {
			res.fail(fmt.Errorf("collection %s: %w", collectionName(collections, i), err))
			return res, nil
		}
		res.Total += len(collections[i].Items)
	}
	if res.Total == 0 {
		res.fail(ErrNoRecords)
		return res, nil
	}

	if !dedupe {
		for i, col := range collections {
			name := collectionName(collections, i)
			for _, it := range col.Items {
				if err := ctx.Err(); err != nil {
					res.fail(err)
					return res, err
				}
				res.Unique = append(res.Unique, ItemRef{Collection: name, ID: it.ID})
			}
		}
		return res, nil
	}

	strategy := m.Config.Strategy()
	idx := NewIndex()
	refs := make(map[string]ItemRef)

	for i, col := range collections {
		name := collectionName(collections, i)
		prefix := fmt.Sprintf("%d/", i)
		prog := m.Options.progress(len(col.Items), "merging "+name)

		err := m.Options.fingerprints(ctx, col.Items, prefix, func(b built) error {
			prog.step(b.pos + 1)
			ref := ItemRef{Collection: name, ID: b.item.ID}
			if b.err != nil {
				res.warn(name+"/"+b.item.ID, b.err)
				res.Unique = append(res.Unique, ref)
				return nil
			}
			if match := strategy.Find(idx, b.fp); match != nil {
				kept := refs[match.Right.ID]
				match.Left.ID, match.Left.Collection = ref.ID, ref.Collection
				match.Right.ID, match.Right.Collection = kept.ID, kept.Collection
				res.DuplicatesRemoved++
				res.Matches = append(res.Matches, *match)
				return nil
			}
			idx.Add(b.fp)
			refs[b.fp.ID] = ref
			res.Unique = append(res.Unique, ref)
			return nil
		})
		if err != nil {
			res.fail(err)
			return res, err
		}
	}
	return res, nil
}

func collectionName(collections []Collection, i int) string {
	if name := collections[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("collection-%d", i+1)
}
