package reconcile

import (
	"context"
	"strings"
)

const (
	sideA = "a"
	sideB = "b"
)

// Comparator classifies two collections against each other. B is indexed and
// A is driven through it, so the result is asymmetric: several A records may
// match the same B record, and each B record is marked consumed once any A
// record matched it.
type Comparator struct {
	Config  MatchConfig
	Options Options
}

// NewComparator returns a Comparator with the cross-mailbox defaults.
func NewComparator() *Comparator {
	return &Comparator{Config: DefaultMatchConfig()}
}

// Compare partitions A into common and unique IDs and reports B records no A
// record consumed. Every input ID lands in exactly one partition of its side.
func (c *Comparator) Compare(ctx context.Context, a, b []Item) (*CompareResult, error) {
	res := &CompareResult{
		Outcome:     newOutcome(),
		TotalA:      len(a),
		TotalB:      len(b),
		CommonFromA: []string{},
		UniqueToA:   []string{},
		UniqueToB:   []string{},
		Matches:     []Match{},
	}
	res.Total = len(a) + len(b)

	for _, side := range [][]Item{a, b} {
		if err := checkIDs(side); err != nil {
			res.fail(err)
			return res, nil
		}
	}
	if res.Total == 0 {
		res.fail(ErrNoRecords)
		return res, nil
	}

	idx := NewIndex()
	prefixB := sideB + "/"
	prog := c.Options.progress(len(b), "indexing")
	err := c.Options.fingerprints(ctx, b, prefixB, func(r built) error {
		prog.step(r.pos + 1)
		if r.err != nil {
			res.warn(r.item.ID, r.err)
			return nil
		}
		idx.Add(r.fp)
		return nil
	})
	if err != nil {
		res.fail(err)
		return res, err
	}

	strategy := c.Config.Strategy()
	consumed := make(map[string]struct{})
	prog = c.Options.progress(len(a), "comparing")
	err = c.Options.fingerprints(ctx, a, sideA+"/", func(r built) error {
		prog.step(r.pos + 1)
		if r.err != nil {
			res.warn(r.item.ID, r.err)
			res.UniqueToA = append(res.UniqueToA, r.item.ID)
			return nil
		}
		m := strategy.Find(idx, r.fp)
		if m == nil {
			res.UniqueToA = append(res.UniqueToA, r.item.ID)
			return nil
		}
		m.Left.ID, m.Left.Collection = r.item.ID, sideA
		m.Right.ID, m.Right.Collection = strings.TrimPrefix(m.Right.ID, prefixB), sideB
		consumed[m.Right.ID] = struct{}{}
		res.CommonFromA = append(res.CommonFromA, r.item.ID)
		res.Matches = append(res.Matches, *m)
		return nil
	})
	if err != nil {
		res.fail(err)
		return res, err
	}

	for _, it := range b {
		if _, ok := consumed[it.ID]; !ok {
			res.UniqueToB = append(res.UniqueToB, it.ID)
		}
	}
	return res, nil
}
