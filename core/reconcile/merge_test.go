package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeInputs() (Collection, Collection) {
	shared := withID(rec("bob@example.com", "Hello", "body", base), "<shared@x>")
	work := Collection{Name: "work", Items: []Item{
		item("1", shared),
		item("2", rec("amy@example.com", "Lunch", "noon", base)),
	}}
	home := Collection{Name: "home", Items: []Item{
		item("1", rec("mum@example.com", "Dinner", "sunday", base)),
		item("2", shared),
	}}
	return work, home
}

func TestMerger_Merge(t *testing.T) {
	work, home := mergeInputs()

	res, err := NewMerger().Merge(context.Background(), []Collection{work, home}, true)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Collections)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 1, res.DuplicatesRemoved)
	assert.Equal(t, []ItemRef{
		{Collection: "work", ID: "1"},
		{Collection: "work", ID: "2"},
		{Collection: "home", ID: "1"},
	}, res.Unique)

	require.Len(t, res.Matches, 1)
	m := res.Matches[0]
	assert.Equal(t, MatchRef{ID: "2", SourceFile: "2.eml", Collection: "home"}, m.Left)
	assert.Equal(t, MatchRef{ID: "1", SourceFile: "1.eml", Collection: "work"}, m.Right)
	assert.Equal(t, Exact, m.Certainty)
}

func TestMerger_OrderDecidesSurvivor(t *testing.T) {
	work, home := mergeInputs()

	res, err := NewMerger().Merge(context.Background(), []Collection{home, work}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, res.DuplicatesRemoved)
	assert.Contains(t, res.Unique, ItemRef{Collection: "home", ID: "2"})
	assert.NotContains(t, res.Unique, ItemRef{Collection: "work", ID: "1"})
}

func TestMerger_WithinCollectionDuplicates(t *testing.T) {
	col := Collection{Items: []Item{
		item("x", rec("bob@example.com", "Hello", "a", base)),
		item("y", rec("bob@example.com", "Hello", "b", base.Add(5*time.Second))),
	}}
	m := NewMerger()
	m.Config.UseContent = false

	res, err := m.Merge(context.Background(), []Collection{col}, true)
	require.NoError(t, err)
	assert.Equal(t, []ItemRef{{Collection: "collection-1", ID: "x"}}, res.Unique)
	assert.Equal(t, High, res.Matches[0].Certainty)
}

func TestMerger_WithoutDedupe(t *testing.T) {
	work, home := mergeInputs()
	home.Items = append(home.Items, Item{ID: "3", Err: errors.New("bad")})

	res, err := NewMerger().Merge(context.Background(), []Collection{work, home}, false)
	require.NoError(t, err)

	assert.Len(t, res.Unique, 5)
	assert.Zero(t, res.DuplicatesRemoved)
	assert.Empty(t, res.Matches)
}

func TestMerger_Rejects(t *testing.T) {
	res, err := NewMerger().Merge(context.Background(), nil, true)
	require.NoError(t, err)
	assert.False(t, res.Success)

	dup := Collection{Name: "dup", Items: []Item{item("1", rec("a@x.com", "s", "b", base)), item("1", rec("b@x.com", "s", "b", base))}}
	res, err = NewMerger().Merge(context.Background(), []Collection{dup}, true)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors[0], "collection dup")
}
