package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_AddAndReset(t *testing.T) {
	idx := NewIndex()
	first := Build(*withID(rec("bob@example.com", "Hello", "one", base), "<1@x>"), "1", "", "")
	second := Build(*rec("bob@example.com", "Re: Hello", "two", base), "2", "", "")
	third := Build(*rec("amy@example.com", "Other", "three", base), "3", "", "")

	idx.Add(first)
	idx.Add(second)
	idx.Add(third)

	assert.Equal(t, 3, idx.Len())
	all := idx.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	got, ok := idx.Get("2")
	assert.True(t, ok)
	assert.Equal(t, second, got)

	stats := idx.Stats()
	assert.Equal(t, Stats{Total: 3, MessageIDs: 1, ContentHashes: 3, SenderSubjectBuckets: 2}, stats)

	idx.Reset()
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.All())
	_, ok = idx.Get("1")
	assert.False(t, ok)
	assert.Nil(t, idx.FindMatch(first, true, true, time.Minute))
}

func TestIndex_FindMatch(t *testing.T) {
	stored := Build(*withID(rec("bob@example.com", "Hello", "body", base), "<ABC@x>"), "stored", "stored.eml", "")

	tests := []struct {
		name       string
		query      *Record
		id         string
		useMID     bool
		useContent bool
		tolerance  time.Duration
		want       Certainty
		reason     string
	}{
		{
			name:   "MessageIDCaseInsensitive",
			query:  withID(rec("x@example.com", "Other", "other", base), " <abc@X> "),
			id:     "q", useMID: true, useContent: true,
			want:   Exact, reason: "<abc@X>",
		},
		{
			name:   "MessageIDDisabled",
			query:  withID(rec("x@example.com", "Other", "other", base), "<abc@x>"),
			id:     "q", useMID: false, useContent: true,
		},
		{
			name:  "ContentHash",
			query: rec("BOB@example.com", "Hello", "body", base.Add(72*time.Hour)),
			id:    "q", useMID: true, useContent: true,
			want:  Exact, reason: "identical content hash",
		},
		{
			name:  "ContentDisabled",
			query: rec("bob@example.com", "Hello", "body", base.Add(72*time.Hour)),
			id:    "q", useMID: true, useContent: false, tolerance: 15 * time.Second,
		},
		{
			name:  "HighWithoutContent",
			query: rec("bob@example.com", "RE: hello", "different body", base.Add(10*time.Second)),
			id:    "q", useMID: true, useContent: false, tolerance: 15 * time.Second,
			want:  High,
		},
		{
			name:  "HighOutsideTolerance",
			query: rec("bob@example.com", "RE: hello", "different body", base.Add(20*time.Second)),
			id:    "q", useMID: true, useContent: false, tolerance: 15 * time.Second,
		},
		{
			name:  "HighRequiresEqualContent",
			query: rec("bob@example.com", "RE: hello", "different body", base.Add(10*time.Second)),
			id:    "q", useMID: true, useContent: true, tolerance: 15 * time.Second,
		},
		{
			name:  "NoTimestamp",
			query: rec("bob@example.com", "RE: hello", "different body", time.Time{}),
			id:    "q", useMID: true, useContent: false, tolerance: time.Hour,
		},
		{
			name:   "Reflexive",
			query:  withID(rec("bob@example.com", "Hello", "body", base), "<abc@x>"),
			id:     "stored", useMID: true, useContent: true, tolerance: time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex()
			idx.Add(stored)

			m := idx.FindMatch(Build(*tt.query, tt.id, "", ""), tt.useMID, tt.useContent, tt.tolerance)
			if tt.want == 0 {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, tt.want, m.Certainty)
			assert.Equal(t, tt.id, m.Left.ID)
			assert.Equal(t, "stored", m.Right.ID)
			assert.Equal(t, "stored.eml", m.Right.SourceFile)
			if tt.reason != "" {
				assert.Contains(t, m.Reason, tt.reason)
			}
		})
	}
}

func TestIndex_FirstInsertedWins(t *testing.T) {
	idx := NewIndex()
	idx.Add(Build(*withID(rec("bob@example.com", "Hello", "one", base), "<dup@x>"), "first", "", ""))
	idx.Add(Build(*withID(rec("bob@example.com", "Hello", "two", base.Add(time.Second)), "<dup@x>"), "second", "", ""))

	q := Build(*withID(rec("amy@example.com", "x", "y", base), "<dup@x>"), "q", "", "")
	m := idx.FindMatch(q, true, true, 0)
	require.NotNil(t, m)
	assert.Equal(t, "first", m.Right.ID)

	q = Build(*rec("bob@example.com", "Hello", "three", base.Add(2*time.Second)), "q2", "", "")
	m = idx.FindMatch(q, true, false, 15*time.Second)
	require.NotNil(t, m)
	assert.Equal(t, High, m.Certainty)
	assert.Equal(t, "first", m.Right.ID)
}
