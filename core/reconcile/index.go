package reconcile

import "time"

// Index holds fingerprints for lookup. It is owned by a single goroutine for
// the duration of one operation and is not safe for concurrent use.
type Index struct {
	byMessageID map[string]*Fingerprint
	byContent   map[string]*Fingerprint
	buckets     map[string][]*Fingerprint
	byID        map[string]*Fingerprint
	order       []*Fingerprint
}

// Stats summarizes the population of each lookup table.
type Stats struct {
	Total                int `json:"total"`
	MessageIDs           int `json:"message_ids"`
	ContentHashes        int `json:"content_hashes"`
	SenderSubjectBuckets int `json:"sender_subject_buckets"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	idx := &Index{}
	idx.Reset()
	return idx
}

// Add inserts fp into every table. Records without a Message-ID are not
// placed in the Message-ID table. For the Message-ID and content tables the
// first fingerprint to claim a key keeps it.
func (idx *Index) Add(fp Fingerprint) {
	p := &fp
	if key := p.MessageIDKey(); key != "" {
		if _, taken := idx.byMessageID[key]; !taken {
			idx.byMessageID[key] = p
		}
	}
	if _, taken := idx.byContent[p.ContentHash]; !taken {
		idx.byContent[p.ContentHash] = p
	}
	bucket := p.SenderSubjectKey()
	idx.buckets[bucket] = append(idx.buckets[bucket], p)
	idx.byID[p.ID] = p
	idx.order = append(idx.order, p)
}

// Get returns the fingerprint stored under id.
func (idx *Index) Get(id string) (Fingerprint, bool) {
	p, ok := idx.byID[id]
	if !ok {
		return Fingerprint{}, false
	}
	return *p, true
}

// Len returns the number of fingerprints added since the last Reset.
func (idx *Index) Len() int {
	return len(idx.order)
}

// All returns every stored fingerprint in insertion order.
func (idx *Index) All() []Fingerprint {
	out := make([]Fingerprint, len(idx.order))
	for i, p := range idx.order {
		out[i] = *p
	}
	return out
}

// Reset empties all tables.
func (idx *Index) Reset() {
	idx.byMessageID = make(map[string]*Fingerprint)
	idx.byContent = make(map[string]*Fingerprint)
	idx.buckets = make(map[string][]*Fingerprint)
	idx.byID = make(map[string]*Fingerprint)
	idx.order = nil
}

// Stats reports the size of each table.
func (idx *Index) Stats() Stats {
	return Stats{
		Total:                len(idx.order),
		MessageIDs:           len(idx.byMessageID),
		ContentHashes:        len(idx.byContent),
		SenderSubjectBuckets: len(idx.buckets),
	}
}

// FindMatch looks fp up with the standard three-tier policy (EXACT by
// Message-ID, EXACT by content, HIGH by sender, subject and time).
func (idx *Index) FindMatch(fp Fingerprint, useMessageID, useContent bool, tolerance time.Duration) *Match {
	return StandardStrategy(useMessageID, useContent, tolerance).Find(idx, fp)
}
