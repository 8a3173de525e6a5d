package reconcile

import (
	"fmt"
	"time"
)

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func rec(sender, subject, body string, ts time.Time) *Record {
	return &Record{
		SenderEmail: sender,
		Sender:      sender,
		Subject:     subject,
		BodyText:    body,
		Timestamp:   ts,
		To:          []string{"team@example.com"},
	}
}

func withID(r *Record, messageID string) *Record {
	r.MessageID = messageID
	return r
}

func item(id string, r *Record) Item {
	return Item{ID: id, Record: r, SourceFile: id + ".eml"}
}

// distinctItems returns n records that share no key at any tier.
func distinctItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		r := rec(
			fmt.Sprintf("user%d@example.com", i),
			fmt.Sprintf("topic %d", i),
			fmt.Sprintf("body %d", i),
			base.Add(time.Duration(i)*time.Hour),
		)
		r.MessageID = fmt.Sprintf("<%d@example.com>", i)
		items[i] = item(fmt.Sprintf("m%03d", i), r)
	}
	return items
}
