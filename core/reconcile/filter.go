package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// MatchMode combines the configured criterion groups.
type MatchMode string

const (
	// MatchAny selects records satisfying at least one criterion group.
	MatchAny MatchMode = "any"
	// MatchAll selects records satisfying every configured criterion group.
	MatchAll MatchMode = "all"
)

// FilterConfig selects records by sender and recipient. Each non-empty list
// is one criterion group; empty lists are ignored.
type FilterConfig struct {
	SenderEmails     []string  `json:"sender_emails"`
	SenderDomains    []string  `json:"sender_domains"`
	RecipientEmails  []string  `json:"recipient_emails"`
	RecipientDomains []string  `json:"recipient_domains"`
	Mode             MatchMode `json:"match_mode"`
	IncludeCc        bool      `json:"include_cc"`
	IncludeBcc       bool      `json:"include_bcc"`
}

// Empty reports whether no criterion is configured.
func (c FilterConfig) Empty() bool {
	return len(c.SenderEmails) == 0 && len(c.SenderDomains) == 0 &&
		len(c.RecipientEmails) == 0 && len(c.RecipientDomains) == 0
}

// Filter partitions a collection by a sender/recipient predicate. It does not
// use the match engine.
type Filter struct {
	Options Options
}

// Apply partitions items into matched and non-matched IDs. A filter with no
// criteria matches nothing and is reported as a failed result.
func (f *Filter) Apply(ctx context.Context, items []Item, cfg FilterConfig) (*FilterResult, error) {
	res := &FilterResult{
		Outcome:    newOutcome(),
		Matched:    []string{},
		NonMatched: []string{},
	}
	res.Total = len(items)

	pred := compilePredicate(cfg)
	if cfg.Empty() || pred.empty() {
		res.fail(ErrNoCriteria)
		return res, nil
	}
	switch cfg.Mode {
	case "", MatchAny, MatchAll:
	default:
		res.fail(fmt.Errorf("unknown match mode %q", cfg.Mode))
		return res, nil
	}
	if err := checkIDs(items); err != nil {
		res.fail(err)
		return res, nil
	}
	if len(items) == 0 {
		res.fail(ErrNoRecords)
		return res, nil
	}

	prog := f.Options.progress(len(items), "filtering")
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			res.fail(err)
			return res, err
		}
		prog.step(i + 1)

		if err := it.usable(); err != nil {
			res.warn(it.ID, err)
			res.NonMatched = append(res.NonMatched, it.ID)
			continue
		}
		ok, err := pred.matches(it.Record)
		if err != nil {
			res.warn(it.ID, err)
			res.NonMatched = append(res.NonMatched, it.ID)
			continue
		}
		if ok {
			res.Matched = append(res.Matched, it.ID)
		} else {
			res.NonMatched = append(res.NonMatched, it.ID)
		}
	}
	return res, nil
}

type predicate struct {
	senderEmails     map[string]struct{}
	senderDomains    map[string]struct{}
	recipientEmails  map[string]struct{}
	recipientDomains map[string]struct{}
	all              bool
	includeCc        bool
	includeBcc       bool
}

func compilePredicate(cfg FilterConfig) predicate {
	return predicate{
		senderEmails:     lowerSet(cfg.SenderEmails),
		senderDomains:    lowerSet(cfg.SenderDomains),
		recipientEmails:  lowerSet(cfg.RecipientEmails),
		recipientDomains: lowerSet(cfg.RecipientDomains),
		all:              cfg.Mode == MatchAll,
		includeCc:        cfg.IncludeCc,
		includeBcc:       cfg.IncludeBcc,
	}
}

func (p predicate) empty() bool {
	return len(p.senderEmails) == 0 && len(p.senderDomains) == 0 &&
		len(p.recipientEmails) == 0 && len(p.recipientDomains) == 0
}

func (p predicate) matches(rec *Record) (bool, error) {
	sender, err := ExtractAddress(rec.SenderEmail)
	if err != nil {
		return false, fmt.Errorf("sender: %w", err)
	}

	recipients := rec.To
	if p.includeCc {
		recipients = append(recipients[:len(recipients):len(recipients)], rec.Cc...)
	}
	if p.includeBcc {
		recipients = append(recipients[:len(recipients):len(recipients)], rec.Bcc...)
	}
	addrs := make([]string, 0, len(recipients))
	for _, r := range recipients {
		addr, err := ExtractAddress(r)
		if err != nil {
			return false, fmt.Errorf("recipient: %w", err)
		}
		if addr != "" {
			addrs = append(addrs, addr)
		}
	}

	var groups []bool
	if len(p.senderEmails) > 0 {
		groups = append(groups, has(p.senderEmails, sender))
	}
	if len(p.senderDomains) > 0 {
		groups = append(groups, has(p.senderDomains, Domain(sender)))
	}
	if len(p.recipientEmails) > 0 {
		groups = append(groups, anyIn(p.recipientEmails, addrs, func(a string) string { return a }))
	}
	if len(p.recipientDomains) > 0 {
		groups = append(groups, anyIn(p.recipientDomains, addrs, Domain))
	}

	if len(groups) == 0 {
		return false, nil
	}
	for _, g := range groups {
		if p.all && !g {
			return false, nil
		}
		if !p.all && g {
			return true, nil
		}
	}
	return p.all, nil
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func has(set map[string]struct{}, key string) bool {
	if key == "" {
		return false
	}
	_, ok := set[key]
	return ok
}

func anyIn(set map[string]struct{}, addrs []string, key func(string) string) bool {
	for _, a := range addrs {
		if has(set, key(a)) {
			return true
		}
	}
	return false
}
