package reconcile

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	// bodyPrefixRunes is how much of the body contributes to the content hash.
	bodyPrefixRunes = 1000
	// htmlScanRunes caps the raw HTML considered before tag stripping.
	htmlScanRunes = 2000
)

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// Fingerprint is the derived identity of a record. It is immutable once built.
type Fingerprint struct {
	ID                string    `json:"id"`
	MessageID         string    `json:"message_id"`
	ContentHash       string    `json:"content_hash"`
	SenderEmail       string    `json:"sender_email"`
	Subject           string    `json:"subject"`
	NormalizedSubject string    `json:"normalized_subject"`
	Timestamp         time.Time `json:"timestamp"`
	RecipientsHash    string    `json:"recipients_hash"`
	SourceFile        string    `json:"source_file,omitempty"`
	FolderPath        string    `json:"folder_path,omitempty"`
	Size              int64     `json:"size,omitempty"`
}

// HasTimestamp reports whether the record carried a usable date.
func (fp Fingerprint) HasTimestamp() bool {
	return !fp.Timestamp.IsZero()
}

// MessageIDKey is the lookup key for the Message-ID table, empty when the
// record has no usable Message-ID.
func (fp Fingerprint) MessageIDKey() string {
	return strings.ToLower(strings.TrimSpace(fp.MessageID))
}

// SenderSubjectKey is the bucket key shared by HIGH and MEDIUM candidates.
func (fp Fingerprint) SenderSubjectKey() string {
	return strings.ToLower(fp.SenderEmail) + "|" + fp.NormalizedSubject
}

// Build derives the fingerprint of rec. It is pure: the same record always
// yields the same fingerprint, and missing fields degrade to empty strings.
func Build(rec Record, id, sourceFile, folderPath string) Fingerprint {
	sender := strings.TrimSpace(rec.SenderEmail)
	return Fingerprint{
		ID:                id,
		MessageID:         strings.TrimSpace(rec.MessageID),
		ContentHash:       contentHash(sender, rec.Subject, bodyPrefix(rec)),
		SenderEmail:       sender,
		Subject:           rec.Subject,
		NormalizedSubject: NormalizeSubject(rec.Subject),
		Timestamp:         rec.Timestamp,
		RecipientsHash:    recipientsHash(rec.To, rec.Cc),
		SourceFile:        sourceFile,
		FolderPath:        folderPath,
		Size:              rec.Size,
	}
}

func contentHash(sender, subject, body string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(sender) + "|" + subject + "|" + body))
	return hex.EncodeToString(sum[:])
}

// bodyPrefix returns the text that feeds the content hash: the trimmed plain
// body if present, otherwise the tag-stripped start of the HTML body. The
// stripped HTML keeps its whitespace.
func bodyPrefix(rec Record) string {
	body := strings.TrimSpace(rec.BodyText)
	if body == "" && rec.BodyHTML != "" {
		raw := truncateRunes(rec.BodyHTML, htmlScanRunes)
		body = htmlTag.ReplaceAllString(raw, "")
	}
	return truncateRunes(body, bodyPrefixRunes)
}

func recipientsHash(to, cc []string) string {
	all := make([]string, 0, len(to)+len(cc))
	for _, addr := range to {
		all = append(all, strings.ToLower(strings.TrimSpace(addr)))
	}
	for _, addr := range cc {
		all = append(all, strings.ToLower(strings.TrimSpace(addr)))
	}
	sort.Strings(all)
	sum := sha256.Sum256([]byte(strings.Join(all, "|")))
	return hex.EncodeToString(sum[:])
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
