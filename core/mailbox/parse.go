package mailbox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"mailrecon/core/reconcile"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// ErrEmptyMessage is returned for zero-length input.
var ErrEmptyMessage = errors.New("empty message")

// ParseMessage reads one RFC 5322 message from r.
func ParseMessage(r io.Reader) (*reconcile.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	return ParseBytes(raw)
}

// ParseBytes parses a raw message. Header fields that fail to decode fall
// back to their raw value; only an unreadable header block is an error.
func ParseBytes(raw []byte) (*reconcile.Record, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyMessage
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("parsing message header: %w", err)
	}
	defer mr.Close()

	h := mr.Header
	rec := &reconcile.Record{
		MessageID: strings.TrimSpace(h.Get("Message-Id")),
		Size:      int64(len(raw)),
	}

	rec.Sender, rec.SenderEmail = parseFrom(h)
	rec.To = addressList(h, "To")
	rec.Cc = addressList(h, "Cc")
	rec.Bcc = addressList(h, "Bcc")

	if subject, err := h.Subject(); err == nil {
		rec.Subject = subject
	} else {
		rec.Subject = h.Get("Subject")
	}
	if date, err := h.Date(); err == nil {
		rec.Timestamp = date
	}

	rec.BodyText, rec.BodyHTML = readBodies(mr)
	return rec, nil
}

func parseFrom(h mail.Header) (display, addr string) {
	from, err := h.AddressList("From")
	if err == nil && len(from) > 0 {
		if from[0].Name != "" {
			return from[0].Name + " <" + from[0].Address + ">", from[0].Address
		}
		return from[0].Address, from[0].Address
	}
	raw := strings.TrimSpace(h.Get("From"))
	return raw, raw
}

func addressList(h mail.Header, key string) []string {
	list, err := h.AddressList(key)
	if err != nil {
		if raw := strings.TrimSpace(h.Get(key)); raw != "" {
			return []string{raw}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Address)
	}
	return out
}

// readBodies returns the first text/plain and first text/html inline parts.
func readBodies(mr *mail.Reader) (text, html string) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			// io.EOF or a broken MIME tree: keep what was read so far.
			return text, html
		}
		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		if contentType == "" {
			contentType = "text/plain"
		}
		switch {
		case strings.HasPrefix(contentType, "text/plain") && text == "":
			if body, err := io.ReadAll(part.Body); err == nil {
				text = string(body)
			}
		case strings.HasPrefix(contentType, "text/html") && html == "":
			if body, err := io.ReadAll(part.Body); err == nil {
				html = string(body)
			}
		}
	}
}
