package mailbox

import (
	"fmt"
	"io"
	"path"
	"strings"

	"mailrecon/core/reconcile"

	"github.com/emersion/go-mbox"
)

// ReadMbox splits an mbox stream into items. Item IDs are "<id>#<n>" with n
// counting from 1. A message that fails to parse is returned with its error,
// and a stream that breaks off ends with one failed item.
func ReadMbox(r io.Reader, id, sourceFile string) []reconcile.Item {
	folder := strings.TrimSuffix(path.Base(sourceFile), path.Ext(sourceFile))
	mr := mbox.NewReader(r)

	var items []reconcile.Item
	for n := 1; ; n++ {
		msg, err := mr.NextMessage()
		if err == io.EOF {
			return items
		}
		if err != nil {
			return append(items, reconcile.Item{
				ID:         fmt.Sprintf("%s#%d", id, n),
				SourceFile: sourceFile,
				FolderPath: folder,
				Err:        fmt.Errorf("reading mbox: %w", err),
			})
		}
		rec, perr := ParseMessage(msg)
		items = append(items, reconcile.Item{
			ID:         fmt.Sprintf("%s#%d", id, n),
			Record:     rec,
			SourceFile: sourceFile,
			FolderPath: folder,
			Err:        perr,
		})
	}
}

func isMbox(name string) bool {
	return strings.EqualFold(path.Ext(name), ".mbox")
}

// isMessageFile accepts .eml files and the bare numbered files written by
// PST export tools.
func isMessageFile(name string) bool {
	base := path.Base(name)
	ext := path.Ext(base)
	if strings.EqualFold(ext, ".eml") {
		return true
	}
	if ext != "" || base == "" {
		return false
	}
	for _, r := range base {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
