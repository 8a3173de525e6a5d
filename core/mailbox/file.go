package mailbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mailrecon/core/reconcile"

	"github.com/spf13/afero"
)

// FileSource reads a directory tree, a single .eml file or an .mbox file.
type FileSource struct {
	fs   afero.Fs
	root string
}

// NewFileSource returns a source rooted at root on fs.
func NewFileSource(fs afero.Fs, root string) *FileSource {
	return &FileSource{fs: fs, root: root}
}

// Name returns the root path.
func (s *FileSource) Name() string {
	return s.root
}

// Load walks the root in lexical order. IDs are slash-separated paths
// relative to the root; a single file uses its base name.
func (s *FileSource) Load(ctx context.Context) ([]reconcile.Item, error) {
	info, err := s.fs.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return s.loadFile(s.root, filepath.Base(s.root), "")
	}

	var items []reconcile.Item
	err = afero.Walk(s.fs, s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || !(isMessageFile(path) || isMbox(path)) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		folder := filepath.ToSlash(filepath.Dir(rel))
		if folder == "." {
			folder = ""
		}
		loaded, err := s.loadFile(path, rel, folder)
		items = append(items, loaded...)
		return err
	})
	if err != nil {
		return items, fmt.Errorf("walking %s: %w", s.root, err)
	}
	return items, nil
}

func (s *FileSource) loadFile(path, id, folder string) ([]reconcile.Item, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if isMbox(path) {
		return ReadMbox(f, id, id), nil
	}
	rec, perr := ParseMessage(f)
	return []reconcile.Item{{ID: id, Record: rec, SourceFile: id, FolderPath: folder, Err: perr}}, nil
}
