// Package regfile is a types.Store persisted as a .reg text file. The file
// is loaded once on Open and rewritten atomically after every change, so
// it always reflects the last successful mutation.
//
// Opening the same path twice in one process shares one tree; writes from
// either Store are serialized and persisted together.
package regfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/tlqtangok/reg-api/internal/keytree"
	"github.com/tlqtangok/reg-api/internal/mmfile"
	"github.com/tlqtangok/reg-api/internal/regtext"
	"github.com/tlqtangok/reg-api/internal/writer"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// Options configures how the file is read and written. A nil *Options
// means UTF-8 without BOM, HKEY_CURRENT_USER for bare section paths, and
// a discard logger.
type Options struct {
	// Encoding of the written file: "UTF-8" or "UTF-16LE". Reads always
	// detect the encoding from the BOM or header.
	Encoding string
	WithBOM  bool

	// DefaultRoot anchors section paths in the file that lack an HKEY name.
	DefaultRoot types.RootKey

	// FullSync asks for F_FULLFSYNC on macOS.
	FullSync bool

	Logger *slog.Logger
}

func (o *Options) orDefault() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return out
}

// file is the state shared by every Store opened on one path.
type file struct {
	path string
	tree *keytree.Tree
	refs int
}

var files = xsync.NewMapOf[string, *file]()

// Store is one reference to a .reg-backed tree.
type Store struct {
	f      *file
	closed atomic.Bool
}

var _ types.Store = (*Store)(nil)

// Open loads path (a missing file is an empty store) and arranges for
// every change to be written back.
func Open(path string, opts *Options) (*Store, error) {
	o := opts.orDefault()
	sink := &writer.FileWriter{Path: path, Perm: 0o600, FullSync: o.FullSync}
	return open(path, o, sink)
}

func open(path string, opts Options, sink writer.Sink) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("regfile: resolve %s: %w", path, err)
	}
	var loadErr error
	f, _ := files.Compute(abs, func(old *file, loaded bool) (*file, bool) {
		if loaded {
			old.refs++
			opts.Logger.Debug("regfile: sharing open store", "path", abs, "refs", old.refs)
			return old, false
		}
		nf, err := load(abs, opts, sink)
		if err != nil {
			loadErr = err
			return nil, true
		}
		return nf, false
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return &Store{f: f}, nil
}

func load(path string, opts Options, sink writer.Sink) (*file, error) {
	exportOpts := types.RegExportOptions{OutputEncoding: opts.Encoding, WithBOM: opts.WithBOM}
	if _, err := regtext.ExportReg(nil, exportOpts); err != nil {
		return nil, fmt.Errorf("regfile: encoding %q: %w", opts.Encoding, err)
	}

	tree := keytree.New()
	data, release, err := mmfile.Map(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		opts.Logger.Debug("regfile: starting empty store", "path", path)
	case err != nil:
		return nil, fmt.Errorf("regfile: read %s: %w", path, err)
	case len(data) == 0:
		_ = release()
		opts.Logger.Debug("regfile: empty file, starting empty store", "path", path)
	default:
		ops, err := regtext.ParseReg(data, types.RegParseOptions{DefaultRoot: opts.DefaultRoot})
		_ = release()
		if err != nil {
			return nil, types.Wrap(types.ErrKindCorrupt, "regfile: parse "+path, err)
		}
		if err := tree.Apply(ops); err != nil {
			return nil, types.Wrap(types.ErrKindCorrupt, "regfile: load "+path, err)
		}
		opts.Logger.Debug("regfile: loaded store", "path", path, "ops", len(ops))
	}

	log := opts.Logger
	tree.SetCommit(func(secs []types.Section) error {
		buf, err := regtext.ExportReg(secs, exportOpts)
		if err != nil {
			return err
		}
		if err := sink.WriteRegistry(buf); err != nil {
			log.Warn("regfile: persist failed", "path", path, "err", err)
			return fmt.Errorf("regfile: persist %s: %w", path, err)
		}
		return nil
	})
	return &file{path: path, tree: tree, refs: 1}, nil
}

// Path returns the absolute file path.
func (s *Store) Path() string { return s.f.path }

func (s *Store) OpenKey(root types.RootKey, path string, access types.Access) (types.Key, error) {
	if s.closed.Load() {
		return nil, types.ErrNotOpen
	}
	return s.f.tree.OpenKey(root, path, access)
}

func (s *Store) CreateKey(root types.RootKey, path string, access types.Access) (types.Key, bool, error) {
	if s.closed.Load() {
		return nil, false, types.ErrNotOpen
	}
	return s.f.tree.CreateKey(root, path, access)
}

// DeleteKey removes path and its subtree, then persists.
func (s *Store) DeleteKey(root types.RootKey, path string) error {
	if s.closed.Load() {
		return types.ErrNotOpen
	}
	return s.f.tree.DeleteKey(root, path)
}

// Import applies the edits in .reg text as one batch and persists once.
func (s *Store) Import(data []byte, opts types.RegParseOptions) error {
	if s.closed.Load() {
		return types.ErrNotOpen
	}
	ops, err := regtext.ParseReg(data, opts)
	if err != nil {
		return err
	}
	return s.f.tree.Apply(ops)
}

// Export renders the current tree with opts, independent of the file's
// own encoding.
func (s *Store) Export(opts types.RegExportOptions) ([]byte, error) {
	return regtext.ExportReg(s.f.tree.Sections(), opts)
}

// Close drops this reference. Keys opened through it stay usable until
// they are closed; the shared tree is forgotten once the last Store on
// the path is closed.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	files.Compute(s.f.path, func(old *file, loaded bool) (*file, bool) {
		if !loaded || old != s.f {
			return old, !loaded
		}
		old.refs--
		return old, old.refs == 0
	})
	return nil
}
