// Package memory is a volatile types.Store backed by an in-process key tree.
package memory

import (
	"github.com/tlqtangok/reg-api/internal/keytree"
	"github.com/tlqtangok/reg-api/internal/regtext"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// Store is an in-memory registry. The zero value is not usable; call New.
type Store struct {
	tree *keytree.Tree
}

var _ types.Store = (*Store)(nil)

// New returns an empty store with every root anchor present.
func New() *Store {
	return &Store{tree: keytree.New()}
}

func (s *Store) OpenKey(root types.RootKey, path string, access types.Access) (types.Key, error) {
	return s.tree.OpenKey(root, path, access)
}

func (s *Store) CreateKey(root types.RootKey, path string, access types.Access) (types.Key, bool, error) {
	return s.tree.CreateKey(root, path, access)
}

// DeleteKey removes path and everything below it.
func (s *Store) DeleteKey(root types.RootKey, path string) error {
	return s.tree.DeleteKey(root, path)
}

// Import applies the edits in .reg text. Operations before a failing one
// stay applied.
func (s *Store) Import(data []byte, opts types.RegParseOptions) error {
	ops, err := regtext.ParseReg(data, opts)
	if err != nil {
		return err
	}
	return s.tree.Apply(ops)
}

// Export renders every key as .reg text.
func (s *Store) Export(opts types.RegExportOptions) ([]byte, error) {
	return regtext.ExportReg(s.tree.Sections(), opts)
}

// Sections returns a snapshot of every key and its values.
func (s *Store) Sections() []types.Section {
	return s.tree.Sections()
}
