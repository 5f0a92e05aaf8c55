// Package keytree is an in-memory hierarchical key store with registry
// semantics: case-insensitive, case-preserving key and value names, one
// tree per root anchor, and handles that stay valid until closed.
//
// A Tree is safe for concurrent use. Every mutation may be followed by a
// commit callback that receives a consistent snapshot; if the callback
// fails a single-key mutation is rolled back. Batches from Apply are not.
package keytree

import (
	"sort"
	"strings"
	"sync"

	"github.com/tlqtangok/reg-api/pkg/types"
)

// CommitFunc persists a snapshot taken right after a mutation.
type CommitFunc func([]types.Section) error

type node struct {
	name     string
	parent   *node
	children map[string]*node
	values   map[string]*types.Value
	order    []string // lowercase value names in insertion order
	deleted  bool
}

func newNode(name string, parent *node) *node {
	return &node{
		name:     name,
		parent:   parent,
		children: make(map[string]*node),
		values:   make(map[string]*types.Value),
	}
}

// Tree holds every root anchor's key hierarchy.
type Tree struct {
	mu     sync.RWMutex
	roots  map[types.RootKey]*node
	commit CommitFunc
}

// New returns an empty tree with all root anchors present.
func New() *Tree {
	t := &Tree{roots: make(map[types.RootKey]*node, len(types.RootKeys))}
	for _, r := range types.RootKeys {
		t.roots[r] = newNode(r.String(), nil)
	}
	return t
}

// SetCommit installs fn as the post-mutation hook. Passing nil removes it.
func (t *Tree) SetCommit(fn CommitFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commit = fn
}

func (t *Tree) rootNode(root types.RootKey) (*node, error) {
	n, ok := t.roots[root]
	if !ok {
		return nil, types.Errorf(types.ErrKindMalformed, "unknown root key %d", int(root))
	}
	return n, nil
}

func (t *Tree) lookup(root types.RootKey, path string) (*node, error) {
	n, err := t.rootNode(root)
	if err != nil {
		return nil, err
	}
	for _, seg := range types.SplitPath(path) {
		child, ok := n.children[strings.ToLower(seg)]
		if !ok {
			return nil, types.Errorf(types.ErrKindNotFound, `key %s\%s not found`, root, types.NormalizePath(path))
		}
		n = child
	}
	return n, nil
}

// OpenKey implements types.Store.
func (t *Tree) OpenKey(root types.RootKey, path string, access types.Access) (types.Key, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.lookup(root, path)
	if err != nil {
		return nil, err
	}
	return &handle{tree: t, node: n, access: access}, nil
}

// CreateKey implements types.Store.
func (t *Tree) CreateKey(root types.RootKey, path string, access types.Access) (types.Key, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.rootNode(root)
	if err != nil {
		return nil, false, err
	}
	var created *node // topmost new node, for rollback
	for _, seg := range types.SplitPath(path) {
		lower := strings.ToLower(seg)
		child, ok := n.children[lower]
		if !ok {
			child = newNode(seg, n)
			n.children[lower] = child
			if created == nil {
				created = child
			}
		}
		n = child
	}
	if created != nil {
		undo := func() { delete(created.parent.children, strings.ToLower(created.name)) }
		if err := t.commitLocked(undo); err != nil {
			return nil, false, err
		}
	}
	return &handle{tree: t, node: n, access: access}, created == nil, nil
}

// DeleteKey removes path and its whole subtree. Open handles under it keep
// working but report the key as deleted.
func (t *Tree) DeleteKey(root types.RootKey, path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.deleteKeyLocked(root, path)
	if err != nil {
		return err
	}
	undo := func() {
		n.parent.children[strings.ToLower(n.name)] = n
		markDeleted(n, false)
	}
	return t.commitLocked(undo)
}

func (t *Tree) deleteKeyLocked(root types.RootKey, path string) (*node, error) {
	if types.NormalizePath(path) == "" {
		return nil, types.Errorf(types.ErrKindAccess, "cannot delete root key %s", root)
	}
	n, err := t.lookup(root, path)
	if err != nil {
		return nil, err
	}
	delete(n.parent.children, strings.ToLower(n.name))
	markDeleted(n, true)
	return n, nil
}

func markDeleted(n *node, deleted bool) {
	n.deleted = deleted
	for _, c := range n.children {
		markDeleted(c, deleted)
	}
}

// Apply executes edit operations as one batch with a single commit.
// It stops at the first failing operation; earlier operations stay applied
// and are committed.
func (t *Tree) Apply(ops []types.EditOp) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, op := range ops {
		if err := t.applyLocked(op); err != nil {
			if i > 0 {
				_ = t.commitLocked(nil)
			}
			return err
		}
	}
	return t.commitLocked(nil)
}

func (t *Tree) applyLocked(op types.EditOp) error {
	switch o := op.(type) {
	case types.OpCreateKey:
		_, err := t.ensureLocked(o.Root, o.Path)
		return err
	case types.OpSetValue:
		n, err := t.ensureLocked(o.Root, o.Path)
		if err != nil {
			return err
		}
		n.set(o.Name, o.Type, o.Data)
		return nil
	case types.OpDeleteValue:
		n, err := t.lookup(o.Root, o.Path)
		if err != nil {
			return nil // deleting under a missing key is a no-op in .reg semantics
		}
		n.remove(o.Name)
		return nil
	case types.OpDeleteKey:
		if _, err := t.deleteKeyLocked(o.Root, o.Path); err != nil && !isNotFound(err) {
			return err
		}
		return nil
	default:
		return types.Errorf(types.ErrKindUnsupported, "unsupported edit %T", op)
	}
}

func isNotFound(err error) bool { return types.KindOf(err) == types.ErrKindNotFound }

func (t *Tree) ensureLocked(root types.RootKey, path string) (*node, error) {
	n, err := t.rootNode(root)
	if err != nil {
		return nil, err
	}
	for _, seg := range types.SplitPath(path) {
		lower := strings.ToLower(seg)
		child, ok := n.children[lower]
		if !ok {
			child = newNode(seg, n)
			n.children[lower] = child
		}
		n = child
	}
	return n, nil
}

// commitLocked runs the commit hook; on failure it calls undo (if any) and
// returns the hook's error.
func (t *Tree) commitLocked(undo func()) error {
	if t.commit == nil {
		return nil
	}
	if err := t.commit(t.sectionsLocked()); err != nil {
		if undo != nil {
			undo()
		}
		return err
	}
	return nil
}

// Sections returns a snapshot of every key, roots in RootKeys order and
// subkeys depth-first in case-insensitive name order.
func (t *Tree) Sections() []types.Section {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sectionsLocked()
}

func (t *Tree) sectionsLocked() []types.Section {
	var out []types.Section
	for _, r := range types.RootKeys {
		root := t.roots[r]
		if len(root.values) > 0 {
			out = append(out, types.Section{Root: r, Values: root.sortedValues()})
		}
		for _, c := range sortedChildren(root) {
			out = appendSections(out, r, c, c.name)
		}
	}
	return out
}

func appendSections(out []types.Section, root types.RootKey, n *node, path string) []types.Section {
	out = append(out, types.Section{Root: root, Path: path, Values: n.sortedValues()})
	for _, c := range sortedChildren(n) {
		out = appendSections(out, root, c, path+`\`+c.name)
	}
	return out
}

func sortedChildren(n *node) []*node {
	kids := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		kids = append(kids, c)
	}
	sort.Slice(kids, func(i, j int) bool {
		return strings.ToLower(kids[i].name) < strings.ToLower(kids[j].name)
	})
	return kids
}

func (n *node) sortedValues() []types.Value {
	vals := make([]types.Value, 0, len(n.values))
	for _, v := range n.values {
		vals = append(vals, types.Value{Name: v.Name, Type: v.Type, Data: append([]byte(nil), v.Data...)})
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i].Name < vals[j].Name })
	return vals
}

// set stores a copy of data and returns a closure restoring the old state.
func (n *node) set(name string, typ types.RegType, data []byte) func() {
	lower := strings.ToLower(name)
	prev, existed := n.values[lower]
	v := &types.Value{Name: name, Type: typ, Data: append([]byte(nil), data...)}
	if existed {
		v.Name = prev.Name // keep the case of the first write
	} else {
		n.order = append(n.order, lower)
	}
	n.values[lower] = v
	return func() {
		if existed {
			n.values[lower] = prev
			return
		}
		delete(n.values, lower)
		n.order = removeName(n.order, lower)
	}
}

// remove deletes name and returns a restoring closure, or nil if absent.
func (n *node) remove(name string) func() {
	lower := strings.ToLower(name)
	prev, ok := n.values[lower]
	if !ok {
		return nil
	}
	idx := indexOf(n.order, lower)
	delete(n.values, lower)
	n.order = removeName(n.order, lower)
	return func() {
		n.values[lower] = prev
		n.order = insertAt(n.order, idx, lower)
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return len(list)
}

func removeName(list []string, s string) []string {
	i := indexOf(list, s)
	if i == len(list) {
		return list
	}
	return append(list[:i:i], list[i+1:]...)
}

func insertAt(list []string, i int, s string) []string {
	if i > len(list) {
		i = len(list)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, s)
	return append(out, list[i:]...)
}
