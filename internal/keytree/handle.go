package keytree

import (
	"strings"
	"sync/atomic"

	"github.com/tlqtangok/reg-api/pkg/types"
)

// handle is an open key. It implements types.Key.
type handle struct {
	tree   *Tree
	node   *node
	access types.Access
	closed atomic.Bool
}

var errClosed = types.Errorf(types.ErrKindNotOpen, "key handle is closed")

func (h *handle) usable() error {
	if h.closed.Load() {
		return errClosed
	}
	if h.node.deleted {
		return types.Errorf(types.ErrKindNotFound, "key %q has been deleted", h.node.name)
	}
	return nil
}

func (h *handle) GetValue(name string, buf []byte) (int, types.RegType, error) {
	if h.access&types.AccessRead == 0 {
		return 0, 0, types.ErrAccessDenied
	}
	h.tree.mu.RLock()
	defer h.tree.mu.RUnlock()
	if err := h.usable(); err != nil {
		return 0, 0, err
	}
	v, ok := h.node.values[strings.ToLower(name)]
	if !ok {
		return 0, 0, types.Errorf(types.ErrKindNotFound, "value %q not found", name)
	}
	n := len(v.Data)
	if buf == nil {
		return n, v.Type, nil
	}
	if len(buf) < n {
		return n, v.Type, types.ErrShortBuffer
	}
	copy(buf, v.Data)
	return n, v.Type, nil
}

func (h *handle) SetValue(name string, typ types.RegType, data []byte) error {
	if h.access&types.AccessWrite == 0 {
		return types.ErrAccessDenied
	}
	h.tree.mu.Lock()
	defer h.tree.mu.Unlock()
	if err := h.usable(); err != nil {
		return err
	}
	undo := h.node.set(name, typ, data)
	return h.tree.commitLocked(undo)
}

func (h *handle) DeleteValue(name string) error {
	if h.access&types.AccessWrite == 0 {
		return types.ErrAccessDenied
	}
	h.tree.mu.Lock()
	defer h.tree.mu.Unlock()
	if err := h.usable(); err != nil {
		return err
	}
	undo := h.node.remove(name)
	if undo == nil {
		return types.Errorf(types.ErrKindNotFound, "value %q not found", name)
	}
	return h.tree.commitLocked(undo)
}

func (h *handle) ValueNames() ([]string, error) {
	if h.access&types.AccessRead == 0 {
		return nil, types.ErrAccessDenied
	}
	h.tree.mu.RLock()
	defer h.tree.mu.RUnlock()
	if err := h.usable(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(h.node.order))
	for _, lower := range h.node.order {
		names = append(names, h.node.values[lower].Name)
	}
	return names, nil
}

func (h *handle) Close() error {
	h.closed.Store(true)
	return nil
}
