package registry

import (
	"reflect"

	"github.com/tlqtangok/reg-api/internal/procref"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// StoreRef registers p in the process handle table and writes its token
// under name. The token only resolves in the process that wrote it.
func StoreRef[T any](r *Registry, name string, p *T) bool {
	if p == nil || !r.IsOpen() {
		return false
	}
	h := r.refs.Register(p)
	return r.WriteString(name, r.refs.Token(h))
}

// LoadRef returns the pointer whose token is stored under name. It
// returns def when the value is absent or malformed, was written by
// another process, names a released handle, or points at another type.
func LoadRef[T any](r *Registry, name string, def *T) *T {
	h, ok := r.refHandle(name)
	if !ok {
		return def
	}
	v, ok := r.refs.Resolve(h)
	if !ok {
		r.log.Debug("registry: ref handle not in table", "name", name, "handle", h)
		return def
	}
	p, ok := v.(*T)
	if !ok {
		r.log.Warn("registry: ref has a different type",
			"name", name, "want", reflect.TypeFor[*T](), "have", reflect.TypeOf(v))
		return def
	}
	return p
}

// ReleaseRef forgets the handle stored under name and deletes the value.
// Tokens from other processes are only deleted. It reports whether the
// value was removed.
func ReleaseRef(r *Registry, name string) bool {
	if h, ok := r.refHandle(name); ok {
		r.refs.Release(h)
	}
	return r.DeleteValue(name)
}

// refHandle reads and validates the token under name.
func (r *Registry) refHandle(name string) (uint64, bool) {
	text, err := r.readText(name)
	if err != nil || text == "" {
		return 0, false
	}
	h, pid, err := procref.ParseToken(text)
	if err != nil {
		r.log.Warn("registry: malformed ref", "name", name, "text", text, "err", err)
		return 0, false
	}
	if pid != r.refs.PID() {
		err := types.Errorf(types.ErrKindProcessMismatch, "ref %q was written by process %d, current is %d", name, pid, r.refs.PID())
		r.log.Warn("registry: ref belongs to another process", "name", name, "err", err)
		return 0, false
	}
	return h, true
}
