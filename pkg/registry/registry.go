package registry

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/internal/procref"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// maxReadAttempts bounds the size-then-fetch loop when a value keeps
// growing between the two calls.
const maxReadAttempts = 4

// Options configures a Registry. A nil *Options selects
// HKEY_CURRENT_USER, DefaultLimits, lenient number parsing, the process
// handle table, and a discard logger.
type Options struct {
	// Root anchors every path passed to ChangeRoot.
	Root types.RootKey

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// Limits are checked before opening keys and writing values.
	// Nil means types.DefaultLimits().
	Limits *types.Limits

	// StrictNumbers makes ReadNumber reject text with trailing characters.
	StrictNumbers bool

	// Refs is the handle table used by StoreRef and LoadRef. Nil means
	// the table of the running process.
	Refs *procref.Table
}

// Registry is a facade over one open key.
type Registry struct {
	store  types.Store
	root   types.RootKey
	log    *slog.Logger
	limits types.Limits
	strict bool
	refs   *procref.Table

	key  types.Key
	path string
}

// New returns a Registry with no key open.
func New(store types.Store, opts *Options) *Registry {
	r := &Registry{
		store:  store,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		limits: types.DefaultLimits(),
		refs:   procref.Default,
	}
	if opts == nil {
		return r
	}
	r.root = opts.Root
	r.strict = opts.StrictNumbers
	if opts.Logger != nil {
		r.log = opts.Logger
	}
	if opts.Limits != nil {
		r.limits = *opts.Limits
	}
	if opts.Refs != nil {
		r.refs = opts.Refs
	}
	return r
}

// Root returns the anchor ChangeRoot paths resolve under.
func (r *Registry) Root() types.RootKey { return r.root }

// Path returns the normalized path of the open key, or "" when none is open.
func (r *Registry) Path() string { return r.path }

// IsOpen reports whether a key is open.
func (r *Registry) IsOpen() bool { return r.key != nil }

// ChangeRoot closes the current key, then opens path read-write, creating
// it if needed. It reports whether a key ends up open.
func (r *Registry) ChangeRoot(path string) bool {
	r.Close()

	path = types.NormalizePath(path)
	if err := r.limits.CheckPath(path); err != nil {
		r.log.Warn("registry: path rejected", "path", path, "err", err)
		record(opOpen, false)
		return false
	}

	k, err := r.store.OpenKey(r.root, path, types.AccessReadWrite)
	if errors.Is(err, types.ErrNotFound) {
		k, _, err = r.store.CreateKey(r.root, path, types.AccessReadWrite)
		if err == nil {
			r.log.Debug("registry: created key", "root", r.root.Short(), "path", path)
		}
	}
	if err != nil {
		r.log.Warn("registry: open key failed", "root", r.root.Short(), "path", path, "err", err)
		record(opOpen, false)
		return false
	}

	r.key, r.path = k, path
	record(opOpen, true)
	return true
}

// Close releases the open key. Calling it with no key open is a no-op.
func (r *Registry) Close() error {
	if r.key == nil {
		return nil
	}
	k := r.key
	r.key, r.path = nil, ""
	if err := k.Close(); err != nil {
		r.log.Debug("registry: close key failed", "err", err)
		return err
	}
	return nil
}

// ValueExists reports whether name is present, whatever its type.
func (r *Registry) ValueExists(name string) bool {
	if r.key == nil {
		return false
	}
	_, _, err := r.key.GetValue(name, nil)
	return err == nil
}

// ReadString returns the text stored under name, or def when no key is
// open or the value is absent or unreadable.
func (r *Registry) ReadString(name, def string) string {
	s, err := r.readText(name)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) && !errors.Is(err, types.ErrNotOpen) {
			r.log.Debug("registry: read failed", "name", name, "err", err)
		}
		return def
	}
	return s
}

// WriteString stores text under name as REG_SZ. It returns false when no
// key is open, text is not valid UTF-8, a limit is exceeded, or the store
// refuses the write.
func (r *Registry) WriteString(name, text string) bool {
	if err := r.writeText(name, text); err != nil {
		if !errors.Is(err, types.ErrNotOpen) {
			r.log.Warn("registry: write failed", "name", name, "err", err)
		}
		return false
	}
	return true
}

// DeleteValue removes name. It returns false when no key is open or the
// value could not be removed.
func (r *Registry) DeleteValue(name string) bool {
	if r.key == nil {
		return false
	}
	if err := r.key.DeleteValue(name); err != nil {
		r.log.Debug("registry: delete failed", "name", name, "err", err)
		record(opDelete, false)
		return false
	}
	record(opDelete, true)
	return true
}

// ValueNames lists the values of the open key.
func (r *Registry) ValueNames() ([]string, error) {
	if r.key == nil {
		return nil, types.ErrNotOpen
	}
	return r.key.ValueNames()
}

// readRaw fetches a value with the size-then-fetch protocol, retrying
// when the value grows between the two calls.
func (r *Registry) readRaw(name string) ([]byte, types.RegType, error) {
	if r.key == nil {
		return nil, 0, types.ErrNotOpen
	}
	n, _, err := r.key.GetValue(name, nil)
	if err != nil {
		return nil, 0, err
	}
	for range maxReadAttempts {
		buf := make([]byte, n)
		got, typ, err := r.key.GetValue(name, buf)
		if errors.Is(err, types.ErrShortBuffer) {
			n = got
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		return buf[:got], typ, nil
	}
	return nil, 0, types.Errorf(types.ErrKindCorrupt, "value %q kept changing size", name)
}

// readText reads name as text. String types are cut at the first NUL;
// integer types render in decimal.
func (r *Registry) readText(name string) (string, error) {
	data, typ, err := r.readRaw(name)
	if err != nil {
		record(opRead, false)
		return "", err
	}
	record(opRead, true)
	observeSize(len(data))
	switch typ {
	case types.REG_DWORD:
		if len(data) == format.DWORDSize {
			return strconv.FormatUint(uint64(format.ReadU32(data, 0)), 10), nil
		}
	case types.REG_QWORD:
		if len(data) == format.QWORDSize {
			return strconv.FormatUint(format.ReadU64(data, 0), 10), nil
		}
	}
	return format.DecodeSZ(data), nil
}

func (r *Registry) writeText(name, text string) error {
	if r.key == nil {
		return types.ErrNotOpen
	}
	if !utf8.ValidString(text) {
		record(opWrite, false)
		return types.Errorf(types.ErrKindMalformed, "value %q: text is not valid UTF-8", name)
	}
	data := format.EncodeSZ(text)
	if err := r.limits.CheckValue(name, len(data)); err != nil {
		record(opWrite, false)
		return err
	}
	if err := r.key.SetValue(name, types.REG_SZ, data); err != nil {
		record(opWrite, false)
		return err
	}
	record(opWrite, true)
	observeSize(len(data))
	return nil
}
