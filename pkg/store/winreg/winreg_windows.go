//go:build windows

package winreg

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// Store opens keys in the live registry.
type Store struct {
	log *slog.Logger
	mu  sync.Mutex // serializes CreateKey so concurrent creators agree on "existing"
}

var _ types.Store = (*Store)(nil)

// Open returns a Store. A nil logger discards diagnostics.
func Open(log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{log: log}, nil
}

func rootHandle(root types.RootKey) (registry.Key, error) {
	switch root {
	case types.CurrentUser:
		return registry.CURRENT_USER, nil
	case types.LocalMachine:
		return registry.LOCAL_MACHINE, nil
	case types.ClassesRoot:
		return registry.CLASSES_ROOT, nil
	case types.Users:
		return registry.USERS, nil
	case types.CurrentConfig:
		return registry.CURRENT_CONFIG, nil
	}
	return 0, types.Errorf(types.ErrKindMalformed, "unknown root key %d", int(root))
}

func accessMask(a types.Access) uint32 {
	var m uint32
	if a&types.AccessRead != 0 {
		m |= registry.READ
	}
	if a&types.AccessWrite != 0 {
		m |= registry.WRITE
	}
	return m
}

func (s *Store) OpenKey(root types.RootKey, path string, access types.Access) (types.Key, error) {
	rk, err := rootHandle(root)
	if err != nil {
		return nil, err
	}
	k, err := registry.OpenKey(rk, types.NormalizePath(path), accessMask(access))
	if err != nil {
		return nil, mapErr(err, "open "+root.Short()+`\`+path)
	}
	return &key{k: k, log: s.log}, nil
}

func (s *Store) CreateKey(root types.RootKey, path string, access types.Access) (types.Key, bool, error) {
	rk, err := rootHandle(root)
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k, existing, err := registry.CreateKey(rk, types.NormalizePath(path), accessMask(access))
	if err != nil {
		return nil, false, mapErr(err, "create "+root.Short()+`\`+path)
	}
	s.log.Debug("winreg: create key", "root", root.Short(), "path", path, "existing", existing)
	return &key{k: k, log: s.log}, existing, nil
}

// key wraps one registry.Key.
type key struct {
	mu     sync.Mutex
	k      registry.Key
	closed bool
	log    *slog.Logger
}

func (k *key) GetValue(name string, buf []byte) (int, types.RegType, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return 0, 0, types.ErrNotOpen
	}
	n, typ, err := k.k.GetValue(name, buf)
	switch {
	case errors.Is(err, registry.ErrShortBuffer):
		return n, types.RegType(typ), types.ErrShortBuffer
	case err != nil:
		return 0, 0, mapErr(err, "get value "+name)
	}
	return n, types.RegType(typ), nil
}

func (k *key) SetValue(name string, typ types.RegType, data []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return types.ErrNotOpen
	}
	if err := setRaw(k.k, name, typ, data); err != nil {
		if types.KindOf(err) != 0 {
			return err
		}
		return mapErr(err, "set value "+name)
	}
	return nil
}

func (k *key) DeleteValue(name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return types.ErrNotOpen
	}
	if err := k.k.DeleteValue(name); err != nil {
		return mapErr(err, "delete value "+name)
	}
	return nil
}

func (k *key) ValueNames() ([]string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil, types.ErrNotOpen
	}
	names, err := k.k.ReadValueNames(0)
	if err != nil {
		return nil, mapErr(err, "enumerate values")
	}
	return names, nil
}

func (k *key) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil
	}
	k.closed = true
	return k.k.Close()
}

// setRaw stores data through the typed setter matching typ. String
// payloads are decoded first; the setters re-append the terminator.
func setRaw(k registry.Key, name string, typ types.RegType, data []byte) error {
	switch typ {
	case types.REG_SZ:
		return k.SetStringValue(name, format.DecodeSZ(data))
	case types.REG_EXPAND_SZ:
		return k.SetExpandStringValue(name, format.DecodeSZ(data))
	case types.REG_MULTI_SZ:
		return k.SetStringsValue(name, splitMultiSZ(data))
	case types.REG_DWORD:
		if len(data) != format.DWORDSize {
			return types.Errorf(types.ErrKindSizeMismatch, "REG_DWORD needs %d bytes, got %d", format.DWORDSize, len(data))
		}
		return k.SetDWordValue(name, format.ReadU32(data, 0))
	case types.REG_QWORD:
		if len(data) != format.QWORDSize {
			return types.Errorf(types.ErrKindSizeMismatch, "REG_QWORD needs %d bytes, got %d", format.QWORDSize, len(data))
		}
		return k.SetQWordValue(name, format.ReadU64(data, 0))
	case types.REG_BINARY:
		return k.SetBinaryValue(name, data)
	}
	return types.Errorf(types.ErrKindUnsupported, "winreg: cannot store %s", typ)
}

func splitMultiSZ(data []byte) []string {
	var out []string
	for len(data) >= format.UTF16CodeUnitSize {
		s := format.DecodeSZ(data)
		if s == "" {
			break
		}
		out = append(out, s)
		data = data[len(format.EncodeSZ(s)):]
	}
	return out
}

func mapErr(err error, op string) error {
	switch {
	case errors.Is(err, registry.ErrNotExist):
		return types.Wrap(types.ErrKindNotFound, "winreg: "+op, err)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return types.Wrap(types.ErrKindAccess, "winreg: "+op, err)
	}
	return types.Wrap(types.ErrKindCorrupt, "winreg: "+op, err)
}
