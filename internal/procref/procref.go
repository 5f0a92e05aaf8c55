// Package procref keeps process-local references behind small integer
// handles. A handle is only meaningful inside the process that issued it:
// the table lives in memory and disappears with the process, so a handle
// read back by any later run resolves to nothing.
//
// Handles are persisted as tokens of the form "<hex-handle>_<decimal-pid>".
package procref

import (
	"fmt"
	"math/rand/v2"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/tlqtangok/reg-api/pkg/types"
)

// Separator splits the handle from the process id in a token.
const Separator = "_"

type refKey struct {
	addr uintptr
	typ  reflect.Type
}

// Table maps handles to pointers for one process.
type Table struct {
	pid   int
	next  atomic.Uint64
	byID  *xsync.MapOf[uint64, any]
	byRef *xsync.MapOf[refKey, uint64]
}

// Default is the table for the running process.
var Default = New(os.Getpid())

// New creates an empty table that stamps tokens with pid.
func New(pid int) *Table {
	t := &Table{
		pid:   pid,
		byID:  xsync.NewMapOf[uint64, any](),
		byRef: xsync.NewMapOf[refKey, uint64](),
	}
	// Start at a random offset so a restarted process that happens to get
	// the same pid does not hand out the same handle numbers.
	t.next.Store(rand.Uint64N(1 << 32))
	return t
}

// PID returns the process id stamped into this table's tokens.
func (t *Table) PID() int { return t.pid }

// Register returns the handle for p, issuing a new one on first sight.
// p must be a non-nil pointer; otherwise Register returns 0.
func (t *Table) Register(p any) uint64 {
	rv := reflect.ValueOf(p)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0
	}
	key := refKey{addr: rv.Pointer(), typ: rv.Type()}
	h, _ := t.byRef.Compute(key, func(old uint64, loaded bool) (uint64, bool) {
		if loaded {
			return old, false
		}
		id := t.next.Add(1)
		t.byID.Store(id, p)
		return id, false
	})
	return h
}

// Resolve returns the pointer registered under h.
func (t *Table) Resolve(h uint64) (any, bool) {
	return t.byID.Load(h)
}

// Release forgets h. It reports whether h was registered.
func (t *Table) Release(h uint64) bool {
	p, ok := t.byID.LoadAndDelete(h)
	if !ok {
		return false
	}
	rv := reflect.ValueOf(p)
	t.byRef.Delete(refKey{addr: rv.Pointer(), typ: rv.Type()})
	return true
}

// Len returns the number of live handles.
func (t *Table) Len() int { return t.byID.Size() }

// Token renders h stamped with this table's pid.
func (t *Table) Token(h uint64) string {
	return FormatToken(h, t.pid)
}

// FormatToken renders "<hex-handle>_<decimal-pid>".
func FormatToken(h uint64, pid int) string {
	return strconv.FormatUint(h, 16) + Separator + strconv.Itoa(pid)
}

// ParseToken splits a token into its handle and pid. Each field may carry
// leading whitespace and the handle an optional 0x prefix; parsing of a
// field stops at its first non-digit, so trailing text is ignored.
func ParseToken(s string) (h uint64, pid int, err error) {
	hs, ps, ok := strings.Cut(s, Separator)
	if !ok {
		return 0, 0, types.Errorf(types.ErrKindMalformed, "ref token %q: missing %q separator", s, Separator)
	}
	hs = strings.TrimLeft(hs, spaces)
	if len(hs) > 2 && hs[0] == '0' && (hs[1] == 'x' || hs[1] == 'X') {
		hs = hs[2:]
	}
	h, herr := strconv.ParseUint(hs[:digitPrefix(hs, 16)], 16, 64)
	if herr != nil {
		return 0, 0, types.Wrap(types.ErrKindMalformed, fmt.Sprintf("ref token %q: bad handle", s), herr)
	}
	ps = strings.TrimPrefix(strings.TrimLeft(ps, spaces), "+")
	p, perr := strconv.ParseUint(ps[:digitPrefix(ps, 10)], 10, 32)
	if perr != nil {
		return 0, 0, types.Wrap(types.ErrKindMalformed, fmt.Sprintf("ref token %q: bad pid", s), perr)
	}
	return h, int(p), nil
}

const spaces = " \t\n\v\f\r"

// digitPrefix returns the length of the leading run of base digits in s.
func digitPrefix(s string, base int) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case base == 16 && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		default:
			return i
		}
	}
	return len(s)
}
