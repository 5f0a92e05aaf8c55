package types

import (
	"fmt"
	"strings"
)

// RootKey selects the top-level namespace under which key paths resolve.
type RootKey int

const (
	CurrentUser RootKey = iota
	LocalMachine
	ClassesRoot
	Users
	CurrentConfig
)

// These are the standard Windows registry root key names and abbreviations.
const (
	HKEYCurrentUser      = "HKEY_CURRENT_USER"
	HKEYCurrentUserShort = "HKCU"

	HKEYLocalMachine      = "HKEY_LOCAL_MACHINE"
	HKEYLocalMachineShort = "HKLM"

	HKEYClassesRoot      = "HKEY_CLASSES_ROOT"
	HKEYClassesRootShort = "HKCR"

	HKEYUsers      = "HKEY_USERS"
	HKEYUsersShort = "HKU"

	HKEYCurrentConfig      = "HKEY_CURRENT_CONFIG"
	HKEYCurrentConfigShort = "HKCC"
)

// RootKeys lists every anchor in a stable order.
var RootKeys = []RootKey{CurrentUser, LocalMachine, ClassesRoot, Users, CurrentConfig}

// String returns the long HKEY_* name.
func (r RootKey) String() string {
	switch r {
	case CurrentUser:
		return HKEYCurrentUser
	case LocalMachine:
		return HKEYLocalMachine
	case ClassesRoot:
		return HKEYClassesRoot
	case Users:
		return HKEYUsers
	case CurrentConfig:
		return HKEYCurrentConfig
	default:
		return fmt.Sprintf("HKEY_UNKNOWN_%d", int(r))
	}
}

// Short returns the abbreviated name (HKCU, HKLM, ...).
func (r RootKey) Short() string {
	switch r {
	case CurrentUser:
		return HKEYCurrentUserShort
	case LocalMachine:
		return HKEYLocalMachineShort
	case ClassesRoot:
		return HKEYClassesRootShort
	case Users:
		return HKEYUsersShort
	case CurrentConfig:
		return HKEYCurrentConfigShort
	default:
		return r.String()
	}
}

// ParseRootKey accepts long or short anchor names, case-insensitively.
func ParseRootKey(s string) (RootKey, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, r := range RootKeys {
		if name == r.String() || name == r.Short() {
			return r, nil
		}
	}
	return 0, Errorf(ErrKindMalformed, "unknown root key %q", s)
}

// SplitRootPath splits "HKEY_CURRENT_USER\Software\App" into its anchor and
// the remaining path. ok is false when the first segment is not an anchor.
func SplitRootPath(full string) (root RootKey, path string, ok bool) {
	full = NormalizePath(full)
	head, rest, _ := strings.Cut(full, `\`)
	r, err := ParseRootKey(head)
	if err != nil {
		return 0, full, false
	}
	return r, rest, true
}

// NormalizePath converts forward slashes to backslashes and trims leading,
// trailing, and repeated separators.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "/", `\`)
	parts := strings.Split(path, `\`)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, `\`)
}

// SplitPath returns the normalized segments of path.
func SplitPath(path string) []string {
	path = NormalizePath(path)
	if path == "" {
		return nil
	}
	return strings.Split(path, `\`)
}
