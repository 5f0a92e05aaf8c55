package types

// -----------------------------------------------------------------------------
// Store contract (the external hierarchical key-value store)
// -----------------------------------------------------------------------------

// Access is the requested permission set on an opened key.
type Access uint32

const (
	AccessRead Access = 1 << iota
	AccessWrite

	AccessReadWrite = AccessRead | AccessWrite
)

// Store opens keys under a root anchor. Implementations must serialize
// concurrent opens and writes to the same path.
type Store interface {
	// OpenKey opens an existing key. Returns ErrNotFound if it is absent.
	OpenKey(root RootKey, path string, access Access) (Key, error)

	// CreateKey opens path, creating it and any missing parents.
	// existing reports whether the key was already present.
	CreateKey(root RootKey, path string, access Access) (k Key, existing bool, err error)
}

// Key is a live handle to one open key.
type Key interface {
	// GetValue copies the named value into buf and returns the payload size
	// and type. With a nil buf only size and type are returned. If buf is
	// too small, GetValue returns ErrShortBuffer along with the required
	// size. A missing value yields ErrNotFound.
	GetValue(name string, buf []byte) (n int, typ RegType, err error)

	// SetValue stores data under name, replacing any previous value.
	SetValue(name string, typ RegType, data []byte) error

	// DeleteValue removes name. A missing value yields ErrNotFound.
	DeleteValue(name string) error

	// ValueNames enumerates the value names of the key.
	ValueNames() ([]string, error)

	// Close releases the handle. Calling Close twice is a no-op.
	Close() error
}
