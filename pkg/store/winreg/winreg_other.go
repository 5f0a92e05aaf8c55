//go:build !windows

package winreg

import (
	"log/slog"

	"github.com/tlqtangok/reg-api/pkg/types"
)

// Store is unavailable off Windows; every method reports ErrUnsupported.
type Store struct{}

var _ types.Store = (*Store)(nil)

func Open(*slog.Logger) (*Store, error) {
	return nil, types.Errorf(types.ErrKindUnsupported, "winreg: the native registry requires Windows")
}

func (*Store) OpenKey(types.RootKey, string, types.Access) (types.Key, error) {
	return nil, types.ErrUnsupported
}

func (*Store) CreateKey(types.RootKey, string, types.Access) (types.Key, bool, error) {
	return nil, false, types.ErrUnsupported
}
