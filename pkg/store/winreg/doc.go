// Package winreg exposes the native Windows registry as a types.Store.
// On other platforms Open returns types.ErrUnsupported.
package winreg
