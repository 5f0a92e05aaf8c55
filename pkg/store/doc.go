// Package store groups the types.Store backends:
//
//   - memory: an in-process key tree, optionally seeded from .reg text
//   - regfile: the same tree persisted to a .reg file after every change
//   - winreg: the native Windows registry (Windows only)
package store
