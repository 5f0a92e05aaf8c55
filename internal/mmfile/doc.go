// Package mmfile loads store files into memory, mapping them where the
// platform allows.
package mmfile
