package registry

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/tlqtangok/reg-api/internal/textcodec"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// Objects stores values of a fixed-layout type T as base64 text of their
// little-endian byte image. Only types encoding/binary can size are
// accepted: fixed-width numbers, bools, and arrays or structs of them.
type Objects[T any] struct {
	r    *Registry
	size int
}

// ObjectsOf checks that T has a fixed layout and binds it to r.
func ObjectsOf[T any](r *Registry) (*Objects[T], error) {
	var zero T
	rt := reflect.TypeFor[T]()
	size := -1
	// binary.Size sizes slices by their length and follows pointers, so
	// both are ruled out before asking it.
	if k := rt.Kind(); k != reflect.Slice && k != reflect.Pointer {
		size = binary.Size(zero)
	}
	if size < 0 {
		return nil, types.Errorf(types.ErrKindNotFlat, "type %s has no fixed binary layout", rt)
	}
	return &Objects[T]{r: r, size: size}, nil
}

// Size is the byte length of one encoded T.
func (o *Objects[T]) Size() int { return o.size }

// Store writes v under name.
func (o *Objects[T]) Store(name string, v T) error {
	buf, err := binary.Append(make([]byte, 0, o.size), binary.LittleEndian, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := o.r.writeText(name, textcodec.Encode(buf)); err != nil {
		o.r.log.Warn("registry: store object failed", "name", name, "err", err)
		return fmt.Errorf("store object %s: %w", name, err)
	}
	return nil
}

// Load reads the value stored under name. It fails with a not-found error
// when the value is absent or empty, and with a size-mismatch error when
// the decoded bytes are not exactly Size long.
func (o *Objects[T]) Load(name string) (T, error) {
	var v T
	text, err := o.r.readText(name)
	if err != nil || text == "" {
		return v, &types.Error{Kind: types.ErrKindNotFound, Msg: "key not found in registry: " + name, Err: err}
	}
	data := textcodec.Decode(text)
	if len(data) != o.size {
		return v, types.Errorf(types.ErrKindSizeMismatch, "data size mismatch for key: %s (have %d bytes, want %d)", name, len(data), o.size)
	}
	if _, err := binary.Decode(data, binary.LittleEndian, &v); err != nil {
		return v, types.Wrap(types.ErrKindSizeMismatch, "decode "+name, err)
	}
	return v, nil
}

// WriteObject stores v under name. See Objects.
func WriteObject[T any](r *Registry, name string, v T) error {
	o, err := ObjectsOf[T](r)
	if err != nil {
		return err
	}
	return o.Store(name, v)
}

// ReadObject loads a T stored by WriteObject.
func ReadObject[T any](r *Registry, name string) (T, error) {
	o, err := ObjectsOf[T](r)
	if err != nil {
		var zero T
		return zero, err
	}
	return o.Load(name)
}
