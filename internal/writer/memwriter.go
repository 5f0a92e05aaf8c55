package writer

import "sync"

// MemWriter keeps the last image in memory.
type MemWriter struct {
	mu     sync.Mutex
	buf    []byte
	writes int

	// Err, when set, is returned by every write and nothing is stored.
	Err error
}

var _ Sink = (*MemWriter)(nil)

func (w *MemWriter) WriteRegistry(buf []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.buf = append(w.buf[:0], buf...)
	w.writes++
	return nil
}

// Bytes returns a copy of the last image written.
func (w *MemWriter) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.buf...)
}

// Writes reports how many images have been stored.
func (w *MemWriter) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}
