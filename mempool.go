package lsystem

import "unicode/utf8"

// Buffer holds one generation's sentence.
type Buffer struct {
	Bytes []byte
}

// BufferPool is a pair of sentence buffers: the active one is written by
// the current generation while the other holds the previous sentence.
type BufferPool struct {
	active   *Buffer
	inactive *Buffer

	swap bool
}

func NewBufferPool(capacity int) *BufferPool {
	return &BufferPool{
		active:   &Buffer{Bytes: make([]byte, 0, capacity)},
		inactive: &Buffer{Bytes: make([]byte, 0, capacity)},
		swap:     false,
	}
}

func (m *BufferPool) Reset() {
	m.active.Bytes = m.active.Bytes[:0]
	m.inactive.Bytes = m.inactive.Bytes[:0]
	m.swap = false
}

func (m *BufferPool) GetActive() *Buffer {
	if m.swap {
		return m.inactive
	}
	return m.active
}

func (m *BufferPool) GetSwap() *Buffer {
	if m.swap {
		return m.active
	}
	return m.inactive
}

func (m *BufferPool) WriteRune(r rune) {
	active := m.GetActive()
	active.Bytes = utf8.AppendRune(active.Bytes, r)
}

func (m *BufferPool) WriteString(s string) {
	active := m.GetActive()
	active.Bytes = append(active.Bytes, s...)
}

func (m *BufferPool) GetLen() int {
	return len(m.GetActive().Bytes)
}

// Swap makes the freshly written buffer the readable one.
func (m *BufferPool) Swap() {
	m.swap = !m.swap
}

func (m *BufferPool) ResetWritingHead() {
	active := m.GetActive()
	active.Bytes = active.Bytes[:0]
}
