// Package xdrtest builds XDR byte streams for tests.
package xdrtest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer appends big-endian XDR values to an in-memory buffer.
type Writer struct {
	buf bytes.Buffer
}

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) Uint32(v uint32) *Writer {
	w.buf.Write(binary.BigEndian.AppendUint32(nil, v))
	return w
}

func (w *Writer) Int32(v int32) *Writer { return w.Uint32(uint32(v)) }

func (w *Writer) Uint64(v uint64) *Writer {
	w.buf.Write(binary.BigEndian.AppendUint64(nil, v))
	return w
}

func (w *Writer) Int64(v int64) *Writer { return w.Uint64(uint64(v)) }

func (w *Writer) Float32(v float32) *Writer { return w.Uint32(math.Float32bits(v)) }

func (w *Writer) Float64(v float64) *Writer { return w.Uint64(math.Float64bits(v)) }

// String writes s with its length prefix and zero padding.
func (w *Writer) String(s string) *Writer {
	w.Uint32(uint32(len(s)))
	w.buf.WriteString(s)
	if rem := len(s) % 4; rem != 0 {
		w.buf.Write(make([]byte, 4-rem))
	}
	return w
}

func (w *Writer) Int32s(vs ...int32) *Writer {
	w.Uint32(uint32(len(vs)))
	for _, v := range vs {
		w.Int32(v)
	}
	return w
}

func (w *Writer) Uint32s(vs ...uint32) *Writer {
	w.Uint32(uint32(len(vs)))
	for _, v := range vs {
		w.Uint32(v)
	}
	return w
}

func (w *Writer) Uint64s(vs ...uint64) *Writer {
	w.Uint32(uint32(len(vs)))
	for _, v := range vs {
		w.Uint64(v)
	}
	return w
}

func (w *Writer) Float32s(vs ...float32) *Writer {
	w.Uint32(uint32(len(vs)))
	for _, v := range vs {
		w.Float32(v)
	}
	return w
}

func (w *Writer) Float64s(vs ...float64) *Writer {
	w.Uint32(uint32(len(vs)))
	for _, v := range vs {
		w.Float64(v)
	}
	return w
}

// Raw appends b unchanged.
func (w *Writer) Raw(b []byte) *Writer {
	w.buf.Write(b)
	return w
}
