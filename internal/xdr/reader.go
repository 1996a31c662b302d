// Package xdr decodes the big-endian external data representation used by
// mcfio/STDHEP files: fixed-width integers and floats, padded strings and
// count-prefixed homogeneous arrays.
package xdr

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	// ErrTruncated reports a stream that ended part-way through a value.
	ErrTruncated = fmt.Errorf("xdr: truncated stream: %w", io.ErrUnexpectedEOF)
	// ErrLengthOverflow reports a declared length that cannot fit in the stream.
	ErrLengthOverflow = errors.New("xdr: declared length exceeds stream")
)

// maxUnsized bounds declared lengths when the total stream size is unknown.
const maxUnsized = 1 << 28

// Reader is a forward-only cursor over an XDR stream.
type Reader struct {
	r       *bufio.Reader
	off     int64
	size    int64
	scratch [8]byte
}

// NewReader wraps rd. size is the total stream length in bytes, or <= 0 when
// it is not known up front.
func NewReader(rd io.Reader, size int64) *Reader {
	return &Reader{
		r:    bufio.NewReader(rd),
		size: size,
	}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.off }

// Remaining returns the number of unread bytes, or -1 if the size is unknown.
func (r *Reader) Remaining() int64 {
	if r.size <= 0 {
		return -1
	}
	return r.size - r.off
}

// fill reads exactly len(buf) bytes. It returns io.EOF only when no byte of
// the value was available and ErrTruncated when the stream stopped mid-value.
func (r *Reader) fill(buf []byte) error {
	if r.size > 0 && r.off+int64(len(buf)) > r.size {
		if r.off >= r.size {
			return io.EOF
		}
		return ErrTruncated
	}
	n, err := io.ReadFull(r.r, buf)
	r.off += int64(n)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ErrTruncated
	default:
		return err
	}
}

func (r *Reader) fixed(n int) ([]byte, error) {
	b := r.scratch[:n]
	if err := r.fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// checkLength validates a declared payload length before anything is allocated.
// On a sized stream a length past the end is also a truncation.
func (r *Reader) checkLength(count uint64, width int) (int, error) {
	n := int64(count) * int64(width)
	if rem := r.Remaining(); rem >= 0 {
		if n > rem {
			return 0, fmt.Errorf("%w: %w: %d bytes declared, %d remaining", ErrLengthOverflow, ErrTruncated, n, rem)
		}
	} else if n > maxUnsized {
		return 0, fmt.Errorf("%w: %d bytes declared", ErrLengthOverflow, n)
	}
	return int(n), nil
}

// Uint32 reads a 4-byte unsigned integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.fixed(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Int32 reads a 4-byte two's-complement integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads an 8-byte unsigned hyper integer.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.fixed(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Float32 reads an IEEE 754 single.
func (r *Reader) Float32() (float32, error) {
	u, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// Float64 reads an IEEE 754 double.
func (r *Reader) Float64() (float64, error) {
	u, err := r.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// String reads a length-prefixed string and skips its padding to the next
// 4-byte boundary.
func (r *Reader) String() (string, error) {
	n, err := r.Uint32()
	if err != nil {
		return "", err
	}
	padded := uint64(n)
	if rem := n % 4; rem != 0 {
		padded += uint64(4 - rem)
	}
	size, err := r.checkLength(padded, 1)
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}
	buf := make([]byte, size)
	if err := r.fill(buf); err != nil {
		return "", truncated(err)
	}
	return string(buf[:n]), nil
}

// Strings reads n consecutive strings.
func (r *Reader) Strings(n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := range n {
		s, err := r.String()
		if err != nil {
			if i > 0 {
				err = truncated(err)
			}
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

// payload reads an array count followed by count*width bytes.
func (r *Reader) payload(width int) ([]byte, int, error) {
	count, err := r.Uint32()
	if err != nil {
		return nil, 0, err
	}
	size, err := r.checkLength(uint64(count), width)
	if err != nil {
		return nil, 0, err
	}
	if size == 0 {
		return nil, 0, nil
	}
	buf := make([]byte, size)
	if err := r.fill(buf); err != nil {
		return nil, 0, truncated(err)
	}
	return buf, int(count), nil
}

func appendArray[T any](r *Reader, dst []T, width int, decode func([]byte) T) ([]T, error) {
	buf, count, err := r.payload(width)
	if err != nil {
		return dst, err
	}
	dst = dst[:0]
	for i := range count {
		dst = append(dst, decode(buf[i*width:]))
	}
	return dst, nil
}

// AppendInt32s decodes an int32 array into dst, reusing its storage.
func (r *Reader) AppendInt32s(dst []int32) ([]int32, error) {
	return appendArray(r, dst, 4, func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) })
}

// AppendUint32s decodes a uint32 array into dst.
func (r *Reader) AppendUint32s(dst []uint32) ([]uint32, error) {
	return appendArray(r, dst, 4, binary.BigEndian.Uint32)
}

// AppendUint64s decodes a uint64 array into dst.
func (r *Reader) AppendUint64s(dst []uint64) ([]uint64, error) {
	return appendArray(r, dst, 8, binary.BigEndian.Uint64)
}

// AppendFloat32s decodes a float32 array into dst.
func (r *Reader) AppendFloat32s(dst []float32) ([]float32, error) {
	return appendArray(r, dst, 4, func(b []byte) float32 {
		return math.Float32frombits(binary.BigEndian.Uint32(b))
	})
}

// AppendFloat64s decodes a float64 array into dst, reusing its storage.
func (r *Reader) AppendFloat64s(dst []float64) ([]float64, error) {
	return appendArray(r, dst, 8, func(b []byte) float64 {
		return math.Float64frombits(binary.BigEndian.Uint64(b))
	})
}

// Int32s and the other plain array readers allocate a fresh slice.
func (r *Reader) Int32s() ([]int32, error)     { return r.AppendInt32s(nil) }
func (r *Reader) Uint32s() ([]uint32, error)   { return r.AppendUint32s(nil) }
func (r *Reader) Uint64s() ([]uint64, error)   { return r.AppendUint64s(nil) }
func (r *Reader) Float32s() ([]float32, error) { return r.AppendFloat32s(nil) }
func (r *Reader) Float64s() ([]float64, error) { return r.AppendFloat64s(nil) }

// truncated maps a clean EOF reached after part of a value was consumed.
func truncated(err error) error {
	if err == io.EOF {
		return ErrTruncated
	}
	return err
}
