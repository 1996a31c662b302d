package export

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// LengthPrefixSize is the size of the big-endian frame length prefix.
	LengthPrefixSize = 4
	// MaxPayloadSize bounds a single msgpack payload.
	MaxPayloadSize = 64 * 1024 * 1024
)

var ErrFrameTooLarge = errors.New("export: frame exceeds maximum size")

// FrameEncoder writes records as msgpack payloads, each preceded by its
// length as a 4-byte big-endian integer.
type FrameEncoder struct {
	w      io.Writer
	prefix [LengthPrefixSize]byte
}

func NewFrameEncoder(w io.Writer) *FrameEncoder {
	return &FrameEncoder{w: w}
}

func (e *FrameEncoder) Encode(rec Record) error {
	payload, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", rec.Type, err)
	}
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	binary.BigEndian.PutUint32(e.prefix[:], uint32(len(payload)))
	if _, err := e.w.Write(e.prefix[:]); err != nil {
		return err
	}
	_, err = e.w.Write(payload)
	return err
}

// FrameDecoder reads records written by FrameEncoder.
type FrameDecoder struct {
	r io.Reader
}

func NewFrameDecoder(r io.Reader) *FrameDecoder {
	return &FrameDecoder{r: r}
}

// Decode reads the next record. It returns io.EOF when the stream ends
// between frames and io.ErrUnexpectedEOF when it ends inside one.
func (d *FrameDecoder) Decode() (Record, error) {
	var rec Record
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(d.r, prefix[:]); err != nil {
		if err == io.EOF {
			return rec, io.EOF
		}
		return rec, fmt.Errorf("read frame length: %w", err)
	}
	n := binary.BigEndian.Uint32(prefix[:])
	if n > MaxPayloadSize {
		return rec, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return rec, fmt.Errorf("read frame payload: %w", err)
	}
	if err := msgpack.Unmarshal(payload, &rec); err != nil {
		return rec, fmt.Errorf("decode frame: %w", err)
	}
	return rec, nil
}
