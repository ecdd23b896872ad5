// Package transport implements the length-prefixed framing used on the
// one-directional sample channels between producers and the consumer.
package transport

import (
	"encoding/binary"
	"io"

	"codeberg.org/mutker/sysmon/internal/errors"
)

const (
	// HeaderSize is the length prefix size in bytes.
	HeaderSize = 8

	// MaxFrameSize rejects corrupt headers before allocating.
	MaxFrameSize = 1 << 20
)

// Writer frames payloads onto an underlying stream. The header and the payload
// are written separately; readers must not rely on atomic frames.
type Writer struct {
	w   io.Writer
	hdr [HeaderSize]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFrame writes the 8-byte native-endian length followed by payload.
func (fw *Writer) WriteFrame(payload []byte) error {
	if len(payload) > MaxFrameSize {
		return corrupt(ErrCodeFrameTooBig, len(payload))
	}

	binary.NativeEndian.PutUint64(fw.hdr[:], uint64(len(payload)))
	if _, err := fw.w.Write(fw.hdr[:]); err != nil {
		return broken(ErrCodeWrite, err)
	}

	if len(payload) == 0 {
		return nil
	}
	if _, err := fw.w.Write(payload); err != nil {
		return broken(ErrCodeWrite, err)
	}

	return nil
}

// Reader reassembles frames from an underlying stream regardless of how the
// bytes are chunked.
type Reader struct {
	r   io.Reader
	hdr [HeaderSize]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadFrame returns the next complete payload. A stream that ends before any
// header byte yields ErrEndOfStream; a stream that ends inside a frame, or any
// other read failure, yields a TransportError.
func (fr *Reader) ReadFrame() ([]byte, error) {
	if _, err := io.ReadFull(fr.r, fr.hdr[:]); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return nil, ErrEndOfStream
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, broken(ErrCodeShortHeader, err)
		default:
			return nil, broken(ErrCodeRead, err)
		}
	}

	n := binary.NativeEndian.Uint64(fr.hdr[:])
	if n > MaxFrameSize {
		return nil, corrupt(ErrCodeFrameTooBig, n)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, broken(ErrCodeShortPayload, err)
		}
		return nil, broken(ErrCodeRead, err)
	}

	return payload, nil
}
