package transport

import (
	"os"
	"sync"
)

// WriteEnd is the producer side of an OS pipe carrying frames.
type WriteEnd struct {
	name string
	f    *os.File
	w    *Writer
	once sync.Once
	err  error
}

// ReadEnd is the consumer side of an OS pipe carrying frames. Closing it
// unblocks a pending ReadFrame.
type ReadEnd struct {
	name string
	f    *os.File
	r    *Reader
	once sync.Once
	err  error
}

var (
	_ Sender   = (*WriteEnd)(nil)
	_ Receiver = (*ReadEnd)(nil)
)

// Pipe opens a single-producer single-consumer channel.
func Pipe(name string) (*ReadEnd, *WriteEnd, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, errFactory.Wrap(ErrCodePipe, err)
	}

	return &ReadEnd{name: name, f: r, r: NewReader(r)},
		&WriteEnd{name: name, f: w, w: NewWriter(w)},
		nil
}

func (e *WriteEnd) Name() string { return e.name }

func (e *WriteEnd) WriteFrame(payload []byte) error {
	return e.w.WriteFrame(payload)
}

// Close is idempotent.
func (e *WriteEnd) Close() error {
	e.once.Do(func() {
		e.err = e.f.Close()
	})
	return e.err
}

func (e *ReadEnd) Name() string { return e.name }

func (e *ReadEnd) ReadFrame() ([]byte, error) {
	return e.r.ReadFrame()
}

// Close is idempotent.
func (e *ReadEnd) Close() error {
	e.once.Do(func() {
		e.err = e.f.Close()
	})
	return e.err
}
