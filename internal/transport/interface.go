package transport

// Sender is the write end of a sample channel. It is owned by exactly one producer.
type Sender interface {
	WriteFrame(payload []byte) error
	Close() error
}

// Receiver is the read end of a sample channel. It is owned by the consumer.
type Receiver interface {
	ReadFrame() ([]byte, error)
	Close() error
}
