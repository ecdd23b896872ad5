package producer

import (
	"context"
	"time"
)

// Kind names the resource a producer samples.
type Kind string

const (
	KindCPU    Kind = "cpu"
	KindMemory Kind = "memory"
	KindUsers  Kind = "users"
)

// Producer samples one resource and publishes frames on the channels it owns.
// Run closes every owned write end before returning.
type Producer interface {
	Kind() Kind
	Run(ctx context.Context) error
}

// Config is copied into each producer at construction.
type Config struct {
	Samples  int
	Interval time.Duration
}
