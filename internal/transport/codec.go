package transport

import (
	"encoding/binary"

	"codeberg.org/mutker/sysmon/internal/platform"
)

const (
	cpuSlots = 7

	// CPUPayloadSize is the size of an encoded RawCPUSample.
	CPUPayloadSize = cpuSlots * 8

	// CountPayloadSize is the size of an encoded count.
	CountPayloadSize = 8
)

// EncodeCPU packs the seven counters as native-endian uint64 slots in
// user, nice, system, idle, iowait, irq, softirq order.
func EncodeCPU(s platform.RawCPUSample) []byte {
	buf := make([]byte, CPUPayloadSize)
	for i, v := range [cpuSlots]uint64{s.User, s.Nice, s.System, s.Idle, s.IOWait, s.IRQ, s.SoftIRQ} {
		binary.NativeEndian.PutUint64(buf[i*8:], v)
	}
	return buf
}

func DecodeCPU(payload []byte) (platform.RawCPUSample, error) {
	if len(payload) != CPUPayloadSize {
		return platform.RawCPUSample{}, badPayload("cpu", len(payload))
	}

	var v [cpuSlots]uint64
	for i := range v {
		v[i] = binary.NativeEndian.Uint64(payload[i*8:])
	}

	return platform.RawCPUSample{
		User:    v[0],
		Nice:    v[1],
		System:  v[2],
		Idle:    v[3],
		IOWait:  v[4],
		IRQ:     v[5],
		SoftIRQ: v[6],
	}, nil
}

func EncodeCount(n uint64) []byte {
	buf := make([]byte, CountPayloadSize)
	binary.NativeEndian.PutUint64(buf, n)
	return buf
}

func DecodeCount(payload []byte) (uint64, error) {
	if len(payload) != CountPayloadSize {
		return 0, badPayload("count", len(payload))
	}
	return binary.NativeEndian.Uint64(payload), nil
}

func badPayload(kind string, size int) error {
	return corrupt(ErrCodeBadPayload, struct {
		Kind string
		Size int
	}{
		Kind: kind,
		Size: size,
	})
}
