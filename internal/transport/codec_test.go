package transport_test

import (
	"testing"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUCodec(t *testing.T) {
	sample := platform.RawCPUSample{
		User: 1, Nice: 2, System: 3, Idle: 4, IOWait: 5, IRQ: 6, SoftIRQ: 1 << 62,
	}

	payload := transport.EncodeCPU(sample)
	assert.Len(t, payload, 56)

	got, err := transport.DecodeCPU(payload)
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestCountCodec(t *testing.T) {
	payload := transport.EncodeCount(42)
	assert.Len(t, payload, transport.CountPayloadSize)

	n, err := transport.DecodeCount(payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)
}

func TestDecodeBadPayload(t *testing.T) {
	_, err := transport.DecodeCPU(make([]byte, 48))
	assert.True(t, errors.IsCode(err, errors.ErrTransport))
	assert.True(t, errors.IsCode(err, transport.ErrCodeBadPayload))

	_, err = transport.DecodeCount([]byte{1, 2})
	assert.True(t, errors.IsCode(err, transport.ErrCodeBadPayload))
}
