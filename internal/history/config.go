package history

import "codeberg.org/mutker/sysmon/internal/errors"

const defaultSize = 60

// MaxSize bounds the number of retained rounds.
const MaxSize = 1 << 16

type Config struct {
	// Size is the number of rounds retained; older rounds are overwritten.
	Size    int
	Enabled bool
}

func DefaultConfig() Config {
	return Config{
		Size:    defaultSize,
		Enabled: true,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate Size if history is enabled
	if c.Enabled && (c.Size <= 0 || c.Size > MaxSize) {
		return errFactory.WithData(ErrInvalidSize, c.Size)
	}
	return nil
}
