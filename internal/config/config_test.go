package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/sysmon/internal/config"
	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	configContent := []byte(`
samples = 5
tdelay = 2
graphics = true
sequential = true
log_level = "debug"
log_file = "/tmp/sysmon.log"
history = 30
backend = "gopsutil"
`)
	configPath := filepath.Join(tempDir, "sysmon.toml")
	require.NoError(t, os.WriteFile(configPath, configContent, 0o600))

	t.Setenv("SYSMON_CONFIG", configPath)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Samples, "Expected Samples 5")
	assert.Equal(t, 2, cfg.Delay, "Expected Delay 2")
	assert.True(t, cfg.Graphics, "Expected Graphics true")
	assert.True(t, cfg.Sequential, "Expected Sequential true")
	assert.False(t, cfg.User)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/sysmon.log", cfg.LogFile)
	assert.Equal(t, 30, cfg.History)
	assert.Equal(t, "gopsutil", cfg.Backend)
	assert.Equal(t, configPath, cfg.ConfigFile)
	assert.Empty(t, cfg.Corrections)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(nil, config.WithSearchDirs(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultSamples, cfg.Samples)
	assert.Equal(t, config.DefaultDelay, cfg.Delay)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, config.DefaultHistorySize, cfg.History)
	assert.Equal(t, config.DefaultBackend, cfg.Backend)
	assert.Empty(t, cfg.ConfigFile)
	assert.True(t, cfg.ShowSystem())
	assert.True(t, cfg.ShowUsers())
}

func TestLoadPrecedence(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "sysmon.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("samples = 5\ntdelay = 2\n"), 0o600))

	t.Setenv("SYSMON_TDELAY", "3")

	cfg, err := config.Load([]string{"--samples", "7"}, config.WithConfigFile(configPath))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Samples, "flag wins over file")
	assert.Equal(t, 3, cfg.Delay, "env wins over file")
}

func TestLoadPositional(t *testing.T) {
	cfg, err := config.Load([]string{"-g", "4", "0"}, config.WithSearchDirs(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Samples)
	assert.Equal(t, 0, cfg.Delay)
	assert.True(t, cfg.Graphics)
	assert.Empty(t, cfg.Corrections)
}

func TestLoadSectionSelection(t *testing.T) {
	cfg, err := config.Load([]string{"-u"}, config.WithSearchDirs(t.TempDir()))
	require.NoError(t, err)
	assert.False(t, cfg.ShowSystem())
	assert.True(t, cfg.ShowUsers())

	cfg, err = config.Load([]string{"-s"}, config.WithSearchDirs(t.TempDir()))
	require.NoError(t, err)
	assert.True(t, cfg.ShowSystem())
	assert.False(t, cfg.ShowUsers())

	cfg, err = config.Load([]string{"-s", "-u"}, config.WithSearchDirs(t.TempDir()))
	require.NoError(t, err)
	assert.True(t, cfg.ShowSystem())
	assert.True(t, cfg.ShowUsers())
}

func TestLoadCorrections(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantSamples int
		wantDelay   int
		wantHistory int
		wantCodes   []errors.ErrorCode
	}{
		{
			name:        "zero samples",
			args:        []string{"--samples", "0"},
			wantSamples: config.DefaultSamples,
			wantDelay:   config.DefaultDelay,
			wantHistory: config.DefaultHistorySize,
			wantCodes:   []errors.ErrorCode{errors.ErrInvalidSamples},
		},
		{
			name:        "negative delay",
			args:        []string{"--tdelay", "-4"},
			wantSamples: config.DefaultSamples,
			wantDelay:   config.DefaultDelay,
			wantHistory: config.DefaultHistorySize,
			wantCodes:   []errors.ErrorCode{errors.ErrInvalidInterval},
		},
		{
			name:        "non numeric positional",
			args:        []string{"abc", "xyz"},
			wantSamples: config.DefaultSamples,
			wantDelay:   config.DefaultDelay,
			wantHistory: config.DefaultHistorySize,
			wantCodes:   []errors.ErrorCode{errors.ErrInvalidSamples, errors.ErrInvalidInterval},
		},
		{
			name:        "zero history",
			args:        []string{"--history", "0"},
			wantSamples: config.DefaultSamples,
			wantDelay:   config.DefaultDelay,
			wantHistory: config.DefaultHistorySize,
			wantCodes:   []errors.ErrorCode{errors.ErrInvalidConfig},
		},
		{
			name:        "history above window bound",
			args:        []string{"--history", "70000"},
			wantSamples: config.DefaultSamples,
			wantDelay:   config.DefaultDelay,
			wantHistory: config.DefaultHistorySize,
			wantCodes:   []errors.ErrorCode{errors.ErrInvalidConfig},
		},
		{
			name:        "history at window bound",
			args:        []string{"--history", "65536"},
			wantSamples: config.DefaultSamples,
			wantDelay:   config.DefaultDelay,
			wantHistory: history.MaxSize,
			wantCodes:   []errors.ErrorCode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(tt.args, config.WithSearchDirs(t.TempDir()))
			require.NoError(t, err)

			assert.Equal(t, tt.wantSamples, cfg.Samples)
			assert.Equal(t, tt.wantDelay, cfg.Delay)
			assert.Equal(t, tt.wantHistory, cfg.History)

			hcfg := history.DefaultConfig()
			hcfg.Size = cfg.History
			assert.NoError(t, hcfg.Validate())

			codes := make([]errors.ErrorCode, 0, len(cfg.Corrections))
			for _, c := range cfg.Corrections {
				codes = append(codes, c.Code())
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	_, err := config.Load([]string{"--log-level", "verbose"}, config.WithSearchDirs(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidLogLevel))
}

func TestLoadInvalidBackend(t *testing.T) {
	_, err := config.Load([]string{"--backend", "wmi"}, config.WithSearchDirs(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidConfig))
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := config.Load(nil, config.WithConfigFile(filepath.Join(t.TempDir(), "missing.toml")))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrReadConfig))
}

func TestLogLevelIsValid(t *testing.T) {
	assert.True(t, config.LogLevelDebug.IsValid())
	assert.True(t, config.LogLevel("warning").IsValid())
	assert.False(t, config.LogLevel("trace").IsValid())
}
