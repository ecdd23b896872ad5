package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/history"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultSamples     = 10
	DefaultDelay       = 1
	DefaultLogLevel    = string(LogLevelWarning)
	DefaultHistorySize = 60
	DefaultBackend     = string(BackendAuto)
	DefaultEnvPrefix   = "SYSMON"
	configName         = "sysmon"
	configType         = "toml"
)

type Config struct {
	Samples    int    `mapstructure:"samples"`
	Delay      int    `mapstructure:"tdelay"`
	User       bool   `mapstructure:"user"`
	System     bool   `mapstructure:"system"`
	Graphics   bool   `mapstructure:"graphics"`
	Sequential bool   `mapstructure:"sequential"`
	TUI        bool   `mapstructure:"tui"`
	LogLevel   string `mapstructure:"log_level"`
	LogFile    string `mapstructure:"log_file"`
	History    int    `mapstructure:"history"`
	Backend    string `mapstructure:"backend"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `mapstructure:"-"`
	// Corrections lists invalid user values that were reset to defaults.
	Corrections []errors.Error `mapstructure:"-"`
}

// Interval returns the sampling delay as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Delay) * time.Second
}

// ShowSystem reports whether the memory and CPU sections are displayed.
func (c *Config) ShowSystem() bool {
	return !c.User || c.System
}

// ShowUsers reports whether the sessions section is displayed.
func (c *Config) ShowUsers() bool {
	return c.User || !c.System
}

// NewFlagSet declares every command line flag on a fresh FlagSet.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("sysmon", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.IntP("samples", "b", DefaultSamples, "Number of samples to collect")
	fs.IntP("tdelay", "c", DefaultDelay, "Seconds between samples")
	fs.BoolP("system", "s", false, "Display system usage (memory, CPU)")
	fs.BoolP("user", "u", false, "Display user sessions")
	fs.BoolP("graphics", "g", false, "Draw bar graphics next to the figures")
	fs.BoolP("sequential", "a", false, "Print each iteration below the previous one instead of refreshing")
	fs.Bool("tui", false, "Run the interactive terminal UI")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warning, error")
	fs.String("log-file", "", "Also write JSON logs to this file")
	fs.Int("history", DefaultHistorySize, "Number of samples kept in the rolling history window")
	fs.String("backend", DefaultBackend, "Statistics backend: auto, procfs, gopsutil")
	fs.String("config", "", "Path to a TOML configuration file")
	return fs
}

// Load resolves the configuration from flags, environment, a TOML file and
// defaults, in that order of precedence. Invalid sample counts and delays are
// not fatal: they are reset to defaults and reported in Corrections.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{
		searchDirs: defaultSearchDirs(),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("samples", DefaultSamples)
	v.SetDefault("tdelay", DefaultDelay)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("history", DefaultHistorySize)
	v.SetDefault("backend", DefaultBackend)

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flagKeys := map[string]string{
		"samples":    "samples",
		"tdelay":     "tdelay",
		"system":     "system",
		"user":       "user",
		"graphics":   "graphics",
		"sequential": "sequential",
		"tui":        "tui",
		"log-level":  "log_level",
		"log-file":   "log_file",
		"history":    "history",
		"backend":    "backend",
	}
	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	configPath := o.configPath
	if p, _ := fs.GetString("config"); p != "" {
		configPath = p
	}
	if configPath == "" {
		configPath = os.Getenv(DefaultEnvPrefix + "_CONFIG")
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		for _, dir := range o.searchDirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	applyPositional(cfg, fs.Args())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyPositional honors the "sysmon [samples [tdelay]]" form.
func applyPositional(cfg *Config, args []string) {
	errFactory := errors.New()

	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		switch i {
		case 0:
			if err != nil {
				cfg.Corrections = append(cfg.Corrections, errFactory.WithData(errors.ErrInvalidSamples, arg))
				cfg.Samples = DefaultSamples
				continue
			}
			cfg.Samples = n
		case 1:
			if err != nil {
				cfg.Corrections = append(cfg.Corrections, errFactory.WithData(errors.ErrInvalidInterval, arg))
				cfg.Delay = DefaultDelay
				continue
			}
			cfg.Delay = n
		}
	}
}

// Validate corrects recoverable values and rejects the rest.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Samples <= 0 {
		c.Corrections = append(c.Corrections, errFactory.WithData(errors.ErrInvalidSamples, c.Samples))
		c.Samples = DefaultSamples
	}

	if c.Delay < 0 {
		c.Corrections = append(c.Corrections, errFactory.WithData(errors.ErrInvalidInterval, c.Delay))
		c.Delay = DefaultDelay
	}

	if c.History <= 0 || c.History > history.MaxSize {
		c.Corrections = append(c.Corrections, errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value int
		}{
			Field: "history",
			Value: c.History,
		}))
		c.History = DefaultHistorySize
	}

	if !LogLevel(strings.ToLower(c.LogLevel)).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if !Backend(c.Backend).IsValid() {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value string
		}{
			Field: "backend",
			Value: c.Backend,
		})
	}

	return nil
}

func defaultSearchDirs() []string {
	dirs := []string{"/etc"}
	if home, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "sysmon"))
	}
	return dirs
}
