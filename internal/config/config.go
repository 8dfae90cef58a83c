package config

import (
	"io/fs"
	"os"
	"strings"

	"codeberg.org/mutker/hwmon/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval    = 2
	DefaultHistorySize = 60
	DefaultLogLevel    = "warning"
	DefaultTelemetryDB = "/var/lib/hwmon/telemetry.db"

	configEnvVar = "HWMON_CONFIG"
	envPrefix    = "HWMON"
)

type Config struct {
	Interval    int    `mapstructure:"interval"`
	HistorySize int    `mapstructure:"history_size"`
	LogLevel    string `mapstructure:"log_level"`
	Debug       bool   `mapstructure:"debug"`
	Verbose     bool   `mapstructure:"verbose"`
	Telemetry   bool   `mapstructure:"telemetry"`
	TelemetryDB string `mapstructure:"database"`
}

func (c *Config) GetInterval() int           { return c.Interval }
func (c *Config) GetHistorySize() int        { return c.HistorySize }
func (c *Config) GetLogLevel() string        { return c.LogLevel }
func (c *Config) IsTelemetryEnabled() bool   { return c.Telemetry }
func (c *Config) GetTelemetryDBPath() string { return c.TelemetryDB }

var _ Provider = (*Config)(nil)

// Load reads configuration from the config file, environment variables and
// command line flags, in increasing order of precedence.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("history_size", DefaultHistorySize)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultTelemetryDB)

	flags := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Int("interval", DefaultInterval, "Seconds between monitor polls")
	flags.Int("history-size", DefaultHistorySize, "Samples retained per monitor")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	flags.Bool("telemetry", false, "Record observations to the telemetry database")
	flags.String("database", DefaultTelemetryDB, "Path to the telemetry database")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(configEnvVar); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hwmon")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Flags set on the command line override file and environment values
	var flagErr error
	flags.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		value, err := flagValue(flags, f)
		if err != nil {
			flagErr = err
			return
		}
		v.Set(key, value)
	})
	if flagErr != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, flagErr)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval < 1 {
		return errFactory.WithData(errors.ErrInvalidInterval, struct {
			Value int
		}{Value: c.Interval})
	}

	if c.HistorySize < 1 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "history_size must be at least 1")
	}

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, struct {
			Value string
		}{Value: c.LogLevel})
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "telemetry enabled without a database path")
	}

	return nil
}

func flagValue(flags *pflag.FlagSet, f *pflag.Flag) (any, error) {
	switch f.Value.Type() {
	case "int":
		return flags.GetInt(f.Name)
	case "bool":
		return flags.GetBool(f.Name)
	default:
		return f.Value.String(), nil
	}
}
