package config

// Provider defines read access to loaded configuration values. Values are
// immutable after loading.
type Provider interface {
	// GetInterval returns the polling interval in seconds
	GetInterval() int

	// GetHistorySize returns the number of samples retained per monitor
	GetHistorySize() int

	// GetLogLevel returns the configured logging level
	GetLogLevel() string

	// IsTelemetryEnabled returns whether observation recording is enabled
	IsTelemetryEnabled() bool

	// GetTelemetryDBPath returns the path to the telemetry database
	GetTelemetryDBPath() string
}

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}
