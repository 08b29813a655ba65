package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelWarn, fmt.Errorf("unknown log level: %s", s)
	}
}

// levelOff sits above every level slog defines, so nothing is logged.
const levelOff = slog.Level(100)

// SlogLevel maps a LogLevel onto slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}
	return levelOff
}

// Output formats for parse results
const (
	FormatSource = "source"
	FormatJSON   = "json"
)

// Config is everything the commands read from the environment.  Flags
// override it.
type Config struct {
	LogLevel  LogLevel
	Format    string
	NoColor   bool
	MaxErrors int
}

// Environment variables read by LoadConfig
const (
	EnvLogLevel  = "PYSTMT_LOG_LEVEL"
	EnvFormat    = "PYSTMT_FORMAT"
	EnvNoColor   = "PYSTMT_NO_COLOR"
	EnvMaxErrors = "PYSTMT_MAX_ERRORS"
)

func DefaultConfig() Config {
	return Config{LogLevel: LogLevelWarn, Format: FormatSource}
}

// LoadConfig reads the PYSTMT_* variables through getenv (os.Getenv when nil).
// Unset variables keep their defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()
	if v := getenv(EnvLogLevel); v != "" {
		level, err := ParseLogLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	if v := getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := getenv(EnvNoColor); v != "" {
		noColor, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvNoColor, err)
		}
		cfg.NoColor = noColor
	}
	if v := getenv(EnvMaxErrors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s: invalid count %q", EnvMaxErrors, v)
		}
		cfg.MaxErrors = n
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatSource, FormatJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s or %s)", c.Format, FormatSource, FormatJSON)
}
