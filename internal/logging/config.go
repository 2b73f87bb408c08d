package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "SETUPCTL_LOG_LEVEL"
	EnvLogTimestamp = "SETUPCTL_LOG_TIMESTAMP"
	EnvLogNoColor   = "SETUPCTL_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

type config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	LogPath   string
}

var (
	configureOnce sync.Once
	activePath    string
)

// ConfigureRuntime installs the global logger writing to stdout and,
// best-effort, appending to the given log file. A file that cannot be
// opened is skipped silently; logging must never fail the run.
func ConfigureRuntime(logPath string) {
	Configure(ProfileRuntime, logPath)
}

func ConfigureTests() {
	Configure(ProfileTest, "")
}

func Configure(profile Profile, logPath string) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		cfg.LogPath = strings.TrimSpace(logPath)
		applyEnvOverrides(&cfg)
		install(cfg)
	})
}

// LogPath reports the log file the runtime logger is appending to, or empty
// when only stdout is active.
func LogPath() string {
	return activePath
}

func defaultConfig(profile Profile) config {
	switch profile {
	case ProfileTest:
		return config{Level: zerolog.DebugLevel, Timestamp: false}
	default:
		return config{Level: zerolog.InfoLevel, Timestamp: true}
	}
}

func install(cfg config) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}

	writer := io.Writer(console)
	if cfg.LogPath != "" {
		file, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			tee := zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true}
			writer = zerolog.MultiLevelWriter(console, tee)
			activePath = cfg.LogPath
		}
	}

	ctx := zerolog.New(writer).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	log.Logger = ctx.Logger()
}

func applyEnvOverrides(cfg *config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none", "inactive":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
