package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sonar-report/pkg/shared/config"
)

// LogLevelEnv overrides the log level when the configuration does not set one.
const LogLevelEnv = "SONAR_REPORT_LOG_LEVEL"

func NewLogger(cfg *config.Config, name string) hclog.Logger {
	return NewLoggerWithOutput(cfg, name, os.Stdout)
}

// NewLoggerWithOutput is NewLogger writing to out instead of stdout.
func NewLoggerWithOutput(cfg *config.Config, name string, out io.Writer) hclog.Logger {
	var logLevel hclog.Level

	if cfg != nil && cfg.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(cfg.Logger.Level))
	} else {
		// env variables has the second priority
		logLevel = getLogLevel(strings.ToUpper(os.Getenv(LogLevelEnv)))
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      out,
		Level:       logLevel,
	})
}

// getLogLevel accepts the same names as config validation; unknown names fall back to INFO.
func getLogLevel(levelStr string) hclog.Level {
	if level := hclog.LevelFromString(levelStr); level != hclog.NoLevel {
		return level
	}
	return hclog.Info
}
