package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("YAML global config: report directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks that the configured level is one hclog understands.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if loggerConfig.Level == "" {
		return nil
	}
	if hclog.LevelFromString(loggerConfig.Level) == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", loggerConfig.Level)
	}
	return nil
}

// ValidateReportConfig normalises the report section; the format name itself is
// checked by the report command against the available renderers.
func ValidateReportConfig(reportConfig *Report) error {
	if reportConfig == nil {
		return fmt.Errorf("report configuration is nil")
	}
	reportConfig.Input = strings.TrimSpace(reportConfig.Input)
	reportConfig.Output = strings.TrimSpace(reportConfig.Output)
	reportConfig.Source = strings.TrimSpace(reportConfig.Source)
	reportConfig.Format = strings.ToLower(strings.TrimSpace(reportConfig.Format))
	return nil
}
