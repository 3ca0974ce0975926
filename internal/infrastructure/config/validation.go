package config

import (
	"fmt"
	"strings"

	"github.com/bnema/sashes/internal/domain/validation"
)

// Validate reports every invalid value in cfg at once.
func Validate(cfg *Config) error {
	return validateConfig(cfg)
}

func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateEvents(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, disabled (got %q)", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	return validationErrors
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	layout := config.Layout

	if _, err := validation.ParseEdge(layout.DefaultFirstPosition); err != nil {
		validationErrors = append(validationErrors, "layout.default_first_position: "+err.Error())
	}
	if _, err := validation.ParseResizeStrategy(layout.DefaultResizeStrategy); err != nil {
		validationErrors = append(validationErrors, "layout.default_resize_strategy: "+err.Error())
	}
	if layout.MinPaneWidth < 0 {
		validationErrors = append(validationErrors, "layout.min_pane_width must be non-negative")
	}
	if layout.MinPaneHeight < 0 {
		validationErrors = append(validationErrors, "layout.min_pane_height must be non-negative")
	}
	if layout.DropZoneMargin <= 0 || layout.DropZoneMargin >= 1 {
		validationErrors = append(validationErrors, "layout.drop_zone_margin must be between 0 and 1 (exclusive)")
	}
	if layout.FitIntervalMs < 1 {
		validationErrors = append(validationErrors, "layout.fit_interval_ms must be at least 1")
	}
	return validationErrors
}

func validateEvents(config *Config) []string {
	var validationErrors []string
	if config.Events.ResizeDebounceMs < 0 {
		validationErrors = append(validationErrors, "events.resize_debounce_ms must be non-negative")
	}
	if config.Events.Journal.Enabled && strings.TrimSpace(config.Events.Journal.Path) == "" {
		validationErrors = append(validationErrors, "events.journal.path cannot be empty when the journal is enabled")
	}
	return validationErrors
}
