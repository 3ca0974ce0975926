package config

// Default configuration constants
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"

	defaultFirstPosition  = "right"
	defaultResizeStrategy = "classic"
	defaultMinPaneWidth   = 0 // px
	defaultMinPaneHeight  = 0 // px
	defaultDropZoneMargin = 0.3
	defaultFitIntervalMs  = 16 // one frame at 60Hz

	defaultResizeDebounceMs = 100
	defaultJournalEnabled   = false
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Layout: LayoutConfig{
			DefaultFirstPosition:  defaultFirstPosition,
			DefaultResizeStrategy: defaultResizeStrategy,
			MinPaneWidth:          defaultMinPaneWidth,
			MinPaneHeight:         defaultMinPaneHeight,
			DropZoneMargin:        defaultDropZoneMargin,
			FitIntervalMs:         defaultFitIntervalMs,
		},
		Events: EventsConfig{
			ResizeDebounceMs: defaultResizeDebounceMs,
			Journal: JournalConfig{
				Enabled: defaultJournalEnabled,
			},
		},
	}
}
