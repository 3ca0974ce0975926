package layoutfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Action names a scripted window manager operation.
type Action string

const (
	ActionAdd      Action = "add"
	ActionRemove   Action = "remove"
	ActionSwap     Action = "swap"
	ActionMinimize Action = "minimize"
	ActionMaximize Action = "maximize"
	ActionRestore  Action = "restore"
	ActionFocus    Action = "focus"
	ActionBlur     Action = "blur"
	ActionRename   Action = "rename"
	ActionResize   Action = "resize"
	ActionDrop     Action = "drop"
	ActionFit      Action = "fit"
	ActionWait     Action = "wait"
)

var knownActions = map[Action]struct{}{
	ActionAdd: {}, ActionRemove: {}, ActionSwap: {}, ActionMinimize: {},
	ActionMaximize: {}, ActionRestore: {}, ActionFocus: {}, ActionBlur: {},
	ActionRename: {}, ActionResize: {}, ActionDrop: {}, ActionFit: {}, ActionWait: {},
}

// Script is an ordered list of steps replayed against a layout.
type Script struct {
	Steps []Step `json:"steps" yaml:"steps" toml:"steps"`
}

// Step is one scripted action. Which fields matter depends on Action.
type Step struct {
	Action Action `json:"action" yaml:"action" toml:"action"`
	// Pane is the pane the action applies to. For add it is the new pane id.
	Pane string `json:"pane,omitempty" yaml:"pane,omitempty" toml:"pane,omitempty"`
	// Target is the split target of add, the other pane of swap and the
	// drop target of drop.
	Target   string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Position string `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Size     any    `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	// Split and Delta drive a muntin drag for resize.
	Split string  `json:"split,omitempty" yaml:"split,omitempty" toml:"split,omitempty"`
	Delta float64 `json:"delta,omitempty" yaml:"delta,omitempty" toml:"delta,omitempty"`
	// Zone selects the drop zone of the target pane.
	Zone   string  `json:"zone,omitempty" yaml:"zone,omitempty" toml:"zone,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	// Duration is a time.ParseDuration string for wait.
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty" toml:"duration,omitempty"`
}

// Wait returns the parsed Duration of a wait step.
func (s Step) Wait() (time.Duration, error) {
	if s.Duration == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Duration)
}

// Validate checks the fields each action requires.
func (s Step) Validate() error {
	if _, ok := knownActions[s.Action]; !ok {
		return fmt.Errorf("unknown action %q", s.Action)
	}

	require := func(name, value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s requires %s", s.Action, name)
		}
		return nil
	}

	switch s.Action {
	case ActionAdd:
		if err := require("target", s.Target); err != nil {
			return err
		}
		return require("position", s.Position)
	case ActionRemove, ActionMinimize, ActionMaximize, ActionRestore, ActionFocus, ActionRename:
		return require("pane", s.Pane)
	case ActionSwap:
		if err := require("pane", s.Pane); err != nil {
			return err
		}
		return require("target", s.Target)
	case ActionDrop:
		if err := require("pane", s.Pane); err != nil {
			return err
		}
		if err := require("target", s.Target); err != nil {
			return err
		}
		return require("zone", s.Zone)
	case ActionResize:
		return require("split", s.Split)
	case ActionFit:
		if s.Width < 0 || s.Height < 0 {
			return fmt.Errorf("fit requires a non-negative width and height")
		}
	case ActionWait:
		if _, err := s.Wait(); err != nil {
			return fmt.Errorf("wait: %w", err)
		}
	}
	return nil
}

// DecodeScript parses and validates a script document.
func DecodeScript(data []byte, format Format) (*Script, error) {
	var script Script

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&script); err != nil {
			return nil, fmt.Errorf("failed to decode JSON script: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("failed to decode TOML script: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("failed to decode YAML script: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported script format %q", format)
	}

	for i, step := range script.Steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return &script, nil
}

// LoadScript reads a script file, choosing the format by extension.
func LoadScript(path string) (*Script, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	script, err := DecodeScript(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}
