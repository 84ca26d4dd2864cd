// Package config provides configuration management for the teardown CLI.
// Values are merged from defaults, a teardown.yaml project file, TEARDOWN_*
// environment variables, and CLI flags, in ascending priority.
package config

// Config holds all CLI configuration options.
type Config struct {
	StepsFile     string    `koanf:"steps_file"`
	PartsFile     string    `koanf:"parts_file"`
	StepImagesDir string    `koanf:"step_images_dir"`
	PartImagesDir string    `koanf:"part_images_dir"`
	Verbose       bool      `koanf:"verbose"`
	OutputFormat  string    `koanf:"output"`
	UI            *UIConfig `koanf:"ui"`

	// ProjectRoot is inferred, never read from the file.
	ProjectRoot string `koanf:"-"`
}

// UIConfig holds settings for the serve command.
type UIConfig struct {
	Port  int  `koanf:"port"`
	Watch bool `koanf:"watch"`
}

// GetUIConfig returns a copy of the UI config with defaults applied for
// unset values. The loaded config is left untouched.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return &UIConfig{Port: DefaultPort, Watch: true}
	}
	ui := *c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	return &ui
}

// Default configuration values.
const (
	DefaultStepsFile     = "steps.json"
	DefaultPartsFile     = "parts.json"
	DefaultStepImagesDir = "images/steps"
	DefaultPartImagesDir = "images/parts"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort          = 8765
)
