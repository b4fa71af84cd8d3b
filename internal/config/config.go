package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Colors holds color values for every UI style.
// Values can be xterm-256 codes (0-255) or hex colors (#rrggbb).
type Colors struct {
	Title        string `toml:"title"`
	Header       string `toml:"header"`
	Gryffindor   string `toml:"gryffindor"`
	Ravenclaw    string `toml:"ravenclaw"`
	Slytherin    string `toml:"slytherin"`
	Hufflepuff   string `toml:"hufflepuff"`
	BannerFG     string `toml:"banner_fg"`
	Parchment    string `toml:"parchment"`
	Ink          string `toml:"ink"`
	Notification string `toml:"notification"`
	Help         string `toml:"help"`
	HelpActive   string `toml:"help_active"`
	Border       string `toml:"border"`
	Prompt       string `toml:"prompt"`
	Error        string `toml:"error"`
	Success      string `toml:"success"`
}

// Module holds the house cup rules.
type Module struct {
	// Name is the module's own task name, never assigned to a house.
	Name       string   `toml:"name"`
	Exclusions []string `toml:"exclusions"`
	MaxRetries int      `toml:"max_retries"`
}

// Commands holds the pauses between steps of command walks.
type Commands struct {
	FindStepMs  int `toml:"find_step_ms"`
	CycleStepMs int `toml:"cycle_step_ms"`
}

func (c Commands) FindDelay() time.Duration  { return time.Duration(c.FindStepMs) * time.Millisecond }
func (c Commands) CycleDelay() time.Duration { return time.Duration(c.CycleStepMs) * time.Millisecond }

// Monitor holds the task directory polling settings.
type Monitor struct {
	PollIntervalMs int `toml:"poll_interval_ms"`
	// TasksDir is where task files live. Empty means DefaultTasksDir().
	TasksDir string `toml:"tasks_dir"`
}

func (m Monitor) PollInterval() time.Duration {
	return time.Duration(m.PollIntervalMs) * time.Millisecond
}

// Dir returns the tasks directory, falling back to the default.
func (m Monitor) Dir() string {
	if m.TasksDir == "" {
		return DefaultTasksDir()
	}
	return m.TasksDir
}

// Config is the top-level configuration.
type Config struct {
	Colors   Colors   `toml:"colors"`
	Module   Module   `toml:"module"`
	Commands Commands `toml:"commands"`
	Monitor  Monitor  `toml:"monitor"`
}

// Default returns a Config populated with the current hardcoded defaults.
func Default() Config {
	return Config{
		Colors: Colors{
			Title:        "#f9e2af", // Yellow
			Header:       "#89b4fa", // Blue
			Gryffindor:   "#d20f39", // Latte Red
			Ravenclaw:    "#1e66f5", // Latte Blue
			Slytherin:    "#40a02b", // Latte Green
			Hufflepuff:   "#df8e1d", // Latte Yellow
			BannerFG:     "#eff1f5", // Latte Base
			Parchment:    "#f5e0dc", // Rosewater
			Ink:          "#1e1e2e", // Base
			Notification: "#a6adc8", // Subtext 0
			Help:         "#7f849c", // Overlay 1
			HelpActive:   "#bac2de", // Subtext 1
			Border:       "#585b70", // Surface 2
			Prompt:       "#cba6f7", // Mauve
			Error:        "#f38ba8", // Red
			Success:      "#a6e3a1", // Green
		},
		Module: Module{
			Name:       "Hogwarts",
			Exclusions: []string{"Hogwarts", "Forget Everything", "Forget Me Not", "Souvenir", "The Swan"},
			MaxRetries: 100,
		},
		Commands: Commands{
			FindStepMs:  100,
			CycleStepMs: 1200,
		},
		Monitor: Monitor{
			PollIntervalMs: 500,
		},
	}
}

// Load reads the config file and returns a Config. Omitted fields keep
// their default values. If the file does not exist, defaults are returned
// with no error.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillInvalid()
	return cfg, nil
}

// fillInvalid restores defaults for values that cannot be used as given.
func (c *Config) fillInvalid() {
	def := Default()
	if c.Module.Name == "" {
		c.Module.Name = def.Module.Name
	}
	if c.Module.MaxRetries < 0 {
		c.Module.MaxRetries = def.Module.MaxRetries
	}
	if c.Commands.FindStepMs < 0 {
		c.Commands.FindStepMs = def.Commands.FindStepMs
	}
	if c.Commands.CycleStepMs < 0 {
		c.Commands.CycleStepMs = def.Commands.CycleStepMs
	}
	if c.Monitor.PollIntervalMs <= 0 {
		c.Monitor.PollIntervalMs = def.Monitor.PollIntervalMs
	}
}

const defaultFileContent = `# Hogwarts configuration
# Uncomment and modify values to customize. All values are optional.
# Colors can be hex (#rrggbb) or xterm-256 codes (0-255).

[colors]
# title        = "#f9e2af"
# header       = "#89b4fa"
# gryffindor   = "#d20f39"
# ravenclaw    = "#1e66f5"
# slytherin    = "#40a02b"
# hufflepuff   = "#df8e1d"
# banner_fg    = "#eff1f5"  # text on the house banner
# parchment    = "#f5e0dc"
# ink          = "#1e1e2e"  # text on the parchment
# notification = "#a6adc8"
# help         = "#7f849c"
# help_active  = "#bac2de"
# border       = "#585b70"
# prompt       = "#cba6f7"
# error        = "#f38ba8"
# success      = "#a6e3a1"

[module]
# name        = "Hogwarts"  # this module's own task name
# exclusions  = ["Hogwarts", "Forget Everything", "Forget Me Not", "Souvenir", "The Swan"]
# max_retries = 100         # attempts to avoid a locked tie before giving up

[commands]
# find_step_ms  = 100    # pause between steps of "find"
# cycle_step_ms = 1200   # pause between steps of "cycle"

[monitor]
# poll_interval_ms = 500
# tasks_dir        = ""  # defaults to ~/.config/hogwarts/tasks
`

// WriteDefault writes the default config file with all values commented out.
// It no-ops if the file already exists. Parent directories are created as needed.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // file already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultFileContent), 0o644)
}
