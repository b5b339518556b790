// Package config handles the XDG configuration directory, credentials and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "nj"

	// EnvFile holds credentials as KEY=value lines.
	EnvFile = ".env"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// DefaultBoard is the board used when none is configured.
	DefaultBoard = "Backlog"

	// DefaultDoneList is where the done command moves cards.
	DefaultDoneList = "Done"
)

// Environment variables.
const (
	EnvAPIKey   = "TRELLO_API_KEY"
	EnvToken    = "TRELLO_TOKEN"
	EnvBoard    = "TRELLO_BACKLOG_BOARD"
	EnvTimezone = "NJ_TIMEZONE"
	EnvNoColor  = "NO_COLOR"
)

// ErrMissingCredentials is returned when the Trello key or token is unset.
var ErrMissingCredentials = errors.New("missing Trello credentials")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Color enables colored output.
	Color bool

	// APIKey and Token authenticate against the Trello API.
	APIKey string
	Token  string

	// Board is the name of the backlog board.
	Board string

	// DoneList is the list the done command moves cards to.
	DoneList string

	// SkipLists are list names left out of the overview and of sort.
	SkipLists []string

	// Location is the zone due dates are displayed and parsed in.
	Location *time.Location
}

// Settings is the shape of config.yaml.
type Settings struct {
	Board     string   `yaml:"board"`
	DoneList  string   `yaml:"done_list"`
	SkipLists []string `yaml:"skip_lists"`
	Timezone  string   `yaml:"timezone"`
	Color     *bool    `yaml:"color"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/nj or $HOME/.config/nj.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		Color:     true,
		Board:     DefaultBoard,
		DoneList:  DefaultDoneList,
		SkipLists: []string{"done"},
		Location:  time.Local,
	}, nil
}

// Load creates a Config for configDir and fills it from, in increasing
// priority: defaults, config.yaml, .env, the process environment.
// Variables already present in the environment are not overridden by .env.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadEnvFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)
	cfg.Token = os.Getenv(EnvToken)
	if board := strings.TrimSpace(os.Getenv(EnvBoard)); board != "" {
		cfg.Board = board
	}
	if tz := strings.TrimSpace(os.Getenv(EnvTimezone)); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTimezone, err)
		}
		cfg.Location = loc
	}
	if os.Getenv(EnvNoColor) != "" {
		cfg.Color = false
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the .env credentials file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// CheckCredentials returns ErrMissingCredentials naming the unset variables.
func (c *Config) CheckCredentials() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.Token == "" {
		missing = append(missing, EnvToken)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingCredentials, strings.Join(missing, " and "))
	}
	return nil
}

// Skipped reports whether a list is excluded from the overview and sort.
func (c *Config) Skipped(listName string) bool {
	name := strings.ToLower(strings.TrimSpace(listName))
	for _, s := range c.SkipLists {
		if strings.ToLower(strings.TrimSpace(s)) == name {
			return true
		}
	}
	return false
}

// Now returns the current time in the configured location.
func (c *Config) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

func (c *Config) loadEnvFile() error {
	if _, err := os.Stat(c.EnvPath()); err != nil {
		return nil
	}
	if err := godotenv.Load(c.EnvPath()); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvFile, err)
	}
	return nil
}

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}

	if strings.TrimSpace(s.Board) != "" {
		c.Board = strings.TrimSpace(s.Board)
	}
	if strings.TrimSpace(s.DoneList) != "" {
		c.DoneList = strings.TrimSpace(s.DoneList)
	}
	if s.SkipLists != nil {
		c.SkipLists = s.SkipLists
	}
	if s.Timezone != "" {
		loc, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone in %s: %w", SettingsFile, err)
		}
		c.Location = loc
	}
	if s.Color != nil {
		c.Color = *s.Color
	}
	return nil
}
