// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ColonelBlimp/cwtrainer/internal/audio"
	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

const (
	AppName       = "cwtrainer"
	ConfigType    = "yaml"
	DefaultConfig = `# CW Trainer Configuration

# Keying
wpm: 10                 # Target speed in words per minute (1-40)
keyer_mode: "straight"  # Keyer mode: straight, iambic-a, iambic-b
hold_ms: 200            # Key-hold window in ms: a held key counts as released
                        # when no terminal repeat arrives within this window

# Sidetone
frequency: 550          # Sidetone frequency in Hz (300-1200)
volume: 20              # Sidetone volume (0-100)
silent: false           # Disable audio output entirely

# Listening drills
group_size: 5           # Characters per code group
charset: "letters"      # Drill character set: letters, digits, signs, mixed
farnsworth: false       # Stretch character/word spacing while keeping
                        # element speed (easier copy at a given wpm)

# Output
debug: false            # Log engine events to a debug file
`
)

// Settings holds all application configuration.
type Settings struct {
	// Keying
	WPM       int    `mapstructure:"wpm"`
	KeyerMode string `mapstructure:"keyer_mode"`
	HoldMs    int    `mapstructure:"hold_ms"`

	// Sidetone
	Frequency float64 `mapstructure:"frequency"`
	Volume    float64 `mapstructure:"volume"`
	Silent    bool    `mapstructure:"silent"`

	// Listening drills
	GroupSize  int    `mapstructure:"group_size"`
	Charset    string `mapstructure:"charset"`
	Farnsworth bool   `mapstructure:"farnsworth"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/cwtrainer/
func Init() error {
	viper.SetDefault("wpm", 10)
	viper.SetDefault("keyer_mode", "straight")
	viper.SetDefault("hold_ms", 200)
	viper.SetDefault("frequency", 550)
	viper.SetDefault("volume", 20)
	viper.SetDefault("silent", false)
	viper.SetDefault("group_size", 5)
	viper.SetDefault("charset", "letters")
	viper.SetDefault("farnsworth", false)
	viper.SetDefault("debug", false)

	viper.SetConfigType(ConfigType)
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// If no config was found anywhere, create the default in the XDG dir.
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings with all values forced into range.
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// Normalize clamps every range-bound setting. An out-of-range value is a
// tuning mistake, not an error: training continues with the nearest usable
// value.
func (s *Settings) Normalize() {
	s.WPM = morse.ClampWPM(s.WPM)
	if s.Frequency < audio.MinFrequency {
		s.Frequency = audio.MinFrequency
	}
	if s.Frequency > audio.MaxFrequency {
		s.Frequency = audio.MaxFrequency
	}
	if s.Volume < audio.MinVolume {
		s.Volume = audio.MinVolume
	}
	if s.Volume > audio.MaxVolume {
		s.Volume = audio.MaxVolume
	}
	if s.HoldMs < 50 {
		s.HoldMs = 50
	}
	if s.HoldMs > 1000 {
		s.HoldMs = 1000
	}
	if s.GroupSize < 1 {
		s.GroupSize = 1
	}
	if s.GroupSize > 10 {
		s.GroupSize = 10
	}
	switch s.KeyerMode {
	case "straight", "iambic-a", "iambic-b":
	default:
		s.KeyerMode = "straight"
	}
	switch s.Charset {
	case "letters", "digits", "signs", "mixed":
	default:
		s.Charset = "letters"
	}
}

// DataDir returns the directory for the session database, creating it if
// needed.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}
