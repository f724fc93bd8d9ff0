package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/datebox/pkg/tui/components/calendar"
)

// DefaultPath is where slots are stored when nothing else is configured.
const DefaultPath = "~/.datebox.db"

// Config is the resolved configuration shared by every command.
type Config interface {
	// BasePath is the directory holding stored date slots.
	BasePath() string
	// Label is the default field label for `pick`.
	Label() string
	// Slot is the default slot name for `pick` and `slot`.
	Slot() string
	// LogPath is where the interactive form writes its transition log.
	LogPath() string
	// PickerProps is merged into every calendar picker.
	PickerProps() calendar.Props
	// File is the config file that was read, if any.
	File() string
}

// LoadConfig reads .datebox.yaml from $DATEBOX_CONFIG_PATH or the working
// directory. DATEBOX_* environment variables override file values.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("label", "Date")
	v.SetDefault("slot", "default")
	v.SetDefault("log", "")
	v.SetConfigName(".datebox") // .yaml is implicit
	v.SetEnvPrefix("DATEBOX")
	v.AutomaticEnv()

	if override := os.Getenv("DATEBOX_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logPath, err := homedir.Expand(v.GetString("log"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log path: %w", err)
	}

	var props calendar.Props
	if err := v.UnmarshalKey("picker", &props); err != nil {
		return nil, fmt.Errorf("store: picker config: %w", err)
	}

	return &fileConfig{
		Path:     path,
		Default:  v.GetString("label"),
		SlotName: v.GetString("slot"),
		Log:      logPath,
		Picker:   props,
		Source:   v.ConfigFileUsed(),
	}, nil
}

// StaticConfig is a Config with fixed values, used by tests and callers
// that bypass file lookup.
func StaticConfig(path string) Config {
	return &fileConfig{Path: path, Default: "Date", SlotName: "default"}
}

type fileConfig struct {
	Path     string         `json:"path"`
	Default  string         `json:"label"`
	SlotName string         `json:"slot"`
	Log      string         `json:"log,omitempty"`
	Picker   calendar.Props `json:"picker"`
	Source   string         `json:"file,omitempty"`
}

func (f *fileConfig) BasePath() string            { return f.Path }
func (f *fileConfig) Label() string               { return f.Default }
func (f *fileConfig) Slot() string                { return f.SlotName }
func (f *fileConfig) LogPath() string             { return f.Log }
func (f *fileConfig) PickerProps() calendar.Props { return f.Picker }
func (f *fileConfig) File() string                { return f.Source }
