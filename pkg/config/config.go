package config

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Window Window `yaml:"window"`
	Render Render `yaml:"render"`
	Log    Log    `yaml:"log"`
	Assets Assets `yaml:"assets"`
}

// Window contains windowing configuration
type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

// Render contains renderer configuration
type Render struct {
	// ClearColor is the background as RGBA components in 0..1.
	ClearColor [4]float32 `yaml:"clear_color"`
	// FontSize is the pixel size glyph atlases are packed at.
	FontSize float32 `yaml:"font_size"`
	// Shadows toggles the elevation shadow passes.
	Shadows bool `yaml:"shadows"`
}

// Log contains logging configuration
type Log struct {
	Level  string `yaml:"level"` // debug, info, warn, error
	File   string `yaml:"file"`  // empty logs to stdout only
	Colors bool   `yaml:"colors"`
}

// Assets points at the resource directories
type Assets struct {
	FontsDir    string `yaml:"fonts_dir"`
	TexturesDir string `yaml:"textures_dir"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: Window{
			Width:     1024,
			Height:    768,
			Title:     "ducker",
			Resizable: true,
			VSync:     true,
		},
		Render: Render{
			ClearColor: [4]float32{0.12, 0.12, 0.14, 1.0},
			FontSize:   18,
			Shadows:    true,
		},
		Log: Log{
			Level:  "info",
			File:   "",
			Colors: true,
		},
		Assets: Assets{
			FontsDir:    "assets/fonts",
			TexturesDir: "assets/textures",
		},
	}
}

// LoadConfig loads the configuration from a file, falling back to the
// defaults when the file is missing or broken.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %v", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return config, fmt.Errorf("error parsing config: %v", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	err = ioutil.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}
