// Package config handles tool configuration loading and management.
package config

// Config holds all meshforge settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds display settings for the mesh viewer.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ConvertConfig holds conversion defaults.
type ConvertConfig struct {
	// Triangulate splits quad faces into triangles before conversion.
	Triangulate bool `yaml:"triangulate"`
	// OutputExt is the extension given to converted mesh files.
	OutputExt string `yaml:"output_ext"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Convert: ConvertConfig{
			Triangulate: false,
			OutputExt:   ".mfb",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
