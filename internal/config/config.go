// Package config handles tool configuration loading and management.
package config

// Config holds all settings shared by the command-line tools.
type Config struct {
	Parser  ParserConfig  `yaml:"parser"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParserConfig holds document resolution settings.
type ParserConfig struct {
	Workers int `yaml:"workers"` // 0 uses every CPU
}

// ViewerConfig holds display and rendering settings.
type ViewerConfig struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Fullscreen bool        `yaml:"fullscreen"`
	VSync      bool        `yaml:"vsync"`
	Wireframe  bool        `yaml:"wireframe"`
	ShowBounds bool        `yaml:"show_bounds"`
	Background [3]float32  `yaml:"background"` // RGB clear color
	FOV        float32     `yaml:"fov"`        // vertical field of view in degrees
	Light      LightConfig `yaml:"light"`

	// ScreenshotDir receives captures; empty means the working directory.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LightConfig places the directional light, in degrees.
type LightConfig struct {
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Workers: 0,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Wireframe:  false,
			Background: [3]float32{0.15, 0.15, 0.18},
			FOV:        45,
			Light: LightConfig{
				Azimuth:   30,
				Elevation: 50,
			},
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
