// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Mesh        MeshConfig        `yaml:"mesh"`
	Controls    ControlsConfig    `yaml:"controls"`
	Transform   TransformConfig   `yaml:"transform"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clear_color"`
	MeshColor  [4]float32 `yaml:"mesh_color"`
}

// MeshConfig holds the mesh source.
type MeshConfig struct {
	Path string `yaml:"path"`
}

// ControlsConfig holds per-frame increments and key bindings.
type ControlsConfig struct {
	TranslateStep float32 `yaml:"translate_step"`
	RotateStep    float32 `yaml:"rotate_step"` // degrees
	ScaleStep     float32 `yaml:"scale_step"`

	// Keys overrides default bindings: action name -> SDL key name.
	Keys map[string]string `yaml:"keys"`
}

// TransformConfig selects the model matrix composition mode.
type TransformConfig struct {
	Mode string `yaml:"mode"` // accumulate or reset
}

// ScreenshotsConfig holds screenshot output settings.
type ScreenshotsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultMeshPath is the mesh loaded when nothing else is configured.
const DefaultMeshPath = "bottle_01.obj"

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "meshview",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
			MeshColor:  [4]float32{0.96, 0.87, 0.70, 1.0},
		},
		Mesh: MeshConfig{
			Path: DefaultMeshPath,
		},
		Controls: ControlsConfig{
			TranslateStep: 0.1,
			RotateStep:    0.5,
			ScaleStep:     0.01,
		},
		Transform: TransformConfig{
			Mode: "accumulate",
		},
		Screenshots: ScreenshotsConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
