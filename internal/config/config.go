// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Curl     CurlConfig     `yaml:"curl"`
	Pages    PagesConfig    `yaml:"pages"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CurlConfig holds the curl engine tunables.
type CurlConfig struct {
	// Backend selects the geometry model: "cylinder" or "planar".
	Backend string `yaml:"backend"`

	// Radius is the cylinder radius as a fraction of page width.
	Radius float32 `yaml:"radius"`

	// MeshCols/MeshRows set the deformation grid resolution. More rows
	// buy diagonal fold fidelity at the cost of vertex count.
	MeshCols int `yaml:"mesh_cols"`
	MeshRows int `yaml:"mesh_rows"`

	// Shadow strip widths as fractions of page width.
	CastShadowWidth   float32 `yaml:"cast_shadow_width"`
	CreaseShadowWidth float32 `yaml:"crease_shadow_width"`

	// Darkening factors for the curling page's two faces.
	FrontDarken float32 `yaml:"front_darken"`
	BackDarken  float32 `yaml:"back_darken"`

	// SettleDuration is the completion/cancel animation time in seconds.
	SettleDuration float32 `yaml:"settle_duration"`
}

// PagesConfig holds page image settings.
type PagesConfig struct {
	// Dir is the directory scanned for page images (png/jpeg).
	Dir string `yaml:"dir"`

	// MaxTextureSize caps uploaded page dimensions; larger images are
	// downscaled before upload.
	MaxTextureSize int `yaml:"max_texture_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     1200,
			Fullscreen: false,
			VSync:      true,
		},
		Curl: CurlConfig{
			Backend:           "cylinder",
			Radius:            0.065,
			MeshCols:          64,
			MeshRows:          32,
			CastShadowWidth:   0.04,
			CreaseShadowWidth: 0.03,
			FrontDarken:       0.35,
			BackDarken:        0.15,
			SettleDuration:    0.3,
		},
		Pages: PagesConfig{
			Dir:            "pages",
			MaxTextureSize: 4096,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
