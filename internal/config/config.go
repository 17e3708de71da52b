package config

// Config holds the settings of one atlas build
type Config struct {
	InputPath   string
	OutputDir   string
	Name        string // atlas base name: <Name>_atlas.png, <Name>.json
	Rows        int
	Padding     int
	Pivot       string // top-left, bottom-left, center
	Shape       string // ellipse, circle, square, tangent, linear
	Direction   string // clockwise, counterclockwise
	Rotation    float64
	Mode        string // character, animation, normal
	Animation   string // animation name, defaults to Name
	FPS         float64
	Speed       float64
	Loop        bool
	ProjectPath string // YAML project to restore points from
	SaveProject string // where to save the session, "auto" for a timestamped name
	PointsPath  string // points JSON to import
	Preview     bool
	Detector    string
	Workers     int
	DPI         int
	ShowStats   bool
	Verbose     bool

	// Explicit holds the names of flags given on the command line. Settings
	// restored from a project or a points file never override them.
	Explicit map[string]bool
}

// IsSet reports whether the user passed flag name explicitly
func (c *Config) IsSet(name string) bool {
	return c.Explicit[name]
}

// Default returns the settings used when a flag is not given
func Default() Config {
	return Config{
		OutputDir: "output",
		Rows:      1,
		Padding:   2,
		Pivot:     "top-left",
		Shape:     "ellipse",
		Direction: "clockwise",
		Mode:      "normal",
		FPS:       12,
		Speed:     1,
		Loop:      true,
		Detector:  "alpha",
		DPI:       150,
	}
}
