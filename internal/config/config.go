// Package config handles bake configuration loading and management.
package config

// Config holds all bake settings.
type Config struct {
	Frames  FramesConfig  `yaml:"frames"`
	Encode  EncodeConfig  `yaml:"encode"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// FramesConfig selects the input frame sequence.
type FramesConfig struct {
	// Pattern is a glob matching one OBJ file per frame; matches are
	// sorted lexically, so zero-padded frame numbers sample in order.
	Pattern string `yaml:"pattern"`
	// Start/End select a 1-based inclusive frame range within the
	// matched files. End 0 means the last match.
	Start int `yaml:"start"`
	End   int `yaml:"end"`
	// Step samples every Nth frame.
	Step int `yaml:"step"`
}

// EncodeConfig holds encoder settings.
type EncodeConfig struct {
	// Mode is "linear" or "zcurve".
	Mode        string `yaml:"mode"`
	Granularity int    `yaml:"granularity"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Folder string `yaml:"folder"`
	// Name prefixes the emitted files: <name>_map.exr, <name>_normal.exr,
	// <name>_mesh.gltf, <name>_manifest.yaml.
	Name string `yaml:"name"`
	// WriteMesh controls reference-mesh export.
	WriteMesh bool `yaml:"write_mesh"`
	// WriteManifest controls the yaml sidecar describing the bake.
	WriteManifest bool `yaml:"write_manifest"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Frames: FramesConfig{
			Pattern: "frames/*.obj",
			Start:   1,
			End:     0,
			Step:    1,
		},
		Encode: EncodeConfig{
			Mode:        "zcurve",
			Granularity: 32,
		},
		Export: ExportConfig{
			Folder:        "export",
			Name:          "VAT",
			WriteMesh:     true,
			WriteManifest: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
