package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagFrames      = flag.String("frames", "", "Glob pattern matching one OBJ per frame")
	flagMode        = flag.String("mode", "", "Layout mode: linear or zcurve")
	flagGranularity = flag.Int("granularity", 0, "Z-curve dimension alignment")
	flagOut         = flag.String("out", "", "Export folder")
	flagName        = flag.String("name", "", "Export file name prefix")
	flagNoMesh      = flag.Bool("no-mesh", false, "Skip reference mesh export")
)

// ParseFlags parses the given command-line arguments against the
// package's flag set.
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFrames != "" {
		cfg.Frames.Pattern = *flagFrames
	}
	if *flagMode != "" {
		cfg.Encode.Mode = *flagMode
	}
	if *flagGranularity > 0 {
		cfg.Encode.Granularity = *flagGranularity
	}
	if *flagOut != "" {
		cfg.Export.Folder = *flagOut
	}
	if *flagName != "" {
		cfg.Export.Name = *flagName
	}
	if *flagNoMesh {
		cfg.Export.WriteMesh = false
	}
}
