// vatbake is a CLI for baking vertex animation textures from OBJ frame
// sequences.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vertexanim/vatbake/internal/bake"
	"github.com/vertexanim/vatbake/internal/config"
	"github.com/vertexanim/vatbake/internal/logger"
	"github.com/vertexanim/vatbake/pkg/vat"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "encode", "bake":
		cmdEncode(args)
	case "plan":
		cmdPlan(args)
	case "header":
		cmdHeader(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vatbake - vertex animation texture baker

Usage:
  vatbake <command> [options]

Commands:
  encode [options]            Bake textures from an OBJ frame sequence
  plan <vertices> <frames>    Show texture dimensions for given counts
  header <vertices> <frames>  Show the header pixel for given counts
  init [path]                 Write a default config file

Encode options:
  -config <path>       Config file (default: ./vatbake.yaml)
  -frames <pattern>    Glob matching one OBJ per frame
  -mode <mode>         linear or zcurve
  -granularity <n>     Z-curve dimension alignment
  -out <folder>        Export folder
  -name <prefix>       Export file name prefix
  -no-mesh             Skip reference mesh export
  -debug               Enable debug logging

Examples:
  vatbake encode -frames "anim/walk_*.obj" -name walk -out export
  vatbake plan 5000 120
  vatbake header 5000 120`)
}

func cmdEncode(args []string) {
	if err := config.ParseFlags(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	man, err := bake.Run(cfg)
	if err != nil {
		logger.Sugar.Errorf("bake failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Baked %d vertices x %d frames into %dx%d (%s)\n",
		man.VertexCount, man.FrameCount, man.Width, man.Height, man.Mode)
	fmt.Printf("Output: %s\n", cfg.Export.Folder)
}

func cmdPlan(args []string) {
	vertices, frames := parseCounts("plan", args)

	for _, mode := range []vat.Mode{vat.ModeLinear, vat.ModeZCurve} {
		layout, err := vat.PlanLayout(vertices, frames, vat.Config{Mode: mode})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-8s %dx%d (%d pixels)\n", mode, layout.Width, layout.Height, layout.Width*layout.Height)
	}
}

func cmdHeader(args []string) {
	vertices, frames := parseCounts("header", args)

	if err := vat.Validate(vertices, frames); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := vat.EncodeHeader(vertices, frames)
	fmt.Printf("Header pixel: (%g, %g, %g, %g)\n", p[0], p[1], p[2], p[3])

	v, f := vat.DecodeHeader(p)
	fmt.Printf("Decodes to:   %d vertices, %d frames", v, f)
	if f != frames {
		fmt.Printf(" (frame count wraps modulo 2048)")
	}
	fmt.Println()
}

func cmdInit(args []string) {
	path := "vatbake.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Refusing to overwrite existing %s\n", path)
		os.Exit(1)
	}

	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

func parseCounts(cmd string, args []string) (vertices, frames int) {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: vatbake %s <vertices> <frames>\n", cmd)
		os.Exit(1)
	}

	vertices, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad vertex count: %s\n", args[0])
		os.Exit(1)
	}
	frames, err = strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad frame count: %s\n", args[1])
		os.Exit(1)
	}
	return vertices, frames
}
