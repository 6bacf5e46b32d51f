// Package bake drives a full encode: it gathers the frame sequence from
// disk, runs the encoder and writes the output textures plus optional
// reference mesh and manifest.
package bake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/vertexanim/vatbake/internal/config"
	"github.com/vertexanim/vatbake/internal/logger"
	"github.com/vertexanim/vatbake/pkg/formats"
	"github.com/vertexanim/vatbake/pkg/mesh"
	"github.com/vertexanim/vatbake/pkg/vat"
)

var (
	ErrNoFrames   = errors.New("no frame files matched")
	ErrBadMode    = errors.New("unknown layout mode")
	ErrFrameRange = errors.New("invalid frame range")
	ErrFrameShape = errors.New("frame does not match reference mesh")
)

// Run executes a bake described by cfg and returns the manifest of the
// produced files.
func Run(cfg *config.Config) (*Manifest, error) {
	mode, err := ParseMode(cfg.Encode.Mode)
	if err != nil {
		return nil, err
	}
	encCfg := vat.Config{Mode: mode, Granularity: cfg.Encode.Granularity}

	paths, err := SelectFrames(cfg.Frames)
	if err != nil {
		return nil, err
	}
	logger.Info("frame sequence selected",
		zap.Int("frames", len(paths)),
		zap.String("first", paths[0]),
		zap.String("last", paths[len(paths)-1]))

	topo, frames, refMesh, err := loadFrames(paths)
	if err != nil {
		return nil, err
	}
	logger.Info("frames loaded",
		zap.Int("vertices", topo.VertexCount),
		zap.Int("frames", len(frames)))

	offsets, rotations, err := vat.EncodeWithProgress(topo, frames, encCfg, logProgress)
	if err != nil {
		return nil, err
	}
	logger.Info("encode complete",
		zap.Int("width", offsets.Width),
		zap.Int("height", offsets.Height),
		zap.String("mode", mode.String()))

	if err := os.MkdirAll(cfg.Export.Folder, 0755); err != nil {
		return nil, fmt.Errorf("creating export folder: %w", err)
	}

	man := NewManifest(topo.VertexCount, len(frames), encCfg, offsets)

	man.Files.OffsetMap = cfg.Export.Name + "_map.exr"
	if err := formats.WriteEXRFile(filepath.Join(cfg.Export.Folder, man.Files.OffsetMap), offsets); err != nil {
		return nil, fmt.Errorf("writing offset map: %w", err)
	}

	man.Files.NormalMap = cfg.Export.Name + "_normal.exr"
	if err := formats.WriteEXRFile(filepath.Join(cfg.Export.Folder, man.Files.NormalMap), rotations); err != nil {
		return nil, fmt.Errorf("writing normal map: %w", err)
	}

	if cfg.Export.WriteMesh {
		man.Files.Mesh = cfg.Export.Name + "_mesh.gltf"
		if err := formats.WriteGLTFFile(filepath.Join(cfg.Export.Folder, man.Files.Mesh), refMesh, cfg.Export.Name); err != nil {
			return nil, fmt.Errorf("writing reference mesh: %w", err)
		}
	}

	if cfg.Export.WriteManifest {
		path := filepath.Join(cfg.Export.Folder, cfg.Export.Name+"_manifest.yaml")
		if err := man.Save(path); err != nil {
			return nil, fmt.Errorf("writing manifest: %w", err)
		}
	}

	logger.Info("bake finished", zap.String("folder", cfg.Export.Folder), zap.String("id", man.ID))
	return man, nil
}

// ParseMode converts a config mode string to a vat.Mode.
func ParseMode(s string) (vat.Mode, error) {
	switch s {
	case "linear":
		return vat.ModeLinear, nil
	case "zcurve", "":
		return vat.ModeZCurve, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadMode, s)
	}
}

// SelectFrames globs the frame pattern and applies the 1-based start/end
// range and step. Matches are sorted lexically, so zero-padded frame
// numbers sample in sequence order.
func SelectFrames(fc config.FramesConfig) ([]string, error) {
	matches, err := filepath.Glob(fc.Pattern)
	if err != nil {
		return nil, fmt.Errorf("bad frame pattern %q: %w", fc.Pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pattern %q", ErrNoFrames, fc.Pattern)
	}
	sort.Strings(matches)

	start := fc.Start
	if start < 1 {
		start = 1
	}
	end := fc.End
	if end == 0 || end > len(matches) {
		end = len(matches)
	}
	step := fc.Step
	if step < 1 {
		step = 1
	}
	if start > end {
		return nil, fmt.Errorf("%w: start %d after end %d", ErrFrameRange, start, end)
	}

	var out []string
	for i := start - 1; i < end; i += step {
		out = append(out, matches[i])
	}
	return out, nil
}

// loadFrames parses every frame file and converts it to encoder input.
// The first frame supplies the topology and the reference mesh.
func loadFrames(paths []string) (vat.Topology, []vat.Frame, *mesh.TriMesh, error) {
	var topo vat.Topology
	var refMesh *mesh.TriMesh
	frames := make([]vat.Frame, 0, len(paths))

	for i, path := range paths {
		m, err := formats.ParseOBJFile(path)
		if err != nil {
			return vat.Topology{}, nil, nil, fmt.Errorf("frame %d (%s): %w", i+1, path, err)
		}

		if i == 0 {
			refMesh = m
			topo, err = mesh.BuildTopology(m)
			if err != nil {
				return vat.Topology{}, nil, nil, fmt.Errorf("frame 1 (%s): %w", path, err)
			}
		} else if m.VertexCount() != topo.VertexCount {
			return vat.Topology{}, nil, nil, fmt.Errorf("%w: frame %d (%s) has %d vertices, reference has %d",
				ErrFrameShape, i+1, path, m.VertexCount(), topo.VertexCount)
		}

		frame, err := mesh.Snapshot(m)
		if err != nil {
			return vat.Topology{}, nil, nil, fmt.Errorf("frame %d (%s): %w", i+1, path, err)
		}
		frames = append(frames, frame)
	}

	return topo, frames, refMesh, nil
}

// logProgress reports encode progress at debug level.
func logProgress(done, total int) {
	logger.Debug("encoding", zap.Int("done", done), zap.Int("total", total))
}
