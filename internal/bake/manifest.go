package bake

import (
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vertexanim/vatbake/pkg/vat"
)

// Manifest is the yaml sidecar written next to the textures. It records
// what was baked and how, so a consuming pipeline can locate and decode
// the outputs without re-reading the texture header.
type Manifest struct {
	ID          string        `yaml:"id"`
	CreatedAt   time.Time     `yaml:"created_at"`
	VertexCount int           `yaml:"vertex_count"`
	FrameCount  int           `yaml:"frame_count"`
	Mode        string        `yaml:"mode"`
	Granularity int           `yaml:"granularity,omitempty"`
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Files       ManifestFiles `yaml:"files"`
}

// ManifestFiles lists the emitted file names, relative to the manifest.
type ManifestFiles struct {
	OffsetMap string `yaml:"offset_map"`
	NormalMap string `yaml:"normal_map"`
	Mesh      string `yaml:"mesh,omitempty"`
}

// NewManifest builds a manifest for a finished encode. File names are
// filled in by the caller as files are written.
func NewManifest(vertexCount, frameCount int, cfg vat.Config, grid *vat.Grid) *Manifest {
	man := &Manifest{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		VertexCount: vertexCount,
		FrameCount:  frameCount,
		Mode:        cfg.Mode.String(),
		Width:       grid.Width,
		Height:      grid.Height,
	}
	if cfg.Mode == vat.ModeZCurve {
		man.Granularity = cfg.Granularity
		if man.Granularity == 0 {
			man.Granularity = vat.DefaultGranularity
		}
	}
	return man
}

// Save writes the manifest as yaml.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, err
	}
	return &man, nil
}
