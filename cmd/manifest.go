package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/coastline-analytics/crimeplot/internal/model"
)

// writeManifest records the artifact listing for a run next to the artifacts
// themselves, so output directories are self-describing without the store.
func writeManifest(dir string, run *model.Run, artifacts []model.Artifact) error {
	m := model.Manifest{
		RunID:     run.ID,
		Pipeline:  run.Pipeline,
		City:      run.City,
		CreatedAt: run.CreatedAt,
		Artifacts: artifacts,
	}

	raw, err := yaml.Marshal(&m)
	if err != nil {
		return eris.Wrap(err, "manifest: marshal")
	}

	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return eris.Wrapf(err, "manifest: write %s", path)
	}
	return nil
}
