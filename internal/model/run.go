package model

import "time"

// RunStatus is the lifecycle state of a recorded pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one invocation of an analysis pipeline and the artifacts it
// produced.
type Run struct {
	ID        string     `json:"id"`
	Pipeline  string     `json:"pipeline"`
	City      string     `json:"city"`
	Status    RunStatus  `json:"status"`
	Error     string     `json:"error,omitempty"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Artifact is one file written by a pipeline run.
type Artifact struct {
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path" yaml:"path"`
}

// Manifest is the per-run artifact listing written alongside the artifacts.
type Manifest struct {
	RunID     string     `yaml:"run_id"`
	Pipeline  string     `yaml:"pipeline"`
	City      string     `yaml:"city"`
	CreatedAt time.Time  `yaml:"created_at"`
	Artifacts []Artifact `yaml:"artifacts"`
}
