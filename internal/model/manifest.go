package model

import "time"

// RunState is the terminal state of one generation run.
type RunState string

const (
	RunDone   RunState = "done"
	RunFailed RunState = "failed"
)

// GenerationManifest is the compiler's final report for one run: every
// emitted artifact path grouped by kind, plus the rejections collected
// during validation. It is immutable once returned to the caller and is
// the only interface the surrounding server/UI needs.
type GenerationManifest struct {
	RunID      string    `json:"run_id"`
	WorldID    string    `json:"world_id"`
	WorldName  string    `json:"world_name"`
	Theme      Theme     `json:"theme"`
	State      RunState  `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Artifact paths, grouped by kind. Source and record paths are in
	// emission order; SceneFile is the single scene descriptor.
	SourceFiles []string `json:"source_files"`
	RecordFiles []string `json:"record_files"`
	SceneFile   string   `json:"scene_file"`

	// MirrorFiles are debug/reference exports written outside the scanned
	// artifact tree. They are never part of the engine-consumable output.
	MirrorFiles []string `json:"mirror_files,omitempty"`

	// Rejections are the non-fatal validation failures for this run, so
	// callers can report partial success.
	Rejections []Rejection `json:"rejections,omitempty"`

	// Error holds the single fatal failure message when State is RunFailed.
	Error string `json:"error,omitempty"`
}

// ArtifactCount returns the total number of primary artifacts emitted.
func (m *GenerationManifest) ArtifactCount() int {
	n := len(m.SourceFiles) + len(m.RecordFiles)
	if m.SceneFile != "" {
		n++
	}
	return n
}
