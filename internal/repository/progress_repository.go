package repository

import (
	"path/filepath"

	"github.com/hbing/bingsprint/internal/model"
)

const progressFile = "progress.json"

// ProgressRepository persists the set of passed question IDs as a flat JSON
// file under the data directory.
type ProgressRepository struct {
	path string
}

func NewProgressRepository(dataDir string) *ProgressRepository {
	return &ProgressRepository{path: filepath.Join(dataDir, progressFile)}
}

// Load returns the persisted progress, or an empty set when the backing file
// is absent or corrupt.
func (r *ProgressRepository) Load() model.Progress {
	var p model.Progress
	if !readJSON(r.path, &p) {
		return model.Progress{}
	}
	return p
}

// Save overwrites the backing file with the given progress.
func (r *ProgressRepository) Save(p model.Progress) error {
	return writeJSON(r.path, p)
}

// Reset clears all recorded progress.
func (r *ProgressRepository) Reset() error {
	return writeJSON(r.path, model.Progress{PassedIDs: []string{}})
}
