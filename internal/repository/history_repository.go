package repository

import (
	"path/filepath"

	"github.com/hbing/bingsprint/internal/model"
)

const historyFile = "history.json"

// HistoryRepository persists the append-only list of submitted session
// results as a flat JSON file under the data directory.
type HistoryRepository struct {
	path string
}

func NewHistoryRepository(dataDir string) *HistoryRepository {
	return &HistoryRepository{path: filepath.Join(dataDir, historyFile)}
}

// Load returns all recorded results, oldest first, or an empty list when the
// backing file is absent or corrupt.
func (r *HistoryRepository) Load() []model.HistoryRecord {
	var records []model.HistoryRecord
	if !readJSON(r.path, &records) {
		return []model.HistoryRecord{}
	}
	return records
}

// Append adds one record to the history. The file is rewritten in full;
// existing records are never mutated.
func (r *HistoryRepository) Append(rec model.HistoryRecord) error {
	records := append(r.Load(), rec)
	return writeJSON(r.path, records)
}
