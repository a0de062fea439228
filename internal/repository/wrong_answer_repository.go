package repository

import (
	"path/filepath"

	"github.com/hbing/bingsprint/internal/model"
)

const wrongAnswersFile = "wrong_questions.json"

// WrongAnswerRepository persists the currently-wrong question set as a flat
// JSON file under the data directory.
type WrongAnswerRepository struct {
	path string
}

func NewWrongAnswerRepository(dataDir string) *WrongAnswerRepository {
	return &WrongAnswerRepository{path: filepath.Join(dataDir, wrongAnswersFile)}
}

// Load returns the persisted wrong set, or an empty one when the backing
// file is absent or corrupt.
func (r *WrongAnswerRepository) Load() model.WrongSet {
	ws := model.WrongSet{}
	if !readJSON(r.path, &ws) {
		return model.WrongSet{}
	}
	return ws
}

// Save overwrites the backing file with the given wrong set.
func (r *WrongAnswerRepository) Save(ws model.WrongSet) error {
	return writeJSON(r.path, ws)
}

// Reset clears the wrong set.
func (r *WrongAnswerRepository) Reset() error {
	return writeJSON(r.path, model.WrongSet{})
}
