package bank

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/hbing/bingsprint/internal/model"
)

// defaultBonus is the built-in bonus fixture, appended to the bank when no
// bonus file is configured or the configured one is unusable. The reserved
// ID keeps it out of the numeric range of source-derived questions.
var defaultBonus = []model.Question{
	{
		ID:    "BING_99",
		Title: "【必答题】谁是世界上最可爱且一定会通过考试的小仙女？",
		Options: map[model.OptionLetter]string{
			model.OptionA: "黄冰",
			model.OptionB: "冰冰",
			model.OptionC: "超棒的冰冰🦁",
			model.OptionD: "以上全是",
		},
		Answer: model.OptionD,
	},
}

// loadBonus reads the configured bonus fixture file (a JSON array of
// questions). Invalid entries are dropped; an absent or unusable file falls
// back to the built-in fixture.
func loadBonus(path string, log zerolog.Logger) []model.Question {
	if path == "" {
		return defaultBonus
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaultBonus
	}

	var raw []model.Question
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("bonus fixture unreadable, using built-in fixture")
		return defaultBonus
	}

	bonus := make([]model.Question, 0, len(raw))
	for _, q := range raw {
		if q.Valid() {
			bonus = append(bonus, q)
		}
	}
	if len(bonus) == 0 {
		return defaultBonus
	}
	return bonus
}

// IsBonus reports whether the question ID belongs to the injected bonus set.
// Bonus questions are always exam-eligible regardless of pass state.
func (l *Loader) IsBonus(id string) bool {
	for _, q := range l.bonus {
		if q.ID == id {
			return true
		}
	}
	return false
}
