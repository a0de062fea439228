package model

// WrongEntry records the most recent incorrect submission for a question.
// UserAnswer is empty when the question was left unanswered.
type WrongEntry struct {
	UserAnswer string `json:"user_ans,omitempty"`
	Time       string `json:"time"`
}

// WrongSet maps question IDs to their latest wrong submission. It is the
// "currently wrong" set, not a history of mistakes: an entry is removed as
// soon as the question is answered correctly.
type WrongSet map[string]WrongEntry
