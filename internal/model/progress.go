package model

// Progress tracks which question IDs have ever been answered correctly.
// The set grows monotonically across sessions and only shrinks on an
// explicit reset.
type Progress struct {
	PassedIDs []string `json:"passed_ids"`
}

// Passed reports whether the given question ID is in the passed set.
func (p Progress) Passed(id string) bool {
	for _, passed := range p.PassedIDs {
		if passed == id {
			return true
		}
	}
	return false
}

// MarkPassed adds the question ID to the passed set. Duplicates are ignored.
func (p *Progress) MarkPassed(id string) {
	if !p.Passed(id) {
		p.PassedIDs = append(p.PassedIDs, id)
	}
}

// BankStatus summarizes the bank and the persisted drill state for the
// presentation layer's home screen.
type BankStatus struct {
	TotalQuestions int `json:"total_questions"`
	PassedCount    int `json:"passed_count"`
	WrongCount     int `json:"wrong_count"`
	ExamSize       int `json:"exam_size"`
}
