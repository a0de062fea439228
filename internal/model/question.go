package model

// OptionLetter identifies one of the four choices of a multiple-choice question.
type OptionLetter string

const (
	OptionA OptionLetter = "A"
	OptionB OptionLetter = "B"
	OptionC OptionLetter = "C"
	OptionD OptionLetter = "D"
)

// OptionLetters lists the recognized letters in display order.
var OptionLetters = []OptionLetter{OptionA, OptionB, OptionC, OptionD}

// Question is a single multiple-choice item of the bank.
// Questions are immutable after parsing; the ID is the numeric marker extracted
// from the source text, or a reserved ID for injected bonus questions.
type Question struct {
	ID      string                  `json:"id"`
	Title   string                  `json:"title"`
	Options map[OptionLetter]string `json:"options"`
	Answer  OptionLetter            `json:"answer"`
}

// Valid reports whether the question satisfies the bank invariant:
// non-empty title, at least one option, and an answer that is one of its
// own option letters.
func (q Question) Valid() bool {
	if q.Title == "" || len(q.Options) == 0 {
		return false
	}
	_, ok := q.Options[q.Answer]
	return ok
}
