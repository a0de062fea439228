package model

// SessionMode distinguishes a fresh exam draw from a wrong-answer review.
type SessionMode string

const (
	ModeExam   SessionMode = "exam"
	ModeReview SessionMode = "review"
)

// HistoryRecord is one submitted session's result. The history store is
// append-only; records are never mutated or pruned.
type HistoryRecord struct {
	Timestamp string      `json:"timestamp"`
	Mode      SessionMode `json:"mode"`
	Score     int         `json:"score"`
	Correct   int         `json:"correct"`
	Total     int         `json:"total"`
}
