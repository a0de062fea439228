package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates session lifecycle states. A session is created
// in progress and becomes submitted exactly once; there is no way back.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusSubmitted  SessionStatus = "SUBMITTED"
)

// ExamSession is one attempt at a subset of the bank. It is transient: it
// lives only in memory for the duration of the attempt and is summarized
// into the persisted stores on submit.
type ExamSession struct {
	ID        uuid.UUID
	Mode      SessionMode
	Questions []Question
	Index     int
	Answers   map[int]OptionLetter
	Status    SessionStatus
	StartedAt time.Time
}

// ScoreReport is the result of submitting a session.
type ScoreReport struct {
	Score   int  `json:"score"`
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Passed  bool `json:"passed"`
}

// SessionView is the session summary exposed to the presentation layer.
type SessionView struct {
	ID       string        `json:"id"`
	Mode     SessionMode   `json:"mode"`
	Status   SessionStatus `json:"status"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Answered int           `json:"answered"`
}

// QuestionView is the current question as shown to the presentation layer.
// Answer is only populated in review mode, where the UI reveals the correct
// letter up front.
type QuestionView struct {
	Index    int                     `json:"index"`
	Total    int                     `json:"total"`
	ID       string                  `json:"id"`
	Title    string                  `json:"title"`
	Options  map[OptionLetter]string `json:"options"`
	Selected OptionLetter            `json:"selected,omitempty"`
	Answer   OptionLetter            `json:"answer,omitempty"`
}

// View builds the summary for this session.
func (s *ExamSession) View() SessionView {
	return SessionView{
		ID:       s.ID.String(),
		Mode:     s.Mode,
		Status:   s.Status,
		Index:    s.Index,
		Total:    len(s.Questions),
		Answered: len(s.Answers),
	}
}

// StartSessionRequest is the payload for creating a new session.
type StartSessionRequest struct {
	Mode string `json:"mode" binding:"required,oneof=exam review"`
}

// AnswerRequest records a choice for the current question, or for an
// explicit index when provided.
type AnswerRequest struct {
	Index  *int   `json:"index" binding:"omitempty,min=0"`
	Letter string `json:"letter" binding:"required,oneof=A B C D"`
}

// AdvanceRequest moves the session cursor one question forward or back.
type AdvanceRequest struct {
	Delta int `json:"delta" binding:"required,oneof=1 -1"`
}
