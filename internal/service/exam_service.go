package service

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hbing/bingsprint/internal/bank"
	"github.com/hbing/bingsprint/internal/model"
	"github.com/hbing/bingsprint/internal/repository"
)

// PassingScore is the lowest score counted as a pass in the score report.
const PassingScore = 60

// timestampFormat is the human-readable local format used in the wrong-answer
// and history stores.
const timestampFormat = "2006-01-02 15:04:05"

var (
	ErrBankEmpty        = errors.New("question bank is empty")
	ErrReviewSetEmpty   = errors.New("no wrong questions to review")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionSubmitted = errors.New("session already submitted")
)

// ExamService owns the transient exam sessions and folds submitted results
// into the persisted stores. Sessions are in-memory only; a process restart
// discards any attempt that was not submitted.
type ExamService struct {
	loader       *bank.Loader
	progressRepo *repository.ProgressRepository
	wrongRepo    *repository.WrongAnswerRepository
	historyRepo  *repository.HistoryRepository
	examSize     int
	log          zerolog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*model.ExamSession
	rng      *rand.Rand
}

func NewExamService(
	loader *bank.Loader,
	progressRepo *repository.ProgressRepository,
	wrongRepo *repository.WrongAnswerRepository,
	historyRepo *repository.HistoryRepository,
	examSize int,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		loader:       loader,
		progressRepo: progressRepo,
		wrongRepo:    wrongRepo,
		historyRepo:  historyRepo,
		examSize:     examSize,
		log:          log.With().Str("component", "exam_service").Logger(),
		sessions:     make(map[uuid.UUID]*model.ExamSession),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartExam draws a randomized exam session of min(examSize, |bank|)
// distinct questions. Questions not yet passed are preferred; bonus
// questions stay eligible regardless of pass state. When fewer unpassed
// questions remain than the target size, the draw falls back to the whole
// bank.
func (s *ExamService) StartExam() (*model.ExamSession, error) {
	questions := s.loader.Questions()
	if len(questions) == 0 {
		return nil, ErrBankEmpty
	}

	progress := s.progressRepo.Load()
	eligible := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if !progress.Passed(q.ID) || s.loader.IsBonus(q.ID) {
			eligible = append(eligible, q)
		}
	}

	size := s.examSize
	if size > len(questions) {
		size = len(questions)
	}
	pool := eligible
	if len(eligible) < size {
		pool = questions
	}

	sess := s.register(model.ModeExam, s.sample(pool, size))
	s.log.Info().Str("session_id", sess.ID.String()).Int("questions", len(sess.Questions)).Msg("exam session started")
	return sess, nil
}

// StartReview builds a session from exactly the questions in the current
// wrong set. Returns ErrReviewSetEmpty instead of a zero-question session.
func (s *ExamService) StartReview() (*model.ExamSession, error) {
	wrong := s.wrongRepo.Load()
	if len(wrong) == 0 {
		return nil, ErrReviewSetEmpty
	}

	var pool []model.Question
	for _, q := range s.loader.Questions() {
		if _, ok := wrong[q.ID]; ok {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return nil, ErrReviewSetEmpty
	}

	sess := s.register(model.ModeReview, pool)
	s.log.Info().Str("session_id", sess.ID.String()).Int("questions", len(sess.Questions)).Msg("review session started")
	return sess, nil
}

// Get returns a summary of the live session with the given ID.
func (s *ExamService) Get(id uuid.UUID) (model.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.SessionView{}, ErrSessionNotFound
	}
	return sess.View(), nil
}

// CurrentQuestion returns the question at the session cursor. The correct
// answer is revealed in review mode only.
func (s *ExamService) CurrentQuestion(id uuid.UUID) (*model.QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	q := sess.Questions[sess.Index]
	view := &model.QuestionView{
		Index:    sess.Index,
		Total:    len(sess.Questions),
		ID:       q.ID,
		Title:    q.Title,
		Options:  q.Options,
		Selected: sess.Answers[sess.Index],
	}
	if sess.Mode == model.ModeReview {
		view.Answer = q.Answer
	}
	return view, nil
}

// RecordAnswer stores the submitted letter for the given index (or the
// current cursor when index is nil). The last write for an index wins.
func (s *ExamService) RecordAnswer(id uuid.UUID, index *int, letter model.OptionLetter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.Status == model.SessionStatusSubmitted {
		return ErrSessionSubmitted
	}

	i := sess.Index
	if index != nil {
		i = *index
	}
	if i < 0 || i >= len(sess.Questions) {
		return ErrSessionNotFound
	}
	sess.Answers[i] = letter
	return nil
}

// Advance moves the session cursor by delta, clamped to the question range.
// Moving past either boundary is a no-op, never a fault.
func (s *ExamService) Advance(id uuid.UUID, delta int) (model.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.SessionView{}, ErrSessionNotFound
	}
	if sess.Status == model.SessionStatusSubmitted {
		return model.SessionView{}, ErrSessionSubmitted
	}

	next := sess.Index + delta
	if next < 0 {
		next = 0
	}
	if max := len(sess.Questions) - 1; next > max {
		next = max
	}
	sess.Index = next
	return sess.View(), nil
}

// Submit scores the session, folds the result into the persisted stores and
// marks the session terminal. Unanswered questions count as wrong; a wrong
// entry keeps the submitted letter when there was one. Persistence is
// best-effort: a failed store write is logged but does not void the report.
func (s *ExamService) Submit(id uuid.UUID) (*model.ScoreReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Status == model.SessionStatusSubmitted {
		return nil, ErrSessionSubmitted
	}

	progress := s.progressRepo.Load()
	wrong := s.wrongRepo.Load()
	now := time.Now().Format(timestampFormat)

	correct := 0
	for i, q := range sess.Questions {
		letter, answered := sess.Answers[i]
		if answered && letter == q.Answer {
			correct++
			progress.MarkPassed(q.ID)
			delete(wrong, q.ID)
			continue
		}
		entry := model.WrongEntry{Time: now}
		if answered {
			entry.UserAnswer = string(letter)
		}
		wrong[q.ID] = entry
	}

	total := len(sess.Questions)
	score := int(math.Round(100 * float64(correct) / float64(total)))

	if err := s.progressRepo.Save(progress); err != nil {
		s.log.Error().Err(err).Msg("failed to save progress")
	}
	if err := s.wrongRepo.Save(wrong); err != nil {
		s.log.Error().Err(err).Msg("failed to save wrong answers")
	}
	if err := s.historyRepo.Append(model.HistoryRecord{
		Timestamp: now,
		Mode:      sess.Mode,
		Score:     score,
		Correct:   correct,
		Total:     total,
	}); err != nil {
		s.log.Error().Err(err).Msg("failed to append history record")
	}

	sess.Status = model.SessionStatusSubmitted
	s.log.Info().
		Str("session_id", sess.ID.String()).
		Str("mode", string(sess.Mode)).
		Int("score", score).
		Int("correct", correct).
		Int("total", total).
		Msg("session submitted")

	return &model.ScoreReport{
		Score:   score,
		Correct: correct,
		Total:   total,
		Passed:  score >= PassingScore,
	}, nil
}

// register creates and tracks a new in-progress session.
func (s *ExamService) register(mode model.SessionMode, questions []model.Question) *model.ExamSession {
	sess := &model.ExamSession{
		ID:        uuid.New(),
		Mode:      mode,
		Questions: questions,
		Answers:   make(map[int]model.OptionLetter),
		Status:    model.SessionStatusInProgress,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// sample draws n distinct questions from pool in random order.
func (s *ExamService) sample(pool []model.Question, n int) []model.Question {
	if n > len(pool) {
		n = len(pool)
	}
	shuffled := make([]model.Question, len(pool))
	copy(shuffled, pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
