package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hbing/bingsprint/internal/bank"
	"github.com/hbing/bingsprint/internal/config"
	"github.com/hbing/bingsprint/internal/model"
	"github.com/hbing/bingsprint/internal/repository"
)

const testBonusJSON = `[{"id":"BONUS_1","title":"彩蛋题","options":{"A":"对","B":"错"},"answer":"A"}]`

// twoQuestionBank: Q1 answer A, Q2 answer B.
const twoQuestionBank = `1.第一题的题干（ ） A.甲 B.乙 C.丙 D.丁 正确答案：A
2.第二题的题干（ ） A.甲 B.乙 C.丙 D.丁 正确答案：B
`

type testEnv struct {
	exam     *ExamService
	progress *repository.ProgressRepository
	wrong    *repository.WrongAnswerRepository
	history  *repository.HistoryRepository
}

func newTestEnv(t *testing.T, bankContent string, examSize int) *testEnv {
	t.Helper()
	dir := t.TempDir()

	bankPath := filepath.Join(dir, "bank.txt")
	if bankContent != "" {
		if err := os.WriteFile(bankPath, []byte(bankContent), 0o644); err != nil {
			t.Fatalf("write bank file: %v", err)
		}
	}
	bonusPath := filepath.Join(dir, "bonus.json")
	if err := os.WriteFile(bonusPath, []byte(testBonusJSON), 0o644); err != nil {
		t.Fatalf("write bonus file: %v", err)
	}

	loader := bank.NewLoader(&config.Config{BankFile: bankPath, BonusFile: bonusPath}, zerolog.Nop())
	progressRepo := repository.NewProgressRepository(dir)
	wrongRepo := repository.NewWrongAnswerRepository(dir)
	historyRepo := repository.NewHistoryRepository(dir)

	return &testEnv{
		exam:     NewExamService(loader, progressRepo, wrongRepo, historyRepo, examSize, zerolog.Nop()),
		progress: progressRepo,
		wrong:    wrongRepo,
		history:  historyRepo,
	}
}

// generatedBank builds n well-formed questions with IDs 1..n, all answering A.
func generatedBank(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d.第%d题的题干（ ） A.甲 B.乙 C.丙 D.丁 正确答案：A\n", i, i)
	}
	return b.String()
}

// answerAt records a letter for an explicit question index.
func answerAt(t *testing.T, env *testEnv, sess *model.ExamSession, index int, letter model.OptionLetter) {
	t.Helper()
	if err := env.exam.RecordAnswer(sess.ID, &index, letter); err != nil {
		t.Fatalf("record answer at %d: %v", index, err)
	}
}

// findIndex locates a question ID inside a session.
func findIndex(t *testing.T, sess *model.ExamSession, id string) int {
	t.Helper()
	for i, q := range sess.Questions {
		if q.ID == id {
			return i
		}
	}
	t.Fatalf("question %s not in session", id)
	return -1
}

func TestStartExamDrawsDistinctQuestions(t *testing.T) {
	env := newTestEnv(t, generatedBank(50), 100)

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}

	// min(100, 50 source + 1 bonus) questions, no repeats.
	if len(sess.Questions) != 51 {
		t.Fatalf("expected 51 questions, got %d", len(sess.Questions))
	}
	seen := make(map[string]bool, len(sess.Questions))
	for _, q := range sess.Questions {
		if seen[q.ID] {
			t.Errorf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestStartExamPrefersUnpassedQuestions(t *testing.T) {
	env := newTestEnv(t, generatedBank(10), 5)
	if err := env.progress.Save(model.Progress{PassedIDs: []string{"1", "2", "3"}}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	if len(sess.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(sess.Questions))
	}
	for _, q := range sess.Questions {
		if q.ID == "1" || q.ID == "2" || q.ID == "3" {
			t.Errorf("passed question %s drawn while enough unpassed remain", q.ID)
		}
	}
}

func TestStartExamFallsBackToWholeBank(t *testing.T) {
	env := newTestEnv(t, generatedBank(10), 5)
	passed := make([]string, 0, 9)
	for i := 1; i <= 9; i++ {
		passed = append(passed, fmt.Sprintf("%d", i))
	}
	if err := env.progress.Save(model.Progress{PassedIDs: passed}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	// Only question 10 and the bonus remain unpassed — fewer than the
	// target of 5, so the draw must widen to the whole bank.
	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	if len(sess.Questions) != 5 {
		t.Errorf("expected 5 questions from fallback pool, got %d", len(sess.Questions))
	}
}

func TestStartExamBonusStaysEligible(t *testing.T) {
	env := newTestEnv(t, generatedBank(3), 10)
	if err := env.progress.Save(model.Progress{PassedIDs: []string{"1", "2", "3", "BONUS_1"}}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	// Everything is passed, bonus included — but the bonus question must
	// remain in the eligible pool regardless of pass state.
	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	findIndex(t, sess, "BONUS_1")
}

func TestStartExamWithMissingBankFile(t *testing.T) {
	env := newTestEnv(t, "", 100)

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam on degraded bank: %v", err)
	}
	if len(sess.Questions) != 1 || sess.Questions[0].ID != "BONUS_1" {
		t.Errorf("expected bonus-only session, got %v", sess.Questions)
	}
}

func TestSubmitScoring(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	if len(sess.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(sess.Questions))
	}

	answerAt(t, env, sess, findIndex(t, sess, "1"), model.OptionA) // correct
	answerAt(t, env, sess, findIndex(t, sess, "2"), model.OptionC) // wrong
	// BONUS_1 left unanswered.

	report, err := env.exam.Submit(sess.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.Correct != 1 || report.Total != 3 {
		t.Errorf("expected 1/3 correct, got %d/%d", report.Correct, report.Total)
	}
	if report.Score != 33 { // round(100*1/3)
		t.Errorf("expected score 33, got %d", report.Score)
	}
	if report.Passed {
		t.Error("33 points must not count as a pass")
	}

	progress := env.progress.Load()
	if !progress.Passed("1") {
		t.Error("correctly answered question missing from progress")
	}
	if progress.Passed("2") {
		t.Error("wrongly answered question recorded as passed")
	}

	wrong := env.wrong.Load()
	if entry, ok := wrong["2"]; !ok || entry.UserAnswer != "C" {
		t.Errorf("expected wrong entry for 2 with submitted letter C, got %v", wrong["2"])
	}
	if entry, ok := wrong["BONUS_1"]; !ok || entry.UserAnswer != "" {
		t.Errorf("expected unanswered wrong entry without a letter, got %v", entry)
	}
	if _, ok := wrong["1"]; ok {
		t.Error("correctly answered question must not be in the wrong set")
	}

	records := env.history.Load()
	if len(records) != 1 || records[0].Mode != model.ModeExam || records[0].Score != 33 {
		t.Errorf("unexpected history: %v", records)
	}
}

func TestSubmitIsTerminal(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	if _, err := env.exam.Submit(sess.ID); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	if _, err := env.exam.Submit(sess.ID); !errors.Is(err, ErrSessionSubmitted) {
		t.Errorf("second submit: expected ErrSessionSubmitted, got %v", err)
	}
	idx := 0
	if err := env.exam.RecordAnswer(sess.ID, &idx, model.OptionA); !errors.Is(err, ErrSessionSubmitted) {
		t.Errorf("answer after submit: expected ErrSessionSubmitted, got %v", err)
	}
	if _, err := env.exam.Advance(sess.ID, 1); !errors.Is(err, ErrSessionSubmitted) {
		t.Errorf("advance after submit: expected ErrSessionSubmitted, got %v", err)
	}
}

func TestProgressIsMonotonic(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	answerAt(t, env, sess, findIndex(t, sess, "1"), model.OptionA)
	if _, err := env.exam.Submit(sess.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// A later session with everything unanswered must not shrink progress.
	second, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("second exam: %v", err)
	}
	if _, err := env.exam.Submit(second.ID); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !env.progress.Load().Passed("1") {
		t.Error("progress lost a passed ID across sessions")
	}
}

func TestWrongSetClearsOnLaterCorrectAnswer(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)

	first, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	answerAt(t, env, first, findIndex(t, first, "2"), model.OptionC)
	if _, err := env.exam.Submit(first.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, ok := env.wrong.Load()["2"]; !ok {
		t.Fatal("expected question 2 in the wrong set")
	}

	second, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("second exam: %v", err)
	}
	answerAt(t, env, second, findIndex(t, second, "2"), model.OptionB)
	if _, err := env.exam.Submit(second.ID); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if _, ok := env.wrong.Load()["2"]; ok {
		t.Error("question answered correctly must leave the wrong set")
	}
}

func TestStartReviewPoolIsExactlyWrongSet(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)
	if err := env.wrong.Save(model.WrongSet{"2": {UserAnswer: "C", Time: "2026-02-01 10:00:00"}}); err != nil {
		t.Fatalf("seed wrong set: %v", err)
	}

	sess, err := env.exam.StartReview()
	if err != nil {
		t.Fatalf("start review: %v", err)
	}
	if len(sess.Questions) != 1 || sess.Questions[0].ID != "2" {
		t.Fatalf("expected pool [2], got %v", sess.Questions)
	}
	if sess.Mode != model.ModeReview {
		t.Errorf("expected review mode, got %s", sess.Mode)
	}

	// Review mode reveals the correct answer up front.
	view, err := env.exam.CurrentQuestion(sess.ID)
	if err != nil {
		t.Fatalf("current question: %v", err)
	}
	if view.Answer != model.OptionB {
		t.Errorf("expected revealed answer B, got %q", view.Answer)
	}
}

func TestStartReviewEmptySet(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)

	if _, err := env.exam.StartReview(); !errors.Is(err, ErrReviewSetEmpty) {
		t.Errorf("expected ErrReviewSetEmpty, got %v", err)
	}
}

func TestAdvanceClampsToBounds(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}

	view, err := env.exam.Advance(sess.ID, -1)
	if err != nil {
		t.Fatalf("advance below start: %v", err)
	}
	if view.Index != 0 {
		t.Errorf("expected clamp at 0, got %d", view.Index)
	}

	for i := 0; i < 10; i++ {
		view, err = env.exam.Advance(sess.ID, 1)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if view.Index != len(sess.Questions)-1 {
		t.Errorf("expected clamp at %d, got %d", len(sess.Questions)-1, view.Index)
	}
}

func TestRecordAnswerLastWriteWins(t *testing.T) {
	env := newTestEnv(t, twoQuestionBank, 100)

	sess, err := env.exam.StartExam()
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	answerAt(t, env, sess, 0, model.OptionA)
	answerAt(t, env, sess, 0, model.OptionD)

	view, err := env.exam.CurrentQuestion(sess.ID)
	if err != nil {
		t.Fatalf("current question: %v", err)
	}
	if view.Selected != model.OptionD {
		t.Errorf("expected last write to win, selected %q", view.Selected)
	}
}
