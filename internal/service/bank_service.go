package service

import (
	"github.com/rs/zerolog"

	"github.com/hbing/bingsprint/internal/bank"
	"github.com/hbing/bingsprint/internal/model"
	"github.com/hbing/bingsprint/internal/repository"
)

// BankService serves the home-screen concerns: bank status numbers, forced
// bank reloads, the score history, and the full progress reset.
type BankService struct {
	loader       *bank.Loader
	progressRepo *repository.ProgressRepository
	wrongRepo    *repository.WrongAnswerRepository
	historyRepo  *repository.HistoryRepository
	examSize     int
	log          zerolog.Logger
}

func NewBankService(
	loader *bank.Loader,
	progressRepo *repository.ProgressRepository,
	wrongRepo *repository.WrongAnswerRepository,
	historyRepo *repository.HistoryRepository,
	examSize int,
	log zerolog.Logger,
) *BankService {
	return &BankService{
		loader:       loader,
		progressRepo: progressRepo,
		wrongRepo:    wrongRepo,
		historyRepo:  historyRepo,
		examSize:     examSize,
		log:          log.With().Str("component", "bank_service").Logger(),
	}
}

// Status returns the current bank size and the persisted drill counters.
func (s *BankService) Status() model.BankStatus {
	return model.BankStatus{
		TotalQuestions: len(s.loader.Questions()),
		PassedCount:    len(s.progressRepo.Load().PassedIDs),
		WrongCount:     len(s.wrongRepo.Load()),
		ExamSize:       s.examSize,
	}
}

// Reload forces a re-read of the bank source file and returns the refreshed
// status.
func (s *BankService) Reload() model.BankStatus {
	s.loader.Reload()
	return s.Status()
}

// History returns all recorded session results, oldest first.
func (s *BankService) History() []model.HistoryRecord {
	return s.historyRepo.Load()
}

// Reset clears the progress and wrong-answer stores. The history store is
// append-only and is deliberately left untouched.
func (s *BankService) Reset() error {
	if err := s.progressRepo.Reset(); err != nil {
		s.log.Error().Err(err).Msg("failed to reset progress")
		return err
	}
	if err := s.wrongRepo.Reset(); err != nil {
		s.log.Error().Err(err).Msg("failed to reset wrong answers")
		return err
	}
	s.log.Info().Msg("progress and wrong answers reset")
	return nil
}
