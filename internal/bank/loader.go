package bank

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/hbing/bingsprint/internal/config"
	"github.com/hbing/bingsprint/internal/model"
)

// Loader reads and caches the question bank. The source file is parsed once
// and re-read only when its modification time changes; bonus questions are
// appended unconditionally to every load.
type Loader struct {
	bankPath string
	bonus    []model.Question
	log      zerolog.Logger

	mu        sync.Mutex
	questions []model.Question
	modTime   time.Time
	loaded    bool
}

// NewLoader builds a loader for the configured bank and bonus files. The
// bonus fixture is resolved once at construction.
func NewLoader(cfg *config.Config, log zerolog.Logger) *Loader {
	scoped := log.With().Str("component", "bank_loader").Logger()
	return &Loader{
		bankPath: cfg.BankFile,
		bonus:    loadBonus(cfg.BonusFile, scoped),
		log:      scoped,
	}
}

// Questions returns the current bank, reloading it when the source file has
// changed since the last read. A missing or undecodable source file yields a
// bank containing only the bonus questions, never an error.
func (l *Loader) Questions() []model.Question {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.bankPath)
	switch {
	case !l.loaded:
		l.load()
		if err == nil {
			l.modTime = info.ModTime()
		}
	case err == nil && !info.ModTime().Equal(l.modTime):
		l.log.Info().Str("file", l.bankPath).Msg("bank source changed, reloading")
		l.load()
		l.modTime = info.ModTime()
	}

	return l.questions
}

// Reload forces a re-read of the source file regardless of its mtime and
// returns the refreshed bank.
func (l *Loader) Reload() []model.Question {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.load()
	if info, err := os.Stat(l.bankPath); err == nil {
		l.modTime = info.ModTime()
	}
	return l.questions
}

func (l *Loader) load() {
	var parsed []model.Question

	data, err := os.ReadFile(l.bankPath)
	if err != nil {
		l.log.Warn().Err(err).Str("file", l.bankPath).Msg("bank source unavailable, serving bonus questions only")
	} else if content, enc, derr := decodeBank(data); derr != nil {
		l.log.Warn().Err(derr).Str("file", l.bankPath).Msg("bank source undecodable, serving bonus questions only")
	} else {
		var skips []Skip
		parsed, skips = Parse(content)
		l.log.Info().
			Str("encoding", enc).
			Int("questions", len(parsed)).
			Int("skipped", len(skips)).
			Msg("bank parsed")
		for _, s := range skips {
			l.log.Debug().Str("source_id", s.SourceID).Str("reason", string(s.Reason)).Msg("question block skipped")
		}
	}

	l.questions = append(parsed, l.bonus...)
	l.loaded = true
}

// decodeBank tries the candidate encodings in order and returns the first
// clean decode along with the encoding name.
func decodeBank(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}
	if out, err := simplifiedchinese.GBK.NewDecoder().Bytes(data); err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
		return string(out), "gbk", nil
	}
	if out, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data); err == nil && len(out) > 0 {
		return string(out), "gb18030", nil
	}
	return "", "", errors.New("bank file is not valid utf-8, gbk, or gb18030")
}
