package bank

import (
	"regexp"
	"strings"

	"github.com/hbing/bingsprint/internal/model"
)

// SkipReason explains why a question block was rejected during parsing.
type SkipReason string

const (
	SkipNoAnswerMarker SkipReason = "no_answer_marker"
	SkipNoOptions      SkipReason = "no_options"
	SkipEmptyTitle     SkipReason = "empty_title"
)

// Skip reports one rejected block. Blocks are skipped silently at runtime;
// the reasons exist so tests (and debug logs) can assert on them.
type Skip struct {
	SourceID string
	Reason   SkipReason
}

var (
	// blockMarkerRe splits the source text into question blocks: a block
	// starts at "digits followed by a period" and runs until the next such
	// marker or end of text.
	blockMarkerRe = regexp.MustCompile(`(\d+)\.`)

	// answerRe locates the correct-answer label inside a block. Both the
	// ASCII and the full-width colon occur in the wild.
	answerRe = regexp.MustCompile(`正确答案[:：]\s*([A-D])`)

	// optionMarkerRe marks the start of an option: letter, then an ASCII or
	// full-width period.
	optionMarkerRe = regexp.MustCompile(`([A-D])\s*[.．]\s*`)

	// boilerplateRe is a fixed institutional preamble that leaks into some
	// question titles and is stripped wherever it appears.
	boilerplateRe = regexp.MustCompile(`广东省建筑施工企业.*?题库`)
)

// Parse extracts structured questions from the raw bank text. Malformed
// blocks never abort the parse; they are returned as skips instead.
// Parsing is deterministic: question order follows the document order of
// the digit markers.
func Parse(raw string) ([]model.Question, []Skip) {
	var questions []model.Question
	var skips []Skip

	markers := blockMarkerRe.FindAllStringSubmatchIndex(raw, -1)
	for i, m := range markers {
		id := raw[m[2]:m[3]]
		end := len(raw)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		body := raw[m[1]:end]

		q, skip := parseBlock(id, body)
		if skip != nil {
			skips = append(skips, *skip)
			continue
		}
		questions = append(questions, q)
	}

	return questions, skips
}

// parseBlock turns one "id. body" block into a question, or a skip when the
// block does not have the expected shape.
func parseBlock(id, body string) (model.Question, *Skip) {
	ansLoc := answerRe.FindStringSubmatchIndex(body)
	if ansLoc == nil {
		return model.Question{}, &Skip{SourceID: id, Reason: SkipNoAnswerMarker}
	}
	answer := model.OptionLetter(body[ansLoc[2]:ansLoc[3]])

	// Everything from the answer marker onward is explanation/noise.
	clean := strings.TrimSpace(body[:ansLoc[0]])

	optMarkers := optionMarkerRe.FindAllStringSubmatchIndex(clean, -1)
	options := make(map[model.OptionLetter]string, len(optMarkers))
	for i, om := range optMarkers {
		letter := model.OptionLetter(clean[om[2]:om[3]])
		end := len(clean)
		if i+1 < len(optMarkers) {
			end = optMarkers[i+1][0]
		}
		// Last write wins on duplicate letters, matching document order.
		options[letter] = strings.TrimSpace(clean[om[1]:end])
	}
	if len(options) == 0 {
		return model.Question{}, &Skip{SourceID: id, Reason: SkipNoOptions}
	}

	title := strings.TrimSpace(clean[:optMarkers[0][0]])
	title = strings.TrimSpace(boilerplateRe.ReplaceAllString(title, ""))
	if title == "" {
		return model.Question{}, &Skip{SourceID: id, Reason: SkipEmptyTitle}
	}

	return model.Question{
		ID:      id,
		Title:   title,
		Options: options,
		Answer:  answer,
	}, nil
}
