package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"lingua_backend/internal/model"
	"lingua_backend/internal/util"
)

// MatchPair is one left/right pairing of a match_pairs question, both in the
// stored answer key and in a learner's submission.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// EvaluationResult is the outcome of grading a single submitted answer.
type EvaluationResult struct {
	QuestionID string          `json:"questionId"`
	IsCorrect  bool            `json:"isCorrect"`
	Submitted  json.RawMessage `json:"submitted"`
	XPEligible bool            `json:"xpEligible"`
}

// Evaluate grades one submitted answer against a question's stored answer
// key. It is pure: no I/O, deterministic for the same inputs. A nil, empty
// or JSON-null submission is simply incorrect; a submission whose JSON shape
// does not match the question type grades as incorrect rather than erroring.
// Only a malformed answer key or an unknown question type returns an error.
func Evaluate(q *model.Question, submitted json.RawMessage) (EvaluationResult, error) {
	res := EvaluationResult{
		QuestionID: q.ID,
		Submitted:  submitted,
	}

	key := json.RawMessage(q.CorrectAnswer)

	switch q.Type {
	case model.QuestionMultipleChoice,
		model.QuestionFillBlank,
		model.QuestionTranslation,
		model.QuestionListenType,
		// speak_record has no speech analysis yet; it grades the transcript
		// against the target phrase exactly like the text types.
		model.QuestionSpeakRecord:
		want, err := decodeString(key)
		if err != nil {
			return res, util.ErrMalformedAnswerKey
		}
		got, ok := submittedString(submitted)
		res.IsCorrect = ok && normalize(got) == normalize(want)

	case model.QuestionMatchPairs:
		want, err := decodePairs(key)
		if err != nil || len(want) == 0 {
			return res, util.ErrMalformedAnswerKey
		}
		got, ok := submittedPairs(submitted)
		res.IsCorrect = ok && pairsMatch(got, want)

	case model.QuestionWordOrder:
		want, err := decodeStrings(key)
		if err != nil || len(want) == 0 {
			return res, util.ErrMalformedAnswerKey
		}
		got, ok := submittedStrings(submitted)
		res.IsCorrect = ok && orderMatches(got, want)

	case model.QuestionImageSelect:
		want, err := decodeString(key)
		if err != nil {
			return res, util.ErrMalformedAnswerKey
		}
		// Image answers are URLs/identifiers, compared verbatim.
		got, ok := submittedString(submitted)
		res.IsCorrect = ok && got == want

	default:
		return res, util.ErrUnknownQuestionType
	}

	res.XPEligible = res.IsCorrect && q.XPReward > 0
	return res, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	err := json.Unmarshal(raw, &s)
	return s, err
}

func decodeStrings(raw json.RawMessage) ([]string, error) {
	var list []string
	err := json.Unmarshal(raw, &list)
	return list, err
}

func decodePairs(raw json.RawMessage) ([]MatchPair, error) {
	var pairs []MatchPair
	err := json.Unmarshal(raw, &pairs)
	return pairs, err
}

func submittedString(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", false
	}
	s, err := decodeString(raw)
	return s, err == nil
}

func submittedStrings(raw json.RawMessage) ([]string, bool) {
	if isAbsent(raw) {
		return nil, false
	}
	list, err := decodeStrings(raw)
	return list, err == nil
}

func submittedPairs(raw json.RawMessage) ([]MatchPair, bool) {
	if isAbsent(raw) {
		return nil, false
	}
	pairs, err := decodePairs(raw)
	return pairs, err == nil
}

// pairsMatch reports whether every submitted pair has a non-empty right side
// equal to the key pair sharing the same left side, with every left side of
// the key accounted for exactly once.
func pairsMatch(got, want []MatchPair) bool {
	if len(got) != len(want) {
		return false
	}
	byLeft := make(map[string]string, len(want))
	for _, p := range want {
		byLeft[p.Left] = p.Right
	}
	seen := make(map[string]bool, len(got))
	for _, p := range got {
		if p.Right == "" || seen[p.Left] {
			return false
		}
		seen[p.Left] = true
		right, ok := byLeft[p.Left]
		if !ok || p.Right != right {
			return false
		}
	}
	return true
}

func orderMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, w := range want {
		if got[i] != w {
			return false
		}
	}
	return true
}
