package service

import (
	"encoding/json"
	"testing"

	"lingua_backend/internal/model"
	"lingua_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(qType model.QuestionType, correctAnswer string) *model.Question {
	q := &model.Question{
		Type:          qType,
		CorrectAnswer: []byte(correctAnswer),
		XPReward:      10,
	}
	q.ID = "q-1"
	return q
}

func TestEvaluateTextTypes(t *testing.T) {
	textTypes := []model.QuestionType{
		model.QuestionMultipleChoice,
		model.QuestionFillBlank,
		model.QuestionTranslation,
		model.QuestionListenType,
		model.QuestionSpeakRecord,
	}

	cases := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"exact match", `"bonjour"`, true},
		{"case insensitive", `"Bonjour"`, true},
		{"surrounding whitespace", `"  bonjour \n"`, true},
		{"wrong answer", `"au revoir"`, false},
		{"empty string", `""`, false},
		{"wrong JSON shape", `["bonjour"]`, false},
	}

	for _, qType := range textTypes {
		for _, tc := range cases {
			t.Run(string(qType)+"/"+tc.name, func(t *testing.T) {
				q := question(qType, `"bonjour"`)
				res, err := Evaluate(q, json.RawMessage(tc.submitted))
				require.NoError(t, err)
				assert.Equal(t, tc.correct, res.IsCorrect)
				assert.Equal(t, tc.correct, res.XPEligible)
			})
		}
	}
}

func TestEvaluateAbsentSubmission(t *testing.T) {
	// A missing answer is a normal grading outcome, never an error.
	for _, submitted := range []json.RawMessage{nil, {}, []byte("null"), []byte("  null  ")} {
		q := question(model.QuestionFillBlank, `"chat"`)
		res, err := Evaluate(q, submitted)
		require.NoError(t, err)
		assert.False(t, res.IsCorrect)
		assert.False(t, res.XPEligible)
	}
}

func TestEvaluateMatchPairs(t *testing.T) {
	key := `[{"left":"chien","right":"dog"},{"left":"chat","right":"cat"}]`

	cases := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"all pairs matched", key, true},
		{"order differs", `[{"left":"chat","right":"cat"},{"left":"chien","right":"dog"}]`, true},
		{"one wrong pairing", `[{"left":"chien","right":"cat"},{"left":"chat","right":"dog"}]`, false},
		{"missing pair", `[{"left":"chien","right":"dog"}]`, false},
		{"empty right side", `[{"left":"chien","right":"dog"},{"left":"chat","right":""}]`, false},
		{"unknown left side", `[{"left":"chien","right":"dog"},{"left":"vache","right":"cat"}]`, false},
		{"duplicated left side", `[{"left":"chien","right":"dog"},{"left":"chien","right":"dog"}]`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := question(model.QuestionMatchPairs, key)
			res, err := Evaluate(q, json.RawMessage(tc.submitted))
			require.NoError(t, err)
			assert.Equal(t, tc.correct, res.IsCorrect)
		})
	}
}

func TestEvaluateWordOrder(t *testing.T) {
	key := `["je","suis","content"]`

	cases := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"correct order", `["je","suis","content"]`, true},
		{"wrong order", `["suis","je","content"]`, false},
		{"too few words", `["je","suis"]`, false},
		{"extra word", `["je","suis","content","!"]`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := question(model.QuestionWordOrder, key)
			res, err := Evaluate(q, json.RawMessage(tc.submitted))
			require.NoError(t, err)
			assert.Equal(t, tc.correct, res.IsCorrect)
		})
	}
}

func TestEvaluateImageSelect(t *testing.T) {
	q := question(model.QuestionImageSelect, `"https://img.example.com/cat.png"`)

	res, err := Evaluate(q, json.RawMessage(`"https://img.example.com/cat.png"`))
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)

	// Image identifiers compare verbatim, no case folding.
	res, err = Evaluate(q, json.RawMessage(`"https://img.example.com/CAT.png"`))
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
}

func TestEvaluateMalformedAnswerKey(t *testing.T) {
	cases := []struct {
		qType model.QuestionType
		key   string
	}{
		{model.QuestionFillBlank, `["not","a","string"]`},
		{model.QuestionMatchPairs, `"not a pair list"`},
		{model.QuestionMatchPairs, `[]`},
		{model.QuestionWordOrder, `{"not":"a list"}`},
		{model.QuestionWordOrder, `[]`},
		{model.QuestionImageSelect, `123`},
	}

	for _, tc := range cases {
		q := question(tc.qType, tc.key)
		_, err := Evaluate(q, json.RawMessage(`"anything"`))
		assert.ErrorIs(t, err, util.ErrMalformedAnswerKey, "type %s key %s", tc.qType, tc.key)
	}
}

func TestEvaluateUnknownType(t *testing.T) {
	q := question("essay", `"whatever"`)
	_, err := Evaluate(q, json.RawMessage(`"whatever"`))
	assert.ErrorIs(t, err, util.ErrUnknownQuestionType)
}

func TestEvaluateXPEligibility(t *testing.T) {
	q := question(model.QuestionFillBlank, `"oui"`)
	q.XPReward = 0

	res, err := Evaluate(q, json.RawMessage(`"oui"`))
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.False(t, res.XPEligible, "zero-reward questions carry no XP")
}
