package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge-go/internal/model"
)

func scoringQuiz() *model.Quiz {
	return &model.Quiz{
		ID: 1,
		Questions: []model.Question{
			{ID: 10, Answers: []model.Answer{
				{ID: 100, Text: "Paris", IsCorrect: true},
				{ID: 101, Text: "Lyon"},
			}},
			{ID: 11, Answers: []model.Answer{
				{ID: 110, Text: "2"},
				{ID: 111, Text: "4", IsCorrect: true},
			}},
		},
	}
}

func TestScoreAllCorrect(t *testing.T) {
	res := Score(scoringQuiz(), []model.SubmittedAnswer{
		{QuestionID: 10, AnswerID: 100},
		{QuestionID: 11, AnswerID: 111},
	})
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 2, res.CorrectAnswers)
	assert.Equal(t, 100.0, res.Score)
}

func TestScoreNoneCorrect(t *testing.T) {
	res := Score(scoringQuiz(), []model.SubmittedAnswer{
		{QuestionID: 10, AnswerID: 101},
		{QuestionID: 11, AnswerID: 110},
	})
	assert.Equal(t, 0, res.CorrectAnswers)
	assert.Equal(t, 0.0, res.Score)
}

func TestScoreUnansweredCountsAsWrong(t *testing.T) {
	res := Score(scoringQuiz(), []model.SubmittedAnswer{
		{QuestionID: 10, AnswerID: 100},
	})
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 50.0, res.Score)

	require.Len(t, res.Details, 2)
	unanswered := res.Details[1]
	assert.Equal(t, uint64(11), unanswered.QuestionID)
	assert.Equal(t, int64(-1), unanswered.SelectedAnswerID)
	assert.Equal(t, int64(111), unanswered.CorrectAnswerID)
	assert.False(t, unanswered.IsCorrect)
}

func TestScoreIgnoresUnknownQuestions(t *testing.T) {
	// Submissions for questions the quiz does not contain are dropped; the
	// result is driven by the quiz's question list alone.
	res := Score(scoringQuiz(), []model.SubmittedAnswer{
		{QuestionID: 99, AnswerID: 100},
		{QuestionID: 10, AnswerID: 100},
		{QuestionID: 11, AnswerID: 111},
	})
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 2, res.CorrectAnswers)
	assert.Len(t, res.Details, 2)
}

func TestScoreEmptyQuizHasNoDivisionByZero(t *testing.T) {
	res := Score(&model.Quiz{ID: 5}, nil)
	assert.Equal(t, 0, res.TotalQuestions)
	assert.Equal(t, 0, res.CorrectAnswers)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Details)
}

func TestScoreQuestionWithoutCorrectAnswer(t *testing.T) {
	quiz := &model.Quiz{
		ID: 2,
		Questions: []model.Question{
			{ID: 20, Answers: []model.Answer{{ID: 200, Text: "a"}, {ID: 201, Text: "b"}}},
		},
	}

	// Selecting anything cannot match the -1 sentinel.
	res := Score(quiz, []model.SubmittedAnswer{{QuestionID: 20, AnswerID: 200}})
	require.Len(t, res.Details, 1)
	assert.Equal(t, int64(-1), res.Details[0].CorrectAnswerID)
	assert.False(t, res.Details[0].IsCorrect)

	// Leaving it unanswered compares -1 == -1 and counts as correct; the
	// established contract, odd as it is.
	res = Score(quiz, nil)
	assert.True(t, res.Details[0].IsCorrect)
	assert.Equal(t, 100.0, res.Score)
}
