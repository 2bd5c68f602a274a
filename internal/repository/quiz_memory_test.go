package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge-go/internal/model"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func sampleInput(title string) model.CreateQuizInput {
	return model.CreateQuizInput{
		Title: title,
		Questions: []model.QuestionInput{
			{
				Text: "Capital of France?",
				Answers: []model.AnswerInput{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
				},
			},
		},
	}
}

func TestQuizCreateAssignsNestedIDs(t *testing.T) {
	s := NewMemoryQuizStore()
	q, err := s.Create(context.Background(), sampleInput("Geo"), 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), q.ID)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, uint64(1), q.Questions[0].ID)
	require.Len(t, q.Questions[0].Answers, 2)
	assert.Equal(t, uint64(1), q.Questions[0].Answers[0].ID)
	assert.Equal(t, uint64(2), q.Questions[0].Answers[1].ID)
	assert.False(t, q.IsPublished, "published must default to false")
	assert.Equal(t, uint64(1), q.AuthorID)
}

func TestQuizIDsNeverReused(t *testing.T) {
	s := NewMemoryQuizStore()
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := s.Create(ctx, model.CreateQuizInput{Title: title}, 0)
		require.NoError(t, err)
	}
	require.NoError(t, s.Remove(ctx, 2))

	d, err := s.Create(ctx, model.CreateQuizInput{Title: "D"}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), d.ID, "deleted ids must not be handed out again")

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	ids := make([]uint64, len(all))
	for i, q := range all {
		ids[i] = q.ID
	}
	assert.Equal(t, []uint64{1, 3, 4}, ids)
}

func TestQuizFindFilters(t *testing.T) {
	s := NewMemoryQuizStore()
	ctx := context.Background()

	_, err := s.Create(ctx, model.CreateQuizInput{Title: "draft"}, 1)
	require.NoError(t, err)
	_, err = s.Create(ctx, model.CreateQuizInput{Title: "live", IsPublished: boolPtr(true)}, 1)
	require.NoError(t, err)
	_, err = s.Create(ctx, model.CreateQuizInput{Title: "other", IsPublished: boolPtr(true)}, 2)
	require.NoError(t, err)

	published, err := s.FindPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "live", published[0].Title)
	assert.Equal(t, "other", published[1].Title)

	mine, err := s.FindByAuthor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "draft", mine[0].Title)
}

func TestQuizFindOneMissNamesID(t *testing.T) {
	s := NewMemoryQuizStore()
	_, err := s.FindOne(context.Background(), 77)
	var nf *QuizNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint64(77), nf.ID)
	assert.Contains(t, nf.Error(), "77")
}

func TestQuizPlayViewStripsCorrectness(t *testing.T) {
	s := NewMemoryQuizStore()
	q, err := s.Create(context.Background(), sampleInput("Geo"), 0)
	require.NoError(t, err)

	play, err := s.FindOneForPlay(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, play.Questions, 1)
	assert.Equal(t, q.Questions[0].Answers[0].ID, play.Questions[0].Answers[0].ID)

	raw, err := json.Marshal(play)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "isCorrect")
}

func TestQuizUpdateEmptyPatchIsNoOp(t *testing.T) {
	s := NewMemoryQuizStore()
	ctx := context.Background()
	q, err := s.Create(ctx, sampleInput("Geo"), 1)
	require.NoError(t, err)
	before, err := json.Marshal(q)
	require.NoError(t, err)

	updated, err := s.Update(ctx, q.ID, model.UpdateQuizInput{})
	require.NoError(t, err)
	after, err := json.Marshal(updated)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestQuizUpdatePartialFields(t *testing.T) {
	s := NewMemoryQuizStore()
	ctx := context.Background()
	q, err := s.Create(ctx, sampleInput("Geo"), 1)
	require.NoError(t, err)

	updated, err := s.Update(ctx, q.ID, model.UpdateQuizInput{
		Title:       strPtr("Geography"),
		IsPublished: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Geography", updated.Title)
	assert.True(t, updated.IsPublished)
	assert.Equal(t, q.Questions, updated.Questions, "absent questions stay untouched")

	// An explicit false is an overwrite, not "absent".
	updated, err = s.Update(ctx, q.ID, model.UpdateQuizInput{IsPublished: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsPublished)
	assert.Equal(t, "Geography", updated.Title)
}

func TestQuizUpdateKeepsExistingQuestionIDs(t *testing.T) {
	s := NewMemoryQuizStore()
	ctx := context.Background()
	q, err := s.Create(ctx, sampleInput("Geo"), 1)
	require.NoError(t, err)
	existing := q.Questions[0]

	updated, err := s.Update(ctx, q.ID, model.UpdateQuizInput{
		Questions: []model.QuestionInput{
			{
				ID:   existing.ID,
				Text: "Capital of France, really?",
				Answers: []model.AnswerInput{
					{ID: existing.Answers[0].ID, Text: "Paris", IsCorrect: true},
					{Text: "Marseille"},
				},
			},
			{
				Text: "Largest ocean?",
				Answers: []model.AnswerInput{
					{Text: "Pacific", IsCorrect: true},
					{Text: "Atlantic"},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Questions, 2)

	// Untouched items keep their ids, new ones continue the counters.
	assert.Equal(t, existing.ID, updated.Questions[0].ID)
	assert.Equal(t, existing.Answers[0].ID, updated.Questions[0].Answers[0].ID)
	assert.Greater(t, updated.Questions[0].Answers[1].ID, existing.Answers[1].ID)
	assert.Greater(t, updated.Questions[1].ID, existing.ID)
}

func TestQuizIsOwner(t *testing.T) {
	s := NewMemoryQuizStore()
	ctx := context.Background()
	q, err := s.Create(ctx, model.CreateQuizInput{Title: "mine"}, 7)
	require.NoError(t, err)
	anon, err := s.Create(ctx, model.CreateQuizInput{Title: "anon"}, 0)
	require.NoError(t, err)

	owner, err := s.IsOwner(ctx, q.ID, 7)
	require.NoError(t, err)
	assert.True(t, owner)

	owner, err = s.IsOwner(ctx, q.ID, 8)
	require.NoError(t, err)
	assert.False(t, owner)

	// Unattributed quizzes belong to nobody.
	owner, err = s.IsOwner(ctx, anon.ID, 7)
	require.NoError(t, err)
	assert.False(t, owner)

	_, err = s.IsOwner(ctx, 999, 7)
	var nf *QuizNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestQuizRemove(t *testing.T) {
	s := NewMemoryQuizStore()
	ctx := context.Background()
	q, err := s.Create(ctx, model.CreateQuizInput{Title: "gone"}, 0)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, q.ID))
	_, err = s.FindOne(ctx, q.ID)
	var nf *QuizNotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, s.Remove(ctx, q.ID), &nf)
}
