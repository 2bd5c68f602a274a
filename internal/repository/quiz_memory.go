package repository

import (
	"context"
	"sync"
	"time"

	"github.com/quizforge/quizforge-go/internal/model"
)

// MemoryQuizStore keeps quizzes in a process-local slice in insertion order.
// Three counters hand out quiz, question and answer ids; they are scoped to
// the store and never reused, even after a delete.  Updates swap in a fresh
// Quiz value instead of mutating the stored one, so readers holding a
// pointer from a previous lookup keep seeing a consistent snapshot.
type MemoryQuizStore struct {
	mu             sync.RWMutex
	quizzes        []*model.Quiz
	nextQuizID     uint64
	nextQuestionID uint64
	nextAnswerID   uint64
}

// NewMemoryQuizStore constructs an empty store with all counters at 1.
func NewMemoryQuizStore() *MemoryQuizStore {
	return &MemoryQuizStore{nextQuizID: 1, nextQuestionID: 1, nextAnswerID: 1}
}

// buildQuestions materializes question inputs, keeping non-zero ids and
// assigning fresh ones otherwise.  Callers must hold the write lock.
func (s *MemoryQuizStore) buildQuestions(in []model.QuestionInput) []model.Question {
	questions := make([]model.Question, 0, len(in))
	for _, q := range in {
		qid := q.ID
		if qid == 0 {
			qid = s.nextQuestionID
			s.nextQuestionID++
		}
		answers := make([]model.Answer, 0, len(q.Answers))
		for _, a := range q.Answers {
			aid := a.ID
			if aid == 0 {
				aid = s.nextAnswerID
				s.nextAnswerID++
			}
			answers = append(answers, model.Answer{ID: aid, Text: a.Text, IsCorrect: a.IsCorrect})
		}
		questions = append(questions, model.Question{ID: qid, Text: q.Text, Answers: answers})
	}
	return questions
}

// Create inserts a new quiz.  All nested ids are freshly assigned here; ids
// carried in the input are only honored by Update, so clients cannot forge
// them at creation time.
func (s *MemoryQuizStore) Create(ctx context.Context, in model.CreateQuizInput, authorID uint64) (*model.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Strip any client-supplied ids before materializing.
	inputs := make([]model.QuestionInput, len(in.Questions))
	for i, q := range in.Questions {
		inputs[i] = model.QuestionInput{Text: q.Text, Answers: make([]model.AnswerInput, len(q.Answers))}
		for j, a := range q.Answers {
			inputs[i].Answers[j] = model.AnswerInput{Text: a.Text, IsCorrect: a.IsCorrect}
		}
	}

	published := false
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	quiz := &model.Quiz{
		ID:          s.nextQuizID,
		Title:       in.Title,
		Description: in.Description,
		IsPublished: published,
		Questions:   s.buildQuestions(inputs),
		CreatedAt:   time.Now().UTC(),
		AuthorID:    authorID,
	}
	s.nextQuizID++
	s.quizzes = append(s.quizzes, quiz)
	return quiz, nil
}

// FindAll returns every quiz in insertion order.
func (s *MemoryQuizStore) FindAll(ctx context.Context) ([]*model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Quiz, len(s.quizzes))
	copy(out, s.quizzes)
	return out, nil
}

// FindPublished filters to quizzes visible in the public listing.
func (s *MemoryQuizStore) FindPublished(ctx context.Context) ([]*model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Quiz, 0)
	for _, q := range s.quizzes {
		if q.IsPublished {
			out = append(out, q)
		}
	}
	return out, nil
}

// FindByAuthor returns the author's quizzes, drafts included.
func (s *MemoryQuizStore) FindByAuthor(ctx context.Context, authorID uint64) ([]*model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Quiz, 0)
	for _, q := range s.quizzes {
		if q.AuthorID == authorID {
			out = append(out, q)
		}
	}
	return out, nil
}

// FindOne returns the quiz or *QuizNotFoundError naming the id.
func (s *MemoryQuizStore) FindOne(ctx context.Context, id uint64) (*model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(id)
}

func (s *MemoryQuizStore) findLocked(id uint64) (*model.Quiz, error) {
	for _, q := range s.quizzes {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, &QuizNotFoundError{ID: id}
}

// FindOneForPlay returns the quiz with every answer's correctness flag
// stripped, so players never see the solution set.
func (s *MemoryQuizStore) FindOneForPlay(ctx context.Context, id uint64) (*model.PlayQuiz, error) {
	quiz, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	questions := make([]model.PlayQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers := make([]model.PlayAnswer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = model.PlayAnswer{ID: a.ID, Text: a.Text}
		}
		questions[i] = model.PlayQuestion{ID: q.ID, Text: q.Text, Answers: answers}
	}
	return &model.PlayQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		IsPublished: quiz.IsPublished,
		Questions:   questions,
		CreatedAt:   quiz.CreatedAt,
		AuthorID:    quiz.AuthorID,
	}, nil
}

// IsOwner reports whether the quiz belongs to userID.  A missing quiz is an
// error, not "false", so handlers answer 404 before 403.
func (s *MemoryQuizStore) IsOwner(ctx context.Context, quizID, userID uint64) (bool, error) {
	quiz, err := s.FindOne(ctx, quizID)
	if err != nil {
		return false, err
	}
	return quiz.AuthorID != 0 && quiz.AuthorID == userID, nil
}

// Update applies a partial patch.  Nil pointer fields leave the current
// value untouched; non-nil ones overwrite, explicit empty/false included.
// When questions are supplied, items keep their existing non-zero ids and
// new items draw from the shared counters, so incremental edits do not
// renumber untouched content.
func (s *MemoryQuizStore) Update(ctx context.Context, id uint64, in model.UpdateQuizInput) (*model.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, q := range s.quizzes {
		if q.ID != id {
			continue
		}
		updated := *q
		if in.Title != nil {
			updated.Title = *in.Title
		}
		if in.Description != nil {
			updated.Description = *in.Description
		}
		if in.IsPublished != nil {
			updated.IsPublished = *in.IsPublished
		}
		if in.Questions != nil {
			updated.Questions = s.buildQuestions(in.Questions)
		}
		s.quizzes[i] = &updated
		return &updated, nil
	}
	return nil, &QuizNotFoundError{ID: id}
}

// Remove excises the quiz from the collection.  Counters are untouched, so
// the freed id is never handed out again.
func (s *MemoryQuizStore) Remove(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, q := range s.quizzes {
		if q.ID == id {
			s.quizzes = append(s.quizzes[:i], s.quizzes[i+1:]...)
			return nil
		}
	}
	return &QuizNotFoundError{ID: id}
}
