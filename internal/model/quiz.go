package model

import "time"

// Answer is one selectable option of a question.  IsCorrect is only exposed
// on the full quiz shape; the play view strips it.
type Answer struct {
	ID        uint64 `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a multiple-choice question with an ordered answer list.
type Question struct {
	ID      uint64   `json:"id"`
	Text    string   `json:"text"`
	Answers []Answer `json:"answers"`
}

// Quiz is the aggregate stored by the quiz store.  AuthorID is zero for
// quizzes created without attribution; only the author may update or delete
// a quiz, and IsPublished gates visibility in the public listing.
type Quiz struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsPublished bool       `json:"isPublished"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	AuthorID    uint64     `json:"authorId,omitempty"`
}

// PlayAnswer and PlayQuestion narrow the quiz shape for players: the same
// structure minus every correctness flag, so solutions never leak.
type PlayAnswer struct {
	ID   uint64 `json:"id"`
	Text string `json:"text"`
}

type PlayQuestion struct {
	ID      uint64       `json:"id"`
	Text    string       `json:"text"`
	Answers []PlayAnswer `json:"answers"`
}

// PlayQuiz is what GET /quizzes/:id/play returns.
type PlayQuiz struct {
	ID          uint64         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	IsPublished bool           `json:"isPublished"`
	Questions   []PlayQuestion `json:"questions"`
	CreatedAt   time.Time      `json:"createdAt"`
	AuthorID    uint64         `json:"authorId,omitempty"`
}

// AnswerInput and QuestionInput describe nested content supplied by clients.
// The ID fields only matter on update: an item carrying an existing non-zero
// id keeps it, while id zero draws a fresh one from the store's counters.
type AnswerInput struct {
	ID        uint64 `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionInput struct {
	ID      uint64        `json:"id"`
	Text    string        `json:"text"`
	Answers []AnswerInput `json:"answers"`
}

// CreateQuizInput is the payload for creating a quiz.  IsPublished is a
// pointer so an omitted flag defaults to false without conflating "absent"
// with an explicit false.
type CreateQuizInput struct {
	Title       string
	Description string
	IsPublished *bool
	Questions   []QuestionInput
}

// UpdateQuizInput carries a partial update.  Nil fields mean "leave the
// current value untouched"; non-nil fields overwrite, including explicit
// empty strings and false.  A nil Questions slice keeps the existing
// questions; a non-nil one (even empty) replaces them.
type UpdateQuizInput struct {
	Title       *string
	Description *string
	IsPublished *bool
	Questions   []QuestionInput
}

// SubmittedAnswer is one player selection: the question being answered and
// the chosen answer id.
type SubmittedAnswer struct {
	QuestionID uint64 `json:"questionId"`
	AnswerID   uint64 `json:"answerId"`
}

// QuestionResult details the outcome for a single question.  The id fields
// are signed so -1 can mark "no answer submitted" and "no correct answer
// designated" respectively.
type QuestionResult struct {
	QuestionID       uint64 `json:"questionId"`
	SelectedAnswerID int64  `json:"selectedAnswerId"`
	CorrectAnswerID  int64  `json:"correctAnswerId"`
	IsCorrect        bool   `json:"isCorrect"`
}

// QuizResult aggregates a scored submission.  Score is a percentage and is
// defined as 0 for a quiz without questions.
type QuizResult struct {
	QuizID         uint64           `json:"quizId"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	Score          float64          `json:"score"`
	Details        []QuestionResult `json:"details"`
}

// GeneratedAnswer and GeneratedQuestion are the shapes produced by the AI
// question generator.  They carry no ids; ids are assigned when the client
// saves the questions into a quiz.
type GeneratedAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type GeneratedQuestion struct {
	Text    string            `json:"text"`
	Answers []GeneratedAnswer `json:"answers"`
}
