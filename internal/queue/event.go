// Package queue defines message payloads exchanged over the message broker,
// the publisher used by handlers and the background consumer.
package queue

// QuizSubmittedEvent is published every time a submission is scored.  It
// carries enough information for downstream consumers to log or feed
// analytics without querying the primary store.
type QuizSubmittedEvent struct {
	QuizID         uint64  `json:"quiz_id"`
	Title          string  `json:"title"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Score          float64 `json:"score"`
	SubmittedAt    string  `json:"submitted_at"`
}
