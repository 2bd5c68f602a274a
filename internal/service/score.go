package service

import "github.com/quizforge/quizforge-go/internal/model"

// Score grades a submission against a quiz.  It iterates the quiz's
// questions, never the submitted answers: submissions for questions the
// quiz does not contain are ignored, and unanswered questions count as
// wrong.  When more than one answer is submitted for the same question the
// first one wins.
//
// The -1 sentinels mark "nothing submitted" and "no answer designated
// correct"; a question is correct iff the selected id equals the designated
// id.  The aggregate score is correct/total as a percentage, defined as 0
// for a quiz without questions.
func Score(quiz *model.Quiz, submitted []model.SubmittedAnswer) *model.QuizResult {
	details := make([]model.QuestionResult, 0, len(quiz.Questions))
	correct := 0

	for _, question := range quiz.Questions {
		selectedID := int64(-1)
		for _, a := range submitted {
			if a.QuestionID == question.ID {
				selectedID = int64(a.AnswerID)
				break
			}
		}

		correctID := int64(-1)
		for _, a := range question.Answers {
			if a.IsCorrect {
				correctID = int64(a.ID)
				break
			}
		}

		// Plain id equality, sentinels included: an unanswered question on a
		// quiz that never designated a correct answer compares -1 == -1 and
		// counts as correct.  Odd, but it is the established contract.
		isCorrect := selectedID == correctID
		if isCorrect {
			correct++
		}
		details = append(details, model.QuestionResult{
			QuestionID:       question.ID,
			SelectedAnswerID: selectedID,
			CorrectAnswerID:  correctID,
			IsCorrect:        isCorrect,
		})
	}

	total := len(quiz.Questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}
	return &model.QuizResult{
		QuizID:         quiz.ID,
		TotalQuestions: total,
		CorrectAnswers: correct,
		Score:          score,
		Details:        details,
	}
}
