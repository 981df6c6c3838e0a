package quizController

import (
	"edumart/utils"
	"fmt"

	courseModels "edumart/models/course"
)

// SubmittedAnswer is one (question, option) pair from a quiz submission
type SubmittedAnswer struct {
	QuestionID     uint `json:"question_id"`
	AnswerOptionID uint `json:"answer_option_id"`
}

// GradeResult is the computed outcome of a submission
type GradeResult struct {
	CorrectCount   int
	TotalQuestions int
	Score          float64 // 0-100, two decimals
	Accepted       []SubmittedAnswer
}

// GradeQuiz scores a submission against the quiz's questions. Only the
// first answer for a question counts; later duplicates are dropped.
// Unanswered questions contribute zero. An option claimed for a question
// it does not belong to fails the whole submission.
func GradeQuiz(questions []courseModels.Question, answers []SubmittedAnswer) (GradeResult, error) {
	result := GradeResult{TotalQuestions: len(questions)}
	if len(questions) == 0 {
		return result, fmt.Errorf("quiz has no questions")
	}

	type optionInfo struct {
		questionID uint
		isCorrect  bool
	}
	options := make(map[uint]optionInfo)
	questionIDs := make(map[uint]bool, len(questions))
	for _, q := range questions {
		questionIDs[q.ID] = true
		for _, opt := range q.Options {
			options[opt.ID] = optionInfo{questionID: q.ID, isCorrect: opt.IsCorrect}
		}
	}

	answered := make(map[uint]bool, len(answers))
	for _, ans := range answers {
		if !questionIDs[ans.QuestionID] {
			return GradeResult{}, fmt.Errorf("question %d does not belong to this quiz", ans.QuestionID)
		}
		if answered[ans.QuestionID] {
			// First answer wins
			continue
		}

		opt, ok := options[ans.AnswerOptionID]
		if !ok || opt.questionID != ans.QuestionID {
			return GradeResult{}, fmt.Errorf("answer option %d does not belong to question %d", ans.AnswerOptionID, ans.QuestionID)
		}

		answered[ans.QuestionID] = true
		result.Accepted = append(result.Accepted, ans)
		if opt.isCorrect {
			result.CorrectCount++
		}
	}

	result.Score = utils.Round2(100 * float64(result.CorrectCount) / float64(result.TotalQuestions))
	return result, nil
}
