package quizController

import (
	"testing"

	courseModels "edumart/models/course"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func buildQuestion(id uint, optionIDs []uint, correctID uint) courseModels.Question {
	question := courseModels.Question{Model: gorm.Model{ID: id}, Text: "q"}
	for _, optionID := range optionIDs {
		question.Options = append(question.Options, courseModels.AnswerOption{
			Model:      gorm.Model{ID: optionID},
			QuestionID: id,
			IsCorrect:  optionID == correctID,
		})
	}
	return question
}

func TestGradeQuizHalfCorrect(t *testing.T) {
	questions := []courseModels.Question{
		buildQuestion(1, []uint{10, 11}, 10),
		buildQuestion(2, []uint{20, 21}, 20),
	}

	result, err := GradeQuiz(questions, []SubmittedAnswer{
		{QuestionID: 1, AnswerOptionID: 10},
		{QuestionID: 2, AnswerOptionID: 21},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 50.00, result.Score)
}

func TestGradeQuizFirstAnswerWins(t *testing.T) {
	questions := []courseModels.Question{
		buildQuestion(1, []uint{10, 11}, 10),
	}

	// Wrong answer first, then a correct duplicate: the duplicate is dropped
	result, err := GradeQuiz(questions, []SubmittedAnswer{
		{QuestionID: 1, AnswerOptionID: 11},
		{QuestionID: 1, AnswerOptionID: 10},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 0.00, result.Score)
	assert.Len(t, result.Accepted, 1)
	assert.Equal(t, uint(11), result.Accepted[0].AnswerOptionID)
}

func TestGradeQuizOptionFromWrongQuestion(t *testing.T) {
	questions := []courseModels.Question{
		buildQuestion(1, []uint{10, 11}, 10),
		buildQuestion(2, []uint{20, 21}, 20),
	}

	_, err := GradeQuiz(questions, []SubmittedAnswer{
		{QuestionID: 1, AnswerOptionID: 20},
	})

	assert.Error(t, err)
}

func TestGradeQuizUnknownQuestion(t *testing.T) {
	questions := []courseModels.Question{
		buildQuestion(1, []uint{10, 11}, 10),
	}

	_, err := GradeQuiz(questions, []SubmittedAnswer{
		{QuestionID: 99, AnswerOptionID: 10},
	})

	assert.Error(t, err)
}

func TestGradeQuizUnansweredScoreZero(t *testing.T) {
	questions := []courseModels.Question{
		buildQuestion(1, []uint{10, 11}, 10),
	}

	result, err := GradeQuiz(questions, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 0.00, result.Score)
}

func TestGradeQuizEmptyQuiz(t *testing.T) {
	_, err := GradeQuiz(nil, nil)
	assert.Error(t, err)
}

func TestGradeQuizRounding(t *testing.T) {
	questions := []courseModels.Question{
		buildQuestion(1, []uint{10, 11}, 10),
		buildQuestion(2, []uint{20, 21}, 20),
		buildQuestion(3, []uint{30, 31}, 30),
	}

	result, err := GradeQuiz(questions, []SubmittedAnswer{
		{QuestionID: 1, AnswerOptionID: 10},
	})

	assert.NoError(t, err)
	assert.Equal(t, 33.33, result.Score)
}
