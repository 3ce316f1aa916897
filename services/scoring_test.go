package services

import (
	"lams/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func eq(questionID uint, marks float64) models.ExamQuestion {
	return models.ExamQuestion{QuestionID: questionID, Marks: marks}
}

func correctAnswer(questionID uint) models.StudentAnswer {
	return models.StudentAnswer{QuestionID: questionID, IsCorrect: true}
}

func TestScoreAttemptFullMarks(t *testing.T) {
	questions := []models.ExamQuestion{eq(1, 50), eq(2, 50)}
	answers := []models.StudentAnswer{correctAnswer(1), correctAnswer(2)}

	s := ScoreAttempt(questions, answers, 2)

	assert.Equal(t, 2, s.CorrectAnswers)
	assert.Equal(t, 100.0, s.ObtainedMarks)
	assert.Equal(t, 100.0, s.MaxMarks)
	assert.Equal(t, 100.0, s.ScorePercentage)
	assert.True(t, s.Passed)
}

// max_questions may exceed the attached question rows; the attempt maximum is
// normalized from the average mark, not the actual rows.
func TestScoreAttemptNormalizedMaxMarks(t *testing.T) {
	questions := []models.ExamQuestion{eq(1, 10), eq(2, 10)}
	answers := []models.StudentAnswer{correctAnswer(1), correctAnswer(2)}

	s := ScoreAttempt(questions, answers, 4)

	assert.Equal(t, 20.0, s.ObtainedMarks)
	assert.Equal(t, 40.0, s.MaxMarks)
	assert.Equal(t, 50.0, s.ScorePercentage)
	assert.True(t, s.Passed)
}

func TestScoreAttemptNoQuestions(t *testing.T) {
	s := ScoreAttempt(nil, nil, 5)

	assert.Equal(t, 0.0, s.MaxMarks)
	assert.Equal(t, 0.0, s.ScorePercentage)
	assert.False(t, s.Passed)
}

func TestScoreAttemptWrongAnswersScoreNothing(t *testing.T) {
	questions := []models.ExamQuestion{eq(1, 25), eq(2, 25)}
	answers := []models.StudentAnswer{
		{QuestionID: 1, IsCorrect: false},
		correctAnswer(2),
	}

	s := ScoreAttempt(questions, answers, 2)

	assert.Equal(t, 1, s.CorrectAnswers)
	assert.Equal(t, 25.0, s.ObtainedMarks)
	assert.Equal(t, 50.0, s.ScorePercentage)
}

func TestScoreAttemptPassThresholdBoundary(t *testing.T) {
	questions := []models.ExamQuestion{eq(1, 40), eq(2, 60)}

	passing := ScoreAttempt(questions, []models.StudentAnswer{correctAnswer(1)}, 2)
	assert.Equal(t, 40.0, passing.ScorePercentage)
	assert.True(t, passing.Passed)

	failing := ScoreAttempt(questions, nil, 2)
	assert.Equal(t, 0.0, failing.ScorePercentage)
	assert.False(t, failing.Passed)
}

func TestScoreAttemptPercentageRounding(t *testing.T) {
	questions := []models.ExamQuestion{eq(1, 1), eq(2, 1), eq(3, 1)}
	answers := []models.StudentAnswer{correctAnswer(1)}

	s := ScoreAttempt(questions, answers, 3)

	// 1/3 of the marks: 33.333... rounds to 33.33
	assert.Equal(t, 33.33, s.ScorePercentage)
	assert.GreaterOrEqual(t, s.ScorePercentage, 0.0)
	assert.LessOrEqual(t, s.ScorePercentage, 100.0)
}
