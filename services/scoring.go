package services

import (
	"lams/models"
	"math"
)

// PassingPercentage is the fixed pass threshold for every exam.
const PassingPercentage = 40.0

// ScoreSummary is the computed outcome of one completed attempt.
type ScoreSummary struct {
	TotalQuestions  int
	CorrectAnswers  int
	ObtainedMarks   float64
	MaxMarks        float64
	ScorePercentage float64
	Passed          bool
}

// ScoreAttempt computes the result of one attempt.
//
// The attempt's maximum marks are normalized: the average mark over the
// exam-question rows is multiplied by the exam's configured max_questions,
// which may differ from the number of rows actually attached. Downstream
// reports depend on this exact formula; do not replace it with an average
// over answered questions.
func ScoreAttempt(examQuestions []models.ExamQuestion, answers []models.StudentAnswer, maxQuestions int) ScoreSummary {
	var totalPossible float64
	for _, eq := range examQuestions {
		totalPossible += eq.Marks
	}

	var avgMarkPerQuestion float64
	if len(examQuestions) > 0 {
		avgMarkPerQuestion = totalPossible / float64(len(examQuestions))
	}
	maxMarks := avgMarkPerQuestion * float64(maxQuestions)

	// Index answers by question for the correctness walk. Re-submissions
	// append rows, so the last stored answer per question wins.
	answered := make(map[uint]models.StudentAnswer, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = a
	}

	correct := 0
	var obtained float64
	for _, eq := range examQuestions {
		if a, ok := answered[eq.QuestionID]; ok && a.IsCorrect {
			correct++
			obtained += eq.Marks
		}
	}

	var pct float64
	if maxMarks > 0 {
		pct = round2(obtained / maxMarks * 100)
	}

	return ScoreSummary{
		TotalQuestions:  maxQuestions,
		CorrectAnswers:  correct,
		ObtainedMarks:   round2(obtained),
		MaxMarks:        round2(maxMarks),
		ScorePercentage: pct,
		Passed:          pct >= PassingPercentage,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
