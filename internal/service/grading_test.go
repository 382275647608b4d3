package service

import (
	"testing"

	"mentorlab/internal/domain"

	"github.com/stretchr/testify/assert"
)

func quizContentWithN(n int) *domain.QuizContent {
	content := &domain.QuizContent{}
	for i := 0; i < n; i++ {
		content.Questions = append(content.Questions, domain.Question{
			Text:          "question",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Explanation:   "because",
		})
	}
	return content
}

func TestGradeAllCorrect(t *testing.T) {
	content := quizContentWithN(5)
	answers := domain.AnswerSet{}
	for i, q := range content.Questions {
		answers[domain.AnswerKey(i)] = q.CorrectAnswer
	}

	score, total := Grade(content, answers)
	assert.Equal(t, 5, score)
	assert.Equal(t, 5, total)
}

func TestGradeEmptyAnswerSet(t *testing.T) {
	content := quizContentWithN(7)

	score, total := Grade(content, domain.AnswerSet{})
	assert.Equal(t, 0, score)
	assert.Equal(t, 7, total)
}

func TestGradePartialAndWrongAnswers(t *testing.T) {
	content := quizContentWithN(4)
	answers := domain.AnswerSet{
		"q0": content.Questions[0].CorrectAnswer,           // correct
		"q1": (content.Questions[1].CorrectAnswer + 1) % 4, // wrong
		// q2 unanswered
		"q3": content.Questions[3].CorrectAnswer, // correct
	}

	score, total := Grade(content, answers)
	assert.Equal(t, 2, score)
	assert.Equal(t, 4, total)
}

func TestGradeIgnoresOutOfRangeKeys(t *testing.T) {
	content := quizContentWithN(2)
	answers := domain.AnswerSet{
		"q0": content.Questions[0].CorrectAnswer,
		"q2": 1, // quiz only has indices 0 and 1
		"q9": 3,
	}

	score, total := Grade(content, answers)
	assert.Equal(t, 1, score)
	assert.Equal(t, 2, total)
}

func TestGradeEmptyQuiz(t *testing.T) {
	score, total := Grade(&domain.QuizContent{}, domain.AnswerSet{"q0": 0})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, total)
}
