package services

import (
	"testing"

	"studyhub/models"
)

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		Questions: []models.QuizQuestion{
			{Prompt: "2+2?", Options: []string{"3", "4", "5", "6"}, Answer: 1},
			{Prompt: "Capital of France?", Options: []string{"Paris", "Lyon", "Nice", "Lille"}, Answer: 0},
		},
	}
}

func TestGradeAnswerCorrect(t *testing.T) {
	quiz := sampleQuiz()

	correct, err := gradeAnswer(quiz, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !correct {
		t.Error("expected choice 1 on question 0 to be correct")
	}

	correct, err = gradeAnswer(quiz, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if correct {
		t.Error("expected choice 2 on question 1 to be wrong")
	}
}

func TestGradeAnswerOutOfRange(t *testing.T) {
	quiz := sampleQuiz()

	for _, idx := range []int{-1, 2, 100} {
		if _, err := gradeAnswer(quiz, idx, 0); err != ErrQuestionOutOfRange {
			t.Errorf("expected ErrQuestionOutOfRange for index %d, got %v", idx, err)
		}
	}
}
