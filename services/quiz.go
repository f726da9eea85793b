package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studyhub/db"
	"studyhub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrQuizNotFound means the quiz does not exist or belongs to another user.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionOutOfRange means the question index is not part of the quiz.
	ErrQuestionOutOfRange = errors.New("question index out of range")
)

// GenerateQuiz produces and stores a multiple-choice quiz for a note.
// Correct answers stay server-side; grading happens in AnswerQuiz.
func GenerateQuiz(ctx context.Context, userID, noteID primitive.ObjectID) (*models.Quiz, error) {
	note, err := loadOwnedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		`Create a multiple-choice quiz from the following study notes in STRICT JSON:
{"questions": [{"prompt": "...", "options": ["...", "...", "...", "..."], "answer": 0}, ...]}
"answer" is the zero-based index of the correct option. Create 5-10 questions
with exactly 4 options each. Provide ONLY the JSON output without any additional text.

Notes:
%s`, note.Content)

	text, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var parsed struct {
		Questions []struct {
			Prompt  string   `json:"prompt"`
			Options []string `json:"options"`
			Answer  int      `json:"answer"`
		} `json:"questions"`
	}
	if err := decodeModelJSON(text, &parsed); err != nil {
		return nil, fmt.Errorf("quiz response was not valid JSON: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, errors.New("model returned no questions")
	}

	questions := make([]models.QuizQuestion, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if len(q.Options) < 2 || q.Answer < 0 || q.Answer >= len(q.Options) {
			continue // drop malformed questions instead of failing the quiz
		}
		questions = append(questions, models.QuizQuestion{
			Prompt:  q.Prompt,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	if len(questions) == 0 {
		return nil, errors.New("model returned no usable questions")
	}

	quiz := &models.Quiz{
		ID:        primitive.NewObjectID(),
		NoteID:    noteID,
		UserID:    userID,
		SessionID: uuid.NewString(),
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.GetCollection(db.QuizzesCollection).InsertOne(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// gradeAnswer checks a choice against the stored answer key.
func gradeAnswer(quiz *models.Quiz, questionIndex, choice int) (bool, error) {
	if questionIndex < 0 || questionIndex >= len(quiz.Questions) {
		return false, ErrQuestionOutOfRange
	}
	return quiz.Questions[questionIndex].Answer == choice, nil
}

// AnswerQuiz grades one answer server-side and, when correct, records
// the quiz-correct-answer action.
func AnswerQuiz(ctx context.Context, userID, quizID primitive.ObjectID, questionIndex, choice int) (bool, RecordResult, error) {
	var quiz models.Quiz
	err := db.GetCollection(db.QuizzesCollection).FindOne(ctx, bson.M{"_id": quizID, "userId": userID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, RecordResult{}, ErrQuizNotFound
		}
		return false, RecordResult{}, err
	}

	correct, err := gradeAnswer(&quiz, questionIndex, choice)
	if err != nil {
		return false, RecordResult{}, err
	}
	if !correct {
		return false, RecordResult{}, nil
	}
	return true, RecordAction(ctx, userID, ActionQuizCorrectAnswer), nil
}

// CompleteQuiz stamps the quiz as finished and records the completion
// action. Completing an already-finished quiz awards nothing.
func CompleteQuiz(ctx context.Context, userID, quizID primitive.ObjectID) (RecordResult, error) {
	res, err := db.GetCollection(db.QuizzesCollection).UpdateOne(
		ctx,
		bson.M{"_id": quizID, "userId": userID, "completedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"completedAt": time.Now().UTC()}},
	)
	if err != nil {
		return RecordResult{}, err
	}
	if res.MatchedCount == 0 {
		return RecordResult{}, ErrQuizNotFound
	}
	return RecordAction(ctx, userID, ActionQuizCompleted), nil
}
