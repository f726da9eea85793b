package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizQuestion is a single multiple-choice question. Answer is the
// index into Options and is stripped from JSON responses so clients
// cannot see it before answering.
type QuizQuestion struct {
	Prompt  string   `bson:"prompt" json:"prompt"`
	Options []string `bson:"options" json:"options"`
	Answer  int      `bson:"answer" json:"-"`
}

// Quiz is an AI-generated quiz over one note.
type Quiz struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NoteID      primitive.ObjectID `bson:"noteId" json:"noteId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	SessionID   string             `bson:"sessionId" json:"sessionId"`
	Questions   []QuizQuestion     `bson:"questions" json:"questions"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}
