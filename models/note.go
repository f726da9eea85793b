package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a raw study note submitted by a user.
type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Summary is an AI-generated summary of a note.
type Summary struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NoteID    primitive.ObjectID `bson:"noteId" json:"noteId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	KeyPoints []string           `bson:"keyPoints" json:"keyPoints"`
	Overview  string             `bson:"overview" json:"overview"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Flashcard is a single front/back study card.
type Flashcard struct {
	Front string `bson:"front" json:"front"`
	Back  string `bson:"back" json:"back"`
}

// FlashcardSet groups the cards generated from one note.
type FlashcardSet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NoteID    primitive.ObjectID `bson:"noteId" json:"noteId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Cards     []Flashcard        `bson:"cards" json:"cards"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MindMapNode is one node of a generated mind map.
type MindMapNode struct {
	Label    string        `bson:"label" json:"label"`
	Children []MindMapNode `bson:"children,omitempty" json:"children,omitempty"`
}

// MindMap is an AI-generated mind map for a note.
type MindMap struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NoteID    primitive.ObjectID `bson:"noteId" json:"noteId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Root      MindMapNode        `bson:"root" json:"root"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PodcastLine is a single line of dialogue in a podcast script.
type PodcastLine struct {
	Speaker string `bson:"speaker" json:"speaker"`
	Text    string `bson:"text" json:"text"`
}

// PodcastScript is an AI-generated two-host podcast script for a note.
type PodcastScript struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NoteID    primitive.ObjectID `bson:"noteId" json:"noteId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Lines     []PodcastLine      `bson:"lines" json:"lines"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
