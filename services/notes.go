package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studyhub/db"
	"studyhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoteNotFound means the note does not exist or belongs to another user.
var ErrNoteNotFound = errors.New("note not found")

const maxNoteChars = 40000

// CreateNote stores a raw study note and returns its id.
func CreateNote(ctx context.Context, note *models.Note) (string, error) {
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	if len(note.Content) > maxNoteChars {
		note.Content = note.Content[:maxNoteChars]
	}

	result, err := db.GetCollection(db.NotesCollection).InsertOne(ctx, note)
	if err != nil {
		return "", err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("internal server error")
	}
	return id.Hex(), nil
}

// ListNotes returns a user's notes, newest first.
func ListNotes(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Note, error) {
	cursor, err := db.GetCollection(db.NotesCollection).Find(
		ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notes []models.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// NoteBundle is a note together with everything generated from it.
type NoteBundle struct {
	Note          *models.Note           `json:"note"`
	Summaries     []models.Summary       `json:"summaries"`
	FlashcardSets []models.FlashcardSet  `json:"flashcardSets"`
	MindMaps      []models.MindMap       `json:"mindMaps"`
	Podcasts      []models.PodcastScript `json:"podcasts"`
	Quizzes       []models.Quiz          `json:"quizzes"`
}

// GetNoteBundle fetches a note with its generated artifacts, newest
// first within each kind.
func GetNoteBundle(ctx context.Context, userID, noteID primitive.ObjectID) (*NoteBundle, error) {
	note, err := loadOwnedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	bundle := &NoteBundle{Note: note}
	filter := bson.M{"noteId": noteID, "userId": userID}
	sort := options.Find().SetSort(bson.M{"createdAt": -1})

	load := func(collection string, out interface{}) error {
		cursor, err := db.GetCollection(collection).Find(ctx, filter, sort)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, out)
	}

	if err := load(db.SummariesCollection, &bundle.Summaries); err != nil {
		return nil, err
	}
	if err := load(db.FlashcardSetsCollection, &bundle.FlashcardSets); err != nil {
		return nil, err
	}
	if err := load(db.MindMapsCollection, &bundle.MindMaps); err != nil {
		return nil, err
	}
	if err := load(db.PodcastsCollection, &bundle.Podcasts); err != nil {
		return nil, err
	}
	if err := load(db.QuizzesCollection, &bundle.Quizzes); err != nil {
		return nil, err
	}
	return bundle, nil
}

// loadOwnedNote fetches a note and verifies ownership.
func loadOwnedNote(ctx context.Context, userID, noteID primitive.ObjectID) (*models.Note, error) {
	var note models.Note
	err := db.GetCollection(db.NotesCollection).FindOne(ctx, bson.M{"_id": noteID, "userId": userID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// GenerateSummary produces and stores an AI summary for a note, then
// records the gamified action. Gamification failures are swallowed;
// the generated artifact is never lost over them.
func GenerateSummary(ctx context.Context, userID, noteID primitive.ObjectID) (*models.Summary, RecordResult, error) {
	note, err := loadOwnedNote(ctx, userID, noteID)
	if err != nil {
		return nil, RecordResult{}, err
	}

	prompt := fmt.Sprintf(
		`Summarize the following study notes in STRICT JSON with this shape:
{"title": "short title", "keyPoints": ["point", ...], "overview": "2-4 sentence overview"}
Use 4-8 key points. Provide ONLY the JSON output without any additional text.

Notes:
%s`, note.Content)

	text, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return nil, RecordResult{}, fmt.Errorf("summary generation failed: %w", err)
	}

	var parsed struct {
		Title     string   `json:"title"`
		KeyPoints []string `json:"keyPoints"`
		Overview  string   `json:"overview"`
	}
	if err := decodeModelJSON(text, &parsed); err != nil {
		return nil, RecordResult{}, fmt.Errorf("summary response was not valid JSON: %w", err)
	}

	summary := &models.Summary{
		ID:        primitive.NewObjectID(),
		NoteID:    noteID,
		UserID:    userID,
		Title:     parsed.Title,
		KeyPoints: parsed.KeyPoints,
		Overview:  parsed.Overview,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.GetCollection(db.SummariesCollection).InsertOne(ctx, summary); err != nil {
		return nil, RecordResult{}, err
	}

	return summary, RecordAction(ctx, userID, ActionGenerateSummary), nil
}

// GenerateFlashcards produces and stores a flashcard set for a note.
func GenerateFlashcards(ctx context.Context, userID, noteID primitive.ObjectID) (*models.FlashcardSet, RecordResult, error) {
	note, err := loadOwnedNote(ctx, userID, noteID)
	if err != nil {
		return nil, RecordResult{}, err
	}

	prompt := fmt.Sprintf(
		`Create flashcards from the following study notes in STRICT JSON:
{"cards": [{"front": "question or term", "back": "answer or definition"}, ...]}
Create 8-15 cards. Provide ONLY the JSON output without any additional text.

Notes:
%s`, note.Content)

	text, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return nil, RecordResult{}, fmt.Errorf("flashcard generation failed: %w", err)
	}

	var parsed struct {
		Cards []models.Flashcard `json:"cards"`
	}
	if err := decodeModelJSON(text, &parsed); err != nil {
		return nil, RecordResult{}, fmt.Errorf("flashcard response was not valid JSON: %w", err)
	}
	if len(parsed.Cards) == 0 {
		return nil, RecordResult{}, errors.New("model returned no flashcards")
	}

	set := &models.FlashcardSet{
		ID:        primitive.NewObjectID(),
		NoteID:    noteID,
		UserID:    userID,
		Cards:     parsed.Cards,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.GetCollection(db.FlashcardSetsCollection).InsertOne(ctx, set); err != nil {
		return nil, RecordResult{}, err
	}

	return set, RecordAction(ctx, userID, ActionGenerateFlashcards), nil
}

// GenerateMindMap produces and stores a mind map for a note.
func GenerateMindMap(ctx context.Context, userID, noteID primitive.ObjectID) (*models.MindMap, RecordResult, error) {
	note, err := loadOwnedNote(ctx, userID, noteID)
	if err != nil {
		return nil, RecordResult{}, err
	}

	prompt := fmt.Sprintf(
		`Build a mind map of the following study notes in STRICT JSON. A node is
{"label": "text", "children": [node, ...]}. Return a single root node with
2-5 levels of depth. Provide ONLY the JSON output without any additional text.

Notes:
%s`, note.Content)

	text, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return nil, RecordResult{}, fmt.Errorf("mind map generation failed: %w", err)
	}

	var root models.MindMapNode
	if err := decodeModelJSON(text, &root); err != nil {
		return nil, RecordResult{}, fmt.Errorf("mind map response was not valid JSON: %w", err)
	}

	mindMap := &models.MindMap{
		ID:        primitive.NewObjectID(),
		NoteID:    noteID,
		UserID:    userID,
		Root:      root,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.GetCollection(db.MindMapsCollection).InsertOne(ctx, mindMap); err != nil {
		return nil, RecordResult{}, err
	}

	return mindMap, RecordAction(ctx, userID, ActionCreateMindMap), nil
}

// GeneratePodcastScript produces and stores a two-host podcast script
// for a note. Audio rendering happens client-side.
func GeneratePodcastScript(ctx context.Context, userID, noteID primitive.ObjectID) (*models.PodcastScript, RecordResult, error) {
	note, err := loadOwnedNote(ctx, userID, noteID)
	if err != nil {
		return nil, RecordResult{}, err
	}

	prompt := fmt.Sprintf(
		`Write a short two-host study podcast discussing the following notes, in STRICT JSON:
{"title": "episode title", "lines": [{"speaker": "Host A" or "Host B", "text": "..."}, ...]}
Alternate speakers, 12-24 lines total. Provide ONLY the JSON output without any additional text.

Notes:
%s`, note.Content)

	text, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return nil, RecordResult{}, fmt.Errorf("podcast generation failed: %w", err)
	}

	var parsed struct {
		Title string               `json:"title"`
		Lines []models.PodcastLine `json:"lines"`
	}
	if err := decodeModelJSON(text, &parsed); err != nil {
		return nil, RecordResult{}, fmt.Errorf("podcast response was not valid JSON: %w", err)
	}

	script := &models.PodcastScript{
		ID:        primitive.NewObjectID(),
		NoteID:    noteID,
		UserID:    userID,
		Title:     parsed.Title,
		Lines:     parsed.Lines,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.GetCollection(db.PodcastsCollection).InsertOne(ctx, script); err != nil {
		return nil, RecordResult{}, err
	}

	return script, RecordAction(ctx, userID, ActionGeneratePodcast), nil
}
