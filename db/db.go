package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// Collection names used across the service.
const (
	UsersCollection         = "users"
	ReservationsCollection  = "username_reservations"
	NotesCollection         = "notes"
	SummariesCollection     = "summaries"
	FlashcardSetsCollection = "flashcard_sets"
	MindMapsCollection      = "mindmaps"
	PodcastsCollection      = "podcast_scripts"
	QuizzesCollection       = "quizzes"
)

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// Users returns the users collection.
func Users() *mongo.Collection {
	return MongoDatabase.Collection(UsersCollection)
}

// Reservations returns the username reservation collection.
func Reservations() *mongo.Collection {
	return MongoDatabase.Collection(ReservationsCollection)
}

// extractDBName parses the database name from the URI, defaulting to "studyhub"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "studyhub"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "studyhub"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	return ensureIndexes(ctx)
}

// ensureIndexes creates the indexes the service relies on. The
// reservation collection needs none beyond _id; usernameLower on users
// backs the consistency check and notes/quizzes are looked up per user.
func ensureIndexes(ctx context.Context) error {
	_, err := Users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "usernameLower", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "points", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	for _, name := range []string{NotesCollection, SummariesCollection, FlashcardSetsCollection, MindMapsCollection, PodcastsCollection, QuizzesCollection} {
		_, err := MongoDatabase.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create %s index: %w", name, err)
		}
	}
	return nil
}
