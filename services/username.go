package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"studyhub/db"
	"studyhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrInvalidUsername means the requested name fails the format rule.
	ErrInvalidUsername = errors.New("username must be 3-20 characters of letters, digits or underscores")
	// ErrUserNotFound means the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken means the name is reserved by another user.
	ErrUsernameTaken = errors.New("username taken")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidateUsername checks the format rule without touching the store.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// usernameKey case-folds a username into its reservation key.
func usernameKey(username string) string {
	return strings.ToLower(username)
}

// ReserveResult reports the outcome of a username reservation.
type ReserveResult struct {
	FinalUsername string `json:"finalUsername"`
	Changed       bool   `json:"changed"`
}

// ReserveUsername atomically renames a user's public username while
// keeping the global uniqueness invariant: at most one reservation per
// case-folded name, owned by exactly one user.
//
// The whole operation is a single MongoDB transaction with all reads
// before all writes. Renaming to the current name (ignoring case of
// the key) is an idempotent no-op with zero writes. The driver retries
// transient transaction errors itself; logical conflicts surface as
// ErrUsernameTaken and are never retried.
func ReserveUsername(ctx context.Context, userID primitive.ObjectID, desiredUsername string) (ReserveResult, error) {
	if err := ValidateUsername(desiredUsername); err != nil {
		return ReserveResult{}, err
	}

	session, err := db.MongoClient.StartSession()
	if err != nil {
		return ReserveResult{}, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	newKey := usernameKey(desiredUsername)

	res, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var user models.User
		if err := db.Users().FindOne(sc, bson.M{"_id": userID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to load user: %w", err)
		}

		oldKey := user.UsernameLower
		if oldKey == newKey {
			// Repeated save of the same name; nothing to write.
			return ReserveResult{FinalUsername: desiredUsername, Changed: false}, nil
		}

		var newRes *models.UsernameReservation
		var found models.UsernameReservation
		err := db.Reservations().FindOne(sc, bson.M{"_id": newKey}).Decode(&found)
		switch {
		case err == nil:
			newRes = &found
		case err == mongo.ErrNoDocuments:
		default:
			return nil, fmt.Errorf("failed to read reservation: %w", err)
		}

		// Read the old reservation before any write; the transaction
		// needs it to decide whether a delete belongs to this user.
		var oldRes *models.UsernameReservation
		if oldKey != "" {
			var prev models.UsernameReservation
			err := db.Reservations().FindOne(sc, bson.M{"_id": oldKey}).Decode(&prev)
			switch {
			case err == nil:
				oldRes = &prev
			case err == mongo.ErrNoDocuments:
			default:
				return nil, fmt.Errorf("failed to read old reservation: %w", err)
			}
		}

		if newRes != nil && newRes.UserID != userID {
			return nil, ErrUsernameTaken
		}

		if newRes == nil {
			reservation := models.UsernameReservation{
				Username:  newKey,
				UserID:    userID,
				CreatedAt: time.Now().UTC(),
			}
			if _, err := db.Reservations().InsertOne(sc, reservation); err != nil {
				return nil, fmt.Errorf("failed to create reservation: %w", err)
			}
		}

		if oldRes != nil && oldRes.UserID == userID {
			if _, err := db.Reservations().DeleteOne(sc, bson.M{"_id": oldKey}); err != nil {
				return nil, fmt.Errorf("failed to release old reservation: %w", err)
			}
		}

		update := bson.M{"$set": bson.M{
			"username":      desiredUsername,
			"usernameLower": newKey,
		}}
		if _, err := db.Users().UpdateOne(sc, bson.M{"_id": userID}, update); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}

		return ReserveResult{FinalUsername: desiredUsername, Changed: true}, nil
	})
	if err != nil {
		return ReserveResult{}, err
	}

	return res.(ReserveResult), nil
}

// IsUsernameAvailable reports whether the name could currently be
// reserved. Invalid names count as unavailable. The check is
// read-only and advisory; ReserveUsername remains the authority.
func IsUsernameAvailable(ctx context.Context, username string) bool {
	if ValidateUsername(username) != nil {
		return false
	}

	err := db.Reservations().FindOne(ctx, bson.M{"_id": usernameKey(username)}).Err()
	return err == mongo.ErrNoDocuments
}
