package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsernameReservation maps a case-folded username to its owning user.
// The lowercased username is the document _id, so the collection can
// never hold two reservations for the same name.
type UsernameReservation struct {
	Username  string             `bson:"_id" json:"username"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
