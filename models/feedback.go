package models

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const FeedbackCollection = "feedback"

// Feedback is a public report or request. ContentID is a loose reference,
// no integrity enforced.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	ContentID string             `bson:"content_id,omitempty" json:"content_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (s *Feedback) Age() string {
	return humanize.Time(s.CreatedAt)
}

func InsertFeedback(ctx context.Context, db *mongo.Database, f *Feedback) error {
	_, err := db.Collection(FeedbackCollection).InsertOne(ctx, f)
	if err != nil {
		return errors.Wrap(err, "failed to insert feedback")
	}
	return nil
}

func ListFeedback(ctx context.Context, db *mongo.Database) ([]*Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := db.Collection(FeedbackCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list feedback")
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var list []*Feedback
	if err := cur.All(ctx, &list); err != nil {
		return nil, errors.Wrap(err, "failed to decode feedback")
	}
	return list, nil
}

func DeleteFeedback(ctx context.Context, db *mongo.Database, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = db.Collection(FeedbackCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "failed to delete feedback")
	}
	return nil
}
