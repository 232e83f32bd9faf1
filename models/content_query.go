package models

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ContentCollection = "content"

// notComingSoon matches documents where the flag is absent or false,
// so legacy records without the field stay visible.
func notComingSoon() bson.M {
	return bson.M{"$ne": true}
}

func TrendingFilter() bson.M {
	return bson.M{"is_trending": true, "is_coming_soon": notComingSoon()}
}

func LatestFilter(t ContentType) bson.M {
	return bson.M{"type": t.String(), "is_coming_soon": notComingSoon()}
}

func ComingSoonFilter() bson.M {
	return bson.M{"is_coming_soon": true}
}

func RecentFilter() bson.M {
	return bson.M{"is_coming_soon": notComingSoon()}
}

// SearchFilter matches a case-insensitive substring of the title.
// The query is quoted so user input never acts as a pattern.
func SearchFilter(query string) bson.M {
	return bson.M{"title": primitive.Regex{
		Pattern: regexp.QuoteMeta(query),
		Options: "i",
	}}
}

func GenreFilter(name string) bson.M {
	return bson.M{"genres": name}
}

func BadgeFilter(name string) bson.M {
	return bson.M{"poster_badge": name}
}

// MissingMetadataFilter selects items the enrichment flow still has
// work to do on.
func MissingMetadataFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"tmdb_id": bson.M{"$exists": false}},
		bson.M{"poster": bson.M{"$in": bson.A{nil, ""}}},
		bson.M{"overview": bson.M{"$in": bson.A{nil, "", NoOverview}}},
		bson.M{"release_date": bson.M{"$in": bson.A{nil, ""}}},
		bson.M{"genres": bson.M{"$in": bson.A{nil, bson.A{}}}},
	}}
}

// ListContent returns items matching filter, newest first. A zero limit
// returns the full set.
func ListContent(ctx context.Context, db *mongo.Database, filter bson.M, limit int64) ([]*ContentItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := db.Collection(ContentCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list content")
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var items []*ContentItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode content list")
	}
	return items, nil
}

// GetContentByID resolves an id to an item. A malformed id or an absent
// document both return nil without error, the caller renders not-found.
func GetContentByID(ctx context.Context, db *mongo.Database, id string) (*ContentItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var item ContentItem
	err = db.Collection(ContentCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get content")
	}
	return &item, nil
}

func InsertContent(ctx context.Context, db *mongo.Database, item *ContentItem) (primitive.ObjectID, error) {
	res, err := db.Collection(ContentCollection).InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "failed to insert content")
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

// UpdateContent applies the submitted field set and retracts the fields
// named in unset in a single document update.
func UpdateContent(ctx context.Context, db *mongo.Database, id primitive.ObjectID, set bson.M, unset bson.M) error {
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := db.Collection(ContentCollection).UpdateByID(ctx, id, update)
	if err != nil {
		return errors.Wrap(err, "failed to update content")
	}
	return nil
}

// DeleteContent is a hard delete. Deleting an absent id is a no-op.
func DeleteContent(ctx context.Context, db *mongo.Database, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = db.Collection(ContentCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "failed to delete content")
	}
	return nil
}
