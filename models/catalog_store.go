package models

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogStore is the persistence side of the enrichment flow.
type CatalogStore struct {
	db *mongo.Database
}

func NewCatalogStore(db *mongo.Database) *CatalogStore {
	return &CatalogStore{db: db}
}

// SetProviderID caches the resolved provider id on the document. Written
// once, right after resolution, so the search call is paid at most once
// per item.
func (s *CatalogStore) SetProviderID(ctx context.Context, id primitive.ObjectID, tmdbID int64) error {
	_, err := s.db.Collection(ContentCollection).UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"tmdb_id": tmdbID},
	})
	if err != nil {
		return errors.Wrap(err, "failed to set provider id")
	}
	return nil
}

// ApplyFields persists merged metadata as a single partial update.
func (s *CatalogStore) ApplyFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if len(fields) == 0 {
		return nil
	}
	_, err := s.db.Collection(ContentCollection).UpdateByID(ctx, id, bson.M{
		"$set": fields,
	})
	if err != nil {
		return errors.Wrap(err, "failed to apply metadata fields")
	}
	return nil
}
