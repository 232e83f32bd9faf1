package models

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	AdCollection         = "ads"
	AdProviderCollection = "ad_providers"
)

type AdType string

const (
	AdTypeBanner       AdType = "banner"
	AdTypeNative       AdType = "native"
	AdTypeInterstitial AdType = "interstitial"
)

type AdPosition string

const (
	AdPositionHeader  AdPosition = "header"
	AdPositionMiddle  AdPosition = "middle"
	AdPositionFooter  AdPosition = "footer"
	AdPositionSidebar AdPosition = "sidebar"
)

// AdPlacement is a locally managed static ad, served when no automated
// provider yields a creative.
type AdPlacement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Type      AdType             `bson:"type" json:"type"`
	Position  AdPosition         `bson:"position" json:"position"`
	TargetURL string             `bson:"target_url" json:"target_url"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	Priority  int                `bson:"priority" json:"priority"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// AdProvider is a remote ad network fetched by priority before falling
// back to local placements. Lower priority wins.
type AdProvider struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	ApiURL    string             `bson:"api_url" json:"api_url"`
	ApiKey    string             `bson:"api_key,omitempty" json:"-"`
	Active    bool               `bson:"active" json:"active"`
	Priority  int                `bson:"priority" json:"priority"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// AdStore backs the ad serving chain.
type AdStore struct {
	db *mongo.Database
}

func NewAdStore(db *mongo.Database) *AdStore {
	return &AdStore{db: db}
}

func (s *AdStore) ActiveProviders(ctx context.Context) ([]*AdProvider, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}})
	cur, err := s.db.Collection(AdProviderCollection).Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active ad providers")
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var providers []*AdProvider
	if err := cur.All(ctx, &providers); err != nil {
		return nil, errors.Wrap(err, "failed to decode ad providers")
	}
	return providers, nil
}

func (s *AdStore) ActivePlacements(ctx context.Context, position AdPosition, limit int64) ([]*AdPlacement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := s.db.Collection(AdCollection).Find(ctx, bson.M{
		"position": position,
		"active":   true,
	}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ad placements")
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var placements []*AdPlacement
	if err := cur.All(ctx, &placements); err != nil {
		return nil, errors.Wrap(err, "failed to decode ad placements")
	}
	return placements, nil
}

func ListAds(ctx context.Context, db *mongo.Database) ([]*AdPlacement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := db.Collection(AdCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ads")
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var ads []*AdPlacement
	if err := cur.All(ctx, &ads); err != nil {
		return nil, errors.Wrap(err, "failed to decode ads")
	}
	return ads, nil
}

func GetAdByID(ctx context.Context, db *mongo.Database, id string) (*AdPlacement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var ad AdPlacement
	err = db.Collection(AdCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&ad)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ad")
	}
	return &ad, nil
}

func InsertAd(ctx context.Context, db *mongo.Database, ad *AdPlacement) error {
	_, err := db.Collection(AdCollection).InsertOne(ctx, ad)
	if err != nil {
		return errors.Wrap(err, "failed to insert ad")
	}
	return nil
}

func UpdateAd(ctx context.Context, db *mongo.Database, id primitive.ObjectID, set bson.M) error {
	_, err := db.Collection(AdCollection).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return errors.Wrap(err, "failed to update ad")
	}
	return nil
}

func DeleteAd(ctx context.Context, db *mongo.Database, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = db.Collection(AdCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "failed to delete ad")
	}
	return nil
}

func ListAdProviders(ctx context.Context, db *mongo.Database) ([]*AdProvider, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}})
	cur, err := db.Collection(AdProviderCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ad providers")
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var providers []*AdProvider
	if err := cur.All(ctx, &providers); err != nil {
		return nil, errors.Wrap(err, "failed to decode ad providers")
	}
	return providers, nil
}

func GetAdProviderByID(ctx context.Context, db *mongo.Database, id string) (*AdProvider, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var p AdProvider
	err = db.Collection(AdProviderCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ad provider")
	}
	return &p, nil
}

func InsertAdProvider(ctx context.Context, db *mongo.Database, p *AdProvider) error {
	_, err := db.Collection(AdProviderCollection).InsertOne(ctx, p)
	if err != nil {
		return errors.Wrap(err, "failed to insert ad provider")
	}
	return nil
}

func UpdateAdProvider(ctx context.Context, db *mongo.Database, id primitive.ObjectID, set bson.M) error {
	_, err := db.Collection(AdProviderCollection).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return errors.Wrap(err, "failed to update ad provider")
	}
	return nil
}

func DeleteAdProvider(ctx context.Context, db *mongo.Database, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = db.Collection(AdProviderCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "failed to delete ad provider")
	}
	return nil
}
