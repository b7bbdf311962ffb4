package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/esangrahan-backend/internal/database"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CollectionPointStore struct {
	c *mongo.Collection
}

func NewCollectionPointStore(db *mongo.Database) *CollectionPointStore {
	return &CollectionPointStore{c: db.Collection(database.CollectionPointsCollection)}
}

func (s *CollectionPointStore) Create(ctx context.Context, cp *models.CollectionPoint) error {
	cp.Normalize()
	if err := cp.Validate(); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := *cp
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return err
	}
	*cp = doc
	return nil
}

func (s *CollectionPointStore) FindByID(ctx context.Context, id string) (*models.CollectionPoint, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cp models.CollectionPoint
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&cp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// Find returns the matching points, newest first.
func (s *CollectionPointStore) Find(ctx context.Context, f query.Filter) ([]models.CollectionPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.c.Find(ctx, f.BSON(), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	points := []models.CollectionPoint{}
	if err := cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// UpdateContent writes the owner-editable fields of cp. Owner and status are
// left as stored so a concurrent review is not overwritten.
func (s *CollectionPointStore) UpdateContent(ctx context.Context, cp *models.CollectionPoint) error {
	cp.Normalize()
	if err := cp.Validate(); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{
		"name":       cp.Name,
		"email":      cp.Email,
		"address":    cp.Address,
		"latitude":   cp.Latitude,
		"longitude":  cp.Longitude,
		"wasteType":  cp.WasteType,
		"condition":  cp.Condition,
		"yearsOfUse": cp.YearsOfUse,
		"optional":   cp.Optional,
		"updatedAt":  time.Now().UTC(),
	}
	return s.findAndUpdate(ctx, cp.ID, set, cp)
}

// SetStatus changes the review status and returns the updated record.
func (s *CollectionPointStore) SetStatus(ctx context.Context, id string, status models.Status) (*models.CollectionPoint, error) {
	if !status.Valid() {
		return nil, &models.SchemaError{Messages: []string{"`" + string(status) + "` is not a valid status"}}
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cp models.CollectionPoint
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if err := s.findAndUpdate(ctx, oid, set, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CollectionPointStore) findAndUpdate(ctx context.Context, id primitive.ObjectID, set bson.M, out *models.CollectionPoint) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *CollectionPointStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CollectionPointStore) Count(ctx context.Context, f query.Filter) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.c.CountDocuments(ctx, f.BSON())
}

// GroupCount counts points per distinct value of field.
func (s *CollectionPointStore) GroupCount(ctx context.Context, field query.Field) ([]models.GroupCount, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + string(field)},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groups := []models.GroupCount{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
