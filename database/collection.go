package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rpupo63/blog-api/errs"
)

// Collection exposes single-document operations over one named collection.
type Collection struct {
	coll *mongo.Collection
}

func NewCollection(coll *mongo.Collection) *Collection {
	return &Collection{coll: coll}
}

// Insert stores doc and returns the id generated for it.
func (c *Collection) Insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// Find decodes every document matching filter into results, which must be
// a pointer to a slice. A limit of zero means no cap.
func (c *Collection) Find(ctx context.Context, filter bson.M, sort bson.D, limit int64, results any) error {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cur.All(ctx, results)
}

// FindOne decodes the document with the given id. It returns
// mongo.ErrNoDocuments when nothing matches.
func (c *Collection) FindOne(ctx context.Context, id primitive.ObjectID, result any) error {
	return c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(result)
}

// UpdateOne applies set with $set semantics and reports how many documents matched.
func (c *Collection) UpdateOne(ctx context.Context, id primitive.ObjectID, set bson.M) (int64, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c *Collection) DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ParseID converts an external id into an ObjectID. A malformed id is a
// client error.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errs.NewInvalidIDError("blog post", raw, err)
	}
	return id, nil
}
