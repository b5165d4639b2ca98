package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/models"
)

// DefaultListLimit caps list results when the caller gives no limit.
const DefaultListLimit = 50

type BlogPostRepo struct {
	coll *Collection
}

func NewBlogPostRepo(db *mongo.Database) *BlogPostRepo {
	return &BlogPostRepo{coll: NewCollection(db.Collection(models.BlogPostCollection))}
}

// ListFilter narrows FindAll. Nil/empty fields do not filter.
type ListFilter struct {
	Published *bool
	Tag       string
	Limit     int64
}

func (f ListFilter) query() bson.M {
	filter := bson.M{}
	if f.Published != nil {
		filter["published"] = *f.Published
	}
	if f.Tag != "" {
		filter["tags"] = bson.M{"$in": bson.A{f.Tag}}
	}
	return filter
}

// FindAll returns blog posts matching f, newest created_at first.
func (r *BlogPostRepo) FindAll(ctx context.Context, f ListFilter) ([]*models.BlogPost, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	blogPosts := []*models.BlogPost{}
	sort := bson.D{{Key: "created_at", Value: -1}}
	if err := r.coll.Find(ctx, f.query(), sort, limit, &blogPosts); err != nil {
		return nil, err
	}
	return blogPosts, nil
}

// FindByID returns a blog post by its ID
func (r *BlogPostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	if err := r.coll.FindOne(ctx, id, &blogPost); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewNotFound("blog post")
		}
		return nil, err
	}
	return &blogPost, nil
}

// Add inserts a new blog post and sets its generated ID.
func (r *BlogPostRepo) Add(ctx context.Context, blogPost *models.BlogPost) error {
	id, err := r.coll.Insert(ctx, blogPost)
	if err != nil {
		return err
	}
	blogPost.ID = id
	return nil
}

// Update writes only the fields in set.
func (r *BlogPostRepo) Update(ctx context.Context, id primitive.ObjectID, set map[string]any) error {
	matched, err := r.coll.UpdateOne(ctx, id, bson.M(set))
	if err != nil {
		return err
	}
	if matched == 0 {
		return errs.NewNotFound("blog post")
	}
	return nil
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := r.coll.DeleteOne(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errs.NewNotFound("blog post")
	}
	return nil
}
