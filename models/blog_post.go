package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rpupo63/blog-api/errs"
)

// BlogPostCollection is the collection blog posts are stored in.
const BlogPostCollection = "blogpost"

// BlogPost is a blog post as stored in the document store.
type BlogPost struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Slug          string             `bson:"slug"`
	Excerpt       *string            `bson:"excerpt"`
	Content       string             `bson:"content"`
	Author        string             `bson:"author"`
	CoverImageURL *string            `bson:"cover_image_url"`
	Tags          []string           `bson:"tags"`
	Published     bool               `bson:"published"`
	PublishedAt   *time.Time         `bson:"published_at"`
	CreatedAt     *time.Time         `bson:"created_at,omitempty"`
	UpdatedAt     *time.Time         `bson:"updated_at,omitempty"`
}

// BlogPostCreate is the payload accepted when creating a post.
type BlogPostCreate struct {
	Title         string         `json:"title" validate:"required,min=3"`
	Slug          string         `json:"slug" validate:"required,min=3"`
	Excerpt       *string        `json:"excerpt"`
	Content       string         `json:"content" validate:"required"`
	Author        string         `json:"author" validate:"required"`
	CoverImageURL *string        `json:"cover_image_url" validate:"omitempty,http_url"`
	Tags          []string       `json:"tags"`
	Published     Optional[bool] `json:"published"`
	PublishedAt   *time.Time     `json:"published_at"`
}

// Validate checks field presence and format. published may be omitted but
// not null.
func (c BlogPostCreate) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if c.Published.IsNull() {
		return errs.NewInvalidFieldError("published", "must not be null")
	}
	return nil
}

// IsPublished reports the requested publish state; absent means false.
func (c BlogPostCreate) IsPublished() bool {
	return c.Published.Value != nil && *c.Published.Value
}

// ToBlogPost builds the document to insert. A post created as published
// without an explicit published_at is stamped with now.
func (c BlogPostCreate) ToBlogPost(now time.Time) BlogPost {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	publishedAt := c.PublishedAt
	published := c.IsPublished()
	if published && publishedAt == nil {
		stamp := now.UTC()
		publishedAt = &stamp
	}

	return BlogPost{
		Title:         c.Title,
		Slug:          c.Slug,
		Excerpt:       c.Excerpt,
		Content:       c.Content,
		Author:        c.Author,
		CoverImageURL: c.CoverImageURL,
		Tags:          tags,
		Published:     published,
		PublishedAt:   publishedAt,
	}
}
