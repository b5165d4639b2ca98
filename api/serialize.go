package api

import (
	"time"

	"github.com/rpupo63/blog-api/models"
)

// BlogPostOut is the API representation of a blog post.
type BlogPostOut struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       *string    `json:"excerpt"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	CoverImageURL *string    `json:"cover_image_url"`
	Tags          []string   `json:"tags"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

func serializeBlogPost(p *models.BlogPost) BlogPostOut {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return BlogPostOut{
		ID:            p.ID.Hex(),
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		Author:        p.Author,
		CoverImageURL: p.CoverImageURL,
		Tags:          tags,
		Published:     p.Published,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func serializeBlogPosts(posts []*models.BlogPost) []BlogPostOut {
	out := make([]BlogPostOut, 0, len(posts))
	for _, p := range posts {
		out = append(out, serializeBlogPost(p))
	}
	return out
}
