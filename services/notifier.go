package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/blog-api/models"
)

const TypePostPublished = "post.published"

// Notifier announces blog posts that were just published.
type Notifier interface {
	PostPublished(ctx context.Context, post models.BlogPost) error
	Close() error
}

type PostPublishedPayload struct {
	PostID string `json:"post_id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// PostPublishedEvent is the message body published for every newly published post.
type PostPublishedEvent struct {
	ID        uuid.UUID            `json:"id"`
	Type      string               `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   PostPublishedPayload `json:"payload"`
}

func NewPostPublishedEvent(post models.BlogPost) PostPublishedEvent {
	return PostPublishedEvent{
		ID:        uuid.New(),
		Type:      TypePostPublished,
		Timestamp: time.Now().UTC(),
		Payload: PostPublishedPayload{
			PostID: post.ID.Hex(),
			Slug:   post.Slug,
			Title:  post.Title,
			Author: post.Author,
		},
	}
}

type NoopNotifier struct{}

func (NoopNotifier) PostPublished(context.Context, models.BlogPost) error {
	return nil
}

func (NoopNotifier) Close() error {
	return nil
}

var _ Notifier = NoopNotifier{}
