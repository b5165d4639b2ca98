package models

import (
	"time"

	"github.com/rpupo63/blog-api/errs"
)

// BlogPostUpdate is a partial update. Fields left out of the request body
// stay Optional zero values and are never written.
type BlogPostUpdate struct {
	Title         Optional[string]    `json:"title"`
	Slug          Optional[string]    `json:"slug"`
	Excerpt       Optional[string]    `json:"excerpt"`
	Content       Optional[string]    `json:"content"`
	Author        Optional[string]    `json:"author"`
	CoverImageURL Optional[string]    `json:"cover_image_url"`
	Tags          Optional[[]string]  `json:"tags"`
	Published     Optional[bool]      `json:"published"`
	PublishedAt   Optional[time.Time] `json:"published_at"`
}

// IsEmpty reports whether the request named no fields at all.
func (u BlogPostUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Slug.Set && !u.Excerpt.Set && !u.Content.Set &&
		!u.Author.Set && !u.CoverImageURL.Set && !u.Tags.Set &&
		!u.Published.Set && !u.PublishedAt.Set
}

// Validate applies the create rules to every field that is present.
func (u BlogPostUpdate) Validate() error {
	checks := []struct {
		field string
		value Optional[string]
		rule  string
	}{
		{"title", u.Title, "required,min=3"},
		{"slug", u.Slug, "required,min=3"},
		{"content", u.Content, "required"},
		{"author", u.Author, "required"},
	}
	for _, c := range checks {
		if !c.value.Set {
			continue
		}
		if c.value.IsNull() {
			return errs.NewInvalidFieldError(c.field, "must not be null")
		}
		if err := validateVar(c.field, *c.value.Value, c.rule); err != nil {
			return err
		}
	}

	if u.CoverImageURL.Value != nil {
		if err := validateVar("cover_image_url", *u.CoverImageURL.Value, "http_url"); err != nil {
			return err
		}
	}
	if u.Published.IsNull() {
		return errs.NewInvalidFieldError("published", "must not be null")
	}
	return nil
}

// Changes returns the field set to write. published_at follows the publish
// toggle unless the same request supplied it, and updated_at is always
// stamped. Callers must reject an empty update before calling Changes.
func (u BlogPostUpdate) Changes(now time.Time) map[string]any {
	now = now.UTC()
	set := make(map[string]any)

	putString := func(key string, o Optional[string]) {
		if !o.Set {
			return
		}
		if o.Value == nil {
			set[key] = nil
			return
		}
		set[key] = *o.Value
	}
	putString("title", u.Title)
	putString("slug", u.Slug)
	putString("excerpt", u.Excerpt)
	putString("content", u.Content)
	putString("author", u.Author)
	putString("cover_image_url", u.CoverImageURL)

	if u.Tags.Set {
		tags := []string{}
		if u.Tags.Value != nil && *u.Tags.Value != nil {
			tags = *u.Tags.Value
		}
		set["tags"] = tags
	}

	if u.PublishedAt.Set {
		if u.PublishedAt.Value == nil {
			set["published_at"] = nil
		} else {
			set["published_at"] = u.PublishedAt.Value.UTC()
		}
	}

	if u.Published.Value != nil {
		published := *u.Published.Value
		set["published"] = published
		if _, supplied := set["published_at"]; !supplied {
			if published {
				set["published_at"] = now
			} else {
				set["published_at"] = nil
			}
		}
	}

	set["updated_at"] = now
	return set
}

// Publishes reports whether the update sets published to true.
func (u BlogPostUpdate) Publishes() bool {
	return u.Published.Value != nil && *u.Published.Value
}
