package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rpupo63/blog-api/errs"
)

func strPtr(s string) *string { return &s }

func some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

func null[T any]() Optional[T] { return Optional[T]{Set: true} }

func TestBlogPostCreate_Validate(t *testing.T) {
	valid := BlogPostCreate{Title: "Hi There", Slug: "hi-there", Content: "body", Author: "Jo"}

	tests := []struct {
		name    string
		mutate  func(c *BlogPostCreate)
		wantErr bool
		field   string
	}{
		{"valid", func(*BlogPostCreate) {}, false, ""},
		{"missing title", func(c *BlogPostCreate) { c.Title = "" }, true, "title"},
		{"short title", func(c *BlogPostCreate) { c.Title = "Hi" }, true, "title"},
		{"short slug", func(c *BlogPostCreate) { c.Slug = "ab" }, true, "slug"},
		{"missing content", func(c *BlogPostCreate) { c.Content = "" }, true, "content"},
		{"missing author", func(c *BlogPostCreate) { c.Author = "" }, true, "author"},
		{"bad cover url", func(c *BlogPostCreate) { c.CoverImageURL = strPtr("not a url") }, true, "cover_image_url"},
		{"javascript cover url", func(c *BlogPostCreate) { c.CoverImageURL = strPtr("javascript:alert(1)") }, true, "cover_image_url"},
		{"ftp cover url", func(c *BlogPostCreate) { c.CoverImageURL = strPtr("ftp://x") }, true, "cover_image_url"},
		{"mailto cover url", func(c *BlogPostCreate) { c.CoverImageURL = strPtr("mailto:a@b.c") }, true, "cover_image_url"},
		{"good cover url", func(c *BlogPostCreate) { c.CoverImageURL = strPtr("https://example.com/a.png") }, false, ""},
		{"plain http cover url", func(c *BlogPostCreate) { c.CoverImageURL = strPtr("http://example.com/a.png") }, false, ""},
		{"null published", func(c *BlogPostCreate) { c.Published = null[bool]() }, true, "published"},
		{"published false", func(c *BlogPostCreate) { c.Published = some(false) }, false, ""},
		{"multibyte title", func(c *BlogPostCreate) { c.Title = "日本語" }, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			apiErr, ok := err.(*errs.ApiErr)
			if !ok {
				t.Fatalf("err type %T, want *errs.ApiErr", err)
			}
			if apiErr.StatusCode != 400 {
				t.Errorf("status = %d", apiErr.StatusCode)
			}
			if apiErr.Field != tt.field {
				t.Errorf("field = %q, want %q", apiErr.Field, tt.field)
			}
		})
	}
}

func TestBlogPostCreate_ToBlogPost(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		p := BlogPostCreate{Title: "Hi There", Slug: "hi-there", Content: "body", Author: "Jo"}.ToBlogPost(now)
		if p.Tags == nil || len(p.Tags) != 0 {
			t.Errorf("Tags = %#v, want empty non-nil", p.Tags)
		}
		if p.Published || p.PublishedAt != nil {
			t.Errorf("Published=%v PublishedAt=%v", p.Published, p.PublishedAt)
		}
		if p.CreatedAt != nil {
			t.Error("CreatedAt should not be stamped")
		}
	})

	t.Run("published stamps published_at", func(t *testing.T) {
		p := BlogPostCreate{Title: "Hi There", Slug: "hi-there", Content: "b", Author: "Jo", Published: some(true)}.ToBlogPost(now)
		if p.PublishedAt == nil || !p.PublishedAt.Equal(now) {
			t.Errorf("PublishedAt = %v, want %v", p.PublishedAt, now)
		}
	})

	t.Run("supplied published_at kept", func(t *testing.T) {
		given := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		p := BlogPostCreate{Title: "Hi There", Slug: "hi-there", Content: "b", Author: "Jo", Published: some(true), PublishedAt: &given}.ToBlogPost(now)
		if p.PublishedAt == nil || !p.PublishedAt.Equal(given) {
			t.Errorf("PublishedAt = %v, want %v", p.PublishedAt, given)
		}
	})
}

func TestOptional_Unmarshal(t *testing.T) {
	var u BlogPostUpdate
	body := `{"title":"New title","excerpt":null,"published":false}`
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !u.Title.Set || u.Title.Value == nil || *u.Title.Value != "New title" {
		t.Errorf("Title = %+v", u.Title)
	}
	if !u.Excerpt.IsNull() {
		t.Errorf("Excerpt should be explicit null, got %+v", u.Excerpt)
	}
	if !u.Published.Set || u.Published.Value == nil || *u.Published.Value {
		t.Errorf("Published = %+v", u.Published)
	}
	if u.Slug.Set || u.Content.Set || u.Tags.Set || u.PublishedAt.Set {
		t.Error("absent fields must not be marked as set")
	}
}

func TestOptional_UnmarshalTypeMismatch(t *testing.T) {
	var u BlogPostUpdate
	if err := json.Unmarshal([]byte(`{"published":"yes"}`), &u); err == nil {
		t.Fatal("expected error for string published")
	}
}

func TestBlogPostUpdate_IsEmpty(t *testing.T) {
	var u BlogPostUpdate
	if err := json.Unmarshal([]byte(`{}`), &u); err != nil {
		t.Fatal(err)
	}
	if !u.IsEmpty() {
		t.Error("{} should be empty")
	}
	if err := json.Unmarshal([]byte(`{"excerpt":null}`), &u); err != nil {
		t.Fatal(err)
	}
	if u.IsEmpty() {
		t.Error("explicit null counts as a supplied field")
	}
}

func TestBlogPostUpdate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		update  BlogPostUpdate
		wantErr bool
	}{
		{"short title", BlogPostUpdate{Title: some("ab")}, true},
		{"null title", BlogPostUpdate{Title: null[string]()}, true},
		{"null published", BlogPostUpdate{Published: null[bool]()}, true},
		{"bad url", BlogPostUpdate{CoverImageURL: some("nope")}, true},
		{"javascript url", BlogPostUpdate{CoverImageURL: some("javascript:alert(1)")}, true},
		{"ftp url", BlogPostUpdate{CoverImageURL: some("ftp://x")}, true},
		{"https url", BlogPostUpdate{CoverImageURL: some("https://cdn.example.com/c.jpg")}, false},
		{"null url clears", BlogPostUpdate{CoverImageURL: null[string]()}, false},
		{"only tags", BlogPostUpdate{Tags: some([]string{"go"})}, false},
		{"valid title", BlogPostUpdate{Title: some("Longer")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.update.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlogPostUpdate_Changes(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	supplied := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("publish sets published_at", func(t *testing.T) {
		set := BlogPostUpdate{Published: some(true)}.Changes(now)
		if set["published"] != true {
			t.Errorf("published = %v", set["published"])
		}
		if got, ok := set["published_at"].(time.Time); !ok || !got.Equal(now) {
			t.Errorf("published_at = %v", set["published_at"])
		}
		if got, ok := set["updated_at"].(time.Time); !ok || !got.Equal(now) {
			t.Errorf("updated_at = %v", set["updated_at"])
		}
	})

	t.Run("unpublish clears published_at", func(t *testing.T) {
		set := BlogPostUpdate{Published: some(false)}.Changes(now)
		v, ok := set["published_at"]
		if !ok || v != nil {
			t.Errorf("published_at = %v (present=%v), want explicit nil", v, ok)
		}
	})

	t.Run("supplied published_at preserved", func(t *testing.T) {
		set := BlogPostUpdate{Published: some(true), PublishedAt: some(supplied)}.Changes(now)
		if got, ok := set["published_at"].(time.Time); !ok || !got.Equal(supplied) {
			t.Errorf("published_at = %v, want %v", set["published_at"], supplied)
		}
	})

	t.Run("published_at alone is a plain overwrite", func(t *testing.T) {
		set := BlogPostUpdate{PublishedAt: some(supplied)}.Changes(now)
		if _, ok := set["published"]; ok {
			t.Error("published must not be touched")
		}
		if got, ok := set["published_at"].(time.Time); !ok || !got.Equal(supplied) {
			t.Errorf("published_at = %v", set["published_at"])
		}
	})

	t.Run("absent fields omitted", func(t *testing.T) {
		set := BlogPostUpdate{Title: some("Changed")}.Changes(now)
		if len(set) != 2 {
			t.Errorf("set = %v, want title and updated_at only", set)
		}
	})

	t.Run("null tags become empty", func(t *testing.T) {
		set := BlogPostUpdate{Tags: null[[]string]()}.Changes(now)
		tags, ok := set["tags"].([]string)
		if !ok || tags == nil || len(tags) != 0 {
			t.Errorf("tags = %#v", set["tags"])
		}
	})
}
