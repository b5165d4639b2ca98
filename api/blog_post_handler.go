package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rpupo63/blog-api/database"
	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/models"
	"github.com/rpupo63/blog-api/services"
)

// blogPostStore is the storage the blog post handlers need.
type blogPostStore interface {
	FindAll(ctx context.Context, f database.ListFilter) ([]*models.BlogPost, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	Add(ctx context.Context, blogPost *models.BlogPost) error
	Update(ctx context.Context, id primitive.ObjectID, set map[string]any) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     blogPostStore
	notifier  services.Notifier
	now       func() time.Time
}

func newBlogPostHandler(store blogPostStore, notifier services.Notifier) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()
	if notifier == nil {
		notifier = services.NoopNotifier{}
	}

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// listBlogPosts lists blog posts
// @Summary List blog posts
// @Description Lists blog posts newest first, optionally filtered by publish state and tag
// @Tags Blog Posts
// @Produce json
// @Param published query bool false "Only posts with this publish state"
// @Param tag query string false "Only posts carrying this tag"
// @Param limit query int false "Maximum number of posts" default(50)
// @Success 200 {array} BlogPostOut
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid query parameter"
// @Router /api/posts [get]
func (h blogPostHandler) listBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPosts, err := h.store.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, serializeBlogPosts(blogPosts))
	}
}

func parseListFilter(r *http.Request) (database.ListFilter, error) {
	q := r.URL.Query()
	filter := database.ListFilter{Limit: database.DefaultListLimit}

	if raw := q.Get("published"); raw != "" {
		published, err := parseQueryBool(raw)
		if err != nil {
			return filter, errs.NewInvalidQueryParamError("published", "must be a boolean")
		}
		filter.Published = &published
	}

	filter.Tag = q.Get("tag")

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errs.NewInvalidQueryParamError("limit", "must be an integer")
		}
		if limit < 1 {
			return filter, errs.NewInvalidQueryParamError("limit", "must be at least 1")
		}
		filter.Limit = limit
	}

	return filter, nil
}

func parseQueryBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// getBlogPost retrieves a specific blog post by ID
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param postID path string true "Blog Post ID"
// @Success 200 {object} BlogPostOut
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post id"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /api/posts/{postID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := database.ParseID(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.store.FindByID(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, serializeBlogPost(blogPost))
	}
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Description Creates a blog post. Posts created as published get published_at stamped unless supplied.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body models.BlogPostCreate true "Blog post data"
// @Success 200 {object} BlogPostOut
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Router /api/posts [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload models.BlogPostCreate
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := payload.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost := payload.ToBlogPost(h.now())
		if err := h.store.Add(r.Context(), &blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		createdBlogPost, err := h.store.FindByID(r.Context(), blogPost.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "blog post", err))
			return
		}

		if createdBlogPost.Published {
			h.notifyPublished(r.Context(), *createdBlogPost)
		}

		h.logger.Info().Str("postID", createdBlogPost.ID.Hex()).Str("slug", createdBlogPost.Slug).Msg("blog post created")
		h.responder.WriteJSON(w, http.StatusOK, serializeBlogPost(createdBlogPost))
	}
}

// updateBlogPost applies a partial update to a blog post
// @Summary Update blog post
// @Description Only fields present in the body are written. Toggling published manages published_at unless it is supplied.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param postID path string true "Blog Post ID"
// @Param blogPost body models.BlogPostUpdate true "Fields to change"
// @Success 200 {object} BlogPostOut
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id, empty or invalid update"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /api/posts/{postID} [put]
// @Router /api/posts/{postID} [patch]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := database.ParseID(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var update models.BlogPostUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to decode blog post update body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if update.IsEmpty() {
			h.responder.WriteError(w, errs.NewNoUpdateDataError())
			return
		}

		if err := update.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Update(r.Context(), postID, update.Changes(h.now())); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		updatedBlogPost, err := h.store.FindByID(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "blog post", err))
			return
		}

		if update.Publishes() {
			h.notifyPublished(r.Context(), *updatedBlogPost)
		}

		h.responder.WriteJSON(w, http.StatusOK, serializeBlogPost(updatedBlogPost))
	}
}

// deleteBlogPost deletes a blog post by ID
// @Summary Delete blog post
// @Tags Blog Posts
// @Produce json
// @Param postID path string true "Blog Post ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post id"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /api/posts/{postID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := database.ParseID(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Delete(r.Context(), postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}

		h.logger.Info().Str("postID", postID.Hex()).Msg("blog post deleted")
		h.responder.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

// notifyPublished never fails the request; the post is already stored.
func (h blogPostHandler) notifyPublished(ctx context.Context, post models.BlogPost) {
	if err := h.notifier.PostPublished(ctx, post); err != nil {
		h.logger.Error().Err(err).Str("postID", post.ID.Hex()).Msg("Failed to send post published notification")
	}
}
