package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/vartaverse/varta/backend/internal/dto"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/metrics"
	"github.com/vartaverse/varta/backend/internal/models"
	"github.com/vartaverse/varta/backend/internal/telemetry"
	"github.com/vartaverse/varta/backend/internal/util"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	highlightLimit   = 10

	// anonymousAuthor names posts created without a token
	anonymousAuthor = "User"
)

// postOrders maps the sort query parameter to an ORDER BY clause
var postOrders = map[string]string{
	"":        "id ASC",
	"oldest":  "created_at ASC, id ASC",
	"newest":  "created_at DESC, id DESC",
	"popular": "likes_count DESC, id ASC",
	"rating":  "average_rating DESC, id ASC",
}

func toPostResponses(posts []models.Post) []*dto.PostResponse {
	return lo.Map(posts, func(p models.Post, _ int) *dto.PostResponse {
		return dto.ToPostResponse(&p)
	})
}

// ListPosts returns one page of posts, optionally filtered by category
// GET /posts?page=&limit=&category=&sort=
func (h *Handlers) ListPosts(c *gin.Context) {
	page := util.ParsePositiveInt(c.Query("page"), 1)
	limit := min(util.ParsePositiveInt(c.Query("limit"), defaultPageLimit), maxPageLimit)
	category := c.Query("category")

	order, ok := postOrders[c.Query("sort")]
	if !ok {
		util.RespondBadRequest(c, "sort must be one of oldest, newest, popular, rating")
		return
	}

	ctx, span := h.events.TraceFeed(c.Request.Context(), telemetry.FeedAttrs{
		Kind: "page", Category: category, Page: page, Limit: limit,
	})

	query := h.db.WithContext(ctx).Order(order)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var posts []models.Post
	err := query.Find(&posts).Error
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to load posts", err)
		return
	}

	start, end := util.Paginate(len(posts), page, limit)
	c.JSON(http.StatusOK, dto.PostsPage{
		Posts: toPostResponses(posts[start:end]),
		Total: int64(len(posts)),
		Page:  page,
		Limit: limit,
	})
}

// GetPost returns a single post
// GET /posts/:id
func (h *Handlers) GetPost(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// CreatePost publishes a post for the token user, or the mock user
// POST /posts
func (h *Handlers) CreatePost(c *gin.Context) {
	var req dto.PostRequest
	_ = c.ShouldBindJSON(&req)

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.Category) == "" {
		util.RespondBadRequest(c, "Title, content, and category are required")
		return
	}

	userID := currentUserID(c)
	author := c.GetString("user_name")
	if author == "" {
		author = anonymousAuthor
	}

	ctx, span := h.events.TraceCreatePost(c.Request.Context(), dto.FormatID(userID), req.Category)
	post := models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		AuthorID: userID,
		Author:   author,
		Tags:     models.StringArray(lo.Compact(req.Tags)),
	}
	err := h.db.WithContext(ctx).Create(&post).Error
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to create post", err)
		return
	}

	metrics.RecordPostCreated(post.Category)
	logger.Log.Info("Post created",
		logger.WithPostID(dto.FormatID(post.ID)),
		logger.WithUserID(dto.FormatID(userID)),
		logger.WithCategory(post.Category),
	)
	c.JSON(http.StatusCreated, dto.ToPostResponse(&post))
}

// UpdatePost replaces the title, content and category of a post the caller owns.
// Empty fields keep their current value.
// PUT /posts/:id
func (h *Handlers) UpdatePost(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}
	if post.AuthorID != currentUserID(c) {
		util.RespondForbidden(c, "You can only edit your own posts")
		return
	}

	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "Invalid request body")
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(req.Title) != "" {
		updates["title"] = req.Title
	}
	if strings.TrimSpace(req.Content) != "" {
		updates["content"] = req.Content
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		updates["category"] = category
	}

	db := h.db.WithContext(c.Request.Context())
	if err := db.Model(post).Updates(updates).Error; err != nil {
		util.RespondInternalError(c, "Failed to update post", err)
		return
	}
	if err := db.First(post, post.ID).Error; err != nil {
		util.RespondInternalError(c, "Failed to reload post", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// DeletePost removes a post the caller owns together with its likes, comments and ratings
// DELETE /posts/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}
	if post.AuthorID != currentUserID(c) {
		util.RespondForbidden(c, "You can only delete your own posts")
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&models.Like{}, &models.Comment{}, &models.Rating{}} {
			if err := tx.Where("post_id = ?", post.ID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		util.RespondInternalError(c, "Failed to delete post", err)
		return
	}

	logger.Log.Info("Post deleted", logger.WithPostID(dto.FormatID(post.ID)))
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// TrendingPosts returns the posts with the most likes and comments
// GET /posts/trending
func (h *Handlers) TrendingPosts(c *gin.Context) {
	ctx, span := h.events.TraceFeed(c.Request.Context(), telemetry.FeedAttrs{Kind: "trending", Limit: highlightLimit})

	var posts []models.Post
	err := h.db.WithContext(ctx).
		Order("likes_count + comments_count DESC, created_at DESC").
		Limit(highlightLimit).
		Find(&posts).Error
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to load trending posts", err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

// TopRatedPosts returns the best rated posts, optionally within one category
// GET /posts/top-rated?category=
func (h *Handlers) TopRatedPosts(c *gin.Context) {
	category := c.Query("category")
	ctx, span := h.events.TraceFeed(c.Request.Context(), telemetry.FeedAttrs{Kind: "top_rated", Category: category, Limit: highlightLimit})

	query := h.db.WithContext(ctx).
		Where("average_rating > 0").
		Order("average_rating DESC, id ASC").
		Limit(highlightLimit)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var posts []models.Post
	err := query.Find(&posts).Error
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to load top rated posts", err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

// SearchPosts matches the query against titles and content, case-insensitively
// GET /posts/search?query=
func (h *Handlers) SearchPosts(c *gin.Context) {
	term := strings.TrimSpace(c.Query("query"))
	if term == "" {
		util.RespondBadRequest(c, "query is required")
		return
	}

	ctx, span := h.events.TraceFeed(c.Request.Context(), telemetry.FeedAttrs{Kind: "search"})

	pattern := "%" + strings.ToLower(term) + "%"
	var posts []models.Post
	err := h.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to search posts", err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}
