package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/vartaverse/varta/backend/internal/dto"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/metrics"
	"github.com/vartaverse/varta/backend/internal/models"
	"github.com/vartaverse/varta/backend/internal/telemetry"
	"github.com/vartaverse/varta/backend/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleLike likes the post for the caller, or removes an existing like
// POST /posts/:id/like
func (h *Handlers) ToggleLike(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}
	userID := currentUserID(c)

	ctx, span := h.events.TraceInteraction(c.Request.Context(), "like", dto.FormatID(userID), "post", dto.FormatID(post.ID))
	var liked bool
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("post_id = ? AND user_id = ?", post.ID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(post).UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{PostID: post.ID, UserID: userID}).Error; err != nil {
				return err
			}
			if err := tx.Model(post).UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}
		return tx.First(post, post.ID).Error
	})
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to toggle like", err)
		return
	}

	metrics.RecordInteraction(lo.Ternary(liked, "like", "unlike"))
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked, LikesCount: post.LikesCount})
}

// GetLikesCount returns the like count as a bare number
// GET /posts/:id/likes
func (h *Handlers) GetLikesCount(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}
	c.JSON(http.StatusOK, post.LikesCount)
}

// GetLikeStatus reports whether the caller likes the post, as a bare boolean
// GET /posts/:id/liked
func (h *Handlers) GetLikeStatus(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", post.ID, currentUserID(c)).
		Count(&count).Error; err != nil {
		util.RespondInternalError(c, "Failed to load like status", err)
		return
	}
	c.JSON(http.StatusOK, count > 0)
}

// AddComment appends a comment by the caller
// POST /posts/:id/comment
func (h *Handlers) AddComment(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}

	var req dto.CommentRequest
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Text) == "" {
		util.RespondBadRequest(c, "Comment text is required")
		return
	}

	userID := currentUserID(c)
	ctx, span := h.events.TraceInteraction(c.Request.Context(), "comment", dto.FormatID(userID), "post", dto.FormatID(post.ID))
	comment := models.Comment{PostID: post.ID, UserID: userID, Text: req.Text}
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(post).UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to add comment", err)
		return
	}

	metrics.RecordInteraction("comment")
	c.JSON(http.StatusCreated, dto.ToCommentResponse(&comment))
}

// GetComments lists the comments on a post, oldest first
// GET /posts/:id/comments
func (h *Handlers) GetComments(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}

	var comments []models.Comment
	if err := h.db.WithContext(c.Request.Context()).
		Where("post_id = ?", post.ID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		util.RespondInternalError(c, "Failed to load comments", err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(comments, func(cm models.Comment, _ int) *dto.CommentResponse {
		return dto.ToCommentResponse(&cm)
	}))
}

// GetCommentCount returns the comment count as a bare number
// GET /posts/:id/comments/count
func (h *Handlers) GetCommentCount(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}
	c.JSON(http.StatusOK, post.CommentsCount)
}

// RatePost records or replaces the caller's 1-5 rating and refreshes the average
// POST /posts/:id/rate
func (h *Handlers) RatePost(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}

	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RatingValue < 1 || req.RatingValue > 5 {
		util.RespondBadRequest(c, "Rating must be between 1 and 5")
		return
	}

	userID := currentUserID(c)
	ctx, span := h.events.TraceInteraction(c.Request.Context(), "rate", dto.FormatID(userID), "post", dto.FormatID(post.ID))
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rating := models.Rating{PostID: post.ID, UserID: userID, Value: req.RatingValue}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rating).Error; err != nil {
			return err
		}

		var average float64
		if err := tx.Model(&models.Rating{}).
			Where("post_id = ?", post.ID).
			Select("AVG(value)").
			Scan(&average).Error; err != nil {
			return err
		}
		if err := tx.Model(post).UpdateColumn("average_rating", average).Error; err != nil {
			return err
		}
		post.AverageRating = average
		return nil
	})
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to rate post", err)
		return
	}

	metrics.RecordInteraction("rate")
	logger.Log.Debug("Post rated",
		logger.WithPostID(dto.FormatID(post.ID)),
		zap.Int("value", req.RatingValue),
		zap.Float64("average", post.AverageRating),
	)
	c.JSON(http.StatusOK, gin.H{"averageRating": post.AverageRating, "userRating": req.RatingValue})
}

// GetAverageRating returns the average rating as a bare number
// GET /posts/:id/rating
func (h *Handlers) GetAverageRating(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}
	c.JSON(http.StatusOK, post.AverageRating)
}

// GetUserRating returns the caller's rating, 0 when unrated
// GET /posts/:id/rating/user
func (h *Handlers) GetUserRating(c *gin.Context) {
	post := h.loadPost(c)
	if post == nil {
		return
	}

	var rating models.Rating
	err := h.db.WithContext(c.Request.Context()).
		Where("post_id = ? AND user_id = ?", post.ID, currentUserID(c)).
		First(&rating).Error
	switch {
	case err == nil:
		c.JSON(http.StatusOK, rating.Value)
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusOK, 0)
	default:
		util.RespondInternalError(c, "Failed to load rating", err)
	}
}
