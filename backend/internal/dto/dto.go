package dto

import (
	"strconv"
	"time"

	"github.com/vartaverse/varta/backend/internal/models"
)

// FormatID renders a numeric id the way clients expect it: a JSON string
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// UserResponse is the public user representation
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Bio         string `json:"bio,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ToUserResponse converts models.User to UserResponse (excludes the password hash)
func ToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:          FormatID(user.ID),
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
		Bio:         user.Bio,
		CreatedAt:   formatTime(user.CreatedAt),
		UpdatedAt:   formatTime(user.UpdatedAt),
	}
}

// LoginRequest is the body of POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /users/login
type LoginResponse struct {
	JWTToken string `json:"jwtToken"`
	UserName string `json:"userName"`
	UserID   string `json:"userId"`
}

// RegisterRequest is the body of POST /users/register
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Bio         string `json:"bio"`
}

// PostRequest creates or replaces a post
type PostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// PostResponse is a post as sent to clients
type PostResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	AuthorID      string   `json:"authorId"`
	Author        string   `json:"author"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	LikesCount    int      `json:"likesCount"`
	CommentsCount int      `json:"commentsCount"`
	AverageRating float64  `json:"averageRating"`
	Tags          []string `json:"tags"`
}

// ToPostResponse converts models.Post to PostResponse. Description mirrors content.
func ToPostResponse(post *models.Post) *PostResponse {
	if post == nil {
		return nil
	}
	tags := []string(post.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &PostResponse{
		ID:            FormatID(post.ID),
		Title:         post.Title,
		Content:       post.Content,
		Description:   post.Content,
		Category:      post.Category,
		AuthorID:      FormatID(post.AuthorID),
		Author:        post.Author,
		CreatedAt:     formatTime(post.CreatedAt),
		UpdatedAt:     formatTime(post.UpdatedAt),
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		AverageRating: post.AverageRating,
		Tags:          tags,
	}
}

// PostsPage is the envelope of GET /posts
type PostsPage struct {
	Posts []*PostResponse `json:"posts"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// LikeResponse is returned by POST /posts/:id/like
type LikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// CommentRequest is the body of POST /posts/:id/comment
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is a comment as sent to clients
type CommentResponse struct {
	CommentID string `json:"commentId"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// ToCommentResponse converts models.Comment to CommentResponse
func ToCommentResponse(comment *models.Comment) *CommentResponse {
	if comment == nil {
		return nil
	}
	return &CommentResponse{
		CommentID: FormatID(comment.ID),
		PostID:    FormatID(comment.PostID),
		UserID:    FormatID(comment.UserID),
		Text:      comment.Text,
		CreatedAt: formatTime(comment.CreatedAt),
	}
}

// RatingRequest is the body of POST /posts/:id/rate
type RatingRequest struct {
	RatingValue int `json:"ratingValue"`
}

// FollowResponse is one follow relationship
type FollowResponse struct {
	ID          string `json:"id"`
	FollowerID  string `json:"followerId"`
	FollowingID string `json:"followingId"`
	CreatedAt   string `json:"createdAt"`
}

// ToFollowResponse converts models.Follow to FollowResponse
func ToFollowResponse(follow *models.Follow) *FollowResponse {
	if follow == nil {
		return nil
	}
	return &FollowResponse{
		ID:          FormatID(follow.ID),
		FollowerID:  FormatID(follow.FollowerID),
		FollowingID: FormatID(follow.FollowingID),
		CreatedAt:   formatTime(follow.CreatedAt),
	}
}
