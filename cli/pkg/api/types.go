package api

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// ID is an identifier that may arrive as a JSON string or number
type ID string

// UnmarshalJSON accepts "12", 12 and null
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
	case b[0] == '"':
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*id = ID(s)
	default:
		*id = ID(strings.TrimSuffix(string(b), ".0"))
	}
	return nil
}

// String returns the identifier as a string
func (id ID) String() string {
	return string(id)
}

// Timestamp is a time value as sent by the server. The content service
// emits ISO dates without a zone, the dev server emits RFC3339, and some
// payloads carry epoch milliseconds.
type Timestamp string

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts strings and numbers; anything else decodes as empty
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		*t = ""
	case b[0] == '"':
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*t = Timestamp(s)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*t = Timestamp(b)
	default:
		*t = ""
	}
	return nil
}

// Time parses the timestamp. ok is false when it is missing or unparseable.
func (t Timestamp) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(t))
	if s == "" {
		return time.Time{}, false
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Post is a post as returned by the content service or the dev server
type Post struct {
	ID            ID        `json:"id,omitempty"`
	PostID        ID        `json:"postId,omitempty"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	UserID        ID        `json:"userId,omitempty"`
	AuthorID      ID        `json:"authorId,omitempty"`
	Author        string    `json:"author,omitempty"`
	CreatedAt     Timestamp `json:"createdAt,omitempty"`
	CreatedAtAlt  Timestamp `json:"created_at,omitempty"`
	UpdatedAt     Timestamp `json:"updatedAt,omitempty"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	AverageRating float64   `json:"averageRating,omitempty"`
	RatingAvg     float64   `json:"ratingAvg,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
}

// Key returns the post identifier from id or postId
func (p Post) Key() string {
	if p.ID != "" {
		return p.ID.String()
	}
	return p.PostID.String()
}

// Owner returns the author's user id from userId or authorId
func (p Post) Owner() string {
	if p.UserID != "" {
		return p.UserID.String()
	}
	return p.AuthorID.String()
}

// Timestamp resolves createdAt, then created_at, then updatedAt
func (p Post) Timestamp() time.Time {
	for _, ts := range []Timestamp{p.CreatedAt, p.CreatedAtAlt, p.UpdatedAt} {
		if ts == "" {
			continue
		}
		if t, ok := ts.Time(); ok {
			return t
		}
		// the first present value decides, even when unparseable
		return time.Unix(0, 0).UTC()
	}
	return time.Unix(0, 0).UTC()
}

// Rating returns averageRating, falling back to ratingAvg
func (p Post) Rating() float64 {
	if p.AverageRating != 0 {
		return p.AverageRating
	}
	return p.RatingAvg
}

// PostsResponse is the paged envelope returned by the dev server
type PostsResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// PostRequest creates or updates a post
type PostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// Comment is a comment as returned by the content service
type Comment struct {
	CommentID ID        `json:"commentId,omitempty"`
	ID        ID        `json:"id,omitempty"`
	PostID    ID        `json:"postId,omitempty"`
	UserID    ID        `json:"userId,omitempty"`
	Text      string    `json:"text,omitempty"`
	Content   string    `json:"content,omitempty"`
	CreatedAt Timestamp `json:"createdAt,omitempty"`
}

// Key returns the comment identifier from commentId or id
func (c Comment) Key() string {
	if c.CommentID != "" {
		return c.CommentID.String()
	}
	return c.ID.String()
}

// Body returns text, falling back to content
func (c Comment) Body() string {
	if c.Text != "" {
		return c.Text
	}
	return c.Content
}

// CommentRequest adds a comment
type CommentRequest struct {
	Text string `json:"text"`
}

// RatingRequest rates a post from 1 to 5
type RatingRequest struct {
	RatingValue int `json:"ratingValue"`
}

// User is a user profile
type User struct {
	ID          ID        `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   Timestamp `json:"updatedAt,omitempty"`
}

// DisplayName returns name, then email, then the given fallback
func (u User) DisplayName(fallback string) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return fallback
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by /users/login
type LoginResponse struct {
	JWTToken string `json:"jwtToken"`
	UserName string `json:"userName"`
	UserID   ID     `json:"userId"`
}

// RegisterRequest creates an account
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Bio         string `json:"bio"`
}

// FollowRecord is one row of a following/followers listing
type FollowRecord struct {
	ID          ID        `json:"id,omitempty"`
	FollowerID  ID        `json:"followerId,omitempty"`
	FollowingID ID        `json:"followingId,omitempty"`
	TargetID    ID        `json:"targetId,omitempty"`
	CreatedAt   Timestamp `json:"createdAt,omitempty"`
}

// Targets reports whether the record points at the given user
func (f FollowRecord) Targets(userID string) bool {
	return userID != "" && (f.FollowingID.String() == userID || f.TargetID.String() == userID)
}

// ErrorResponse is the error body shape used by both services
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}
