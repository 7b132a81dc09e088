package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringArray is stored as a JSON text column
type StringArray []string

// Scan implements the sql.Scanner interface for reading from database
func (a *StringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported StringArray value %T", value)
	}
	if len(raw) == 0 {
		*a = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(a))
}

// Value implements the driver.Valuer interface for writing to database
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	return string(b), err
}

// User is a registered or seeded account
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"default:user"`
	PhoneNumber  string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Post is a feed post. Content is opaque: plain text or an encoded JSON body.
type Post struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Content       string `gorm:"type:text;not null"`
	Category      string `gorm:"index;not null"`
	AuthorID      uint   `gorm:"index"`
	Author        string
	LikesCount    int `gorm:"default:0"`
	CommentsCount int `gorm:"default:0"`
	// AverageRating is the seeded value; it is replaced once real ratings exist
	AverageRating float64     `gorm:"default:0"`
	Tags          StringArray `gorm:"type:text"`
	CreatedAt     time.Time   `gorm:"index"`
	UpdatedAt     time.Time
}

// Like is one user's like on a post
type Like struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"uniqueIndex:idx_like_post_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_like_post_user;not null"`
	CreatedAt time.Time
}

// Comment is a flat comment on a post
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index;not null"`
	UserID    uint   `gorm:"index;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// Rating is one user's 1-5 rating of a post
type Rating struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"uniqueIndex:idx_rating_post_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_rating_post_user;not null"`
	Value     int  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Follow records that FollowerID follows FollowingID
type Follow struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"uniqueIndex:idx_follow_pair;not null"`
	FollowingID uint `gorm:"uniqueIndex:idx_follow_pair;index;not null"`
	CreatedAt   time.Time
}

// All lists every model for auto-migration
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Like{}, &Comment{}, &Rating{}, &Follow{}}
}
