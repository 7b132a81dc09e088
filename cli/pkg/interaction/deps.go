package interaction

import (
	"context"

	"github.com/vartaverse/varta/cli/pkg/api"
)

// Store is the subset of the ContentStore a card talks to
type Store interface {
	ToggleLike(ctx context.Context, postID string) error
	GetLikeStatus(ctx context.Context, postID string) (bool, error)
	GetComments(ctx context.Context, postID string) ([]api.Comment, error)
	AddComment(ctx context.Context, postID, text string) (*api.Comment, error)
	GetCommentCount(ctx context.Context, postID string) (int, error)
	UpdatePost(ctx context.Context, postID string, req api.PostRequest) (*api.Post, error)
	DeletePost(ctx context.Context, postID string) error
	GetUser(ctx context.Context, userID string) (*api.User, error)
	Follow(ctx context.Context, targetID string) error
	Unfollow(ctx context.Context, targetID string) error
}

// Session answers who is signed in
type Session interface {
	IsAuthenticated() bool
	CurrentUser(ctx context.Context) (*api.User, error)
	CurrentUserID(ctx context.Context) string
	IsFollowing(ctx context.Context, userID string) bool
}

// Level is the severity of a notice
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is a transient message for the user
type Notice struct {
	Level Level
	Title string
}

// Notifier shows notices to the user
type Notifier interface {
	Notify(n Notice)
}

// Confirmer asks a blocking yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// Reloader reloads the whole feed after an edit or delete
type Reloader interface {
	Reload(ctx context.Context) error
}

// ImageResolver turns a local image key into a data URL, or "" when unknown
type ImageResolver interface {
	Resolve(key string) string
}

// FollowState is the follow mapping shared by every card in a feed
type FollowState interface {
	IsFollowing(userID string) bool
	Set(userID string, following bool)
	Merge(m map[string]bool)
}

// Deps are the collaborators of a Card. Images and Reloader may be nil.
type Deps struct {
	Store     Store
	Session   Session
	Notifier  Notifier
	Confirmer Confirmer
	Reloader  Reloader
	Follows   FollowState
	Images    ImageResolver
}
