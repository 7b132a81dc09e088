// Package service implements the commands behind the CLI on top of the
// feed, session and interaction packages.
package service

import (
	"context"

	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/config"
	"github.com/vartaverse/varta/cli/pkg/feed"
	"github.com/vartaverse/varta/cli/pkg/formatter"
	"github.com/vartaverse/varta/cli/pkg/imagestore"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"github.com/vartaverse/varta/cli/pkg/prompter"
	"github.com/vartaverse/varta/cli/pkg/session"
)

// ContentStore is every remote call the services make
type ContentStore interface {
	interaction.Store
	session.UserStore

	ListPosts(ctx context.Context, q api.PostsQuery) ([]api.Post, error)
	GetPost(ctx context.Context, postID string) (*api.Post, error)
	CreatePost(ctx context.Context, req api.PostRequest) (*api.Post, error)
	TrendingPosts(ctx context.Context) ([]api.Post, error)
	TopRatedPosts(ctx context.Context, category string) ([]api.Post, error)
	SearchPosts(ctx context.Context, query string) ([]api.Post, error)
	RatePost(ctx context.Context, postID string, value int) error
	GetAverageRating(ctx context.Context, postID string) (float64, error)
	GetUserRating(ctx context.Context, postID string) (int, error)
	GetLikesCount(ctx context.Context, postID string) (int, error)

	GetFollowers(ctx context.Context, userID string) ([]api.FollowRecord, error)
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
}

// Env is the state shared by every command in one invocation
type Env struct {
	Store     ContentStore
	Session   *session.Session
	Images    *imagestore.Store
	Notifier  interaction.Notifier
	Confirmer interaction.Confirmer
	Follows   *feed.FollowState
}

// NewEnv connects to the configured services and loads the stored session.
// A missing image store is logged and leaves Images nil.
func NewEnv(assumeYes bool) (*Env, error) {
	client.Init()
	store := api.NewStore()

	sess, err := session.Load(store)
	if err != nil {
		return nil, err
	}

	images, err := imagestore.Open(config.GetString("images.db_path"))
	if err != nil {
		logger.Warn("Local image store unavailable", "error", err)
		images = nil
	}

	return &Env{
		Store:     store,
		Session:   sess,
		Images:    images,
		Notifier:  formatter.Toaster{},
		Confirmer: prompter.Confirmer{AssumeYes: assumeYes},
		Follows:   feed.NewFollowState(),
	}, nil
}

// Close releases the image store
func (e *Env) Close() error {
	if e.Images == nil {
		return nil
	}
	return e.Images.Close()
}

// Deps assembles the card dependencies. reloader may be nil.
func (e *Env) Deps(reloader interaction.Reloader) interaction.Deps {
	deps := interaction.Deps{
		Store:     e.Store,
		Session:   e.Session,
		Notifier:  e.Notifier,
		Confirmer: e.Confirmer,
		Reloader:  reloader,
		Follows:   e.Follows,
	}
	if e.Images != nil {
		deps.Images = e.Images
	}
	return deps
}
