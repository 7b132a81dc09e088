package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/vartaverse/varta/cli/pkg/api"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/formatter"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"github.com/vartaverse/varta/cli/pkg/output"
	"golang.org/x/sync/errgroup"
)

const maxUserLookups = 8

// UserService shows users and manages follows outside of a post card
type UserService struct {
	env *Env
}

func NewUserService(env *Env) *UserService {
	return &UserService{env: env}
}

// Show prints a user. An empty id shows the signed-in user.
func (s *UserService) Show(ctx context.Context, userID string) error {
	var (
		user *api.User
		err  error
	)
	if strings.TrimSpace(userID) == "" {
		if !s.env.Session.IsAuthenticated() {
			return clierrors.AuthError("Not logged in")
		}
		user, err = s.env.Session.CurrentUser(ctx)
	} else {
		user, err = s.env.Store.GetUser(ctx, userID)
	}
	if userID != "" && api.IsNotFound(err) {
		return clierrors.NotFoundError("User", userID).WithCause(err)
	}
	if err != nil {
		return clierrors.CategorizeError(err)
	}

	if err := formatter.PrintUser(user); err != nil {
		return err
	}
	if !output.IsJSON() && userID != "" && s.env.Session.IsAuthenticated() && s.env.Session.IsFollowing(ctx, userID) {
		formatter.Info.Fprintln(output.Out, "You follow this user")
	}
	return nil
}

// Follow follows userID
func (s *UserService) Follow(ctx context.Context, userID string) error {
	return s.setFollow(ctx, userID, true)
}

// Unfollow unfollows userID
func (s *UserService) Unfollow(ctx context.Context, userID string) error {
	return s.setFollow(ctx, userID, false)
}

func (s *UserService) setFollow(ctx context.Context, userID string, follow bool) error {
	if !s.env.Session.IsAuthenticated() {
		return s.fail("Please login to follow users", clierrors.AuthError("Please login to follow users"))
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return s.fail("Invalid user ID", clierrors.NotFoundError("User", "missing id"))
	}

	var err error
	if follow {
		err = s.env.Store.Follow(ctx, userID)
	} else {
		err = s.env.Store.Unfollow(ctx, userID)
	}
	if err != nil {
		logger.Warn("Failed to update follow status", "user_id", userID, "error", err)
		return s.fail("Failed to update follow status", clierrors.CategorizeError(err))
	}

	s.env.Follows.Set(userID, follow)
	title := "User unfollowed"
	if follow {
		title = "User followed"
	}
	s.env.Notifier.Notify(interaction.Notice{Level: interaction.LevelSuccess, Title: title})
	return nil
}

func (s *UserService) fail(title string, err *clierrors.CLIError) error {
	s.env.Notifier.Notify(interaction.Notice{Level: interaction.LevelError, Title: title})
	return clierrors.Reported(err)
}

// Following lists the users userID follows. An empty id means the signed-in user.
func (s *UserService) Following(ctx context.Context, userID string) error {
	userID, err := s.resolveID(ctx, userID)
	if err != nil {
		return err
	}

	records, err := s.env.Store.GetFollowing(ctx, userID)
	if err != nil {
		return clierrors.CategorizeError(err)
	}

	ids := lo.Uniq(lo.FilterMap(records, func(r api.FollowRecord, _ int) (string, bool) {
		target := r.FollowingID
		if target == "" {
			target = r.TargetID
		}
		return target.String(), target != ""
	}))
	return formatter.PrintUsers("Following", s.lookup(ctx, ids))
}

// Followers lists the users following userID. An empty id means the signed-in user.
func (s *UserService) Followers(ctx context.Context, userID string) error {
	userID, err := s.resolveID(ctx, userID)
	if err != nil {
		return err
	}

	records, err := s.env.Store.GetFollowers(ctx, userID)
	if err != nil {
		return clierrors.CategorizeError(err)
	}

	ids := lo.Uniq(lo.FilterMap(records, func(r api.FollowRecord, _ int) (string, bool) {
		return r.FollowerID.String(), r.FollowerID != ""
	}))
	return formatter.PrintUsers("Followers", s.lookup(ctx, ids))
}

func (s *UserService) resolveID(ctx context.Context, userID string) (string, error) {
	if userID = strings.TrimSpace(userID); userID != "" {
		return userID, nil
	}
	if !s.env.Session.IsAuthenticated() {
		return "", clierrors.AuthError("Not logged in")
	}
	if id := s.env.Session.CurrentUserID(ctx); id != "" {
		return id, nil
	}
	return "", clierrors.AuthError("Could not determine the current user")
}

// lookup fetches users in parallel. Users that fail to load are shown by id only.
func (s *UserService) lookup(ctx context.Context, ids []string) []api.User {
	users := make([]api.User, len(ids))
	var g errgroup.Group
	g.SetLimit(maxUserLookups)
	for i, id := range ids {
		g.Go(func() error {
			u, err := s.env.Store.GetUser(ctx, id)
			if err != nil {
				logger.Debug("Failed to load user", "user_id", id, "error", err)
				users[i] = api.User{ID: api.ID(id)}
				return nil
			}
			users[i] = *u
			return nil
		})
	}
	_ = g.Wait()
	return users
}
