package interaction

import (
	"context"

	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

// ToggleFollow follows or unfollows userID based on the shared follow state.
// Used for the post's author and for comment authors alike.
func (c *Card) ToggleFollow(ctx context.Context, userID string) error {
	if !c.deps.Session.IsAuthenticated() {
		msg := "Please login to follow users"
		return c.fail(msg, clierrors.AuthError(msg))
	}
	if userID == "" {
		return c.fail("Invalid user ID", clierrors.NotFoundError("User", "missing id"))
	}

	following := c.deps.Follows.IsFollowing(userID)

	var err error
	if following {
		err = c.deps.Store.Unfollow(ctx, userID)
	} else {
		err = c.deps.Store.Follow(ctx, userID)
	}
	if err != nil {
		logger.Warn("Failed to update follow status", "user_id", userID, "error", err)
		return c.fail("Failed to update follow status", clierrors.CategorizeError(err))
	}

	c.deps.Follows.Set(userID, !following)
	if following {
		c.succeed("User unfollowed")
	} else {
		c.succeed("User followed")
	}
	return nil
}

// ToggleFollowAuthor toggles the follow state of the post's author
func (c *Card) ToggleFollowAuthor(ctx context.Context) error {
	return c.ToggleFollow(ctx, c.post.Owner())
}
