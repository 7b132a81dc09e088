package interaction

import (
	"context"

	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

// ToggleLike flips the like optimistically and reverts it if the server rejects the toggle
func (c *Card) ToggleLike(ctx context.Context) error {
	postID, err := c.requireAuth("Please login to like posts")
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.liking {
		c.mu.Unlock()
		return ErrBusy
	}
	c.liking = true
	wasLiked := c.liked
	delta := 1
	if wasLiked {
		delta = -1
	}
	c.liked = !wasLiked
	c.likes += delta
	c.mu.Unlock()

	err = c.deps.Store.ToggleLike(ctx, postID)

	c.mu.Lock()
	c.liking = false
	if err != nil {
		c.liked = wasLiked
		c.likes -= delta
		c.mu.Unlock()

		logger.Warn("Failed to like post", "post_id", postID, "error", err)
		return c.fail("Failed to like post", clierrors.CategorizeError(err))
	}
	c.mu.Unlock()

	if wasLiked {
		c.succeed("Post unliked")
	} else {
		c.succeed("Post liked")
	}
	return nil
}
