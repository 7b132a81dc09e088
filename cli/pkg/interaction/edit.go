package interaction

import (
	"context"
	"strings"

	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/content"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

// DeletePrompt is the confirmation shown before a post is deleted
const DeletePrompt = "Are you sure you want to delete this post?"

// BeginEdit enters edit mode with the post's current title and text
func (c *Card) BeginEdit() {
	title, text := c.originalEdit()
	c.mu.Lock()
	c.editing = true
	c.editTitle = title
	c.editText = text
	c.mu.Unlock()
}

// CancelEdit leaves edit mode and restores the original title and text
func (c *Card) CancelEdit() {
	title, text := c.originalEdit()
	c.mu.Lock()
	c.editing = false
	c.editTitle = title
	c.editText = text
	c.mu.Unlock()
}

// SaveEdit updates the post and reloads the feed. An existing image is kept.
func (c *Card) SaveEdit(ctx context.Context, title, text string) error {
	postID, err := c.requireAuth("Please login to edit posts")
	if err != nil {
		return err
	}

	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)
	if title == "" || text == "" {
		return c.fail("Please fill in all fields", clierrors.ValidationError("title, content", "required"))
	}

	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrBusy
	}
	c.saving = true
	c.editTitle = title
	c.editText = text
	c.mu.Unlock()

	req := api.PostRequest{
		Title:    title,
		Content:  content.Body(text, c.decoded.ImageKey()),
		Category: c.post.Category,
	}
	_, err = c.deps.Store.UpdatePost(ctx, postID, req)

	c.mu.Lock()
	c.saving = false
	if err != nil {
		c.mu.Unlock()
		logger.Warn("Failed to update post", "post_id", postID, "error", err)
		return c.fail(changeFailure("Failed to update post", err), clierrors.CategorizeError(err))
	}
	c.editing = false
	c.mu.Unlock()

	c.succeed("Post updated successfully")
	return c.reload(ctx)
}

// Delete asks for confirmation, deletes the post and reloads the feed.
// Declining the prompt does nothing.
func (c *Card) Delete(ctx context.Context) error {
	postID, err := c.requireAuth("Please login to delete posts")
	if err != nil {
		return err
	}

	if c.deps.Confirmer == nil || !c.deps.Confirmer.Confirm(DeletePrompt) {
		return nil
	}

	c.mu.Lock()
	if c.deleting || c.removed {
		c.mu.Unlock()
		return ErrBusy
	}
	c.deleting = true
	c.mu.Unlock()

	err = c.deps.Store.DeletePost(ctx, postID)

	c.mu.Lock()
	c.deleting = false
	if err != nil {
		c.mu.Unlock()
		logger.Warn("Failed to delete post", "post_id", postID, "error", err)
		return c.fail(changeFailure("Failed to delete post", err), clierrors.CategorizeError(err))
	}
	c.removed = true
	c.mu.Unlock()

	c.succeed("Post deleted successfully")
	return c.reload(ctx)
}

// changeFailure is the notice title for a failed edit or delete
func changeFailure(title string, err error) string {
	if api.IsForbidden(err) {
		return "You can only change your own posts"
	}
	return title
}
