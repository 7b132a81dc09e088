package interaction

import (
	"context"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/vartaverse/varta/cli/pkg/api"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/feed"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const maxAuthorLookups = 8

// ToggleComments expands or collapses the comment list. The first expansion
// loads the comments; later expansions reuse them. A collapse while that load
// is running sticks.
func (c *Card) ToggleComments(ctx context.Context) error {
	c.mu.Lock()
	if c.expanded {
		c.expanded = false
		c.mu.Unlock()
		return nil
	}
	c.expanded = true
	needLoad := !c.commentsLoaded
	c.commentsLoaded = true
	c.mu.Unlock()

	if needLoad {
		loaded := c.loadComments(ctx)
		c.mu.Lock()
		c.comments = mergeLoaded(loaded, c.comments)
		c.mu.Unlock()
	}
	return nil
}

// mergeLoaded puts the server's comments first and keeps only the local
// comments the server did not return yet
func mergeLoaded(loaded, local []Comment) []Comment {
	seen := make(map[string]bool, len(loaded))
	for _, cm := range loaded {
		seen[cm.UserID+"\x00"+cm.Text] = true
	}
	merged := loaded
	for _, cm := range local {
		key := cm.UserID + "\x00" + cm.Text
		if seen[key] {
			delete(seen, key)
			continue
		}
		merged = append(merged, cm)
	}
	return merged
}

// Comments returns the loaded comments
func (c *Card) Comments() []Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Comment, len(c.comments))
	copy(out, c.comments)
	return out
}

func (c *Card) loadComments(ctx context.Context) []Comment {
	postID := c.post.Key()
	if postID == "" {
		return nil
	}

	raw, err := c.deps.Store.GetComments(ctx, postID)
	if err != nil {
		logger.Warn("Failed to load comments", "post_id", postID, "error", err)
		return nil
	}

	views := make([]Comment, len(raw))
	var g errgroup.Group
	g.SetLimit(maxAuthorLookups)
	for i, rc := range raw {
		g.Go(func() error {
			views[i] = toComment(rc, c.authors.Name(ctx, rc.UserID.String()))
			return nil
		})
	}
	_ = g.Wait()

	if c.deps.Session.IsAuthenticated() {
		authors := lo.Uniq(lo.FilterMap(raw, func(rc api.Comment, _ int) (string, bool) {
			return rc.UserID.String(), rc.UserID != ""
		}))
		if len(authors) > 0 {
			c.deps.Follows.Merge(feed.ResolveFollows(ctx, c.deps.Session, authors))
		}
	}

	return views
}

func toComment(rc api.Comment, author string) Comment {
	cm := Comment{
		ID:     rc.Key(),
		UserID: rc.UserID.String(),
		Author: author,
		Text:   rc.Body(),
	}
	if t, ok := rc.CreatedAt.Time(); ok {
		cm.CreatedAt = t
	}
	return cm
}

// SubmitComment appends the comment optimistically and removes it again if
// the server rejects it. Blank text is ignored.
func (c *Card) SubmitComment(ctx context.Context, text string) error {
	postID, err := c.requireAuth("Please login to comment")
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	author := "You"
	userID := ""
	if me, err := c.deps.Session.CurrentUser(ctx); err == nil {
		author = me.DisplayName("You")
		userID = me.ID.String()
	} else {
		userID = c.deps.Session.CurrentUserID(ctx)
	}

	now := c.now()
	pending := Comment{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		UserID:    userID,
		Author:    author,
		Text:      text,
		CreatedAt: now,
		Pending:   true,
	}

	c.mu.Lock()
	c.comments = append(c.comments, pending)
	c.commentCount++
	c.mu.Unlock()

	_, err = c.deps.Store.AddComment(ctx, postID, text)

	c.mu.Lock()
	idx := c.pendingIndex(pending)
	if err != nil {
		if idx >= 0 {
			c.comments = append(c.comments[:idx], c.comments[idx+1:]...)
		}
		c.commentCount--
		c.mu.Unlock()

		logger.Warn("Failed to add comment", "post_id", postID, "error", err)
		return c.fail("Failed to add comment", clierrors.CategorizeError(err))
	}
	if idx >= 0 {
		c.comments[idx].Pending = false
	}
	c.mu.Unlock()

	c.succeed("Comment added successfully")
	return nil
}

// pendingIndex finds the optimistic comment p. Caller holds c.mu.
func (c *Card) pendingIndex(p Comment) int {
	for i := len(c.comments) - 1; i >= 0; i-- {
		cm := c.comments[i]
		if cm.Pending && cm.ID == p.ID && cm.Text == p.Text {
			return i
		}
	}
	return -1
}
