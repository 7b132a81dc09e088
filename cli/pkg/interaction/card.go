// Package interaction holds the per-post controller behind every card in
// the feed: likes, follows, comments, edits and deletes.
package interaction

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/content"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/feed"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ErrBusy is returned when the same kind of update is already in flight for this post
var ErrBusy = errors.New("an update to this post is already in progress")

// loadingAuthor is shown until Mount resolves the author
const loadingAuthor = "Loading..."

// Comment is a comment as shown on a card
type Comment struct {
	ID        string
	UserID    string
	Author    string
	Text      string
	CreatedAt time.Time
	// Pending is true while an optimistic comment waits for the server
	Pending bool
}

// Card is the controller for one post. It is safe for concurrent use.
type Card struct {
	deps    Deps
	authors *AuthorResolver
	now     func() time.Time

	mu             sync.Mutex
	post           api.Post
	decoded        content.Decoded
	author         string
	currentUserID  string
	liked          bool
	likes          int
	commentCount   int
	liking         bool
	expanded       bool
	commentsLoaded bool
	comments       []Comment
	editing        bool
	saving         bool
	editTitle      string
	editText       string
	deleting       bool
	removed        bool
}

// NewCard builds a card for post. Call Mount to load its remote state.
func NewCard(post api.Post, deps Deps) *Card {
	if deps.Follows == nil {
		deps.Follows = feed.NewFollowState()
	}

	decoded := content.Decode(post.Content)
	c := &Card{
		deps:         deps,
		authors:      NewAuthorResolver(deps.Store),
		now:          time.Now,
		post:         post,
		decoded:      decoded,
		author:       loadingAuthor,
		likes:        post.LikesCount,
		commentCount: post.CommentsCount,
	}
	c.editTitle, c.editText = c.originalEdit()
	return c
}

func (c *Card) originalEdit() (string, string) {
	text := c.decoded.Text()
	if text == "" {
		text = c.post.Content
	}
	return c.post.Title, text
}

// Mount resolves the author name, the liked status and the comment count.
// Failures are logged and leave the defaults in place.
func (c *Card) Mount(ctx context.Context) {
	postID := c.post.Key()
	owner := c.post.Owner()
	authed := c.deps.Session.IsAuthenticated()

	var g errgroup.Group

	g.Go(func() error {
		name := Anonymous
		if owner != "" {
			name = c.authors.Name(ctx, owner)
		}
		c.mu.Lock()
		c.author = name
		c.mu.Unlock()
		return nil
	})

	if authed {
		g.Go(func() error {
			id := c.deps.Session.CurrentUserID(ctx)
			c.mu.Lock()
			c.currentUserID = id
			c.mu.Unlock()
			return nil
		})
	}

	if authed && postID != "" {
		g.Go(func() error {
			liked, err := c.deps.Store.GetLikeStatus(ctx, postID)
			if err != nil {
				logger.Warn("Failed to check like status", "post_id", postID, "error", err)
				return nil
			}
			c.mu.Lock()
			c.liked = liked
			c.mu.Unlock()
			return nil
		})
	}

	if postID != "" {
		g.Go(func() error {
			count, err := c.deps.Store.GetCommentCount(ctx, postID)
			if err != nil {
				logger.Warn("Failed to fetch comment count", "post_id", postID, "error", err)
				return nil
			}
			c.mu.Lock()
			c.commentCount = count
			c.mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
}

// IsOwner reports whether the signed-in user wrote the post
func (c *Card) IsOwner(ctx context.Context) bool {
	owner := c.post.Owner()
	if owner == "" || !c.deps.Session.IsAuthenticated() {
		return false
	}

	c.mu.Lock()
	me := c.currentUserID
	c.mu.Unlock()

	if me == "" {
		me = c.deps.Session.CurrentUserID(ctx)
		c.mu.Lock()
		c.currentUserID = me
		c.mu.Unlock()
	}
	return me != "" && me == owner
}

// CommentView is a comment together with the viewer's follow state for its author
type CommentView struct {
	Comment
	Following bool
}

// View is a snapshot of a card for rendering
type View struct {
	PostID    string
	Title     string
	Category  string
	AuthorID  string
	Author    string
	Following bool
	Owner     bool
	CreatedAt time.Time
	Rating    float64

	Kind     content.Kind
	Text     string
	ImageKey string
	// Image is the resolved data URL, "" when there is no image or it is not stored locally
	Image string
	Movie *content.MovieDetails

	Liked         bool
	LikesCount    int
	CommentsCount int
	Expanded      bool
	Comments      []CommentView

	Editing   bool
	Saving    bool
	EditTitle string
	EditText  string
	Deleting  bool
	Removed   bool
}

// View returns a snapshot of the card's current state
func (c *Card) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	owner := c.post.Owner()
	v := View{
		PostID:        c.post.Key(),
		Title:         c.post.Title,
		Category:      c.post.Category,
		AuthorID:      owner,
		Author:        c.author,
		Following:     owner != "" && c.deps.Follows.IsFollowing(owner),
		Owner:         owner != "" && c.currentUserID == owner,
		CreatedAt:     c.post.Timestamp(),
		Rating:        c.post.Rating(),
		Kind:          c.decoded.Kind,
		Text:          c.decoded.Text(),
		ImageKey:      c.decoded.ImageKey(),
		Movie:         c.decoded.Movie,
		Liked:         c.liked,
		LikesCount:    c.likes,
		CommentsCount: c.commentCount,
		Expanded:      c.expanded,
		Editing:       c.editing,
		Saving:        c.saving,
		EditTitle:     c.editTitle,
		EditText:      c.editText,
		Deleting:      c.deleting,
		Removed:       c.removed,
	}
	if c.deps.Images != nil && v.ImageKey != "" {
		v.Image = c.deps.Images.Resolve(v.ImageKey)
	}

	v.Comments = make([]CommentView, len(c.comments))
	for i, cm := range c.comments {
		v.Comments[i] = CommentView{
			Comment:   cm,
			Following: cm.UserID != "" && c.deps.Follows.IsFollowing(cm.UserID),
		}
	}
	return v
}

// Post returns the post the card was built from
func (c *Card) Post() api.Post {
	return c.post
}

// fail shows title to the user and returns err marked as already reported
func (c *Card) fail(title string, err *clierrors.CLIError) error {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(Notice{Level: LevelError, Title: title})
	}
	return clierrors.Reported(err)
}

func (c *Card) succeed(title string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(Notice{Level: LevelSuccess, Title: title})
	}
}

// requireAuth guards actions that need a signed-in user and a post id
func (c *Card) requireAuth(loginMsg string) (string, error) {
	if !c.deps.Session.IsAuthenticated() {
		return "", c.fail(loginMsg, clierrors.AuthError(loginMsg))
	}
	postID := c.post.Key()
	if postID == "" {
		return "", c.fail("Invalid post ID", clierrors.NotFoundError("Post", "missing id"))
	}
	return postID, nil
}

func (c *Card) reload(ctx context.Context) error {
	if c.deps.Reloader == nil {
		return nil
	}
	if err := c.deps.Reloader.Reload(ctx); err != nil {
		return c.fail("Failed to load posts", clierrors.CategorizeError(err))
	}
	return nil
}
