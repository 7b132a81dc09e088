// Package feed loads pages of posts and tracks the feed's paging cursor
// and shared follow state.
package feed

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageSize = 10
	DefaultCategory = "general"

	// maxLookups bounds concurrent follow lookups
	maxLookups = 8
)

// PostLister lists a page of posts
type PostLister interface {
	ListPosts(ctx context.Context, q api.PostsQuery) ([]api.Post, error)
}

// FollowChecker answers follow lookups for the signed-in user
type FollowChecker interface {
	IsAuthenticated() bool
	IsFollowing(ctx context.Context, userID string) bool
}

// Page is one loaded page of the feed
type Page struct {
	Number  int
	Posts   []api.Post
	HasMore bool
	// Follows holds the follow state of every author on the page.
	// It is nil when no user is signed in.
	Follows map[string]bool
}

// Loader fetches and normalizes feed pages
type Loader struct {
	posts   PostLister
	follows FollowChecker
}

func NewLoader(posts PostLister, follows FollowChecker) *Loader {
	return &Loader{posts: posts, follows: follows}
}

// LoadPage fetches one page, drops posts without an id and sorts the rest
// oldest first. HasMore is true when the server returned a full page.
func (l *Loader) LoadPage(ctx context.Context, page, pageSize int, category string) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if category == "" {
		category = DefaultCategory
	}

	raw, err := l.posts.ListPosts(ctx, api.PostsQuery{Category: category, Page: page, Limit: pageSize})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load page %d", page)
	}

	posts := Normalize(raw)
	logger.Debug("Loaded feed page", "page", page, "received", len(raw), "kept", len(posts))

	result := &Page{
		Number:  page,
		Posts:   posts,
		HasMore: len(raw) == pageSize,
	}

	if l.follows != nil && l.follows.IsAuthenticated() {
		authors := lo.Uniq(lo.FilterMap(posts, func(p api.Post, _ int) (string, bool) {
			return p.Owner(), p.Owner() != ""
		}))
		result.Follows = ResolveFollows(ctx, l.follows, authors)
	}

	return result, nil
}

// Normalize drops posts without a resolvable id, copies postId into id and
// sorts the remainder ascending by timestamp. The sort is stable.
func Normalize(raw []api.Post) []api.Post {
	posts := make([]api.Post, 0, len(raw))
	for _, p := range raw {
		key := p.Key()
		if key == "" {
			continue
		}
		p.ID = api.ID(key)
		posts = append(posts, p)
	}

	// Oldest first. Product copy says newest first; kept as shipped.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp().Before(posts[j].Timestamp())
	})

	return posts
}

// ResolveFollows looks up follow state for each user concurrently.
// A failed lookup is recorded as not following.
func ResolveFollows(ctx context.Context, checker FollowChecker, userIDs []string) map[string]bool {
	out := make(map[string]bool, len(userIDs))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(maxLookups)
	for _, id := range userIDs {
		g.Go(func() error {
			following := checker.IsFollowing(ctx, id)
			mu.Lock()
			out[id] = following
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}
