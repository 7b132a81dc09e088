package feed

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

var (
	// ErrSuperseded is returned when a newer Refresh started while this load was in flight.
	// The response was discarded.
	ErrSuperseded = errors.New("feed load superseded by a newer refresh")

	// ErrLoading is returned by LoadMore while another LoadMore is in flight
	ErrLoading = errors.New("feed page already loading")
)

// Feed owns the ordered post list, the paging cursor and the shared FollowState
type Feed struct {
	loader   *Loader
	follows  *FollowState
	pageSize int
	category string

	mu          sync.Mutex
	posts       []api.Post
	page        int
	hasMore     bool
	generation  uint64
	loadingMore bool
}

// New creates an empty feed. Call Refresh to load the first page.
func New(loader *Loader, follows *FollowState, pageSize int, category string) *Feed {
	if follows == nil {
		follows = NewFollowState()
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if category == "" {
		category = DefaultCategory
	}
	return &Feed{
		loader:   loader,
		follows:  follows,
		pageSize: pageSize,
		category: category,
	}
}

// Refresh loads page 1, replacing the list and the follow state
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	page, err := f.loader.LoadPage(ctx, 1, f.pageSize, f.category)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		logger.Debug("Discarding stale feed refresh", "generation", gen, "latest", f.generation)
		return ErrSuperseded
	}
	if err != nil {
		return err
	}

	f.posts = page.Posts
	f.page = 1
	f.hasMore = page.HasMore
	if page.Follows != nil {
		f.follows.Replace(page.Follows)
	}
	return nil
}

// LoadMore loads the next page and appends it. It is a no-op when there are no more pages.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.page > 0 && !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	if f.loadingMore {
		f.mu.Unlock()
		return ErrLoading
	}
	f.loadingMore = true
	gen := f.generation
	next := f.page + 1
	f.mu.Unlock()

	page, err := f.loader.LoadPage(ctx, next, f.pageSize, f.category)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadingMore = false

	if gen != f.generation {
		logger.Debug("Discarding stale feed page", "page", next, "generation", gen, "latest", f.generation)
		return ErrSuperseded
	}
	if err != nil {
		return err
	}

	if next == 1 {
		f.posts = page.Posts
		if page.Follows != nil {
			f.follows.Replace(page.Follows)
		}
	} else {
		f.posts = append(f.posts, page.Posts...)
		if page.Follows != nil {
			f.follows.Merge(page.Follows)
		}
	}
	f.page = next
	f.hasMore = page.HasMore
	return nil
}

// Posts returns a copy of the loaded posts
func (f *Feed) Posts() []api.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// Page returns the number of the last loaded page, 0 before the first load
func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page == 0 || f.hasMore
}

// Follows returns the shared follow state handed to every post card
func (f *Feed) Follows() *FollowState {
	return f.follows
}

func (f *Feed) Category() string {
	return f.category
}
