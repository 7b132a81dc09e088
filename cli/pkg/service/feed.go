package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/feed"
	"github.com/vartaverse/varta/cli/pkg/formatter"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"github.com/vartaverse/varta/cli/pkg/output"
	"golang.org/x/sync/errgroup"
)

const maxMounts = 4

// FeedService shows the main feed. It also reloads the feed after a card
// edits or deletes a post.
type FeedService struct {
	env  *Env
	feed *feed.Feed

	// ShowComments expands every card before it is rendered
	ShowComments bool
}

// NewFeedService creates a feed over the env's store and session
func NewFeedService(env *Env, pageSize int, category string) *FeedService {
	loader := feed.NewLoader(env.Store, env.Session)
	return &FeedService{
		env:  env,
		feed: feed.New(loader, env.Follows, pageSize, category),
	}
}

// Show loads pages 1..pages, or every page when all is set, and renders them
func (s *FeedService) Show(ctx context.Context, pages int, all bool) error {
	logger.Debug("Showing feed", "pages", pages, "all", all, "category", s.feed.Category())

	if err := s.load(ctx, pages, all); err != nil {
		logger.Error("Failed to load posts", "error", err)
		s.env.Notifier.Notify(interaction.Notice{Level: interaction.LevelError, Title: "Failed to load posts"})
		return clierrors.Reported(clierrors.CategorizeError(err))
	}

	return s.Render(ctx)
}

func (s *FeedService) load(ctx context.Context, pages int, all bool) error {
	if err := s.feed.Refresh(ctx); err != nil {
		return err
	}
	for s.feed.HasMore() && (all || s.feed.Page() < pages) {
		if err := s.feed.LoadMore(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Reload refetches page 1 and renders it. The calling card reports failures.
func (s *FeedService) Reload(ctx context.Context) error {
	if err := s.feed.Refresh(ctx); err != nil {
		if errors.Is(err, feed.ErrSuperseded) {
			return nil
		}
		return err
	}
	return s.Render(ctx)
}

// Cards builds and mounts a card for every loaded post
func (s *FeedService) Cards(ctx context.Context) []*interaction.Card {
	posts := s.feed.Posts()
	deps := s.env.Deps(s)

	cards := make([]*interaction.Card, len(posts))
	var g errgroup.Group
	g.SetLimit(maxMounts)
	for i, p := range posts {
		cards[i] = interaction.NewCard(p, deps)
		g.Go(func() error {
			cards[i].Mount(ctx)
			if s.ShowComments {
				return cards[i].ToggleComments(ctx)
			}
			return nil
		})
	}
	_ = g.Wait()
	return cards
}

// Render prints the loaded posts as cards
func (s *FeedService) Render(ctx context.Context) error {
	cards := s.Cards(ctx)
	if len(cards) == 0 && !output.IsJSON() {
		output.PrintInfo("No posts yet.")
		return nil
	}

	views := lo.Map(cards, func(c *interaction.Card, _ int) interaction.View {
		return c.View()
	})
	if err := formatter.RenderCards(views); err != nil {
		return err
	}

	if s.feed.HasMore() && !output.IsJSON() {
		output.PrintInfo("More posts available: use --page %d or --all", s.feed.Page()+1)
	}
	return nil
}

// Feed exposes the underlying feed
func (s *FeedService) Feed() *feed.Feed {
	return s.feed
}
