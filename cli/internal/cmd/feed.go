package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/cli/pkg/config"
	"github.com/vartaverse/varta/cli/pkg/service"
)

var (
	feedPages    int
	feedPageSize int
	feedCategory string
	feedAll      bool
	feedComments bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "View the post feed",
	Long: `Show posts in a category, oldest first. Each --page loads one more
page from the server; --all keeps loading until the server runs out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pageSize := feedPageSize
		if pageSize <= 0 {
			pageSize = config.GetInt("feed.page_size")
		}
		category := feedCategory
		if category == "" {
			category = config.GetString("feed.category")
		}

		return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
			svc := service.NewFeedService(env, pageSize, category)
			svc.ShowComments = feedComments
			return svc.Show(ctx, feedPages, feedAll)
		})
	},
}

func init() {
	feedCmd.Flags().IntVarP(&feedPages, "page", "p", 1, "Number of pages to load")
	feedCmd.Flags().IntVar(&feedPageSize, "page-size", 0, "Posts per page (default from feed.page_size)")
	feedCmd.Flags().StringVarP(&feedCategory, "category", "c", "", "Category to show (default from feed.category)")
	feedCmd.Flags().BoolVar(&feedAll, "all", false, "Load every page")
	feedCmd.Flags().BoolVar(&feedComments, "comments", false, "Expand the comments of every post")
}
