package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/prompter"
	"github.com/vartaverse/varta/cli/pkg/service"
)

var (
	postWithComments bool
	postCreate       service.CreateRequest
	postReview       bool
	postMovie        service.MovieRequest
	postEditTitle    string
	postEditContent  string
	topRatedCategory string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "View, publish and interact with posts",
}

var postGetCmd = &cobra.Command{
	Use:   "get <post-id>",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Show(ctx, args[0], postWithComments)
		})
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a post",
	Long: `Publish a text post, optionally with a local image.
The content is read from the terminal when --content is omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := postCreate
		if postReview {
			req.Category = service.ReviewCategory
		}
		if req.Title == "" {
			title, err := prompter.PromptString("Title: ")
			if err != nil {
				return err
			}
			req.Title = title
		}
		if req.Text == "" {
			text, err := prompter.PromptMultilineString("Content (empty line to finish):", 50)
			if err != nil {
				return err
			}
			req.Text = text
		}

		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			_, err := svc.Create(ctx, req)
			return err
		})
	},
}

var postMovieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Publish a movie post",
	Long:  "Publish a movie with its director, genre, year, description and poster image. Every field is required.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			_, err := svc.CreateMovie(ctx, postMovie)
			return err
		})
	},
}

var postEditCmd = &cobra.Command{
	Use:   "edit <post-id>",
	Short: "Edit one of your posts",
	Long:  "Change the title or content of a post you own. Omitted flags keep the current value.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Edit(ctx, args[0], postEditTitle, postEditContent)
		})
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Delete(ctx, args[0])
		})
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Like(ctx, args[0])
		})
	},
}

var postFollowCmd = &cobra.Command{
	Use:   "follow <post-id>",
	Short: "Follow or unfollow the author of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.FollowAuthor(ctx, args[0])
		})
	},
}

var postRateCmd = &cobra.Command{
	Use:   "rate <post-id> <1-5>",
	Short: "Rate a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return clierrors.ValidationError("rating", "must be a number from 1 to 5")
		}
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Rate(ctx, args[0], value)
		})
	},
}

var postRatingCmd = &cobra.Command{
	Use:   "rating <post-id>",
	Short: "Show the rating of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Rating(ctx, args[0])
		})
	},
}

var postTrendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show trending posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Trending(ctx)
		})
	},
}

var postTopRatedCmd = &cobra.Command{
	Use:   "top-rated",
	Short: "Show the best rated posts in a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.TopRated(ctx, topRatedCategory)
		})
	},
}

var postSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts by title and content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPosts(cmd, func(ctx context.Context, svc *service.PostService) error {
			return svc.Search(ctx, args[0])
		})
	},
}

func withPosts(cmd *cobra.Command, fn func(ctx context.Context, svc *service.PostService) error) error {
	return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
		return fn(ctx, service.NewPostService(env, nil))
	})
}

func init() {
	postGetCmd.Flags().BoolVar(&postWithComments, "comments", false, "Also show the comments")

	postCreateCmd.Flags().StringVarP(&postCreate.Title, "title", "t", "", "Post title")
	postCreateCmd.Flags().StringVar(&postCreate.Text, "content", "", "Post content")
	postCreateCmd.Flags().StringVarP(&postCreate.Category, "category", "c", "", "Post category (default general)")
	postCreateCmd.Flags().StringVar(&postCreate.ImagePath, "image", "", "Path to an image to attach")
	postCreateCmd.Flags().BoolVar(&postReview, "review", false, "Publish in the review category")

	postMovieCmd.Flags().StringVarP(&postMovie.Title, "title", "t", "", "Movie title")
	postMovieCmd.Flags().StringVar(&postMovie.Director, "director", "", "Director")
	postMovieCmd.Flags().StringVar(&postMovie.Genre, "genre", "", "Genre")
	postMovieCmd.Flags().StringVar(&postMovie.Year, "year", "", "Release year")
	postMovieCmd.Flags().StringVar(&postMovie.Description, "description", "", "Short description")
	postMovieCmd.Flags().StringVar(&postMovie.ImagePath, "image", "", "Path to the poster image")
	postMovieCmd.Flags().StringVarP(&postMovie.Category, "category", "c", "", "Post category (default movie)")

	postEditCmd.Flags().StringVarP(&postEditTitle, "title", "t", "", "New title")
	postEditCmd.Flags().StringVar(&postEditContent, "content", "", "New content")

	postTopRatedCmd.Flags().StringVarP(&topRatedCategory, "category", "c", "", "Category (default general)")

	postCmd.AddCommand(postGetCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postMovieCmd)
	postCmd.AddCommand(postEditCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postFollowCmd)
	postCmd.AddCommand(postRateCmd)
	postCmd.AddCommand(postRatingCmd)
	postCmd.AddCommand(postTrendingCmd)
	postCmd.AddCommand(postTopRatedCmd)
	postCmd.AddCommand(postSearchCmd)
}
