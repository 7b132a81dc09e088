package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/cli/pkg/prompter"
	"github.com/vartaverse/varta/cli/pkg/service"
)

var commentsCmd = &cobra.Command{
	Use:     "comments",
	Aliases: []string{"comment"},
	Short:   "Read and write comments on posts",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List the comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withComments(cmd, func(ctx context.Context, svc *service.CommentService) error {
			return svc.List(ctx, args[0])
		})
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <post-id> [text...]",
	Short: "Comment on a post",
	Long:  "Add a comment to a post. The text is prompted for when omitted.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args[1:], " ")
		if strings.TrimSpace(text) == "" {
			var err error
			if text, err = prompter.PromptString("Comment: "); err != nil {
				return err
			}
		}
		return withComments(cmd, func(ctx context.Context, svc *service.CommentService) error {
			return svc.Add(ctx, args[0], text)
		})
	},
}

func withComments(cmd *cobra.Command, fn func(ctx context.Context, svc *service.CommentService) error) error {
	return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
		return fn(ctx, service.NewCommentService(service.NewPostService(env, nil)))
	})
}

func init() {
	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
}
