package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/cli/pkg/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User profiles and follows",
}

var userShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show a user (default: yourself)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd, func(ctx context.Context, svc *service.UserService) error {
			return svc.Show(ctx, optionalArg(args))
		})
	},
}

var userFollowCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd, func(ctx context.Context, svc *service.UserService) error {
			return svc.Follow(ctx, args[0])
		})
	},
}

var userUnfollowCmd = &cobra.Command{
	Use:   "unfollow <user-id>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd, func(ctx context.Context, svc *service.UserService) error {
			return svc.Unfollow(ctx, args[0])
		})
	},
}

var userFollowingCmd = &cobra.Command{
	Use:   "following [user-id]",
	Short: "List who a user follows (default: yourself)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd, func(ctx context.Context, svc *service.UserService) error {
			return svc.Following(ctx, optionalArg(args))
		})
	},
}

var userFollowersCmd = &cobra.Command{
	Use:   "followers [user-id]",
	Short: "List a user's followers (default: yourself)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd, func(ctx context.Context, svc *service.UserService) error {
			return svc.Followers(ctx, optionalArg(args))
		})
	},
}

func withUsers(cmd *cobra.Command, fn func(ctx context.Context, svc *service.UserService) error) error {
	return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
		return fn(ctx, service.NewUserService(env))
	})
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userFollowCmd)
	userCmd.AddCommand(userUnfollowCmd)
	userCmd.AddCommand(userFollowingCmd)
	userCmd.AddCommand(userFollowersCmd)
}
