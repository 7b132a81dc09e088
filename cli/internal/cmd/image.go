package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/cli/pkg/service"
)

var imageOut string

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Inspect locally stored post images",
}

var imageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored images",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
			return service.NewImageService(env).List()
		})
	},
}

var imageShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print an image as a data URL, or write it to a file with --out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
			return service.NewImageService(env).Show(args[0], imageOut)
		})
	},
}

func init() {
	imageShowCmd.Flags().StringVar(&imageOut, "out", "", "Write the decoded image to this path")

	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageShowCmd)
}
