package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/cli/pkg/config"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"github.com/vartaverse/varta/cli/pkg/output"
	"github.com/vartaverse/varta/cli/pkg/service"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "varta",
	Short: "VartaVerse CLI - social feed for reviews, movies and conversation",
	Long: `varta is a command-line client for VartaVerse. Browse the feed,
like and comment on posts, follow people, and publish reviews and
movie posts directly from the terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		logger.Init(verbose)

		if !output.ValidateFormat(outputFmt) {
			return clierrors.ValidationError("output", "must be text, json or table")
		}
		config.Set("output.format", outputFmt)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
// Errors a card already showed as a notice are not printed again.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !clierrors.WasReported(err) {
			fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		}
		stop()
		os.Exit(1)
	}
}

// withEnv opens the shared command environment for the duration of fn
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *service.Env) error) error {
	env, err := service.NewEnv(assumeYes)
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	defer func() {
		if err := env.Close(); err != nil {
			logger.Warn("Failed to close image store", "error", err)
		}
	}()
	return fn(cmd.Context(), env)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/varta/cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text, json, table")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
