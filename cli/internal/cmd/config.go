package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/cli/pkg/config"
	"github.com/vartaverse/varta/cli/pkg/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.PrintRecord("Configuration", map[string]interface{}{
			"user service":    config.UserServiceURL(),
			"content service": config.ContentServiceURL(),
			"timeout":         config.GetInt("api.timeout"),
			"page size":       config.GetInt("feed.page_size"),
			"category":        config.GetString("feed.category"),
			"output":          config.GetString("output.format"),
			"log level":       config.GetString("log.level"),
			"log file":        config.GetString("log.file"),
			"images":          config.GetString("images.db_path"),
			"config dir":      config.GetConfigDir(),
		})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long:  "Write a value such as api.base_url or feed.page_size to the user config file.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetString(args[0], args[1]); err != nil {
			return err
		}
		output.PrintSuccess("Set %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
