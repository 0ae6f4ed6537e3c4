package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/marcus/clinic/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return err
		}
		fmt.Printf("api_base_url    %s\n", cfg.APIBaseURL)
		fmt.Printf("timeout_seconds %d\n", int(cfg.Timeout().Seconds()))
		fmt.Printf("log_level       %s\n", cfg.LogLevel)
		fmt.Printf("offline         %t\n", cfg.Offline)
		fmt.Printf("state_dir       %s\n", config.Dir(getBaseDir()))
		return nil
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url <url>",
	Short: "Set the backend base URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateBaseURL(args[0]); err != nil {
			return err
		}
		if err := config.SetAPIBaseURL(getBaseDir(), args[0]); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("API URL %s\n", args[0])
		return nil
	},
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url %q: need http(s)://host", raw)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetURLCmd)
	rootCmd.AddCommand(configCmd)
}
