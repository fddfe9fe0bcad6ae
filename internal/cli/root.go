package cli

import (
	"os"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/config"
	"github.com/spf13/cobra"
)

// cfgFile holds the --config flag value.
var cfgFile string

// rootCmd runs the polling loop. There are deliberately no other knobs:
// everything lives in the config file.
var rootCmd = &cobra.Command{
	Use:   "eqms-scrape",
	Short: "Poll station readings from the plant compliance dashboard",
	Long: `Periodically read air-quality, stack-emission, and effluent values
from the remote compliance dashboard and write each station's latest
readings to a per-station text file, alongside a size-bounded activity log.

The loop runs until Esc is pressed (or SIGINT/SIGTERM is received), then
drains cleanly. Startup fails with a non-zero exit when the config cannot
be read or the dashboard session cannot be established.

Examples:
  eqms-scrape
  eqms-scrape --config /etc/eqms/config.toml`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cfgFile)
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile,
		"path to the TOML config file")
}
