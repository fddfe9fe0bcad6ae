package cli

import (
	"fmt"
	"os"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/config"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var initForce bool

// initCmd writes a starter config.toml for the user to fill in.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config.toml",
	Long: `Write a starter configuration file with the default output layout,
poll interval, and station counts. Credentials and site locators are
left blank and must be filled in before the first run.

Examples:
  eqms-scrape init
  eqms-scrape init --config /etc/eqms/config.toml --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cfgFile, initForce)
	},
}

// starterConfig mirrors config.Config with toml tags for marshaling.
type starterConfig struct {
	Output struct {
		DataOut string `toml:"data_out"`
		Log     string `toml:"log"`
	} `toml:"output"`
	Login struct {
		Email    string `toml:"email"`
		Password string `toml:"password"`
	} `toml:"login"`
	Site struct {
		URL                    string `toml:"url"`
		LoginForm              string `toml:"login_form"`
		PasswordSelector       string `toml:"password_selector"`
		MenuContent            string `toml:"menu_content"`
		Dashboard              string `toml:"dashboard"`
		MasterTabSelector      string `toml:"master_tab_selector"`
		StationTitleSelector   string `toml:"station_title_selector"`
		StationMasterSelector  string `toml:"station_master_selector"`
		EffluentMasterSelector string `toml:"effluent_master_selector"`
	} `toml:"site"`
	Application struct {
		LoopTimeSec float64 `toml:"loop_time_sec"`
		LogSizeKB   int     `toml:"log_size_kb"`
	} `toml:"application"`
	Stations struct {
		AirQuality    int `toml:"air_quality"`
		StackEmission int `toml:"stack_emission"`
	} `toml:"stations"`
}

func initCommand(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file %s already exists", path),
			"Use --force to overwrite it")
	}

	def := config.DefaultConfig()

	var starter starterConfig
	starter.Output.DataOut = def.Output.DataOut
	starter.Output.Log = def.Output.Log
	starter.Site.MasterTabSelector = "$tab"
	starter.Site.StationTitleSelector = "$item"
	starter.Site.StationMasterSelector = "$item/$param"
	starter.Site.EffluentMasterSelector = "$param"
	starter.Application.LoopTimeSec = def.Application.LoopTimeSec
	starter.Application.LogSizeKB = def.Application.LogSizeKB
	starter.Stations.AirQuality = def.Stations.AirQuality
	starter.Stations.StackEmission = def.Stations.StackEmission

	data, err := toml.Marshal(starter)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render starter config", "")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check directory permissions")
	}

	fmt.Printf("Wrote %s - fill in [login] and [site] before running.\n", path)
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}
