package config

import (
	"os"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/errors"
	"github.com/spf13/viper"
)

// Load reads config from the specified TOML file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'eqms-scrape init' to create one, or point at it with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid TOML")
	}

	return parseConfig(v, path)
}

// parseConfig converts viper config to our Config struct with defaults
// merged in and floor clamps applied.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the TOML syntax in "+path)
	}

	// Floor clamps, never errors: a too-eager interval or too-small log
	// cap is silently raised to the minimum.
	if cfg.Application.LoopTimeSec < MinLoopTimeSec {
		cfg.Application.LoopTimeSec = MinLoopTimeSec
	}
	if cfg.Application.LogSizeKB < MinLogSizeKB {
		cfg.Application.LogSizeKB = MinLogSizeKB
	}

	return cfg, nil
}

// setDefaults seeds viper with the values from DefaultConfig so partial
// files merge cleanly.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("output.data_out", def.Output.DataOut)
	v.SetDefault("output.log", def.Output.Log)
	v.SetDefault("application.loop_time_sec", def.Application.LoopTimeSec)
	v.SetDefault("application.log_size_kb", def.Application.LogSizeKB)
	v.SetDefault("stations.air_quality", def.Stations.AirQuality)
	v.SetDefault("stations.stack_emission", def.Stations.StackEmission)
}
