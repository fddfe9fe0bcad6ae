package config

import "time"

// DefaultConfigFile is the config file looked up when --config is not given.
const DefaultConfigFile = "config.toml"

// Floor clamps applied when loading. Polling faster than every 30 s
// hammers the dashboard for data that only refreshes every few minutes,
// and a log cap under 50 KB rotates away context mid-incident.
const (
	MinLoopTimeSec = 30.0
	MinLogSizeKB   = 50
)

// LogFileName is the fixed activity log file name inside output.log.
const LogFileName = "log.txt"

// Config represents the complete config.toml file.
type Config struct {
	Output      OutputConfig      `mapstructure:"output"`
	Login       LoginConfig       `mapstructure:"login"`
	Site        SiteConfig        `mapstructure:"site"`
	Application ApplicationConfig `mapstructure:"application"`
	Stations    StationsConfig    `mapstructure:"stations"`
}

// OutputConfig names the directories for per-station data files and the
// activity log.
type OutputConfig struct {
	DataOut string `mapstructure:"data_out"`
	Log     string `mapstructure:"log"`
}

// LoginConfig holds the dashboard credentials.
type LoginConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// SiteConfig holds the dashboard base URL and the opaque locator
// templates consumed only by the dashboard source. Placeholders:
// $tab in master_tab_selector, $item in the station selectors, and
// $param in the per-parameter selectors.
type SiteConfig struct {
	URL                    string `mapstructure:"url"`
	LoginForm              string `mapstructure:"login_form"`
	PasswordSelector       string `mapstructure:"password_selector"`
	MenuContent            string `mapstructure:"menu_content"`
	Dashboard              string `mapstructure:"dashboard"`
	MasterTabSelector      string `mapstructure:"master_tab_selector"`
	StationTitleSelector   string `mapstructure:"station_title_selector"`
	StationMasterSelector  string `mapstructure:"station_master_selector"`
	EffluentMasterSelector string `mapstructure:"effluent_master_selector"`
}

// ApplicationConfig controls the poll interval and log size cap.
type ApplicationConfig struct {
	LoopTimeSec float64 `mapstructure:"loop_time_sec"`
	LogSizeKB   int     `mapstructure:"log_size_kb"`
}

// StationsConfig sets how many stations of each counted category exist
// on the dashboard. There is always exactly one effluent point.
type StationsConfig struct {
	AirQuality    int `mapstructure:"air_quality"`
	StackEmission int `mapstructure:"stack_emission"`
}

// Interval returns the poll interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Application.LoopTimeSec * float64(time.Second))
}

// LogMaxBytes returns the activity log size threshold in bytes.
func (c *Config) LogMaxBytes() int64 {
	return int64(c.Application.LogSizeKB) * 1024
}

// DefaultConfig returns a Config with sensible defaults. Site locators
// and credentials have no defaults; they must come from the file.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			DataOut: "data",
			Log:     "logs",
		},
		Application: ApplicationConfig{
			LoopTimeSec: 60,
			LogSizeKB:   MinLogSizeKB,
		},
		Stations: StationsConfig{
			AirQuality:    3,
			StackEmission: 7,
		},
	}
}
