package config

import (
	"fmt"
	"strings"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/errors"
)

// requiredSiteFields maps site keys to the placeholder each locator
// template must contain (empty means no placeholder required).
var requiredSiteFields = []struct {
	key         string
	placeholder string
}{
	{"url", ""},
	{"login_form", ""},
	{"password_selector", ""},
	{"menu_content", ""},
	{"dashboard", ""},
	{"master_tab_selector", "$tab"},
	{"station_title_selector", "$item"},
	{"station_master_selector", "$item"},
	{"effluent_master_selector", "$param"},
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Login.Email == "" || cfg.Login.Password == "" {
		return errors.New(errors.ErrConfig,
			"Dashboard credentials are missing",
			"Set login.email and login.password in config.toml")
	}

	for _, f := range requiredSiteFields {
		value := siteField(cfg.Site, f.key)
		if value == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("site.%s is missing", f.key),
				"Every site locator must be set; copy them from a working config")
		}
		if f.placeholder != "" && !strings.Contains(value, f.placeholder) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("site.%s must contain the %s placeholder", f.key, f.placeholder),
				fmt.Sprintf("The locator is a template; %s is substituted per query", f.placeholder))
		}
	}

	if !strings.Contains(cfg.Site.StationMasterSelector, "$param") {
		return errors.New(errors.ErrConfig,
			"site.station_master_selector must contain the $param placeholder",
			"The locator is a template; $param is substituted per parameter")
	}

	if cfg.Output.DataOut == "" || cfg.Output.Log == "" {
		return errors.New(errors.ErrConfig,
			"Output directories are missing",
			"Set output.data_out and output.log in config.toml")
	}

	if cfg.Stations.AirQuality < 0 || cfg.Stations.StackEmission < 0 {
		return errors.New(errors.ErrConfig,
			"Station counts cannot be negative",
			"Check the [stations] section")
	}
	if cfg.Stations.AirQuality == 0 && cfg.Stations.StackEmission == 0 {
		return errors.New(errors.ErrConfig,
			"No stations configured",
			"Set stations.air_quality and/or stations.stack_emission to at least 1")
	}

	return nil
}

// siteField returns a site config value by its TOML key.
func siteField(s SiteConfig, key string) string {
	switch key {
	case "url":
		return s.URL
	case "login_form":
		return s.LoginForm
	case "password_selector":
		return s.PasswordSelector
	case "menu_content":
		return s.MenuContent
	case "dashboard":
		return s.Dashboard
	case "master_tab_selector":
		return s.MasterTabSelector
	case "station_title_selector":
		return s.StationTitleSelector
	case "station_master_selector":
		return s.StationMasterSelector
	case "effluent_master_selector":
		return s.EffluentMasterSelector
	default:
		return ""
	}
}
