package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/config"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/errors"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/journal"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/logger"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/poller"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/source"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/station"
)

// watchCommand is the orchestrator: config, output dirs, journal, fleet,
// source, session, scheduler.
func watchCommand(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logger.Default()
	log.Info("successfully read config file %s", cfgPath)

	if err := os.MkdirAll(cfg.Output.DataOut, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create data output directory "+cfg.Output.DataOut,
			"Check output.data_out and directory permissions")
	}
	if err := os.MkdirAll(cfg.Output.Log, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create log directory "+cfg.Output.Log,
			"Check output.log and directory permissions")
	}

	logFile := journal.NewBoundedLog(filepath.Join(cfg.Output.Log, config.LogFileName), cfg.LogMaxBytes())
	jrnl := journal.New(log, logFile)

	fleet := station.NewFleet(cfg.Stations.AirQuality, cfg.Stations.StackEmission)

	src := source.NewDashboard(source.DashboardConfig{
		URL:                    cfg.Site.URL,
		LoginForm:              cfg.Site.LoginForm,
		PasswordSelector:       cfg.Site.PasswordSelector,
		MenuContent:            cfg.Site.MenuContent,
		Dashboard:              cfg.Site.Dashboard,
		MasterTabSelector:      cfg.Site.MasterTabSelector,
		StationTitleSelector:   cfg.Site.StationTitleSelector,
		StationMasterSelector:  cfg.Site.StationMasterSelector,
		EffluentMasterSelector: cfg.Site.EffluentMasterSelector,
		Email:                  cfg.Login.Email,
		Password:               cfg.Login.Password,
	}, log)
	defer src.Close()

	// SIGINT/SIGTERM cancel; the keypress watcher cancels on Esc.
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	log.Info("Press Esc to exit at any time.")
	restore := watchKeys(cancel, log)
	defer restore()

	if err := src.Login(ctx); err != nil {
		jrnl.Error("Error during login: %v", err)
		return err
	}
	log.Info("dashboard session established")

	sched := poller.New(src, fleet, cfg.Interval(), jrnl, cfg.Output.DataOut)
	return sched.Run(ctx)
}
