// Package cli implements the eqms-scrape command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to workflow functions for the actual work:
//
//	eqms-scrape            - run the polling loop until Esc or SIGINT
//	eqms-scrape init       - write a starter config.toml
//	eqms-scrape version    - print version information
//
// The root command is the orchestrator: it loads and validates the
// config, creates the output directories and the bounded activity log,
// builds the station fleet and the dashboard source, authenticates the
// session (fatal on failure), and hands control to the poller. The only
// control surface beyond the --config flag is cancellation: the Esc key
// (raw-mode stdin watcher) or SIGINT/SIGTERM.
package cli
