// Package source abstracts the remote compliance dashboard. The polling
// core consumes only the Source contract: authenticate once, select a
// tab, and fetch the displayed text for a logical query. Everything
// about how the dashboard is actually reached lives behind it.
package source

import "context"

// Dashboard tab numbers, fixed by the monitored site's layout.
const (
	TabAirQuality    = 1
	TabStackEmission = 2
	TabEffluent      = 3
)

// Query addresses one displayed value on the dashboard: a tab, a
// 1-based station index within that tab, and a 1-based parameter index
// within the station. Param is zero for title lookups.
type Query struct {
	Tab     int
	Station int
	Param   int
}

// Source is the capability the polling core needs from the dashboard.
// Implementations are not assumed to be safe for concurrent use; the
// scheduler drives them from a single goroutine.
type Source interface {
	// Login establishes the dashboard session. Called once at startup;
	// failure is fatal for the process.
	Login(ctx context.Context) error

	// SelectTab switches the dashboard to the given tab.
	SelectTab(ctx context.Context, tab int) error

	// TitleText returns the current title text for a station, used for
	// one-time unit/index discovery.
	TitleText(ctx context.Context, q Query) (string, error)

	// ParamText returns the currently displayed text for one parameter.
	ParamText(ctx context.Context, q Query) (string, error)

	// Close releases the session. Safe to call after a failed Login.
	Close() error
}
