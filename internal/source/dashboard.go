package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/errors"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/logger"
)

// DefaultTimeout bounds every dashboard request. A response that never
// arrives within it is a fetch failure, not an indefinite hang.
const DefaultTimeout = 10 * time.Second

// DashboardConfig carries the site locator templates and credentials.
// Locators are opaque path templates with $tab, $item, and $param
// placeholders, resolved per query.
type DashboardConfig struct {
	URL                    string
	LoginForm              string
	PasswordSelector       string
	MenuContent            string
	Dashboard              string
	MasterTabSelector      string // $tab
	StationTitleSelector   string // $item
	StationMasterSelector  string // $item, $param
	EffluentMasterSelector string // $param

	Email    string
	Password string

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// DashboardSource implements Source against the HTTP dashboard. It keeps
// a single authenticated session (cookie jar) shared by all queries,
// which is why the scheduler never polls stations concurrently.
type DashboardSource struct {
	cfg     DashboardConfig
	client  *http.Client
	timeout time.Duration
	log     logger.Logger
}

// NewDashboard creates a dashboard source. It does not touch the network;
// call Login before issuing queries.
func NewDashboard(cfg DashboardConfig, log logger.Logger) *DashboardSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, _ := cookiejar.New(nil)
	return &DashboardSource{
		cfg: cfg,
		client: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		timeout: timeout,
		log:     log,
	}
}

// Login navigates the login flow: submit the email form, submit the
// password form, then walk menu and dashboard pages so the session
// lands where queries resolve. One attempt, no retry.
func (d *DashboardSource) Login(ctx context.Context) error {
	if d.cfg.Email == "" || d.cfg.Password == "" {
		return errors.New(errors.ErrAuth,
			"Dashboard credentials are not configured",
			"Set login.email and login.password in the config file")
	}

	if err := d.postForm(ctx, d.cfg.LoginForm, url.Values{"email": {d.cfg.Email}}); err != nil {
		return errors.WrapWithCode(err, errors.ErrAuth,
			"Failed to submit login email",
			"Check site.url and site.login_form, and that the dashboard is reachable")
	}
	if err := d.postForm(ctx, d.cfg.PasswordSelector, url.Values{"password": {d.cfg.Password}}); err != nil {
		return errors.WrapWithCode(err, errors.ErrAuth,
			"Failed to submit login password",
			"Check login.email and login.password")
	}

	// Land the session on the dashboard view.
	if _, err := d.fetch(ctx, d.cfg.MenuContent); err != nil {
		return errors.WrapWithCode(err, errors.ErrAuth,
			"Failed to open the dashboard menu", "")
	}
	if _, err := d.fetch(ctx, d.cfg.Dashboard); err != nil {
		return errors.WrapWithCode(err, errors.ErrAuth,
			"Failed to open the dashboard view", "")
	}

	d.log.Debug("dashboard session established for %s", d.cfg.URL)
	return nil
}

// SelectTab switches the session to the given tab.
func (d *DashboardSource) SelectTab(ctx context.Context, tab int) error {
	path := expand(d.cfg.MasterTabSelector, "$tab", tab)
	if _, err := d.fetch(ctx, path); err != nil {
		return errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Failed to select tab %d", tab), "")
	}
	return nil
}

// TitleText fetches the station title used for unit/index discovery.
func (d *DashboardSource) TitleText(ctx context.Context, q Query) (string, error) {
	path := expand(d.cfg.StationTitleSelector, "$item", q.Station)
	text, err := d.fetch(ctx, path)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Failed to fetch title for station %d on tab %d", q.Station, q.Tab), "")
	}
	return text, nil
}

// ParamText fetches the displayed text for one parameter.
func (d *DashboardSource) ParamText(ctx context.Context, q Query) (string, error) {
	var path string
	if q.Tab == TabEffluent {
		path = expand(d.cfg.EffluentMasterSelector, "$param", q.Param)
	} else {
		path = expand(d.cfg.StationMasterSelector, "$item", q.Station)
		path = expand(path, "$param", q.Param)
	}

	text, err := d.fetch(ctx, path)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Failed to fetch parameter %d for station %d on tab %d", q.Param, q.Station, q.Tab), "")
	}
	return text, nil
}

// Close releases idle connections. The remote session simply expires.
func (d *DashboardSource) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

// fetch GETs a dashboard path and returns the trimmed body text.
func (d *DashboardSource) fetch(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.resolve(path), nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// postForm POSTs form values to a dashboard path.
func (d *DashboardSource) postForm(ctx context.Context, path string, values url.Values) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.resolve(path), strings.NewReader(values.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}
	return nil
}

// resolve joins a locator path onto the site base URL.
func (d *DashboardSource) resolve(path string) string {
	base := strings.TrimSuffix(d.cfg.URL, "/")
	return base + "/" + strings.TrimPrefix(path, "/")
}

// expand substitutes a numeric placeholder in a locator template.
func expand(template, placeholder string, value int) string {
	return strings.ReplaceAll(template, placeholder, strconv.Itoa(value))
}
