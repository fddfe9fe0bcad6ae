package poller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/journal"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/logger"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/source"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/station"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource fails ParamText for one station index and serves numeric
// text for everything else.
type fakeSource struct {
	failStation int
	paramCalls  int
}

func (f *fakeSource) Login(ctx context.Context) error              { return nil }
func (f *fakeSource) SelectTab(ctx context.Context, tab int) error { return nil }

func (f *fakeSource) TitleText(ctx context.Context, q source.Query) (string, error) {
	return fmt.Sprintf("CEMS_UNIT_%d", q.Station), nil
}

func (f *fakeSource) ParamText(ctx context.Context, q source.Query) (string, error) {
	f.paramCalls++
	if q.Station == f.failStation {
		return "", errors.New("element timed out")
	}
	return "23.5 mg/nm³", nil
}

func (f *fakeSource) Close() error { return nil }

type fixture struct {
	sched   *Scheduler
	src     *fakeSource
	console *logger.BufferLogger
	dataDir string
	logPath string
}

func newFixture(t *testing.T, failStation int, interval time.Duration) *fixture {
	t.Helper()

	dataDir := t.TempDir()
	logPath := filepath.Join(t.TempDir(), "log.txt")

	console := logger.NewBufferLogger()
	jrnl := journal.New(console, journal.NewBoundedLog(logPath, 1<<20))

	stations := []*station.Station{
		station.New("CEMS UNIT# ", station.CategoryStackEmission, 1),
		station.New("CEMS UNIT# ", station.CategoryStackEmission, 2),
		station.New("CEMS UNIT# ", station.CategoryStackEmission, 3),
	}

	src := &fakeSource{failStation: failStation}
	return &fixture{
		sched:   New(src, stations, interval, jrnl, dataDir),
		src:     src,
		console: console,
		dataDir: dataDir,
		logPath: logPath,
	}
}

func (f *fixture) logContent(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.logPath)
	require.NoError(t, err)
	return string(data)
}

func TestRunCycleIsolatesStationFailure(t *testing.T) {
	f := newFixture(t, 2, time.Second)

	f.sched.RunCycle(context.Background())

	// The healthy stations got their files, the failing one did not.
	for _, name := range []string{"CEMS UNIT# 1.txt", "CEMS UNIT# 3.txt"} {
		data, err := os.ReadFile(filepath.Join(f.dataDir, name))
		require.NoError(t, err, "output file %s", name)
		assert.Contains(t, string(data), "23.5 mg/nm³")
	}
	entries, err := os.ReadDir(f.dataDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "the failing station must not produce an output file")

	// Exactly one error line naming the failing station, one separator.
	var errorLines []string
	for _, m := range f.console.Messages {
		if m.Level == "error" {
			errorLines = append(errorLines, m.Message)
		}
	}
	require.Len(t, errorLines, 1)
	assert.Contains(t, errorLines[0], "Error fetching data for CEMS UNIT# ")
	assert.Contains(t, errorLines[0], "element timed out")

	log := f.logContent(t)
	assert.Equal(t, 1, strings.Count(log, journal.Separator))
}

func TestRunCycleFailingStationStillLetsOthersFinish(t *testing.T) {
	f := newFixture(t, 1, time.Second)

	f.sched.RunCycle(context.Background())

	// Station 1 fails its first parameter; stations 2 and 3 are polled
	// in full (3 parameters each) afterwards.
	assert.Equal(t, 1+3+3, f.src.paramCalls)
}

func TestRunWritesBannersAndDrainsOnCancellation(t *testing.T) {
	f := newFixture(t, 0, 10*time.Second)
	f.sched.SetSlice(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	require.NoError(t, f.sched.Run(ctx))
	elapsed := time.Since(start)

	// Cancellation mid-sleep must be observed within roughly one slice,
	// not after the full 10 s interval.
	assert.Less(t, elapsed, time.Second)

	log := f.logContent(t)
	assert.True(t, strings.HasPrefix(log, journal.Separator+"\n"), "empty log starts with a separator")
	assert.Contains(t, log, "Application Started.")
	assert.Contains(t, log, "Received cancellation, Preparing to exit...")
	assert.Contains(t, log, "Application Ended")
	assert.True(t, strings.HasSuffix(log, journal.Separator+"\n"))

	// One full cycle ran before the cancellation: 3 stations x 3 params.
	assert.Equal(t, 9, f.src.paramCalls)
}

func TestRunDoesNotStartCycleAfterCancellation(t *testing.T) {
	f := newFixture(t, 0, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.sched.Run(ctx))
	assert.Equal(t, 0, f.src.paramCalls, "no station poll starts once cancellation is observed")

	log := f.logContent(t)
	assert.Contains(t, log, "Application Ended")
}
