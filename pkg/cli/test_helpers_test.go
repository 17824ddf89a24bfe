package cli

import (
	"bytes"
	"context"
	"testing"

	"fi-dashboard/internal/testutil"
)

// isolate points HOME at a temp dir and clears the environment variables
// the CLI reads, so tests never see the developer's own configuration.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"DATA_PATH", "FORECAST_PATH", "CONFIG_FILE", "FIDASH_OUTPUT"} {
		t.Setenv(key, "")
	}
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// sampleArgs returns --data and --forecast flags for the sample fixtures.
func sampleArgs(t *testing.T) []string {
	t.Helper()
	return []string{
		"--data", testutil.WriteFile(t, "unified.csv", testutil.SampleUnified),
		"--forecast", testutil.WriteFile(t, "forecast.csv", testutil.SampleForecast),
	}
}
