package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with in-memory streams
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	opts := &options{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseVisual(t *testing.T) {
	out, _, err := execute(t, "", "parse", "solar(16.1, before_visible_sunrise)")
	require.NoError(t, err)
	assert.Contains(t, out, "solar{degrees=16.1, direction=before_sunrise}")
	assert.Contains(t, out, "canonical:   solar(16.1, before_visible_sunrise)")
	assert.Contains(t, out, "fingerprint:")
	assert.NotContains(t, out, "\033[", "no color when stdout is not a terminal")
}

func TestParseFromStdin(t *testing.T) {
	out, _, err := execute(t, "@alos_custom - 20min\n", "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "canonical:   @alos_custom - 20min")
}

func TestParseClassified(t *testing.T) {
	out, _, err := execute(t, "", "parse", "sunrise - 10min + 5min")
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, out, "advanced: chained_operations")

	out, _, err = execute(t, "", "--mode", "advanced", "parse", "sunrise - 10min + 5min")
	assert.NoError(t, err, "advanced mode accepts any formula")
	assert.Contains(t, out, "chained_operations")
}

func TestParseSuggestions(t *testing.T) {
	out, _, err := execute(t, "", "parse", "sunrse")
	assert.Error(t, err)
	assert.Contains(t, out, "did you mean: sunrise")
}

func TestParseEmpty(t *testing.T) {
	for _, mode := range []string{"visual", "advanced"} {
		t.Run(mode, func(t *testing.T) {
			out, _, err := execute(t, "", "--mode", mode, "parse", "   ")
			assert.True(t, errors.Is(err, errReported))
			assert.Contains(t, out, "advanced: empty_formula")
			assert.NotContains(t, out, "visible_sunrise")
		})
	}

	out, _, err := execute(t, "", "--json", "parse", "")
	assert.True(t, errors.Is(err, errReported))
	var got parseResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Classification)
	assert.Equal(t, "empty_formula", got.Classification.Reason.String())
	assert.Nil(t, got.State)
}

func TestParseJSON(t *testing.T) {
	out, _, err := execute(t, "", "--json", "parse", "proportional_hours(3, gra)")
	require.NoError(t, err)

	var got struct {
		Visual    bool           `json:"visual"`
		Generated string         `json:"generated"`
		State     map[string]any `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Visual)
	assert.Equal(t, "proportional_hours(3, gra)", got.Generated)
	assert.Equal(t, "proportional_hours", got.State["method"])
	assert.Equal(t, "gra", got.State["base"])

	out, _, _ = execute(t, "", "--json", "parse", "midpoint(sunrise, sunset)")
	var classified struct {
		Classification struct {
			Reason string `json:"reason"`
			Name   string `json:"name"`
		} `json:"classification"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &classified))
	assert.Equal(t, "midpoint", classified.Classification.Reason)
}

func TestParseDebug(t *testing.T) {
	_, stderr, err := execute(t, "", "--debug", "parse", "sunrise")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[debug] try_solar")
	assert.Contains(t, stderr, "match_reference")
	assert.Contains(t, stderr, "attempts=7")
}

func TestGenerate(t *testing.T) {
	out, _, err := execute(t, "", "generate", `{"method":"solar","degrees":16.1,"direction":"before_sunrise"}`)
	require.NoError(t, err)
	assert.Equal(t, "solar(16.1, before_visible_sunrise)\n", out)
}

func TestGenerateRejectsBadState(t *testing.T) {
	_, _, err := execute(t, "", "generate", `{"method":"solar","degrees":-1,"direction":"before_sunrise"}`)
	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, "state", cliErr.Type)

	_, _, err = execute(t, "", "generate", `{"method":"fixed_offset","minutes":5,"direction":"after","offset_base":"banana"}`)
	require.True(t, errors.As(err, &cliErr))
	assert.Contains(t, cliErr.Details, "offset_base")
}

func TestGenerateCanonicalRoundTrip(t *testing.T) {
	state := `{"method":"proportional_hours","hours":4,"base":"custom","custom_start":"alos_16_1","custom_end":"tzais_72"}`
	out, _, err := execute(t, state, "--json", "generate")
	require.NoError(t, err)

	var res generateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "proportional_hours(4, custom(@alos_16_1, @tzais_72))", res.Text)
	assert.Len(t, res.Fingerprint, 32)

	encoded := base64.StdEncoding.EncodeToString(res.Canonical)
	out, _, err = execute(t, "", "generate", "--canonical", encoded)
	require.NoError(t, err)
	assert.Equal(t, res.Text+"\n", out)
}

func TestCheck(t *testing.T) {
	input := strings.Join([]string{
		"solar(16.1, before_visible_sunrise)",
		"",
		"sunrise - 10min + 5min",
		"midpoint(sunrise, sunset)",
		"@alos - 5min",
		"solar(0, before_noon)",
	}, "\n")

	out, _, err := execute(t, input, "check")
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, out, "5 formulas: 3 visual, 2 advanced, 1 invalid")
	assert.Contains(t, out, "   3: advanced sunrise - 10min + 5min")
	assert.Contains(t, out, "chained_operations")

	out, _, err = execute(t, "sunrise\nif (x) { sunset } else { sunrise }\n", "--mode", "advanced", "--json", "check")
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Visual)
	assert.Equal(t, map[string]int{"conditional": 1}, report.Reasons)
}

func TestCheckLongLine(t *testing.T) {
	long := "sunrise" + strings.Repeat(" + 1min", 20000)
	require.Greater(t, len(long), 64*1024)

	out, _, err := execute(t, long+"\nsunset\n", "--json", "check")
	assert.True(t, errors.Is(err, errReported))

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Visual)
	assert.Equal(t, map[string]int{"chained_operations": 1}, report.Reasons)
}

func TestCheckFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.txt")
	require.NoError(t, os.WriteFile(path, []byte("sunrise\nsunset + 18min\n"), 0o644))

	out, _, err := execute(t, "", "check", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 formulas: 2 visual, 0 advanced")
}

func TestVocab(t *testing.T) {
	out, _, err := execute(t, "", "vocab", "direction")
	require.NoError(t, err)
	assert.Contains(t, out, "before_visible_sunrise")
	assert.NotContains(t, out, "solar_noon")

	out, _, err = execute(t, "", "--json", "vocab", "base")
	require.NoError(t, err)
	var entries []vocabEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	visual := map[string]bool{}
	for _, e := range entries {
		visual[e.Name] = e.Visual
	}
	assert.True(t, visual["gra"])
	assert.False(t, visual["mga_72"])

	_, _, err = execute(t, "", "vocab", "planet")
	assert.Error(t, err)
}

func TestUnknownMode(t *testing.T) {
	_, _, err := execute(t, "", "--mode", "expert", "parse", "sunrise")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expert")
}

func TestWatchNeedsFile(t *testing.T) {
	_, _, err := execute(t, "", "watch")
	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, "watch", cliErr.Type)
}

func TestWatchFileRerunsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.txt")
	require.NoError(t, os.WriteFile(path, []byte("sunrise\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, func() error {
			runs.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("sunset\n"), 0o644)
		return runs.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
