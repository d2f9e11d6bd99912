package cli_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpahal/mtrand/api"
	"github.com/gpahal/mtrand/http/server"
	"github.com/gpahal/mtrand/internal/cli"
	"github.com/gpahal/mtrand/random"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(stdout.String()), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFloat_SeedIsReproducible(t *testing.T) {
	first, err := run(t, "--seed", "42", "float", "--min", "-10", "--max", "10")
	require.NoError(t, err)
	second, err := run(t, "--seed", "42", "float", "--min", "-10", "--max", "10")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	v, err := strconv.ParseFloat(first, 64)
	require.NoError(t, err)
	assert.InDelta(t, -2.509197623, v, 1e-9)
}

func TestFloat_Bounds(t *testing.T) {
	out, err := run(t, "--seed", "1", "float", "--max", "0.5")
	require.NoError(t, err)
	v, err := strconv.ParseFloat(out, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 0.5)

	_, err = run(t, "float", "--min", "1")
	require.Error(t, err)

	_, err = run(t, "float", "--min", "2", "--max", "1")
	require.ErrorIs(t, err, random.ErrInvalidRange)
}

func TestInt(t *testing.T) {
	for seed := range 20 {
		out, err := run(t, "--seed", strconv.Itoa(seed), "int", "--min", "5", "--max", "8")
		require.NoError(t, err)
		v, err := strconv.Atoi(out)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 5)
		assert.Less(t, v, 8)
	}

	_, err := run(t, "int", "--max", "0")
	require.ErrorIs(t, err, random.ErrInvalidRange)
}

func TestIndex(t *testing.T) {
	out, err := run(t, "index", "0", "0", "2.5", "0")
	require.NoError(t, err)
	assert.Equal(t, "2", out)

	out, err = run(t, "index")
	require.NoError(t, err)
	assert.Equal(t, "-1", out)

	_, err = run(t, "index", "1", "heavy")
	require.Error(t, err)
}

func TestString(t *testing.T) {
	out, err := run(t, "string", "-n", "24", "--charset", "01")
	require.NoError(t, err)
	assert.Len(t, out, 24)
	assert.Empty(t, strings.Trim(out, "01"))

	out, err = run(t, "string")
	require.NoError(t, err)
	assert.Len(t, out, 16)
	assert.Empty(t, strings.Trim(out, random.Alphanumeric))

	_, err = run(t, "string", "--charset", "")
	require.ErrorIs(t, err, random.ErrInvalidCharset)
}

func TestShuffle(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	for _, biased := range []string{"--biased=false", "--biased=true"} {
		out, err := run(t, append([]string{"--seed", "3", "shuffle", biased, "--separator", ","}, items...)...)
		require.NoError(t, err)
		assert.ElementsMatch(t, items, strings.Split(out, ","))
	}
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, `{"seed": 9, "charset": "xy", "log_format": "json", "server": {"request_timeout": "5s"}}`)

	first, err := run(t, "--config", path, "string", "-n", "32")
	require.NoError(t, err)
	assert.Len(t, first, 32)
	assert.Empty(t, strings.Trim(first, "xy"))

	second, err := run(t, "--config", path, "string", "-n", "32")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = run(t, "--config", writeConfig(t, `{"log_format": "xml"}`), "float")
	require.Error(t, err)

	_, err = run(t, "--config", writeConfig(t, `{"colour": "blue"}`), "float")
	require.Error(t, err)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "float")
	require.Error(t, err)
}

func TestRemote(t *testing.T) {
	e := server.NewWithOptions(server.Options{LoggerWriter: io.Discard})
	api.Register(e, api.Options{Random: random.NewWithSeed(5)})
	ts := httptest.NewServer(e)
	defer ts.Close()

	out, err := run(t, "--remote", ts.URL, "index", "0", "4", "0")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	out, err = run(t, "--remote", ts.URL, "string", "-n", "6", "--charset", "q")
	require.NoError(t, err)
	assert.Equal(t, "qqqqqq", out)

	out, err = run(t, "--remote", ts.URL, "shuffle", "--separator", ",", "one", "two", "three")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two", "three"}, strings.Split(out, ","))

	_, err = run(t, "--remote", ts.URL, "float", "--min", "3", "--max", "1")
	require.Error(t, err)
}

func TestServe_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	cmd := cli.NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--seed", "1", "serve", "--port", "0"})
	require.NoError(t, cmd.ExecuteContext(ctx))
}
