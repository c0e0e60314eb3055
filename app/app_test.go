package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gotest.tools/v3/assert"

	"github.com/paccolamano/lazyalgo/password"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd, c := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := c.execute(cmd)
	return stdout.String(), stderr.String(), err
}

func TestPasswordCommand(t *testing.T) {
	out, _, err := run(t, "password")
	assert.NilError(t, err)

	p := strings.TrimSuffix(out, "\n")
	assert.Equal(t, len(p), password.Length)
	for _, r := range p {
		assert.Assert(t, strings.ContainsRune(password.Alphabet, r))
	}
}

func TestPasswordCommandWithHash(t *testing.T) {
	out, _, err := run(t, "password", "--hash")
	assert.NilError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, len(lines), 2)

	match, err := password.CompareHashAndPlain(lines[1], lines[0])
	assert.NilError(t, err)
	assert.Assert(t, match)
}

func TestAnagramsCommand(t *testing.T) {
	out, _, err := run(t, "anagrams", "eat", "tea", "tan", "ate", "nat", "bat")
	assert.NilError(t, err)
	assert.Equal(t, out, "eat tea ate\ntan nat\nbat\n")

	out, _, err = run(t, "anagrams")
	assert.NilError(t, err)
	assert.Equal(t, out, "")
}

func TestMaxSumCommand(t *testing.T) {
	type output struct {
		stdout      string
		expectedErr string
	}

	tests := []struct {
		name   string
		args   []string
		output output
	}{
		{
			name:   "max window",
			args:   []string{"max-sum", "--window", "3", "2", "1", "5", "1", "3", "2"},
			output: output{stdout: "9\n"},
		},
		{
			name:   "negative numbers after separator",
			args:   []string{"max-sum", "-k", "2", "--", "-5", "-2", "-3", "1.5"},
			output: output{stdout: "-1.5\n"},
		},
		{
			name:   "window larger than input",
			args:   []string{"max-sum", "-k", "5", "1", "2", "3"},
			output: output{expectedErr: "window size 5 exceeds sequence length 3"},
		},
		{
			name:   "not a number",
			args:   []string{"max-sum", "-k", "1", "1", "two"},
			output: output{expectedErr: `invalid number: element 1`},
		},
		{
			name:   "NaN is rejected",
			args:   []string{"max-sum", "-k", "1", "1", "NaN"},
			output: output{expectedErr: `invalid number: element 1: "NaN": value is not finite`},
		},
		{
			name:   "infinity is rejected",
			args:   []string{"max-sum", "-k", "2", "--", "-Inf", "2"},
			output: output{expectedErr: `invalid number: element 0: "-Inf": value is not finite`},
		},
		{
			name:   "overflowing literal is rejected",
			args:   []string{"max-sum", "-k", "1", "1e400"},
			output: output{expectedErr: `invalid number: element 0`},
		},
		{
			name:   "missing window flag",
			args:   []string{"max-sum", "1", "2"},
			output: output{expectedErr: `required flag(s) "window" not set`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if tt.output.expectedErr != "" {
				assert.ErrorContains(t, err, tt.output.expectedErr)
				return
			}

			assert.NilError(t, err)
			assert.Equal(t, out, tt.output.stdout)
		})
	}
}

func TestLongestUniqueCommand(t *testing.T) {
	out, _, err := run(t, "longest-unique", "abcabcbb")
	assert.NilError(t, err)
	assert.Equal(t, out, "abc\n")

	_, _, err = run(t, "longest-unique")
	assert.ErrorContains(t, err, "accepts 1 arg(s)")
}

func TestDebugLogsCarryOperation(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "debug", "--log-format", "json", "longest-unique", "bbbbb")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(stderr, `"operation":"longest-unique"`), stderr)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lazyalgo.log")

	_, stderr, err := run(t, "--log-level", "debug", "--log-file", path, "anagrams", "ab", "ba")
	assert.NilError(t, err)
	assert.Equal(t, stderr, "")

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "anagrams grouped"))
}

func TestLogFileClosedAfterFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lazyalgo.log")

	_, _, err := run(t, "--log-level", "debug", "--log-file", path, "max-sum", "-k", "5", "1", "2", "3")
	assert.ErrorContains(t, err, "window size 5 exceeds sequence length 3")

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "command failed"))

	assert.Equal(t, openDescriptors(t, path), 0)
}

// openDescriptors counts the descriptors of this process that refer to path.
func openDescriptors(t *testing.T, path string) int {
	t.Helper()

	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("/proc/self/fd is not available")
	}

	path, err = filepath.EvalSymlinks(path)
	assert.NilError(t, err)

	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && target == path {
			n++
		}
	}
	return n
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "password")
	assert.ErrorContains(t, err, `log level "loud" is not supported`)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lazyalgo.yaml")
	err := os.WriteFile(path, []byte("log:\n  format: json\nserver:\n  addr: \":9090\"\n  shutdown_timeout: 3s\n"), 0o600)
	assert.NilError(t, err)

	t.Setenv("LAZYALGO_SERVER_MAX_BODY_BYTES", "2048")

	cfg, err := loadConfig(viper.New(), path)
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, Config{
		Log: LogConfig{Level: "info", Format: "json", MaxSizeMB: 100, MaxBackups: 3},
		Server: ServerConfig{
			Addr:            ":9090",
			ShutdownTimeout: 3 * time.Second,
			MaxBodyBytes:    2048,
		},
	})
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "lazyalgo.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o600))

	_, err = loadConfig(viper.New(), path)
	assert.ErrorContains(t, err, `unsupported log format "xml"`)
}
