package cli

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidvella/topq/recordio"
)

var fiveQueues = []string{
	"testdata/queues/a.txt",
	"testdata/queues/b.txt",
	"testdata/queues/c.txt",
	"testdata/queues/d.txt",
	"testdata/queues/e.txt",
}

// execute runs the root command with args against an empty config directory.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "gen"} {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "Command %s should exist", name)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestRun_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "run_text", args: append([]string{"run", "--buf", "5", "--out", "3"}, fiveQueues...)},
		{name: "run_rotation", args: append([]string{"run", "--buf", "3", "--out", "3", "--verify"}, fiveQueues...)},
		{name: "run_json", args: append([]string{"run", "--buf", "5", "--out", "3", "--verify", "--format", "json", "--run-id", "golden"}, fiveQueues...)},
		{name: "run_strings", args: []string{"run", "--kind", "string", "--out", "2", "testdata/queues/fruit1.txt", "testdata/queues/fruit2.txt"}},
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "invalid outCount",
			args:     []string{"run", "--out", "0", "--buf", "3", "testdata/queues/a.txt"},
			wantCode: ExitCommandError,
			wantMsg:  "outCount must be a positive integer",
		},
		{
			name:     "buffer smaller than outCount",
			args:     []string{"run", "--out", "4", "--buf", "2", "testdata/queues/a.txt"},
			wantCode: ExitCommandError,
			wantMsg:  "bufSize must be greater than or equal to outCount",
		},
		{
			name:     "unparsable value",
			args:     []string{"run", "testdata/queues/a.txt", "testdata/queues/bad.txt"},
			wantCode: ExitCommandError,
			wantMsg:  "bad.txt:2",
		},
		{
			name:     "missing file",
			args:     []string{"run", "testdata/queues/missing.txt"},
			wantCode: ExitCommandError,
			wantMsg:  "failed to load queues",
		},
		{
			name:     "unknown kind",
			args:     []string{"run", "--kind", "float", "testdata/queues/a.txt"},
			wantCode: ExitCommandError,
			wantMsg:  "invalid kind",
		},
		{
			name:     "invalid format",
			args:     []string{"--format", "xml", "run", "testdata/queues/a.txt"},
			wantCode: ExitCommandError,
			wantMsg:  "invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

// writeConfig writes a topq.yml holding content and returns its directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topq.yml"), []byte(content), 0o644))
	return dir
}

func TestRun_Config(t *testing.T) {
	dir := writeConfig(t, "outCount: 2\nbufSize: 2\nformat: json\n")

	stdout := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", dir, "run", "--out", "4", "--buf", "4"}, fiveQueues...))
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string    `json:"status"`
		Data   runResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []any{25.0, 24.0, 23.0, 22.0}, resp.Data.Values, "flags override the config file")
	assert.Equal(t, 5, resp.Data.Stats.Rotated)
}

func TestRun_PebbleStore(t *testing.T) {
	store := filepath.Join(t.TempDir(), "queues.db")

	stdout, _, err := execute(t, append([]string{"run", "--buf", "2", "--out", "2", "--verify", "--store", store}, fiveQueues...)...)
	require.NoError(t, err)
	assert.Equal(t, "25\n24\n", stdout)
}

func TestRun_VerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, append([]string{"run", "-v", "--out", "3", "--run-id", "logged"}, fiveQueues...)...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "queue sorted")
	assert.Contains(t, stderr, "run_id=logged")
}

func TestGen(t *testing.T) {
	for _, binary := range []bool{false, true} {
		t.Run("binary="+strconv.FormatBool(binary), func(t *testing.T) {
			dir := t.TempDir()
			args := []string{"gen", "--queues", "4", "--size", "6", "--seed", "11", "--dir", dir}
			if binary {
				args = append(args, "--binary")
			}

			stdout, _, err := execute(t, args...)
			require.NoError(t, err)

			files := strings.Fields(stdout)
			require.Len(t, files, 4)

			var all []int64
			for _, f := range files {
				vs, err := loadFile(f, intKind)
				require.NoError(t, err)
				assert.Len(t, vs, 6)
				for _, v := range vs {
					all = append(all, v.Get())
				}
			}
			slices.Sort(all)
			for i, v := range all {
				assert.Equal(t, int64(i+1), v)
			}

			// The generated files feed straight into run.
			out, _, err := execute(t, append([]string{"run", "--buf", "4", "--out", "3", "--verify"}, files...)...)
			require.NoError(t, err)
			assert.Equal(t, "24\n23\n22\n", out)
		})
	}
}

func TestGen_InvalidShape(t *testing.T) {
	_, _, err := execute(t, "gen", "--queues", "0", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_InvalidConfigValues(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantMsg string
	}{
		{name: "format", config: "format: xml\n", wantMsg: "invalid format"},
		{name: "log level", config: "logLevel: bogus\n", wantMsg: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			cmd := NewRootCommand()
			cmd.SetOut(stdout)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{"--config", writeConfig(t, tt.config), "run", "testdata/queues/a.txt"})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_OversizedFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.rec")
	frame := binary.LittleEndian.AppendUint64(bytes.Clone(recordio.MagicBytes), 1<<62)
	require.NoError(t, os.WriteFile(path, frame, 0o644))

	_, _, err := execute(t, "run", "testdata/queues/a.txt", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, recordio.ErrFrameTooLarge)
}

func TestExecute(t *testing.T) {
	badKind := []string{"run", "--kind", "float", "testdata/queues/a.txt"}

	t.Run("success", func(t *testing.T) {
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		args := append([]string{"--config", t.TempDir(), "run", "--out", "2"}, fiveQueues...)

		code := Execute(context.Background(), args, stdout, stderr)
		assert.Equal(t, ExitSuccess, code)
		assert.Equal(t, "25\n24\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("text error", func(t *testing.T) {
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		args := append([]string{"--config", t.TempDir()}, badKind...)

		code := Execute(context.Background(), args, stdout, stderr)
		assert.Equal(t, ExitCommandError, code)
		assert.Empty(t, stdout.String())
		assert.True(t, strings.HasPrefix(stderr.String(), "Error: invalid kind"), stderr.String())
	})

	t.Run("json error", func(t *testing.T) {
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		args := append([]string{"--config", t.TempDir(), "--format", "json"}, badKind...)

		code := Execute(context.Background(), args, stdout, stderr)
		assert.Equal(t, ExitCommandError, code)

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Contains(t, resp.Error, "invalid kind")
		assert.Empty(t, stderr.String())
	})
}
