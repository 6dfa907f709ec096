package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/innkeep/internal/testutil"
)

const testTraceID = "trace-cli"

// cliRun is the outcome of one CLI invocation.
type cliRun struct {
	stdout string
	stderr string
	code   int
}

// runCLI executes the CLI against db with the default credentials and a
// fixed trace id. stdin feeds prompts.
func runCLI(t *testing.T, db, stdin string, args ...string) cliRun {
	t.Helper()
	full := append([]string{"--db", db, "--user", "admin", "--password", "password"}, args...)
	return runRaw(t, stdin, full...)
}

// runRaw executes the CLI with exactly args.
func runRaw(t *testing.T, stdin string, args ...string) cliRun {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts := &RootOptions{TraceIDs: testutil.NewFixedTraceID(testTraceID)}
	code := execute(context.Background(), opts, args, strings.NewReader(stdin), &stdout, &stderr)
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// decodeResponse parses a JSON CLIResponse, decoding Data into data when
// non-nil.
func decodeResponse(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.CLIResponse
}

// isolate runs the test in an empty directory with no INNKEEP_* overrides,
// so a developer's config cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"INNKEEP_DB", "INNKEEP_USER", "INNKEEP_PASSWORD", "INNKEEP_LOG_LEVEL", "INNKEEP_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return filepath.Join(dir, "hotel.db")
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "innkeep", cmd.Use)
	assert.Contains(t, cmd.Long, "login gate")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"booking", "add"},
		{"booking", "list"},
		{"booking", "delete"},
		{"customer", "add"},
		{"customer", "list"},
	}

	for _, path := range commands {
		t.Run(strings.Join(path, "_"), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "innkeep.yaml", configFlag.DefValue)

	for _, name := range []string{"db", "user", "password"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestInvalidFormat(t *testing.T) {
	db := isolate(t)

	run := runCLI(t, db, "", "--format", "yaml", "booking", "list")

	assert.Equal(t, ExitCommandError, run.code)
	assert.Contains(t, run.stdout, `invalid format "yaml"`)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := isolate(t)

	run := runRaw(t, "", "--db", db, "--user", "admin", "--password", "hunter2", "--format", "json", "booking", "list")

	assert.Equal(t, ExitCommandError, run.code)
	resp := decodeResponse(t, run.stdout, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeAuth, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "invalid credentials")
	assert.Equal(t, testTraceID, resp.TraceID)

	_, err := os.Stat(db)
	assert.True(t, os.IsNotExist(err), "rejected login must not create the database")
}

func TestLogin_Prompted(t *testing.T) {
	db := isolate(t)

	run := runRaw(t, "admin\npassword\n", "--db", db, "booking", "list")

	assert.Equal(t, ExitSuccess, run.code, "stdout: %s", run.stdout)
	assert.Contains(t, run.stderr, "Username: ")
	assert.Contains(t, run.stderr, "Password: ")
	assert.Equal(t, "No bookings.\n", run.stdout)
}

func TestLogin_PromptAtEOF(t *testing.T) {
	db := isolate(t)

	run := runRaw(t, "", "--db", db, "booking", "list")

	assert.Equal(t, ExitCommandError, run.code)
	assert.Contains(t, run.stdout, "Error [E003]")
}

func TestLogin_ConfiguredCredentials(t *testing.T) {
	db := isolate(t)
	require.NoError(t, os.WriteFile("innkeep.yaml", []byte("credentials:\n  user: clerk\n  password: s3cret\n"), 0o644))

	rejected := runCLI(t, db, "", "booking", "list")
	assert.Equal(t, ExitCommandError, rejected.code)

	accepted := runRaw(t, "", "--db", db, "--user", "clerk", "--password", "s3cret", "booking", "list")
	assert.Equal(t, ExitSuccess, accepted.code, "stdout: %s", accepted.stdout)
}

func TestConfig_DatabaseFromEnvironment(t *testing.T) {
	db := isolate(t)
	t.Setenv("INNKEEP_DB", db)

	run := runRaw(t, "", "--user", "admin", "--password", "password",
		"customer", "add", "--name", "Ada", "--id", "1", "--cost", "10")

	require.Equal(t, ExitSuccess, run.code, "stdout: %s", run.stdout)
	_, err := os.Stat(db)
	assert.NoError(t, err)
}

func TestConfig_UnknownField(t *testing.T) {
	db := isolate(t)
	require.NoError(t, os.WriteFile("bad.yaml", []byte("databse: x.db\n"), 0o644))

	run := runCLI(t, db, "", "--config", "bad.yaml", "booking", "list")

	assert.Equal(t, ExitCommandError, run.code)
	assert.Contains(t, run.stdout, "failed to load config")
}

func TestStorageInitFailure(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "missing", "dir", "hotel.db")

	run := runCLI(t, db, "", "--format", "json", "booking", "list")

	assert.Equal(t, ExitCommandError, run.code)
	resp := decodeResponse(t, run.stdout, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeStorageInit, resp.Error.Code)
}

func TestUnknownCommand(t *testing.T) {
	db := isolate(t)

	run := runCLI(t, db, "", "room", "list")

	assert.Equal(t, ExitCommandError, run.code)
	assert.Contains(t, run.stdout, "Error [E006]")
}

func TestVerboseLogsToStderr(t *testing.T) {
	db := isolate(t)

	run := runCLI(t, db, "", "--verbose", "--format", "json", "booking", "list")

	require.Equal(t, ExitSuccess, run.code)
	assert.Contains(t, run.stderr, "level=DEBUG")
	assert.Contains(t, run.stderr, "trace_id="+testTraceID)
	assert.Contains(t, run.stderr, "0 booking(s) in "+db)

	resp := decodeResponse(t, run.stdout, nil)
	assert.Equal(t, "ok", resp.Status)
}

func TestCompletionAndHelp_SkipLogin(t *testing.T) {
	for _, args := range [][]string{
		{"completion", "bash"},
		{"help", "booking"},
	} {
		t.Run(args[0], func(t *testing.T) {
			isolate(t)

			run := runRaw(t, "", args...)

			assert.Equal(t, ExitSuccess, run.code, "stdout: %s", run.stdout)
			assert.NotContains(t, run.stderr, "Username: ")
			assert.Contains(t, run.stdout, "innkeep")
		})
	}
}
