package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/addressbook/internal/assistant"
)

// testToday is a Monday.
var testToday = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

type cliEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

type cliResult struct {
	stdout string
	stderr string
	code   int
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("ADDRESSBOOK_LOG_FILE", os.DevNull)
	dir := t.TempDir()
	return &cliEnv{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

func (e *cliEnv) run(stdin string, args ...string) cliResult {
	e.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(assistant.WithClock(func() time.Time { return testToday }))
	all := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := run(root, all, strings.NewReader(stdin), &out, &errOut)
	return cliResult{stdout: out.String(), stderr: errOut.String(), code: code}
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	res := e.run("", args...)
	require.Equal(e.t, exitSuccess, res.code, "stdout: %s\nstderr: %s", res.stdout, res.stderr)
	return res.stdout
}

func TestOneShotCommandsPersist(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("add", "Alice", "0123456789")
	assert.Equal(t, "Contact added: Contact name: Alice, phones: 0123456789\n", out)

	out = env.mustRun("add", "Alice", "0987654321")
	assert.Equal(t, "Contact updated: Contact name: Alice, phones: 0123456789; 0987654321\n", out)

	out = env.mustRun("edit", "Alice", "0123456789", "1111111111")
	assert.Equal(t, "Phone updated for Alice.\n", out)

	out = env.mustRun("phone", "Alice")
	assert.Equal(t, "Alice: 0987654321; 1111111111\n", out)

	assert.FileExists(t, filepath.Join(env.dataDir, "contacts.jsonl"))
	assert.FileExists(t, filepath.Join(env.dataDir, "phones.jsonl"))
}

func TestShowAllOnEmptyBook(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "Address book is empty.\n", env.mustRun("show", "all"))
	assert.Equal(t, "Address book is empty.\n", env.mustRun("all"))
}

func TestShowAllListsInInsertionOrder(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Bob", "1111111111")
	env.mustRun("add", "Alice", "0123456789")
	env.mustRun("add-birthday", "Alice", "12.06.1990")

	want := "Contact name: Bob, phones: 1111111111\n" +
		"Contact name: Alice, phones: 0123456789, birthday: 12.06.1990\n"
	assert.Equal(t, want, env.mustRun("all"))
}

func TestOneShotUserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid phone", []string{"add", "Bob", "123"}, "Error: phone number must contain exactly 10 digits\n"},
		{"invalid birthday", []string{"add-birthday", "Bob", "1990-06-12"}, "Error: invalid date format, use DD.MM.YYYY\n"},
		{"missing contact", []string{"phone", "Carol"}, "Error: contact not found: Carol\n"},
		{"arity", []string{"phone"}, "Error: wrong number of arguments, usage: phone NAME\n"},
		{"show without all", []string{"show"}, "Error: unknown command: show\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			res := env.run("", tt.args...)
			assert.Equal(t, exitUserError, res.code)
			assert.Equal(t, tt.want, res.stdout)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestFailedAddCreatesNothing(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("", "add", "Bob", "123")
	require.Equal(t, exitUserError, res.code)

	assert.Equal(t, "Address book is empty.\n", env.mustRun("all"))
}

func TestREPLSession(t *testing.T) {
	env := newCLIEnv(t)

	stdin := strings.Join([]string{
		"hello",
		"",
		"add Alice 0123456789",
		"add-birthday Alice 12.06.1990",
		"birthdays",
		"frobnicate",
		"exit now",
		"add Bob 1111111111",
	}, "\n") + "\n"
	res := env.run(stdin)
	require.Equal(t, exitSuccess, res.code, res.stderr)

	want := banner + "\n" +
		prompt + "How can I help you?\n" +
		prompt +
		prompt + "Contact added: Contact name: Alice, phones: 0123456789\n" +
		prompt + "Birthday added for Alice.\n" +
		prompt + "Alice: 12.06.2024\n" +
		prompt + "Unknown command\n" +
		prompt + "Good bye!\n"
	assert.Equal(t, want, res.stdout)

	// Lines after the exit verb are never read.
	assert.Equal(t, "Contact name: Alice, phones: 0123456789, birthday: 12.06.1990\n", env.mustRun("all"))
	assert.Equal(t, "Alice's birthday is 12.06.1990.\n", env.mustRun("show-birthday", "Alice"))
}

func TestREPLEndOfInputSaves(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("add Alice 0123456789", "repl")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	want := banner + "\n" +
		prompt + "Contact added: Contact name: Alice, phones: 0123456789\n" +
		prompt + "\n" +
		"Good bye!\n"
	assert.Equal(t, want, res.stdout)
	assert.Equal(t, "Alice: 0123456789\n", env.mustRun("phone", "Alice"))
}

func TestDefaultConfigWrittenOnFirstRun(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("all")

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
}

func TestInitWritesConfigAndData(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("init")
	assert.Equal(t, "Address book initialized in "+env.dataDir+"\n", out)

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, configFile{Backend: "sqlite", DataDir: env.dataDir}, cfg)

	assert.FileExists(t, filepath.Join(env.dataDir, "contacts.jsonl"))
	assert.FileExists(t, filepath.Join(env.dataDir, "phones.jsonl"))

	// A second init keeps the existing config.
	env.mustRun("init")
	again, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDataDirFromConfig(t *testing.T) {
	t.Setenv("ADDRESSBOOK_LOG_FILE", os.DevNull)
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	dataDir := filepath.Join(dir, "from-config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"),
		[]byte("backend: sqlite\ndata_dir: "+dataDir+"\n"), 0o644))

	var out, errOut bytes.Buffer
	code := run(newRootCmd(), []string{"--config-dir", configDir, "add", "Alice", "0123456789"},
		strings.NewReader(""), &out, &errOut)
	require.Equal(t, exitSuccess, code, errOut.String())

	assert.FileExists(t, filepath.Join(dataDir, "contacts.jsonl"))
}

func TestUnreadableStateFallsBackToEmptyBook(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.MkdirAll(env.dataDir, 0o755))
	line := `{"contact_id":"c1","name":"Alice","birthday":"31.02.2020","ordinal":0}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, "contacts.jsonl"), []byte(line), 0o644))

	assert.Equal(t, "Address book is empty.\n", env.mustRun("all"))
}

func TestUnknownBackendIsSystemError(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("backend: postgres\n"), 0o644))

	res := env.run("", "all")
	assert.Equal(t, exitSysError, res.code)
	assert.Equal(t, "Address book is empty.\n", res.stdout)
	assert.Contains(t, res.stderr, "storage unavailable")
}

func TestUnknownSubcommand(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("", "delete", "Alice")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, `unknown command "delete"`)
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("version")
	assert.Equal(t, "addressbook v"+Version+"\nmodule: "+modulePath+"\n", out)
	assert.NoDirExists(t, env.configDir)
}
