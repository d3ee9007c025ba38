// Package cli implements the addressbook command-line interface: an
// interactive conversation by default, plus one-shot subcommands for each
// verb of the command surface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/assistant"
	"github.com/mesh-intelligence/addressbook/internal/logger"
	"github.com/mesh-intelligence/addressbook/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
}

// app is the state shared by the commands of one invocation. setup fills it
// in before any RunE runs.
type app struct {
	flags rootFlags

	configDir string
	dataDir   string
	backend   string
	logger    *slog.Logger

	assistantOpts []assistant.Option
}

// exitError carries the process exit code for err. A nil err means the
// failure was already reported to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func systemError(err error) error { return &exitError{code: exitSysError, err: err} }

// NewRootCmd creates the top-level "addressbook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd()
}

func newRootCmd(opts ...assistant.Option) *cobra.Command {
	a := &app{assistantOpts: opts}

	root := &cobra.Command{
		Use:     "addressbook",
		Short:   "A personal contact book with birthday reminders",
		Long:    "Addressbook stores contacts with phone numbers and birthdays.\nRun without a subcommand to start an interactive session.",
		Version: Version,
		Args:    cobra.NoArgs,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/addressbook)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/addressbook)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newREPLCmd(a))
	for _, c := range assistant.Commands() {
		root.AddCommand(newVerbCmd(a, c))
	}

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes root with the given arguments and streams and returns the
// process exit code.
func run(root *cobra.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		fmt.Fprintln(errOut, "Error:", err)
		return exitUserError
	}
	if ee.err != nil {
		fmt.Fprintln(errOut, "Error:", ee.err)
	}
	return ee.code
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}

	// init writes its own config.yaml with the resolved data directory.
	v, err := loadConfig(configDir, cmd.Name() != "init")
	if err != nil {
		return systemError(err)
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return systemError(fmt.Errorf("resolve data dir: %w", err))
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.backend = v.GetString(cfgKeyBackend)
	a.logger = logger.New(&logger.Options{
		Level:  v.GetString(cfgKeyLogLevel),
		File:   v.GetString(cfgKeyLogFile),
		Format: v.GetString(cfgKeyLogFormat),
	})

	a.logger.Debug("configuration loaded",
		slog.String("config_dir", configDir),
		slog.String("data_dir", dataDir),
		slog.String("backend", a.backend))
	return nil
}
