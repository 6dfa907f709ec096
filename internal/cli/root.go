package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/innkeep/internal/config"
	"github.com/roach88/innkeep/internal/desk"
)

// RootOptions holds global flags for all commands, plus the state every
// subcommand needs once PersistentPreRunE has run.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string
	User       string
	Password   string

	// TraceIDs allows overriding the trace id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	TraceIDs TraceIDGenerator

	cfg     *config.Config
	logger  *slog.Logger
	traceID string
	in      *bufio.Reader
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the innkeep CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "innkeep",
		Short: "innkeep - hotel front desk",
		Long: `Record hotel bookings and customers in a local SQLite database.

Every command passes through a login gate. Credentials come from --user and
--password, or are prompted for on stdin when those flags are absent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.User, "user", "", "login user")
	cmd.PersistentFlags().StringVar(&opts.Password, "password", "", "login password")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Add subcommands
	cmd.AddCommand(NewBookingCommand(opts))
	cmd.AddCommand(NewCustomerCommand(opts))

	return cmd
}

// Execute runs the CLI with the given arguments and streams and returns the
// process exit code. Errors are reported through the output formatter, so
// JSON callers always receive a CLIResponse.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return execute(context.Background(), &RootOptions{}, args, stdin, stdout, stderr)
}

func execute(ctx context.Context, opts *RootOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	if opts.logger != nil {
		opts.logger.Error("command failed", "error", err)
	}

	formatter := opts.formatter(cmd)
	if !isValidFormat(formatter.Format) {
		formatter.Format = "text"
	}
	_ = formatter.Error(errorCode(err), err.Error(), nil)

	return exitCode(err)
}

// setup validates global flags, loads configuration, runs the login gate and
// prepares the logger and trace id for this invocation.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if skipsSetup(cmd) {
		return nil
	}
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	o.cfg = cfg

	gen := o.TraceIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	o.traceID = gen.Generate()
	o.logger = newLogger(cfg.Log, cmd.ErrOrStderr()).With("trace_id", o.traceID)
	o.in = bufio.NewReader(cmd.InOrStdin())

	user, password := o.User, o.Password
	if user == "" {
		user = o.prompt(cmd, "Username: ")
	}
	if password == "" {
		password = o.prompt(cmd, "Password: ")
	}
	if err := checkLogin(cfg.Credentials, user, password); err != nil {
		o.logger.Warn("login rejected", "user", user)
		return WrapExitError(ExitCommandError, "login failed", err)
	}
	o.logger.Debug("login accepted", "user", user)
	return nil
}

// skipsSetup reports whether cmd is help or shell completion, which run
// without config or login.
func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// prompt writes label to stderr and reads one line from stdin. EOF yields
// whatever was read, possibly nothing.
func (o *RootOptions) prompt(cmd *cobra.Command, label string) string {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, _ := o.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// formatter returns the output formatter for cmd's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		TraceID:   o.traceID,
	}
}

// openDesk opens the configured database. The caller must Close the desk.
func (o *RootOptions) openDesk(cmd *cobra.Command) (*desk.Desk, error) {
	o.logger.Debug("opening database", "path", o.cfg.Database)
	d, err := desk.Open(cmd.Context(), o.cfg.Database, o.logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return d, nil
}

// closeDesk closes d, logging rather than returning a close failure.
func (o *RootOptions) closeDesk(d *desk.Desk) {
	if err := d.Close(); err != nil {
		o.logger.Error("error closing database", "error", err)
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
