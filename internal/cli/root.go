package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelguard/internal/config"
	"modelguard/internal/logging"
	"modelguard/internal/modelpath"
)

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitConfigError = 1
	ExitFailure     = 2
)

// globals holds persistent flag values shared by every subcommand.
type globals struct {
	configFile string
	modelPath  string
	logLevel   string
	logFormat  string
	logFile    string
	stderr     io.Writer
}

// runEnv is what a command gets after config resolution.
type runEnv struct {
	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
}

func (e *runEnv) close() { _ = e.closer.Close() }

// setup resolves config and builds the logger. The returned env is non-nil
// even when err is a ConfigurationError so callers can log through it.
func (g *globals) setup(addr string) (*runEnv, error) {
	cfg, err := config.Resolve(g.configFile, config.Overrides{
		ModelPath: g.modelPath,
		LogLevel:  g.logLevel,
		LogFormat: g.logFormat,
		LogFile:   g.logFile,
		Addr:      addr,
	})
	l, c := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile, Out: g.stderr})
	return &runEnv{cfg: cfg, log: l, closer: c}, err
}

func (g *globals) configPath() string {
	if g.configFile != "" {
		return g.configFile
	}
	return os.Getenv(config.EnvConfig)
}

// NewRootCmd constructs the command tree. Output goes to stdout/stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{stderr: stderr}
	root := &cobra.Command{
		Use:           "modelguard",
		Short:         "Validate a local model-weights path before loading it",
		Long:          "modelguard checks that the configured model file exists before any model runtime is initialized.\nWithout a subcommand it behaves like 'check'.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, args []string) error { return runCheck(cmd, g) },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to $"+config.EnvConfig)
	pf.StringVar(&g.modelPath, "model-path", "", "Path to the model weights file (overrides $"+config.EnvModelPath+")")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error|off")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: console|json")
	pf.StringVar(&g.logFile, "log-file", "", "Also write logs to this file (rotated)")

	root.AddCommand(
		newCheckCmd(g),
		newLoadCmd(g),
		newWatchCmd(g),
		newServeCmd(g),
		newVersionCmd(),
	)
	return root
}

// ExecuteContext runs the CLI with args and returns the process exit code.
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "modelguard: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case modelpath.IsConfigurationError(err):
		return ExitConfigError
	default:
		return ExitFailure
	}
}
