package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commitcard/internal/server"
	"github.com/matzehuels/commitcard/pkg/buildinfo"
	"github.com/matzehuels/commitcard/pkg/integrations/github"
	"github.com/matzehuels/commitcard/pkg/observability"
	"github.com/matzehuels/commitcard/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "commitcard"

	// defaultConcurrency bounds parallel renders in the batch command.
	defaultConcurrency = 4
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string

	// newFetcher builds the GitHub fetcher; tests replace it.
	newFetcher func(server.Config) (github.Fetcher, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.newFetcher = func(cfg server.Config) (github.Fetcher, error) {
		return cfg.NewFetcher(github.WithLogger(c.Logger))
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "commitcard renders recent GitHub commits as SVG cards",
		Long:          `commitcard fetches a repository's most recent commits from GitHub and renders them as an embeddable SVG card, either on demand over HTTP or from the command line.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the config file named by --config plus the environment.
func (c *CLI) loadConfig() (server.Config, error) {
	return server.LoadConfig(c.configPath)
}

// newRunner creates a pipeline runner backed by the configured fetcher.
func (c *CLI) newRunner(cfg server.Config) (*pipeline.Runner, error) {
	f, err := c.newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(f, c.Logger), nil
}

// =============================================================================
// Logger Context
// =============================================================================

type loggerKey struct{}

// withLogger attaches the command logger to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() for a
// context that did not pass through the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
