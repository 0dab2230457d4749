package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commitcard/internal/server"
)

// serveOpts holds flag values that override the loaded server config.
type serveOpts struct {
	addr    string
	api     string
	timeout time.Duration
	retries int
	sMaxAge int
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve commit cards over HTTP",
		Long: `Serve commit cards over HTTP.

Cards are served from /, /api and /api/* for ?u=owner&repo=name. The server
stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			return server.New(cfg, runner, logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.api, "api", server.APIREST, "GitHub API backend (rest or graphql)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "GitHub request timeout (default from config)")
	cmd.Flags().IntVar(&opts.retries, "retries", 0, "retries for transient GitHub failures")
	cmd.Flags().IntVar(&opts.sMaxAge, "s-maxage", server.DefaultSMaxAge, "shared cache lifetime of cards in seconds")

	return cmd
}

// apply copies explicitly set flags into cfg.
func (o serveOpts) apply(cmd *cobra.Command, cfg *server.Config) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = o.addr
	}
	if flags.Changed("api") {
		cfg.API = o.api
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("retries") {
		cfg.Retries = o.retries
	}
	if flags.Changed("s-maxage") {
		cfg.SMaxAge = o.sMaxAge
	}
}
