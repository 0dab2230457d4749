package cli

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/integrations/github"
)

// cardFlags holds the card options shared by flags and manifest entries.
// Only explicitly set values are forwarded, so unset options keep the same
// defaults the HTTP endpoint uses.
type cardFlags struct {
	username string
	repo     string
	count    int
	width    int
	radius   int
	theme    string
	font     string
	colors   map[string]*string
	hide     map[string]*bool
	params   []string
}

// colorParams are the overridable palette entries, in flag order.
var colorParams = []string{"bg", "border", "title", "text", "accent"}

// toggleParams are the card sections that can be hidden.
var toggleParams = []string{"icons", "stats", "avatar", "date"}

func (f *cardFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.username, "username", "u", "", "repository owner")
	flags.StringVarP(&f.repo, "repo", "r", "", "repository name")
	flags.IntVarP(&f.count, "count", "c", 0, "number of commits (1-20)")
	flags.IntVarP(&f.width, "width", "w", 0, "card width in pixels (300-800)")
	flags.IntVar(&f.radius, "radius", 0, "corner radius (0-30)")
	flags.StringVar(&f.theme, "theme", "", "theme name (see 'commitcard themes')")
	flags.StringVar(&f.font, "font", "", "font key (see 'commitcard themes')")

	f.colors = make(map[string]*string, len(colorParams))
	for _, name := range colorParams {
		f.colors[name] = flags.String(name, "", fmt.Sprintf("override the %s color (hex)", name))
	}
	f.hide = make(map[string]*bool, len(toggleParams))
	for _, name := range toggleParams {
		f.hide[name] = flags.Bool("no-"+name, false, "hide the "+name)
	}
	flags.StringArrayVar(&f.params, "set", nil, "raw card parameter as key=value (repeatable)")
}

// values converts the set flags into card parameters. Raw --set values are
// applied first so that typed flags win.
func (f *cardFlags) values(cmd *cobra.Command) (url.Values, error) {
	v := url.Values{}
	for _, p := range f.params {
		key, val, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid --set %q: use key=value", p)
		}
		v.Set(key, val)
	}

	flags := cmd.Flags()
	set := func(flag, key, val string) {
		if flags.Changed(flag) {
			v.Set(key, val)
		}
	}
	set("username", "u", f.username)
	set("repo", "repo", f.repo)
	set("count", "count", strconv.Itoa(f.count))
	set("width", "w", strconv.Itoa(f.width))
	set("radius", "radius", strconv.Itoa(f.radius))
	set("theme", "theme", f.theme)
	set("font", "font", f.font)
	for _, name := range colorParams {
		set(name, name, *f.colors[name])
	}
	for _, name := range toggleParams {
		if *f.hide[name] {
			set("no-"+name, name, "false")
		}
	}
	return v, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  cardFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [owner/repo]",
		Short: "Render a commit card to a file",
		Long: `Render a commit card for one repository.

The repository is given either as owner/repo or with --username and --repo.
The card is written to --output, or to stdout when no output is given.`,
		Example: `  commitcard render matzehuels/stacktower -o card.svg
  commitcard render -u golang -r go --theme dracula --count 10 --no-avatar`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := flags.values(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				owner, repo, err := github.ParseRepoRef(args[0])
				if err != nil {
					return err
				}
				v.Set("u", owner)
				v.Set("repo", repo)
			}
			if err := github.ValidateRepoRef(v.Get("u"), v.Get("repo")); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}

			timer := startCardTimer(loggerFromContext(cmd.Context()))
			res := runner.Execute(cmd.Context(), v)
			if err := writeCard(cmd, output, res.SVG); err != nil {
				return err
			}
			if res.Err != nil {
				return res.Err
			}
			timer.rendered(res)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// writeCard writes svg to path, or to the command's stdout when path is
// empty or "-".
func writeCard(cmd *cobra.Command, path string, svg []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(svg)
		return err
	}
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(cmd.ErrOrStderr(), path)
	return nil
}
