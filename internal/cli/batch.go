package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/integrations/github"
	"github.com/matzehuels/commitcard/pkg/pipeline"
)

// manifest lists the cards rendered by the batch command.
//
//	out_dir = "cards"
//
//	[defaults]
//	theme = "dracula"
//
//	[[card]]
//	name = "stacktower"
//	repo = "matzehuels/stacktower"
//	params = { count = "3", avatar = "false" }
type manifest struct {
	OutDir   string            `toml:"out_dir"`
	Defaults map[string]string `toml:"defaults"`
	Cards    []manifestCard    `toml:"card"`
}

type manifestCard struct {
	Name   string            `toml:"name"`
	Repo   string            `toml:"repo"`
	Params map[string]string `toml:"params"`

	owner, repo string
}

// parseManifest decodes and validates a manifest. Card names must be
// unique and usable as file names.
func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown manifest key %q", undecoded[0].String())
	}
	if len(m.Cards) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest has no [[card]] entries")
	}

	seen := make(map[string]bool, len(m.Cards))
	for i := range m.Cards {
		card := &m.Cards[i]
		if err := errors.ValidateCardName(card.Name); err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		if seen[card.Name] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate card name %q", card.Name)
		}
		seen[card.Name] = true

		card.owner, card.repo, err = github.ParseRepoRef(card.Repo)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", card.Name, err)
		}
	}
	return &m, nil
}

// values merges the manifest defaults, the card's parameters and its
// repository, in increasing precedence.
func (m *manifest) values(card manifestCard) url.Values {
	v := url.Values{}
	for k, val := range m.Defaults {
		v.Set(k, val)
	}
	for k, val := range card.Params {
		v.Set(k, val)
	}
	v.Set("u", card.owner)
	v.Set("repo", card.repo)
	return v
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		outDir      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <manifest.toml>",
		Short: "Render every card in a TOML manifest",
		Long: `Render every card listed in a TOML manifest.

Cards are rendered concurrently and written to <out-dir>/<name>.svg. A card
that fails is still written as an error card; the command then exits with
an error after all cards are done.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			m, err := parseManifest(data)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out-dir") || m.OutDir == "" {
				m.OutDir = outDir
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
			results, err := renderBatch(cmd.Context(), runner, m, concurrency)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, res := range results {
				path := filepath.Join(m.OutDir, m.Cards[i].Name+".svg")
				if res.Err != nil {
					printError(w, "%s: %s", m.Cards[i].Name, pipeline.ErrorMessage(res.Err))
				} else {
					printSuccess(w, "%s", res)
				}
				printFile(w, path)
			}
			if failed := timer.batchDone(results); failed > 0 {
				return fmt.Errorf("%d of %d cards failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for rendered cards (overrides out_dir)")
	cmd.Flags().IntVar(&concurrency, "concurrency", defaultConcurrency, "maximum cards rendered at once")

	return cmd
}

// renderBatch renders and writes every card in m, at most concurrency at a
// time. Card failures are reported in the results; only file system errors
// abort the batch.
func renderBatch(ctx context.Context, runner *pipeline.Runner, m *manifest, concurrency int) ([]pipeline.Result, error) {
	if err := os.MkdirAll(m.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", m.OutDir, err)
	}

	results := make([]pipeline.Result, len(m.Cards))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, card := range m.Cards {
		g.Go(func() error {
			res := runner.Execute(ctx, m.values(card))
			results[i] = res
			path := filepath.Join(m.OutDir, card.Name+".svg")
			if err := os.WriteFile(path, res.SVG, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
