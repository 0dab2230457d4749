package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commitcard/pkg/buildinfo"
	"github.com/matzehuels/commitcard/pkg/fonts"
	"github.com/matzehuels/commitcard/pkg/themes"
)

// themesCommand creates the themes command.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in themes and fonts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, StyleTitle.Render("Themes"))
			for _, name := range themes.Names() {
				label := name
				if name == themes.Default {
					label += " (default)"
				}
				fmt.Fprintf(w, "  %-22s %s\n", label, swatch(themes.Resolve(name).Colors()))
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, StyleTitle.Render("Fonts"))
			for _, key := range fonts.Keys() {
				label := key
				if key == fonts.DefaultKey {
					label += " (default)"
				}
				fmt.Fprintf(w, "  %-22s %s\n", label, StyleDim.Render(string(fonts.Resolve(key))))
			}
			return nil
		},
	}
}

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			printKeyValue(w, "version", buildinfo.Version)
			printKeyValue(w, "commit", buildinfo.Commit)
			printKeyValue(w, "built", buildinfo.Date)
		},
	}
}
