package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/moeezmir/portfolio/internal/progress"
	"github.com/moeezmir/portfolio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static portfolio site",
	Long:  `Renders the markdown content directory into static HTML pages and copies the client assets next to them.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override the output directory (defaults to site.output_dir)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outputDir, _ := cmd.Flags().GetString("output")
	g := newGenerator(cfg, outputDir, progress.NewReporter("Rendering pages"))

	res, err := g.Generate()
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	reportBuild(cmd, g, res)
	return nil
}

func reportBuild(cmd *cobra.Command, g *site.SiteGenerator, res site.Result) {
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Site built: %s (%s pages, %s)\n",
		g.OutputDir, humanize.Comma(int64(res.Pages)), humanize.Bytes(uint64(res.Bytes)))
}
