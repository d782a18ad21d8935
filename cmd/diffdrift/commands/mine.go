// Package commands implements the diffdrift CLI subcommands.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/diffdrift/internal/config"
	"github.com/Sumatoshi-tech/diffdrift/internal/diffengine"
	"github.com/Sumatoshi-tech/diffdrift/internal/fetch"
	"github.com/Sumatoshi-tech/diffdrift/internal/mine"
	"github.com/Sumatoshi-tech/diffdrift/internal/report"
)

// Summary output formats.
const (
	SummaryFormatTable = "table"
	SummaryFormatYAML  = "yaml"
)

// Sentinel errors for the mine command.
var (
	ErrNoRepos              = errors.New("no repositories given. Use --repos with at least one URL or path")
	ErrUnknownSummaryFormat = errors.New("unknown summary format (expected table or yaml)")
)

// MineCommand holds the configuration for the mine command.
type MineCommand struct {
	repos         []string
	workdir       string
	maxCommits    int
	out           string
	includeMerges bool
	plotsDir      string
	summaryFormat string
	configPath    string
}

// NewMineCommand creates and configures the mine command.
func NewMineCommand() *cobra.Command {
	mc := &MineCommand{}

	cobraCmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine repositories for diff algorithm discrepancies",
		Long: `Mine walks the history of each repository, diffs every changed file
with both the myers and histogram algorithms, and records whether the
two outputs differ. Results land in a CSV dataset plus a per-file-type
summary; optional HTML charts visualize the mismatch counts.`,
		RunE: mc.run,
	}

	cobraCmd.Flags().StringSliceVarP(&mc.repos, "repos", "r", nil, "Repository URLs or paths to mine (comma-separated)")
	cobraCmd.Flags().StringVarP(&mc.workdir, "workdir", "w", config.DefaultWorkdir, "Directory for repository checkouts")
	cobraCmd.Flags().IntVarP(&mc.maxCommits, "max-commits", "n", config.DefaultMaxCommits, "Max commits per repository (0 = no limit)")
	cobraCmd.Flags().StringVarP(&mc.out, "out", "o", config.DefaultOutput, "Output CSV path for the dataset")
	cobraCmd.Flags().BoolVar(&mc.includeMerges, "include-merges", false, "Diff merge commits against their first parent")
	cobraCmd.Flags().StringVar(&mc.plotsDir, "plots-dir", "", "Directory for HTML charts (empty = no charts)")
	cobraCmd.Flags().StringVar(&mc.summaryFormat, "summary-format", SummaryFormatTable, "Console summary format (table, yaml)")
	cobraCmd.Flags().StringVarP(&mc.configPath, "config", "c", "", "Config file path")

	return cobraCmd
}

func (mc *MineCommand) run(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := mc.loadConfig(cobraCmd)
	if err != nil {
		return err
	}

	if len(mc.repos) == 0 {
		return ErrNoRepos
	}

	if mc.summaryFormat != SummaryFormatTable && mc.summaryFormat != SummaryFormatYAML {
		return fmt.Errorf("%w: %q", ErrUnknownSummaryFormat, mc.summaryFormat)
	}

	ctx := cobraCmd.Context()
	engine := diffengine.NewGitCLI(cfg.Diff.GitBinary, cfg.Diff.Timeout)
	opts := mine.WalkOptions{MaxCommits: cfg.MaxCommits, IncludeMerges: cfg.IncludeMerges}

	var records []mine.Record

	for _, url := range mc.repos {
		spec, ensureErr := fetch.Ensure(ctx, url, cfg.Workdir)
		if ensureErr != nil {
			return ensureErr
		}

		repoRecords, analyzeErr := mine.AnalyzeRepo(ctx, spec.Name, spec.Path, engine, opts)
		if analyzeErr != nil {
			return analyzeErr
		}

		records = append(records, repoRecords...)
	}

	dataset := mine.Collect(records)

	err = report.WriteDataset(cfg.Output, dataset)
	if err != nil {
		return err
	}

	rows := dataset.Summarize()

	err = report.WriteSummary(report.SummaryPath(cfg.Output), rows)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s %s records -> %s\n",
		color.GreenString("mined"), humanize.Comma(int64(len(dataset.Records))), cfg.Output)

	switch mc.summaryFormat {
	case SummaryFormatYAML:
		err = report.WriteSummaryYAML(os.Stdout, rows)
		if err != nil {
			return err
		}
	default:
		report.RenderSummary(os.Stdout, rows)
	}

	if cfg.PlotsDir != "" {
		err = report.WriteCharts(cfg.PlotsDir, rows)
		if err != nil {
			return err
		}
	}

	return nil
}

// loadConfig layers explicit flags over the file/env configuration.
func (mc *MineCommand) loadConfig(cobraCmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(mc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cobraCmd.Flags()

	if flags.Changed("workdir") {
		cfg.Workdir = mc.workdir
	}

	if flags.Changed("max-commits") {
		cfg.MaxCommits = mc.maxCommits
	}

	if flags.Changed("out") {
		cfg.Output = mc.out
	}

	if flags.Changed("include-merges") {
		cfg.IncludeMerges = mc.includeMerges
	}

	if flags.Changed("plots-dir") {
		cfg.PlotsDir = mc.plotsDir
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
