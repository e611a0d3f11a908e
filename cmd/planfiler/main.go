// Command planfiler files the numbered entries of one section of a
// planning document as issues in the configured tracker repository.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dotandev/planfiler/internal/config"
	"github.com/dotandev/planfiler/internal/filer"
	"github.com/dotandev/planfiler/internal/parser"
	"github.com/dotandev/planfiler/internal/plan"
	"github.com/dotandev/planfiler/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagRepo   string
	flagMarker string
	flagLabel  string
	flagDryRun bool
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	root := newRootCmd(log)
	root.AddCommand(newOutlineCmd(), newServeCmd(log))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(log *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planfiler [plan-file]",
		Short: "File a plan section's numbered entries as tracker issues",
		Long: `planfiler reads a planning document, extracts the configured section,
and files one issue per numbered entry in the configured repository.

The plan file may be markdown, plain text, HTML, PDF, or DOCX. The
tracker token comes from GITHUB_TOKEN; the repository from GITHUB_REPO
or the config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, args, log)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default planfiler.yaml)")
	cmd.Flags().StringVar(&flagRepo, "repo", "", "target repository as owner/name")
	cmd.Flags().StringVar(&flagMarker, "marker", "", "section marker to extract")
	cmd.Flags().StringVar(&flagLabel, "label", "", "label attached to every created issue")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "parse and report without creating issues")

	return cmd
}

func runFile(cmd *cobra.Command, args []string, log *slog.Logger) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagRepo != "" {
		cfg.Repo = flagRepo
	}
	if flagMarker != "" {
		cfg.Marker = flagMarker
	}
	if flagLabel != "" {
		cfg.Label = flagLabel
	}
	if flagDryRun {
		cfg.DryRun = true
	}

	planPath := cfg.PlanPath
	if len(args) > 0 {
		planPath = args[0]
	}
	if planPath == "" {
		return errors.New("no plan file given (pass a path or set PLAN_PATH)")
	}
	if err := cfg.ValidateFiling(); err != nil {
		return err
	}

	repo, err := tracker.ParseRepo(cfg.Repo)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(planPath)
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}
	text, err := parser.PlanText(data, filepath.Base(planPath))
	if err != nil {
		return err
	}

	client := tracker.NewClient(cfg.APIURL, cfg.Token, repo, cfg.HTTPTimeout)
	defer client.Close()

	f := filer.New(client, cfg.Label, cfg.DryRun, os.Stdout, log)
	_, err = f.Run(cmd.Context(), text, cfg.Marker)
	if errors.Is(err, plan.ErrSectionNotFound) {
		// Already reported; nothing to file is a clean end to the run.
		return nil
	}
	return err
}
