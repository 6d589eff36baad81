// Package cli implements the teamfit command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/teamfit/internal/app"
	"github.com/okian/teamfit/internal/config"
	"github.com/okian/teamfit/internal/output"
	"github.com/okian/teamfit/pkg/logger"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	outputFmt  string
	cfg        *config.Config
}

// NewRootCommand builds the teamfit command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "teamfit",
		Short: "Candidate-to-team fit scoring and placement",
		Long: `teamfit scores how well candidates fit teams, projects a team's culture
after a hire, and places batches of candidates with transfer proposals.

Inputs are JSON files; pass "-" to read from stdin.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"config file (default: $"+config.EnvConfigPath+")")
	root.PersistentFlags().StringVarP(&a.outputFmt, "output", "o", output.FormatTable,
		"output format (table, json)")

	root.AddCommand(
		newScoreCmd(a),
		newSimulateCmd(a),
		newBatchCmd(a),
		newModesCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.outputFmt != output.FormatTable && a.outputFmt != output.FormatJSON {
		return fmt.Errorf("%w: %s", output.ErrUnknownFormat, a.outputFmt)
	}

	ctx := cmd.Context()
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(ctx, a.configPath)
	} else {
		a.cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout stays machine readable.
	if err := logger.Init(logger.WithFormat(a.cfg.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return err
	}
	return logger.SetLevelString(a.cfg.LogLevel)
}

// withService runs fn against a started service and stops it afterwards.
func (a *app) withService(ctx context.Context, fn func(*service.Service) error) error {
	svc := service.New(service.WithConfig(a.cfg), service.WithLogger(logger.Get()))
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()
	return fn(svc)
}

func (a *app) write(cmd *cobra.Command, data any) error {
	return output.Write(cmd.OutOrStdout(), a.outputFmt, data)
}

// readJSON decodes the file at path into v. "-" reads stdin.
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "teamfit %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", buildTime)
		},
	}
}
