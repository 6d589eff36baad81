package cli

import (
	"github.com/spf13/cobra"

	service "github.com/okian/teamfit/internal/app"
	"github.com/okian/teamfit/internal/domain/model"
)

func newBatchCmd(a *app) *cobra.Command {
	var inputPath, strategy string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Place a batch of candidates and propose transfers",
		Long: `Assign candidates to teams recruiting their target role, then look for
one employee per receiving team who would fit better elsewhere in the department.

The input file holds {"candidates": [...], "teams": [...], "employees": [...]}.

Examples:
  teamfit batch --input batch.json
  teamfit batch --input batch.json --strategy skip-unmatched -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req model.BatchRequest
			if err := readJSON(cmd, inputPath, &req); err != nil {
				return err
			}
			if strategy != "" {
				req.Strategy = strategy
			}
			return a.withService(cmd.Context(), func(svc *service.Service) error {
				res, err := svc.AssignBatch(cmd.Context(), req)
				if err != nil {
					return err
				}
				return a.write(cmd, res)
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "batch JSON file")
	cmd.Flags().StringVar(&strategy, "strategy", "", "stop-at-first-unmatched or skip-unmatched (default from config)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
