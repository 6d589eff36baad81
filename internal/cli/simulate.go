package cli

import (
	"github.com/spf13/cobra"

	service "github.com/okian/teamfit/internal/app"
	"github.com/okian/teamfit/internal/domain/model"
)

func newSimulateCmd(a *app) *cobra.Command {
	var candidatePath, teamPath string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project a team's culture after adding a candidate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cand model.Candidate
			if err := readJSON(cmd, candidatePath, &cand); err != nil {
				return err
			}
			var team model.Team
			if err := readJSON(cmd, teamPath, &team); err != nil {
				return err
			}
			return a.withService(cmd.Context(), func(svc *service.Service) error {
				res, err := svc.Simulate(cmd.Context(), &team, &cand)
				if err != nil {
					return err
				}
				return a.write(cmd, res)
			})
		},
	}

	cmd.Flags().StringVar(&candidatePath, "candidate", "", "candidate JSON file")
	cmd.Flags().StringVar(&teamPath, "team", "", "team JSON file")
	_ = cmd.MarkFlagRequired("candidate")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}
