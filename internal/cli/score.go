package cli

import (
	"github.com/spf13/cobra"

	service "github.com/okian/teamfit/internal/app"
	"github.com/okian/teamfit/internal/domain/model"
)

func newScoreCmd(a *app) *cobra.Command {
	var candidatePath, teamPath, mode string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one candidate against one team",
		Long: `Compute the fit score of a candidate for a team under a preference mode.

Examples:
  teamfit score --candidate cand.json --team team.json
  teamfit score --candidate cand.json --team team.json --mode growth -o json`,
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
				res, err := svc.ComputeFitScore(cmd.Context(), &cand, &team, model.PreferenceMode(mode))
				if err != nil {
					return err
				}
				return a.write(cmd, res)
			})
		},
	}

	cmd.Flags().StringVar(&candidatePath, "candidate", "", "candidate JSON file")
	cmd.Flags().StringVar(&teamPath, "team", "", "team JSON file")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "preference mode (default from config)")
	_ = cmd.MarkFlagRequired("candidate")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}
