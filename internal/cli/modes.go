package cli

import (
	"github.com/spf13/cobra"

	service "github.com/okian/teamfit/internal/app"
)

func newModesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List preference modes and their weights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.write(cmd, service.New(service.WithConfig(a.cfg)).Modes())
		},
	}
}
