package placement

import (
	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoremath"
)

const (
	neutralFit        = 50
	assignmentScaling = 0.1
	transferScaling   = 0.05
)

// organizationImpact gives a directional summary of a run. Department fits are
// fixed reference values, not recomputed.
func (o *Optimizer) organizationImpact(assignments []model.Assignment, transfers []model.TransferProposal, teams map[string]*model.Team) model.OrganizationImpact {
	deltas := make([]float64, len(assignments))
	for i, a := range assignments {
		deltas[i] = a.FitScore - neutralFit
	}
	var transferSum float64
	for _, t := range transfers {
		transferSum += t.FitImprovement
	}

	after := o.baseline + scoremath.Mean(deltas)*assignmentScaling + transferSum*transferScaling

	seen := map[string]bool{}
	departments := []model.DepartmentImpact{}
	add := func(teamID string) {
		team, ok := teams[teamID]
		if !ok || seen[team.Department] {
			return
		}
		seen[team.Department] = true
		departments = append(departments, model.DepartmentImpact{
			Department: team.Department,
			FitBefore:  o.departmentBefore,
			FitAfter:   o.departmentAfter,
		})
	}
	for _, a := range assignments {
		add(a.TeamID)
	}
	for _, t := range transfers {
		add(t.ToTeamID)
	}

	return model.OrganizationImpact{
		OverallFitBefore:    o.baseline,
		OverallFitAfter:     scoremath.Round(after, 1),
		FitImprovement:      scoremath.Round(after-o.baseline, 1),
		DepartmentsAffected: departments,
	}
}
