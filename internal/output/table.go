package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoring"
)

// TableTo writes data as a table to w.
func TableTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case model.FitScoreResult:
		return fitScoreTable(w, v)
	case model.SimulationResult:
		return simulationTable(w, v)
	case model.BatchAssignmentResult:
		return batchTable(w, v)
	case []scoring.ModeConfig:
		return modesTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func render(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(cells(header)...)
	for _, row := range rows {
		if err := table.Append(cells(row)...); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return table.Render()
}

func cells(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func fitScoreTable(w io.Writer, r model.FitScoreResult) error {
	fmt.Fprintf(w, "Candidate %s -> team %s (%s)\n", r.CandidateID, r.TeamID, r.Mode)
	fmt.Fprintf(w, "Total %s, grade %s (%s), confidence %.2f\n\n",
		num(r.TotalScore), r.Grade, scoring.Label(r.TotalScore), r.Confidence)

	err := render(w, []string{"Component", "Score"}, [][]string{
		{"skill match", num(r.Breakdown.SkillMatch)},
		{"retention", num(r.Breakdown.Retention)},
		{"friction", num(r.Breakdown.Friction)},
	})
	if err != nil {
		return err
	}

	rows := [][]string{}
	for _, s := range r.Strengths {
		rows = append(rows, []string{"strength", s.Aspect, num(s.Score), s.Description})
	}
	for _, rk := range r.Risks {
		rows = append(rows, []string{"risk", rk.Aspect, num(rk.Score), rk.Description})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w)
		if err := render(w, []string{"Kind", "Aspect", "Score", "Description"}, rows); err != nil {
			return err
		}
	}

	if len(r.Recommendations) > 0 {
		rows = rows[:0]
		for _, rec := range r.Recommendations {
			rows = append(rows, []string{string(rec.Priority), rec.Action, rec.ExpectedImpact})
		}
		fmt.Fprintln(w)
		return render(w, []string{"Priority", "Action", "Expected impact"}, rows)
	}
	return nil
}

func simulationTable(w io.Writer, r model.SimulationResult) error {
	fmt.Fprintf(w, "Candidate %s joining team %s (%d -> %d members)\n\n",
		r.CandidateID, r.TeamID, r.Before.MemberCount, r.After.MemberCount)

	b, a, d := r.Before.Culture, r.After.Culture, r.Diff
	err := render(w, []string{"Trait", "Before", "After", "Change"}, [][]string{
		{"openness", num(b.Openness), num(a.Openness), num(d.Openness)},
		{"conscientiousness", num(b.Conscientiousness), num(a.Conscientiousness), num(d.Conscientiousness)},
		{"extraversion", num(b.Extraversion), num(a.Extraversion), num(d.Extraversion)},
		{"agreeableness", num(b.Agreeableness), num(a.Agreeableness), num(d.Agreeableness)},
		{"neuroticism", num(b.Neuroticism), num(a.Neuroticism), num(d.Neuroticism)},
		{"balance index", num(r.Before.BalanceIndex), num(r.After.BalanceIndex), num(d.BalanceIndex)},
	})
	if err != nil {
		return err
	}

	ia := r.ImpactAnalysis
	fmt.Fprintf(w, "\nRetention estimate: %s%%\n", num(ia.RetentionEstimate))
	for _, s := range ia.Strengths {
		fmt.Fprintf(w, "  + %s\n", s)
	}
	for _, s := range ia.Risks {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	for _, s := range ia.Recommendations {
		fmt.Fprintf(w, "  > %s\n", s)
	}
	return nil
}

func batchTable(w io.Writer, r model.BatchAssignmentResult) error {
	fmt.Fprintf(w, "Run %s: %d assigned, %d transfers, stop reason %s\n\n",
		r.RunID, len(r.Assignments), len(r.Transfers), r.StopReason)

	if len(r.Assignments) == 0 {
		fmt.Fprintln(w, "No assignments.")
	} else {
		rows := make([][]string, 0, len(r.Assignments))
		for _, a := range r.Assignments {
			rows = append(rows, []string{a.CandidateID, a.CandidateName, a.TeamName, num(a.FitScore), a.Reason})
		}
		if err := render(w, []string{"Candidate", "Name", "Team", "Fit", "Reason"}, rows); err != nil {
			return err
		}
	}

	if len(r.Transfers) > 0 {
		rows := make([][]string, 0, len(r.Transfers))
		for _, t := range r.Transfers {
			rows = append(rows, []string{t.EmployeeName, t.Department, t.FromTeamName, t.ToTeamName, num(t.FitImprovement), t.Reason})
		}
		fmt.Fprintln(w)
		if err := render(w, []string{"Employee", "Department", "From", "To", "Improvement", "Reason"}, rows); err != nil {
			return err
		}
	}

	oi := r.OrganizationImpact
	fmt.Fprintf(w, "\nOrganization fit: %s -> %s (%+.1f)\n", num(oi.OverallFitBefore), num(oi.OverallFitAfter), oi.FitImprovement)
	if len(r.UnplacedCandidates) > 0 {
		fmt.Fprintf(w, "Unplaced: %v\n", r.UnplacedCandidates)
	}
	return nil
}

func modesTable(w io.Writer, modes []scoring.ModeConfig) error {
	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, []string{
			string(m.Name),
			strconv.FormatFloat(m.Weights.Alpha, 'f', 2, 64),
			strconv.FormatFloat(m.Weights.Beta, 'f', 2, 64),
			strconv.FormatFloat(m.Weights.Gamma, 'f', 2, 64),
			m.Description,
		})
	}
	return render(w, []string{"Mode", "Alpha", "Beta", "Gamma", "Description"}, rows)
}
