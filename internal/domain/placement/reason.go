package placement

import "fmt"

const (
	highFit = 80
	goodFit = 60
)

// AssignmentReason explains a placement from its fit score.
func AssignmentReason(score float64) string {
	switch {
	case score >= highFit:
		return "high fit on skills and culture, can contribute immediately"
	case score >= goodFit:
		return "good fit, will deliver with the right support"
	default:
		return "basic fit, needs mentoring and support"
	}
}

// TransferReason explains a transfer from the employee's score on the
// destination team.
func TransferReason(employeeName, teamName string, score float64) string {
	if score >= highFit {
		return fmt.Sprintf("%s's skills and experience fit %s better", employeeName, teamName)
	}
	return "rebalances the department overall"
}
