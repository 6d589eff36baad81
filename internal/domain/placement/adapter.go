package placement

import "github.com/okian/teamfit/internal/domain/model"

// Work-style values assumed for employees, who carry no preferences of their
// own.
const (
	DefaultRemotePreference   = "hybrid"
	DefaultCommunicationStyle = "balanced"
	DefaultWorkPace           = "steady"
	DefaultDecisionStyle      = "analytical"
)

// EmployeeAsCandidate projects an employee into the candidate shape so the
// same fit calculator can score transfers. Tenure stands in for years of
// experience and education is left empty.
func EmployeeAsCandidate(e *model.Employee) model.Candidate {
	return model.Candidate{
		ID:                 e.ID,
		Name:               e.Name,
		Email:              e.Email,
		CurrentPosition:    e.Position,
		YearsOfExperience:  e.Tenure,
		Education:          model.Education{},
		PersonalityProfile: e.PersonalityProfile,
		WorkStylePreferences: model.WorkStylePreferences{
			RemotePreference:   DefaultRemotePreference,
			CommunicationStyle: DefaultCommunicationStyle,
			WorkPace:           DefaultWorkPace,
			DecisionStyle:      DefaultDecisionStyle,
		},
		Skills: e.Skills,
	}
}
