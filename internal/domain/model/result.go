package model

import "time"

// PreferenceMode selects the weight triple used by the fit calculator.
type PreferenceMode string

const (
	ModeStability  PreferenceMode = "stability"
	ModeGrowth     PreferenceMode = "growth"
	ModeDiversity  PreferenceMode = "diversity"
	ModePriority   PreferenceMode = "priority"
	ModeInnovation PreferenceMode = "innovation"
)

// RecommendationPriority ranks a recommended action.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// FitScoreBreakdown holds the three component scores, each in [0,100].
type FitScoreBreakdown struct {
	SkillMatch float64 `json:"skill_match"`
	Retention  float64 `json:"retention"`
	Friction   float64 `json:"friction"`
}

// Strength is a positive finding.
type Strength struct {
	Aspect      string  `json:"aspect"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// Risk is a negative finding.
type Risk struct {
	Aspect      string  `json:"aspect"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// Recommendation is an action to take after placement.
type Recommendation struct {
	Action         string                 `json:"action"`
	Priority       RecommendationPriority `json:"priority"`
	ExpectedImpact string                 `json:"expected_impact"`
}

// FitScoreResult is the outcome of scoring one candidate against one team.
type FitScoreResult struct {
	CandidateID     string            `json:"candidate_id"`
	CandidateName   string            `json:"candidate_name"`
	TeamID          string            `json:"team_id"`
	TeamName        string            `json:"team_name"`
	Department      string            `json:"department"`
	Mode            PreferenceMode    `json:"mode"`
	TotalScore      float64           `json:"total_score"`
	Grade           string            `json:"grade"`
	Breakdown       FitScoreBreakdown `json:"breakdown"`
	Confidence      float64           `json:"confidence"`
	Strengths       []Strength        `json:"strengths"`
	Risks           []Risk            `json:"risks"`
	Recommendations []Recommendation  `json:"recommendations"`
	CalculatedAt    time.Time         `json:"calculated_at"`
}

// SimulationSnapshot describes a team's culture at one point of a simulation.
type SimulationSnapshot struct {
	Culture      TeamCultureProfile `json:"culture"`
	BalanceIndex float64            `json:"balance_index"`
	MemberCount  int                `json:"member_count"`
}

// CultureDiff is the after-minus-before delta per trait plus the balance delta.
type CultureDiff struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
	BalanceIndex      float64 `json:"balance_index"`
}

// EmotionalStability is the neuroticism delta with the sign flipped, which is
// how the change is presented to readers.
func (d CultureDiff) EmotionalStability() float64 {
	return -d.Neuroticism
}

// ImpactAnalysis is the narrative attached to a simulation.
type ImpactAnalysis struct {
	Strengths         []string `json:"strengths"`
	Risks             []string `json:"risks"`
	Recommendations   []string `json:"recommendations"`
	RetentionEstimate float64  `json:"retention_estimate"`
}

// SimulationResult is the before/after view of adding one candidate to a team.
type SimulationResult struct {
	CandidateID    string             `json:"candidate_id"`
	TeamID         string             `json:"team_id"`
	Before         SimulationSnapshot `json:"before"`
	After          SimulationSnapshot `json:"after"`
	Diff           CultureDiff        `json:"diff"`
	ImpactAnalysis ImpactAnalysis     `json:"impact_analysis"`
}

// AssignmentImpact is reserved for per-assignment culture deltas.
type AssignmentImpact struct {
	TeamCultureChange float64 `json:"team_culture_change"`
	TeamBalanceChange float64 `json:"team_balance_change"`
}

// Assignment places one candidate on one team.
type Assignment struct {
	CandidateID   string           `json:"candidate_id"`
	CandidateName string           `json:"candidate_name"`
	TeamID        string           `json:"team_id"`
	TeamName      string           `json:"team_name"`
	Department    string           `json:"department"`
	FitScore      float64          `json:"fit_score"`
	Reason        string           `json:"reason"`
	Impact        AssignmentImpact `json:"impact"`
}

// TransferProposal suggests moving an employee to make room for a placement.
// Both teams belong to Department.
type TransferProposal struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	FromTeamID     string  `json:"from_team_id"`
	FromTeamName   string  `json:"from_team_name"`
	ToTeamID       string  `json:"to_team_id"`
	ToTeamName     string  `json:"to_team_name"`
	Department     string  `json:"department"`
	Reason         string  `json:"reason"`
	FitImprovement float64 `json:"fit_improvement"`
}

// DepartmentImpact is the per-department before/after fit.
type DepartmentImpact struct {
	Department string  `json:"department"`
	FitBefore  float64 `json:"fit_before"`
	FitAfter   float64 `json:"fit_after"`
}

// OrganizationImpact summarizes a batch run's effect on the organization.
type OrganizationImpact struct {
	OverallFitBefore    float64            `json:"overall_fit_before"`
	OverallFitAfter     float64            `json:"overall_fit_after"`
	FitImprovement      float64            `json:"fit_improvement"`
	DepartmentsAffected []DepartmentImpact `json:"departments_affected"`
}

// StopReason explains why phase 1 of a batch run ended.
type StopReason string

const (
	StopCompleted      StopReason = "completed"
	StopNoRelevantTeam StopReason = "no_relevant_team"
)

// BatchRequest is the input of one batch placement run.
type BatchRequest struct {
	Candidates []Candidate `json:"candidates"`
	Teams      []Team      `json:"teams"`
	Employees  []Employee  `json:"employees"`
	// Strategy overrides the configured batch strategy when set.
	Strategy string `json:"strategy,omitempty"`
}

// BatchAssignmentResult is the output of a batch placement run.
type BatchAssignmentResult struct {
	RunID              string             `json:"run_id"`
	Assignments        []Assignment       `json:"assignments"`
	Transfers          []TransferProposal `json:"transfers"`
	OrganizationImpact OrganizationImpact `json:"organization_impact"`
	StopReason         StopReason         `json:"stop_reason"`
	UnplacedCandidates []string           `json:"unplaced_candidates"`
}
