// Package model contains the records exchanged between the scoring engines and
// their host. JSON field names follow the wire format used by the data loaders.
package model

// Trait names in the fixed Big Five vector order.
const (
	TraitOpenness          = "openness"
	TraitConscientiousness = "conscientiousness"
	TraitExtraversion      = "extraversion"
	TraitAgreeableness     = "agreeableness"
	TraitNeuroticism       = "neuroticism"
)

// Traits lists the Big Five dimensions in vector order.
var Traits = []string{ //nolint:gochecknoglobals // fixed dimension order
	TraitOpenness,
	TraitConscientiousness,
	TraitExtraversion,
	TraitAgreeableness,
	TraitNeuroticism,
}

// PersonalityProfile is a Big Five profile for a person or a team average.
type PersonalityProfile struct {
	Openness          float64 `json:"openness" validate:"gte=0,lte=100"`
	Conscientiousness float64 `json:"conscientiousness" validate:"gte=0,lte=100"`
	Extraversion      float64 `json:"extraversion" validate:"gte=0,lte=100"`
	Agreeableness     float64 `json:"agreeableness" validate:"gte=0,lte=100"`
	Neuroticism       float64 `json:"neuroticism" validate:"gte=0,lte=100"`
}

// Vector returns the traits in the fixed order
// (openness, conscientiousness, extraversion, agreeableness, neuroticism).
func (p PersonalityProfile) Vector() []float64 {
	return []float64{p.Openness, p.Conscientiousness, p.Extraversion, p.Agreeableness, p.Neuroticism}
}

// TeamCultureProfile is a team's average personality plus per-trait variance.
type TeamCultureProfile struct {
	PersonalityProfile

	OpennessVariance          float64 `json:"openness_variance" validate:"gte=0"`
	ConscientiousnessVariance float64 `json:"conscientiousness_variance" validate:"gte=0"`
	ExtraversionVariance      float64 `json:"extraversion_variance" validate:"gte=0"`
	AgreeablenessVariance     float64 `json:"agreeableness_variance" validate:"gte=0"`
	NeuroticismVariance       float64 `json:"neuroticism_variance" validate:"gte=0"`
}

// Variances returns the per-trait variances in vector order.
func (c TeamCultureProfile) Variances() []float64 {
	return []float64{
		c.OpennessVariance,
		c.ConscientiousnessVariance,
		c.ExtraversionVariance,
		c.AgreeablenessVariance,
		c.NeuroticismVariance,
	}
}

// Skill is a proficiency a person holds.
type Skill struct {
	SkillID           string  `json:"skill_id" validate:"required"`
	ProficiencyLevel  int     `json:"proficiency_level" validate:"min=1,max=5"`
	YearsOfExperience float64 `json:"years_of_experience" validate:"gte=0"`
}

// TeamRequirement is a skill bar a team sets for newcomers.
type TeamRequirement struct {
	SkillID       string `json:"skill_id" validate:"required"`
	RequiredLevel int    `json:"required_level" validate:"min=1,max=5"`
	IsMandatory   bool   `json:"is_mandatory"`
	// Priority is 1 (high), 2 (medium) or 3 (low).
	Priority int `json:"priority" validate:"min=1,max=3"`
}

// RecruitingPosition is an open role on a team.
type RecruitingPosition struct {
	Role   string `json:"role" validate:"required"`
	Level  string `json:"level,omitempty"`
	Count  int    `json:"count,omitempty" validate:"gte=0"`
	Status string `json:"status,omitempty"`
}

// WorkStylePreferences captures how a candidate likes to work.
type WorkStylePreferences struct {
	RemotePreference   string `json:"remote_preference"`
	CommunicationStyle string `json:"communication_style"`
	WorkPace           string `json:"work_pace"`
	DecisionStyle      string `json:"decision_style"`
}

// Education is a candidate's highest degree.
type Education struct {
	Degree     string `json:"degree"`
	Major      string `json:"major"`
	University string `json:"university"`
}

// Candidate is an external applicant. Never mutated by the engines.
type Candidate struct {
	ID                   string               `json:"id" validate:"required"`
	Name                 string               `json:"name"`
	Email                string               `json:"email,omitempty"`
	Phone                string               `json:"phone,omitempty"`
	CurrentPosition      string               `json:"current_position,omitempty"`
	TargetRole           string               `json:"target_role,omitempty"`
	YearsOfExperience    float64              `json:"years_of_experience" validate:"gte=0"`
	Education            Education            `json:"education"`
	PersonalityProfile   PersonalityProfile   `json:"personality_profile"`
	WorkStylePreferences WorkStylePreferences `json:"work_style_preferences"`
	Skills               []Skill              `json:"skills" validate:"unique=SkillID,dive"`
}

// Employee is a current member of a team.
type Employee struct {
	ID                 string             `json:"id" validate:"required"`
	Name               string             `json:"name"`
	TeamID             string             `json:"team_id" validate:"required"`
	Department         string             `json:"department,omitempty"`
	Position           string             `json:"position,omitempty"`
	Level              string             `json:"level,omitempty"`
	Tenure             float64            `json:"tenure" validate:"gte=0"`
	PersonalityProfile PersonalityProfile `json:"personality_profile"`
	Skills             []Skill            `json:"skills" validate:"unique=SkillID,dive"`
	Email              string             `json:"email,omitempty"`
}

// Team is an organizational unit that receives placements.
type Team struct {
	ID                  string               `json:"id" validate:"required"`
	Name                string               `json:"name"`
	Department          string               `json:"department"`
	Description         string               `json:"description,omitempty"`
	ManagerID           string               `json:"manager_id,omitempty"`
	Size                int                  `json:"size" validate:"gte=0"`
	Location            string               `json:"location,omitempty"`
	RemotePolicy        string               `json:"remote_policy,omitempty"`
	CultureProfile      TeamCultureProfile   `json:"culture_profile"`
	CurrentChallenges   []string             `json:"current_challenges,omitempty"`
	WorkloadAverage     float64              `json:"workload_average" validate:"gte=0,lte=100"`
	Requirements        []TeamRequirement    `json:"requirements" validate:"dive"`
	RecruitingPositions []RecruitingPosition `json:"recruiting_positions,omitempty" validate:"dive"`
}

// Recruits reports whether the team has an open position for role.
func (t *Team) Recruits(role string) bool {
	for _, pos := range t.RecruitingPositions {
		if pos.Role == role {
			return true
		}
	}
	return false
}

// FindSkill returns the skill with the given id, if held.
func FindSkill(skills []Skill, skillID string) (Skill, bool) {
	for _, s := range skills {
		if s.SkillID == skillID {
			return s, true
		}
	}
	return Skill{}, false
}
