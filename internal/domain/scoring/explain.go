package scoring

import (
	"fmt"

	"github.com/okian/teamfit/internal/domain/model"
)

const (
	strongSkillMatch = 80
	strongRetention  = 80
	weakSkillMatch   = 60
	riskyFriction    = 40
	lowRetention     = 70
	noticeFriction   = 30
	heavyWorkload    = 80

	maxListed = 2

	skillStrengthScore   = 90
	cultureStrengthScore = 85
	skillRiskScore       = 60
	frictionRiskScore    = 50
)

func (c *Calculator) strengths(b model.FitScoreBreakdown, cand *model.Candidate, team *model.Team) []model.Strength {
	out := []model.Strength{}
	if b.SkillMatch >= strongSkillMatch {
		for _, s := range cand.Skills {
			if len(out) == maxListed {
				break
			}
			if !matchesRequirement(s, team.Requirements) {
				continue
			}
			name := c.catalog.SkillName(s.SkillID)
			out = append(out, model.Strength{
				Aspect:      name + " skills",
				Score:       skillStrengthScore,
				Description: fmt.Sprintf("strong %s proficiency (level %d) addresses the team's needs", name, s.ProficiencyLevel),
			})
		}
	}
	if b.Retention >= strongRetention {
		out = append(out, model.Strength{
			Aspect:      "culture fit",
			Score:       cultureStrengthScore,
			Description: "personality traits match the team's culture and values, likely to stay long term",
		})
	}
	return out
}

func (c *Calculator) risks(b model.FitScoreBreakdown, cand *model.Candidate, team *model.Team) []model.Risk {
	out := []model.Risk{}
	if b.SkillMatch < weakSkillMatch {
		listed := 0
		for _, req := range team.Requirements {
			if listed == maxListed {
				break
			}
			if meets(cand.Skills, req) {
				continue
			}
			name := c.catalog.SkillName(req.SkillID)
			out = append(out, model.Risk{
				Aspect:      name + " skill gap",
				Score:       skillRiskScore,
				Description: fmt.Sprintf("%s proficiency may fall short of the required level", name),
			})
			listed++
		}
	}
	if b.Friction > riskyFriction {
		out = append(out, model.Risk{
			Aspect:      "placement friction",
			Score:       frictionRiskScore,
			Description: "communication and handover may be rough during the first weeks",
		})
	}
	return out
}

func recommendations(b model.FitScoreBreakdown, team *model.Team) []model.Recommendation {
	out := []model.Recommendation{}
	if b.Retention < lowRetention {
		out = append(out, model.Recommendation{
			Action:         "hold weekly 1:1 check-ins",
			Priority:       model.PriorityHigh,
			ExpectedImpact: "retention +15%",
		})
	}
	if b.Friction > noticeFriction {
		out = append(out, model.Recommendation{
			Action:         "run a structured onboarding program",
			Priority:       model.PriorityHigh,
			ExpectedImpact: "ramp-up time -30%",
		})
	}
	if team.WorkloadAverage > heavyWorkload {
		out = append(out, model.Recommendation{
			Action:         "rebalance and redistribute workload",
			Priority:       model.PriorityMedium,
			ExpectedImpact: "burnout risk -50%",
		})
	}
	return out
}

func matchesRequirement(s model.Skill, reqs []model.TeamRequirement) bool {
	for _, req := range reqs {
		if req.SkillID == s.SkillID {
			return s.ProficiencyLevel >= req.RequiredLevel
		}
	}
	return false
}
