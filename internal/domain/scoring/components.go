package scoring

import (
	"math"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoremath"
)

const (
	maxScore = 100

	levelMetBase     = 90
	levelMetStep     = 5
	levelMissBase    = 70
	levelMissStep    = 20
	experienceYears  = 5.0
	experienceWeight = 10

	workloadLow       = 60
	workloadHigh      = 80
	workloadLowSlope  = 1.5
	workloadHighBase  = 30
	workloadHighSlope = 3.5
)

// priorityWeight maps a requirement tier to its weight. Tiers outside 1..3
// are treated as low priority.
func priorityWeight(priority int) float64 {
	switch priority {
	case 1:
		return 1.0
	case 2:
		return 0.7
	default:
		return 0.5
	}
}

// meets reports whether skills satisfy req.
func meets(skills []model.Skill, req model.TeamRequirement) bool {
	s, ok := model.FindSkill(skills, req.SkillID)
	return ok && s.ProficiencyLevel >= req.RequiredLevel
}

// SkillMatch scores capability fit in [0,100]. Any unmet mandatory requirement
// yields 0.
func SkillMatch(skills []model.Skill, reqs []model.TeamRequirement) float64 {
	if len(reqs) == 0 {
		return 0
	}
	for _, req := range reqs {
		if req.IsMandatory && !meets(skills, req) {
			return 0
		}
	}

	var sum float64
	for _, req := range reqs {
		s, ok := model.FindSkill(skills, req.SkillID)
		if !ok {
			continue
		}
		diff := float64(s.ProficiencyLevel - req.RequiredLevel)
		var level float64
		if diff >= 0 {
			level = math.Min(levelMetBase+diff*levelMetStep, maxScore)
		} else {
			level = math.Max(0, levelMissBase+diff*levelMissStep)
		}
		bonus := math.Min(s.YearsOfExperience/experienceYears, 1) * experienceWeight
		sum += (level + bonus) * priorityWeight(req.Priority)
	}
	return math.Min(maxScore, sum/float64(len(reqs)))
}

// PersonalitySimilarity maps the cosine similarity of two Big Five profiles
// from [-1,1] onto [0,100].
func PersonalitySimilarity(a, b model.PersonalityProfile) float64 {
	return (scoremath.CosineSimilarity(a.Vector(), b.Vector()) + 1) * 50
}

// WorkloadRisk is 0 below 60% workload and ramps up steeply past 80%.
func WorkloadRisk(workload float64) float64 {
	switch {
	case workload < workloadLow:
		return 0
	case workload < workloadHigh:
		return (workload - workloadLow) * workloadLowSlope
	default:
		return workloadHighBase + (workload-workloadHigh)*workloadHighSlope
	}
}

// Retention predicts tenure and culture fit in [0,100].
func Retention(personalitySim, workload float64, sig Signals) float64 {
	r := 0.4*personalitySim +
		0.2*sig.ManagerSimilarity +
		0.2*(maxScore-WorkloadRisk(workload)) +
		0.2*(maxScore-sig.RecentMoveRisk())
	return scoremath.Clamp(r, 0, maxScore)
}

// Friction estimates transition cost in [0,100].
func Friction(personalitySim float64, sig Signals) float64 {
	f := 0.35*sig.MoveScore() +
		0.25*sig.HandoverScore() +
		0.2*sig.ManagerChangeScore() +
		0.2*(maxScore-personalitySim)
	return scoremath.Clamp(f, 0, maxScore)
}

// Confidence is the mean of three data-quality factors in [0,1].
func Confidence(skillCount, requirementCount int) float64 {
	var skills float64
	switch {
	case skillCount >= 5:
		skills = 1.0
	case skillCount >= 3:
		skills = 0.8
	default:
		skills = 0.5
	}

	var reqs float64
	switch {
	case requirementCount >= 5:
		reqs = 1.0
	case requirementCount >= 3:
		reqs = 0.8
	default:
		reqs = 0.6
	}

	const personality = 1.0
	return (skills + reqs + personality) / 3
}
