package simulation

import (
	"fmt"
	"math"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoremath"
)

const (
	traitShift      = 3
	cultureShift    = 5
	extraversionDip = 5
	quietCandidate  = 50
	balanceSwing    = 10
	balanceStable   = 5
	balanceUpheaval = 15
	busyWorkload    = 80
	overloaded      = 85

	retentionBase = 80
	retentionMin  = 40
	retentionMax  = 95
)

func analyzeImpact(diff model.CultureDiff, team *model.Team, cand *model.Candidate) model.ImpactAnalysis {
	strengths := []string{}
	if diff.Openness > traitShift {
		strengths = append(strengths, "new ideas and perspectives will push innovation")
	}
	if diff.Conscientiousness > traitShift {
		strengths = append(strengths, "planning and execution get stronger, more projects finish on time")
	}
	if diff.Extraversion > traitShift {
		strengths = append(strengths, "team communication becomes livelier and information flows faster")
	}
	if diff.Agreeableness > traitShift {
		strengths = append(strengths, "a more cooperative atmosphere strengthens team cohesion")
	}
	if diff.Neuroticism < -traitShift {
		strengths = append(strengths, "the team handles stress better and delivers more steadily")
	}

	risks := []string{}
	if diff.Extraversion < -traitShift {
		risks = append(risks, "team communication may become less frequent")
	}
	if diff.Conscientiousness < -traitShift {
		risks = append(risks, "planning and deadline discipline may slip")
	}
	if math.Abs(diff.BalanceIndex) > balanceSwing {
		risks = append(risks, fmt.Sprintf("team balance shifts (%+.1fpt)", diff.BalanceIndex))
	}
	if team.WorkloadAverage > busyWorkload {
		risks = append(risks, "the team is already overloaded, onboarding capacity may be short")
	}

	recs := []string{}
	if cand.PersonalityProfile.Extraversion < quietCandidate {
		recs = append(recs, "hold weekly 1:1s to give room to speak up and build psychological safety")
	}
	if diff.Extraversion < -traitShift {
		recs = append(recs, "increase team meeting frequency and encourage active sharing")
	}
	if team.WorkloadAverage > busyWorkload {
		recs = append(recs, "assign a dedicated onboarding mentor and plan the handover")
	}
	if math.Abs(diff.Openness) > cultureShift || math.Abs(diff.Conscientiousness) > cultureShift {
		recs = append(recs, "run regular feedback sessions for the first 3 months")
	}
	if len(recs) == 0 {
		recs = append(recs, "a standard onboarding program is sufficient")
	}

	return model.ImpactAnalysis{
		Strengths:         strengths,
		Risks:             risks,
		Recommendations:   recs,
		RetentionEstimate: retentionEstimate(diff, team.WorkloadAverage),
	}
}

func retentionEstimate(diff model.CultureDiff, workload float64) float64 {
	est := float64(retentionBase)
	if diff.Agreeableness > traitShift {
		est += 5
	}
	if diff.Neuroticism < -traitShift {
		est += 5
	}
	if math.Abs(diff.BalanceIndex) < balanceStable {
		est += 5
	}
	if diff.Extraversion < -extraversionDip {
		est -= 10
	}
	if workload > overloaded {
		est -= 10
	}
	if math.Abs(diff.BalanceIndex) > balanceUpheaval {
		est -= 5
	}
	return scoremath.Clamp(est, retentionMin, retentionMax)
}
