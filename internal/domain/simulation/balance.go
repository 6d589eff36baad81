package simulation

import (
	"math"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoremath"
)

const (
	uniformVariance   = 10
	scatteredVariance = 18
	idealVariance     = 15

	nearDistance = 10
	farDistance  = 20
)

// BalanceIndex scores a team's diversity from the mean per-trait variance.
// Low variance reads as too uniform, high variance as too scattered.
func BalanceIndex(culture model.TeamCultureProfile) float64 {
	v := scoremath.Mean(culture.Variances())
	var balance float64
	switch {
	case v < uniformVariance:
		balance = 50 + v*3
	case v <= scatteredVariance:
		balance = 70 + (scatteredVariance-math.Abs(v-idealVariance))*2
	default:
		balance = 80 - (v-scatteredVariance)*2
	}
	return scoremath.Clamp(balance, 0, 100)
}

// BalanceIndexAfterAddition approximates the balance once cand joins, from the
// mean absolute trait distance between cand and the team average.
func BalanceIndexAfterAddition(team, cand model.PersonalityProfile) float64 {
	tv, cv := team.Vector(), cand.Vector()
	dist := make([]float64, len(tv))
	for i := range tv {
		dist[i] = math.Abs(cv[i] - tv[i])
	}
	d := scoremath.Mean(dist)
	var balance float64
	switch {
	case d < nearDistance:
		balance = 65
	case d <= farDistance:
		balance = 75
	default:
		balance = 60 - (d - farDistance)
	}
	return scoremath.Clamp(balance, 0, 100)
}
