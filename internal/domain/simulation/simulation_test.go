package simulation_test

import (
	"context"
	"math"
	"testing"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/simulation"
	. "github.com/smartystreets/goconvey/convey"
)

func culture(o, c, e, a, n, variance float64) model.TeamCultureProfile {
	return model.TeamCultureProfile{
		PersonalityProfile:        model.PersonalityProfile{Openness: o, Conscientiousness: c, Extraversion: e, Agreeableness: a, Neuroticism: n},
		OpennessVariance:          variance,
		ConscientiousnessVariance: variance,
		ExtraversionVariance:      variance,
		AgreeablenessVariance:     variance,
		NeuroticismVariance:       variance,
	}
}

func TestEngine_Simulate(t *testing.T) {
	engine := simulation.NewEngine()
	ctx := context.Background()

	Convey("Given a ten person team with extraversion 70", t, func() {
		team := &model.Team{ID: "t1", Size: 10, WorkloadAverage: 50, CultureProfile: culture(60, 60, 70, 60, 40, 5)}
		cand := &model.Candidate{ID: "c1", PersonalityProfile: model.PersonalityProfile{
			Openness: 60, Conscientiousness: 60, Extraversion: 50, Agreeableness: 60, Neuroticism: 40,
		}}

		Convey("When a candidate with extraversion 50 is added", func() {
			snapshot := *team
			res := engine.Simulate(ctx, team, cand)

			Convey("Then the extraversion shift stays under the threshold", func() {
				So(res.Diff.Extraversion, ShouldAlmostEqual, -20.0/11, 1e-9)
				So(res.ImpactAnalysis.Strengths, ShouldBeEmpty)
				So(res.ImpactAnalysis.Risks, ShouldBeEmpty)
				So(res.ImpactAnalysis.Recommendations, ShouldResemble, []string{"a standard onboarding program is sufficient"})
				So(res.ImpactAnalysis.RetentionEstimate, ShouldEqual, 85)
			})

			Convey("Then the snapshots describe the projection", func() {
				So(res.Before.MemberCount, ShouldEqual, 10)
				So(res.After.MemberCount, ShouldEqual, 11)
				So(res.Before.BalanceIndex, ShouldEqual, 65)
				So(res.After.BalanceIndex, ShouldEqual, 65)
				So(res.Diff.BalanceIndex, ShouldEqual, 0)
				So(res.After.Culture.ExtraversionVariance, ShouldEqual, 5)
			})

			Convey("Then the team is left untouched", func() {
				So(*team, ShouldResemble, snapshot)
			})
		})
	})

	Convey("Given a one person team with neutral traits", t, func() {
		team := &model.Team{ID: "t2", Size: 1, WorkloadAverage: 90, CultureProfile: culture(50, 50, 50, 50, 50, 20)}
		cand := &model.Candidate{ID: "c2", PersonalityProfile: model.PersonalityProfile{
			Openness: 70, Conscientiousness: 70, Extraversion: 30, Agreeableness: 70, Neuroticism: 30,
		}}

		Convey("When a distinct candidate is added to the overloaded team", func() {
			res := engine.Simulate(ctx, team, cand)

			Convey("Then every trait moves halfway", func() {
				So(res.Diff.Openness, ShouldEqual, 10)
				So(res.Diff.Extraversion, ShouldEqual, -10)
				So(res.Diff.EmotionalStability(), ShouldEqual, 10)
				So(res.Before.BalanceIndex, ShouldEqual, 76)
				So(res.After.BalanceIndex, ShouldEqual, 75)
			})

			Convey("Then the rules fire in order", func() {
				So(res.ImpactAnalysis.Strengths, ShouldHaveLength, 4)
				So(res.ImpactAnalysis.Risks, ShouldHaveLength, 2)
				So(res.ImpactAnalysis.Risks[0], ShouldEqual, "team communication may become less frequent")
				So(res.ImpactAnalysis.Recommendations, ShouldHaveLength, 4)
				So(res.ImpactAnalysis.Recommendations[2], ShouldEqual, "assign a dedicated onboarding mentor and plan the handover")
				// 80 +5 agreeableness +5 neuroticism +5 stable balance -10 extraversion -10 workload
				So(res.ImpactAnalysis.RetentionEstimate, ShouldEqual, 75)
			})
		})
	})

	Convey("Given a healthy team and a similar candidate", t, func() {
		team := &model.Team{ID: "t3", Size: 4, CultureProfile: culture(60, 60, 60, 60, 40, 15)}
		cand := &model.Candidate{ID: "c3", PersonalityProfile: team.CultureProfile.PersonalityProfile}

		Convey("When the balance collapses", func() {
			res := engine.Simulate(ctx, team, cand)

			Convey("Then a signed balance risk is reported", func() {
				So(res.Diff.BalanceIndex, ShouldEqual, -35)
				So(res.ImpactAnalysis.Risks, ShouldContain, "team balance shifts (-35.0pt)")
				So(res.ImpactAnalysis.RetentionEstimate, ShouldEqual, 75)
			})
		})
	})

	Convey("Given arbitrary profiles", t, func() {
		Convey("Then after values lie between team and candidate values", func() {
			for size := 0; size <= 12; size += 3 {
				for v := 0.0; v <= 100; v += 25 {
					team := &model.Team{Size: size, CultureProfile: culture(40, 55, 70, 85, 10, 8)}
					cand := &model.Candidate{PersonalityProfile: model.PersonalityProfile{
						Openness: v, Conscientiousness: 100 - v, Extraversion: v, Agreeableness: 100 - v, Neuroticism: v,
					}}
					res := engine.Simulate(ctx, team, cand)
					before := team.CultureProfile.Vector()
					after := res.After.Culture.Vector()
					cv := cand.PersonalityProfile.Vector()
					for i := range before {
						lo, hi := math.Min(before[i], cv[i]), math.Max(before[i], cv[i])
						So(after[i], ShouldBeBetweenOrEqual, lo-1e-9, hi+1e-9)
					}
					So(res.After.BalanceIndex, ShouldBeBetweenOrEqual, 0, 100)
					So(res.Before.BalanceIndex, ShouldBeBetweenOrEqual, 0, 100)
					So(res.ImpactAnalysis.RetentionEstimate, ShouldBeBetweenOrEqual, 40, 95)
				}
			}
		})
	})
}

func TestBalanceIndex(t *testing.T) {
	Convey("BalanceIndex follows the variance bands", t, func() {
		So(simulation.BalanceIndex(culture(0, 0, 0, 0, 0, 0)), ShouldEqual, 50)
		So(simulation.BalanceIndex(culture(0, 0, 0, 0, 0, 5)), ShouldEqual, 65)
		So(simulation.BalanceIndex(culture(0, 0, 0, 0, 0, 15)), ShouldEqual, 100)
		So(simulation.BalanceIndex(culture(0, 0, 0, 0, 0, 20)), ShouldEqual, 76)
		So(simulation.BalanceIndex(culture(0, 0, 0, 0, 0, 60)), ShouldEqual, 0)
	})

	Convey("BalanceIndexAfterAddition follows the distance bands", t, func() {
		team := model.PersonalityProfile{Openness: 50, Conscientiousness: 50, Extraversion: 50, Agreeableness: 50, Neuroticism: 50}
		shift := func(d float64) model.PersonalityProfile {
			return model.PersonalityProfile{Openness: 50 + d, Conscientiousness: 50 - d, Extraversion: 50 + d, Agreeableness: 50 - d, Neuroticism: 50 + d}
		}
		So(simulation.BalanceIndexAfterAddition(team, shift(5)), ShouldEqual, 65)
		So(simulation.BalanceIndexAfterAddition(team, shift(15)), ShouldEqual, 75)
		So(simulation.BalanceIndexAfterAddition(team, shift(30)), ShouldEqual, 50)
		So(simulation.BalanceIndexAfterAddition(team, shift(50)), ShouldEqual, 30)
	})
}
