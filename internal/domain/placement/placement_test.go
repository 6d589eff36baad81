package placement_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/placement"
	"github.com/okian/teamfit/internal/domain/scoring"
	"github.com/okian/teamfit/internal/worker"
	. "github.com/smartystreets/goconvey/convey"
)

type tableScorer struct {
	mu     sync.Mutex
	scores map[string]float64
	fail   string
	modes  []model.PreferenceMode
}

func (s *tableScorer) Score(_ context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes = append(s.modes, mode)
	if cand.ID == s.fail {
		return model.FitScoreResult{}, errors.New("boom")
	}
	score, ok := s.scores[cand.ID+"/"+team.ID]
	if !ok {
		score = 50
	}
	return model.FitScoreResult{CandidateID: cand.ID, TeamID: team.ID, Mode: mode, TotalScore: score}, nil
}

func team(id, dept string, roles ...string) model.Team {
	t := model.Team{ID: id, Name: "Team " + id, Department: dept, Size: 5}
	for _, r := range roles {
		t.RecruitingPositions = append(t.RecruitingPositions, model.RecruitingPosition{Role: r})
	}
	return t
}

func cand(id, role string) model.Candidate {
	return model.Candidate{ID: id, Name: "Cand " + id, TargetRole: role}
}

func TestOptimizer_Assign(t *testing.T) {
	ctx := context.Background()

	Convey("Given three backend candidates and two backend teams", t, func() {
		scorer := &tableScorer{scores: map[string]float64{
			"c1/ta": 70, "c1/tb": 85,
			"c2/ta": 65, "c2/tb": 90,
		}}
		opt := placement.NewOptimizer(scorer)
		teams := []model.Team{team("ta", "eng", "backend"), team("tb", "eng", "backend"), team("tc", "eng", "designer")}
		cands := []model.Candidate{cand("c1", "backend"), cand("c2", "backend"), cand("c3", "backend")}

		res, err := opt.Assign(ctx, cands, teams, nil)

		Convey("Then earlier candidates pick first and teams are never reused", func() {
			So(err, ShouldBeNil)
			So(res.Assignments, ShouldHaveLength, 2)
			So(res.Assignments[0].TeamID, ShouldEqual, "tb")
			So(res.Assignments[0].FitScore, ShouldEqual, 85)
			So(res.Assignments[0].Reason, ShouldEqual, "high fit on skills and culture, can contribute immediately")
			So(res.Assignments[1].TeamID, ShouldEqual, "ta")
			So(res.Assignments[1].Reason, ShouldEqual, "good fit, will deliver with the right support")
			So(res.Assignments[0].TeamID, ShouldNotEqual, res.Assignments[1].TeamID)
		})

		Convey("Then phase 1 stops at the unmatched candidate", func() {
			So(res.StopReason, ShouldEqual, model.StopNoRelevantTeam)
			So(res.UnplacedCandidates, ShouldResemble, []string{"c3"})
			So(res.RunID, ShouldNotBeEmpty)
		})

		Convey("Then every pair was scored in stability mode", func() {
			for _, m := range scorer.modes {
				So(m, ShouldEqual, model.ModeStability)
			}
		})
	})

	Convey("Given an unmatched candidate ahead of a matched one", t, func() {
		scorer := &tableScorer{}
		teams := []model.Team{team("ta", "eng", "backend")}
		cands := []model.Candidate{cand("c1", "designer"), cand("c2", "backend"), cand("c3", "backend")}

		Convey("When the default strategy is used", func() {
			res, err := placement.NewOptimizer(scorer).Assign(ctx, cands, teams, nil)

			Convey("Then nobody is placed", func() {
				So(err, ShouldBeNil)
				So(res.Assignments, ShouldBeEmpty)
				So(res.UnplacedCandidates, ShouldResemble, []string{"c1", "c2", "c3"})
				So(res.StopReason, ShouldEqual, model.StopNoRelevantTeam)
			})
		})

		Convey("When unmatched candidates are skipped", func() {
			res, err := placement.NewOptimizer(scorer, placement.WithStrategy(placement.StrategySkipUnmatched)).Assign(ctx, cands, teams, nil)

			Convey("Then later candidates still get a team", func() {
				So(err, ShouldBeNil)
				So(res.Assignments, ShouldHaveLength, 1)
				So(res.Assignments[0].CandidateID, ShouldEqual, "c2")
				So(res.Assignments[0].Reason, ShouldEqual, "basic fit, needs mentoring and support")
				So(res.UnplacedCandidates, ShouldResemble, []string{"c1", "c3"})
				So(res.StopReason, ShouldEqual, model.StopCompleted)
			})
		})
	})

	Convey("Given tied scores", t, func() {
		scorer := &tableScorer{}
		teams := []model.Team{team("ta", "eng", "backend"), team("tb", "eng", "backend")}
		res, err := placement.NewOptimizer(scorer).Assign(ctx, []model.Candidate{cand("c1", "backend")}, teams, nil)

		Convey("Then the first maximum wins", func() {
			So(err, ShouldBeNil)
			So(res.Assignments[0].TeamID, ShouldEqual, "ta")
		})
	})

	Convey("Given a placement with employees on the receiving team", t, func() {
		scorer := &tableScorer{scores: map[string]float64{
			"c1/ta": 60,
			"e1/tb": 70, "e1/tc": 99,
			"e2/tb": 64,
			"e3/tb": 95,
		}}
		teams := []model.Team{team("ta", "eng", "backend"), team("tb", "eng"), team("tc", "sales")}
		employees := []model.Employee{
			{ID: "e1", Name: "Emi", TeamID: "ta"},
			{ID: "e2", Name: "Ken", TeamID: "ta"},
			{ID: "e3", Name: "Rin", TeamID: "tb"},
		}

		res, err := placement.NewOptimizer(scorer).Assign(ctx, []model.Candidate{cand("c1", "backend")}, teams, employees)

		Convey("Then only a same-department move above the threshold is proposed", func() {
			So(err, ShouldBeNil)
			So(res.Transfers, ShouldHaveLength, 1)
			tr := res.Transfers[0]
			So(tr.EmployeeID, ShouldEqual, "e1")
			So(tr.FromTeamID, ShouldEqual, "ta")
			So(tr.FromTeamName, ShouldEqual, "Team ta")
			So(tr.ToTeamID, ShouldEqual, "tb")
			So(tr.ToTeamName, ShouldEqual, "Team tb")
			So(tr.Department, ShouldEqual, "eng")
			So(res.Assignments[0].Department, ShouldEqual, tr.Department)
			So(tr.FitImprovement, ShouldEqual, 10)
			So(tr.FitImprovement, ShouldBeGreaterThan, 5)
			So(tr.Reason, ShouldEqual, "rebalances the department overall")
		})

		Convey("Then the organization impact folds in both phases", func() {
			impact := res.OrganizationImpact
			So(impact.OverallFitBefore, ShouldEqual, 44.6)
			// 44.6 + (60-50)*0.1 + 10*0.05
			So(impact.OverallFitAfter, ShouldEqual, 46.1)
			So(impact.FitImprovement, ShouldEqual, 1.5)
			So(impact.DepartmentsAffected, ShouldResemble, []model.DepartmentImpact{{Department: "eng", FitBefore: 45, FitAfter: 47}})
		})
	})

	Convey("Given a transfer that clears the high-fit bar", t, func() {
		scorer := &tableScorer{scores: map[string]float64{"c1/ta": 60, "e1/tb": 85}}
		teams := []model.Team{team("ta", "eng", "backend"), team("tb", "eng")}
		employees := []model.Employee{{ID: "e1", Name: "Emi", TeamID: "ta"}}
		res, err := placement.NewOptimizer(scorer).Assign(ctx, []model.Candidate{cand("c1", "backend")}, teams, employees)

		Convey("Then the reason names the employee and team", func() {
			So(err, ShouldBeNil)
			So(res.Transfers[0].Reason, ShouldEqual, "Emi's skills and experience fit Team tb better")
		})
	})

	Convey("Given an improvement exactly at the threshold", t, func() {
		scorer := &tableScorer{scores: map[string]float64{"c1/ta": 60, "e1/tb": 65}}
		teams := []model.Team{team("ta", "eng", "backend"), team("tb", "eng")}
		employees := []model.Employee{{ID: "e1", TeamID: "ta"}}
		res, err := placement.NewOptimizer(scorer).Assign(ctx, []model.Candidate{cand("c1", "backend")}, teams, employees)

		Convey("Then no transfer is proposed", func() {
			So(err, ShouldBeNil)
			So(res.Transfers, ShouldBeEmpty)
		})

		Convey("When the threshold is lowered", func() {
			res, err := placement.NewOptimizer(scorer, placement.WithTransferThreshold(2)).Assign(ctx, []model.Candidate{cand("c1", "backend")}, teams, employees)
			So(err, ShouldBeNil)
			So(res.Transfers, ShouldHaveLength, 1)
		})
	})

	Convey("Given fractional scores whose difference is the threshold", t, func() {
		teams := []model.Team{team("ta", "eng", "backend"), team("tb", "eng")}
		employees := []model.Employee{{ID: "e1", TeamID: "ta"}}
		candidates := []model.Candidate{cand("c1", "backend")}

		Convey("When the float difference lands just above 5", func() {
			scorer := &tableScorer{scores: map[string]float64{"c1/ta": 59.4, "e1/tb": 64.4}}
			res, err := placement.NewOptimizer(scorer).Assign(ctx, candidates, teams, employees)

			Convey("Then no transfer is proposed", func() {
				So(err, ShouldBeNil)
				So(res.Transfers, ShouldBeEmpty)
			})
		})

		Convey("When the improvement is one tenth above the threshold", func() {
			scorer := &tableScorer{scores: map[string]float64{"c1/ta": 59.4, "e1/tb": 64.5}}
			res, err := placement.NewOptimizer(scorer).Assign(ctx, candidates, teams, employees)

			Convey("Then the reported improvement exceeds the threshold", func() {
				So(err, ShouldBeNil)
				So(res.Transfers, ShouldHaveLength, 1)
				So(res.Transfers[0].FitImprovement, ShouldEqual, 5.1)
				So(res.Transfers[0].FitImprovement, ShouldBeGreaterThan, placement.DefaultTransferThreshold)
			})
		})
	})

	Convey("Given empty inputs", t, func() {
		res, err := placement.NewOptimizer(&tableScorer{}).Assign(ctx, nil, nil, nil)

		Convey("Then the result is empty and the impact is the baseline", func() {
			So(err, ShouldBeNil)
			So(res.Assignments, ShouldBeEmpty)
			So(res.Transfers, ShouldBeEmpty)
			So(res.UnplacedCandidates, ShouldBeEmpty)
			So(res.StopReason, ShouldEqual, model.StopCompleted)
			So(res.OrganizationImpact.OverallFitAfter, ShouldEqual, 44.6)
			So(res.OrganizationImpact.FitImprovement, ShouldEqual, 0)
			So(res.OrganizationImpact.DepartmentsAffected, ShouldBeEmpty)
		})
	})

	Convey("Given a failing scorer", t, func() {
		scorer := &tableScorer{fail: "c1"}
		_, err := placement.NewOptimizer(scorer).Assign(ctx, []model.Candidate{cand("c1", "backend")}, []model.Team{team("ta", "eng", "backend")}, nil)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "boom")
	})

	Convey("Given the real calculator behind a worker pool", t, func() {
		calc := scoring.NewCalculator()
		pool := worker.NewPool(calc, worker.WithSize(2))
		pool.Start(ctx)
		defer func() { _ = pool.Shutdown(ctx) }()

		opt := placement.NewOptimizer(calc,
			placement.WithBatchScorer(pool),
			placement.WithMode(model.ModeGrowth),
			placement.WithConcurrency(2),
			placement.WithBaseline(40),
			placement.WithDepartmentFit(30, 35),
		)
		teams := []model.Team{team("ta", "eng", "backend"), team("tb", "eng", "backend"), team("tc", "ops", "backend")}
		for i := range teams {
			teams[i].Requirements = []model.TeamRequirement{{SkillID: "go", RequiredLevel: 3, Priority: 1}}
		}
		teams[1].Requirements[0].RequiredLevel = 5
		cands := []model.Candidate{cand("c1", "backend"), cand("c2", "backend"), cand("c3", "backend"), cand("c4", "backend")}
		for i := range cands {
			cands[i].Skills = []model.Skill{{SkillID: "go", ProficiencyLevel: 3 + i%2, YearsOfExperience: 3}}
		}

		res, err := opt.Assign(ctx, cands, teams, nil)

		Convey("Then every team is used once and the fourth candidate is left out", func() {
			So(err, ShouldBeNil)
			So(res.Assignments, ShouldHaveLength, 3)
			seen := map[string]bool{}
			for _, a := range res.Assignments {
				So(seen[a.TeamID], ShouldBeFalse)
				seen[a.TeamID] = true
				So(a.FitScore, ShouldBeBetweenOrEqual, 0, 100)
			}
			So(res.UnplacedCandidates, ShouldResemble, []string{"c4"})
			So(res.OrganizationImpact.OverallFitBefore, ShouldEqual, 40)
			So(res.OrganizationImpact.DepartmentsAffected[0].FitBefore, ShouldEqual, 30)
		})
	})
}

func TestEmployeeAsCandidate(t *testing.T) {
	Convey("Given an employee", t, func() {
		emp := &model.Employee{
			ID: "e1", Name: "Emi", Email: "emi@example.com", Position: "engineer", Tenure: 4,
			PersonalityProfile: model.PersonalityProfile{Openness: 60},
			Skills:             []model.Skill{{SkillID: "go", ProficiencyLevel: 3}},
		}

		Convey("Then the projection fills the documented defaults", func() {
			c := placement.EmployeeAsCandidate(emp)
			So(c.ID, ShouldEqual, "e1")
			So(c.YearsOfExperience, ShouldEqual, 4)
			So(c.CurrentPosition, ShouldEqual, "engineer")
			So(c.Education, ShouldResemble, model.Education{})
			So(c.WorkStylePreferences, ShouldResemble, model.WorkStylePreferences{
				RemotePreference:   "hybrid",
				CommunicationStyle: "balanced",
				WorkPace:           "steady",
				DecisionStyle:      "analytical",
			})
			So(c.PersonalityProfile.Openness, ShouldEqual, 60)
			So(c.Skills, ShouldResemble, emp.Skills)
		})
	})

	Convey("Strategies parse by name", t, func() {
		s, err := placement.ParseStrategy("skip-unmatched")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, placement.StrategySkipUnmatched)
		_, err = placement.ParseStrategy("random")
		So(errors.Is(err, placement.ErrUnknownStrategy), ShouldBeTrue)
	})
}
