package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/worker"
	. "github.com/smartystreets/goconvey/convey"
)

type stubScorer struct {
	calls atomic.Int64
	fail  string
}

func (s *stubScorer) Score(_ context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error) {
	s.calls.Add(1)
	if team.ID == s.fail {
		return model.FitScoreResult{}, errors.New("scorer down")
	}
	return model.FitScoreResult{CandidateID: cand.ID, TeamID: team.ID, Mode: mode, TotalScore: float64(team.Size)}, nil
}

type ctxKey struct{}

type ctxScorer struct {
	seen atomic.Int64
}

func (s *ctxScorer) Score(ctx context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error) {
	if ctx.Value(ctxKey{}) == "req-1" {
		s.seen.Add(1)
	}
	return model.FitScoreResult{CandidateID: cand.ID, TeamID: team.ID, Mode: mode}, nil
}

func teams(n int) []*model.Team {
	out := make([]*model.Team, n)
	for i := range out {
		out[i] = &model.Team{ID: "t" + string(rune('a'+i)), Size: i}
	}
	return out
}

func TestPool(t *testing.T) {
	Convey("Given a started pool of three workers", t, func() {
		ctx := context.Background()
		scorer := &stubScorer{}
		pool := worker.NewPool(scorer, worker.WithSize(3), worker.WithQueueSize(2))
		pool.Start(ctx)
		defer func() { _ = pool.Shutdown(ctx) }()

		So(pool.Size(), ShouldEqual, 3)

		Convey("When a candidate is scored against many teams", func() {
			cand := &model.Candidate{ID: "c1"}
			res, err := pool.ScoreAll(ctx, cand, teams(8), model.ModeStability)

			Convey("Then results come back in team order", func() {
				So(err, ShouldBeNil)
				So(res, ShouldHaveLength, 8)
				for i, r := range res {
					So(r.TotalScore, ShouldEqual, float64(i))
					So(r.CandidateID, ShouldEqual, "c1")
				}
				So(scorer.calls.Load(), ShouldEqual, 8)
			})
		})

		Convey("When there are no teams", func() {
			res, err := pool.ScoreAll(ctx, &model.Candidate{ID: "c1"}, nil, model.ModeStability)
			So(err, ShouldBeNil)
			So(res, ShouldBeEmpty)
		})

		Convey("When one job fails", func() {
			scorer.fail = "tc"
			_, err := pool.ScoreAll(ctx, &model.Candidate{ID: "c1"}, teams(4), model.ModeStability)

			Convey("Then the error names the pair", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "scorer down")
				So(err.Error(), ShouldContainSubstring, "tc")
			})
		})
	})

	Convey("Given a pool started with a background context", t, func() {
		scorer := &ctxScorer{}
		pool := worker.NewPool(scorer, worker.WithSize(2))
		pool.Start(context.Background())
		defer func() { _ = pool.Shutdown(context.Background()) }()

		Convey("When a request-scoped context submits jobs", func() {
			reqCtx := context.WithValue(context.Background(), ctxKey{}, "req-1")
			_, err := pool.ScoreAll(reqCtx, &model.Candidate{ID: "c1"}, teams(5), model.ModeStability)

			Convey("Then the scorer sees the caller's context", func() {
				So(err, ShouldBeNil)
				So(scorer.seen.Load(), ShouldEqual, 5)
			})
		})
	})

	Convey("Given a pool that was never started", t, func() {
		pool := worker.NewPool(&stubScorer{}, worker.WithSize(1))

		Convey("Then submissions are rejected", func() {
			_, err := pool.ScoreAll(context.Background(), &model.Candidate{}, teams(1), model.ModeStability)
			So(errors.Is(err, worker.ErrNotStarted), ShouldBeTrue)
			So(pool.Shutdown(context.Background()), ShouldBeNil)
		})
	})

	Convey("Given a pool that has shut down", t, func() {
		ctx := context.Background()
		pool := worker.NewPool(&stubScorer{}, worker.WithSize(2))
		pool.Start(ctx)
		So(pool.Shutdown(ctx), ShouldBeNil)
		So(pool.Shutdown(ctx), ShouldBeNil)

		Convey("Then submissions fail fast", func() {
			_, err := pool.ScoreAll(ctx, &model.Candidate{}, teams(10), model.ModeStability)
			So(errors.Is(err, worker.ErrPoolClosed), ShouldBeTrue)
		})
	})

	Convey("Given a canceled context", t, func() {
		pool := worker.NewPool(&stubScorer{}, worker.WithSize(1))
		runCtx, cancelRun := context.WithCancel(context.Background())
		pool.Start(runCtx)
		cancelRun()
		time.Sleep(10 * time.Millisecond)

		Convey("Then ScoreAll returns the context error", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := pool.ScoreAll(ctx, &model.Candidate{}, teams(1), model.ModeStability)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
