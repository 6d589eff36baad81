package scoremath_test

import (
	"testing"

	"github.com/okian/teamfit/internal/domain/scoremath"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCosineSimilarity(t *testing.T) {
	Convey("Given two vectors", t, func() {
		Convey("When they are parallel", func() {
			So(scoremath.CosineSimilarity([]float64{1, 2, 3}, []float64{2, 4, 6}), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("When they are orthogonal", func() {
			So(scoremath.CosineSimilarity([]float64{1, 0}, []float64{0, 1}), ShouldEqual, 0)
		})

		Convey("When one has zero magnitude", func() {
			So(scoremath.CosineSimilarity([]float64{0, 0, 0}, []float64{1, 2, 3}), ShouldEqual, 0)
		})

		Convey("When they point opposite ways", func() {
			So(scoremath.CosineSimilarity([]float64{1, 1}, []float64{-1, -1}), ShouldAlmostEqual, -1.0, 1e-9)
		})
	})
}

func TestHelpers(t *testing.T) {
	Convey("Clamp bounds values", t, func() {
		So(scoremath.Clamp(-5, 0, 100), ShouldEqual, 0)
		So(scoremath.Clamp(105, 0, 100), ShouldEqual, 100)
		So(scoremath.Clamp(42, 0, 100), ShouldEqual, 42)
	})

	Convey("WeightedAverageUpdate folds in one sample", t, func() {
		So(scoremath.WeightedAverageUpdate(50, 5, 70), ShouldAlmostEqual, 53.3333, 1e-4)
		So(scoremath.WeightedAverageUpdate(50, 0, 70), ShouldEqual, 70)
	})

	Convey("Round keeps the requested places", t, func() {
		So(scoremath.Round(53.3333, 1), ShouldEqual, 53.3)
		So(scoremath.Round(0.6666, 2), ShouldEqual, 0.67)
	})

	Convey("Mean handles empty input", t, func() {
		So(scoremath.Mean(nil), ShouldEqual, 0)
		So(scoremath.Mean([]float64{10, 20}), ShouldEqual, 15)
	})
}
