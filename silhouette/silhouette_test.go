package silhouette_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/silhouette"
	"github.com/smartystreets/goconvey/convey"
)

func mustDataset(t *testing.T, pts ...dataset.Point) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(pts)
	if err != nil {
		t.Fatal(err)
	}

	return ds
}

func TestScore(t *testing.T) {
	convey.Convey("silhouette on a line", t, func() {
		ds := mustDataset(t, dataset.Point{0}, dataset.Point{1}, dataset.Point{4}, dataset.Point{5})

		convey.Convey("two tight pairs", func() {
			// p0: a=1, b=(4+5)/2=4.5 → 3.5/4.5
			// p1: a=1, b=(3+4)/2=3.5 → 2.5/3.5
			want := (3.5/4.5 + 2.5/3.5 + 2.5/3.5 + 3.5/4.5) / 4
			got, err := silhouette.Score(ds, []int{0, 0, 1, 1})
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldAlmostEqual, want, 1e-12)
		})

		convey.Convey("labels are compared by equality only", func() {
			a, err := silhouette.Score(ds, []int{0, 0, 1, 1})
			convey.So(err, convey.ShouldBeNil)
			b, err := silhouette.Score(ds, []int{7, 7, -3, -3})
			convey.So(err, convey.ShouldBeNil)
			convey.So(b, convey.ShouldEqual, a)
		})

		convey.Convey("a bad split scores lower", func() {
			good, err := silhouette.Score(ds, []int{0, 0, 1, 1})
			convey.So(err, convey.ShouldBeNil)
			bad, err := silhouette.Score(ds, []int{0, 1, 0, 1})
			convey.So(err, convey.ShouldBeNil)
			convey.So(bad, convey.ShouldBeLessThan, good)
			convey.So(bad, convey.ShouldBeGreaterThanOrEqualTo, -1.0)
		})

		convey.Convey("a singleton cluster contributes 0", func() {
			// p3 alone; p0..p2 share a cluster.
			// p0: a=(1+4)/2=2.5, b=5 → 0.5
			// p1: a=(1+3)/2=2,   b=4 → 0.5
			// p2: a=(4+3)/2=3.5, b=1 → −2.5/3.5
			want := (0.5 + 0.5 - 2.5/3.5 + 0) / 4
			got, err := silhouette.Score(ds, []int{0, 0, 0, 1})
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldAlmostEqual, want, 1e-12)
		})
	})

	convey.Convey("duplicate points", t, func() {
		ds := mustDataset(t, dataset.Point{1, 1}, dataset.Point{1, 1}, dataset.Point{1, 1})
		got, err := silhouette.Score(ds, []int{0, 0, 1})
		convey.So(err, convey.ShouldBeNil)
		convey.So(math.IsNaN(got), convey.ShouldBeFalse)
		convey.So(got, convey.ShouldEqual, 0.0)
	})

	convey.Convey("invalid label sets", t, func() {
		ds := mustDataset(t, dataset.Point{0}, dataset.Point{1}, dataset.Point{2})

		_, err := silhouette.Score(ds, []int{0, 0, 0})
		convey.So(errors.Is(err, silhouette.ErrClusterCount), convey.ShouldBeTrue)

		_, err = silhouette.Score(ds, []int{0, 1, 2})
		convey.So(errors.Is(err, silhouette.ErrClusterCount), convey.ShouldBeTrue)

		_, err = silhouette.Score(ds, []int{0, 1})
		convey.So(errors.Is(err, dataset.ErrDimensionMismatch), convey.ShouldBeTrue)

		_, err = silhouette.Score(nil, nil)
		convey.So(err, convey.ShouldEqual, dataset.ErrEmptyDataset)
	})
}
