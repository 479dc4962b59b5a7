package pong

import (
	"math"
	"math/rand"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestReferee(t *testing.T) {
	convey.Convey("Given a referee with the default rules", t, func() {
		ref := NewReferee(DefaultRules())
		var board Scoreboard

		convey.Convey("When the ball is inside both goal lines", func() {
			_, ok := ref.Observe(ballAt(525, 0, 175, 0), &board, 1)

			convey.Convey("Then nothing is scored", func() {
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(board, convey.ShouldResemble, Scoreboard{})
				convey.So(ref.Phase(), convey.ShouldEqual, PhasePlaying)
			})
		})

		convey.Convey("When the ball crosses the right goal line", func() {
			ev, ok := ref.Observe(ballAt(526, 0, 175, 0), &board, 10)

			convey.Convey("Then the left side scores once", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(ev.Scorer, convey.ShouldEqual, SideLeft)
				convey.So(ev.Tick, convey.ShouldEqual, uint64(10))
				convey.So(board, convey.ShouldResemble, Scoreboard{Left: 1})
				convey.So(ev.Board, convey.ShouldResemble, board)
				convey.So(ref.Phase(), convey.ShouldEqual, PhaseScored)
				convey.So(ref.Scorer(), convey.ShouldEqual, SideLeft)
			})

			convey.Convey("Then repeated detections in the same pass are ignored", func() {
				for i := 0; i < 3; i++ {
					_, again := ref.Observe(ballAt(530, 0, 175, 0), &board, 10)
					convey.So(again, convey.ShouldBeFalse)
				}
				convey.So(board.Left, convey.ShouldEqual, uint32(1))
			})

			convey.Convey("Then the reset walks back to playing", func() {
				convey.So(ref.BeginReset(), convey.ShouldBeTrue)
				convey.So(ref.Phase(), convey.ShouldEqual, PhaseResetting)
				convey.So(ref.BeginReset(), convey.ShouldBeFalse)
				ref.FinishReset()
				convey.So(ref.Phase(), convey.ShouldEqual, PhasePlaying)
				convey.So(ref.Scorer(), convey.ShouldEqual, SideNone)
			})
		})

		convey.Convey("When the ball crosses the left goal line", func() {
			ev, ok := ref.Observe(ballAt(-526, 0, -175, 0), &board, 1)

			convey.Convey("Then the right side scores", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(ev.Scorer, convey.ShouldEqual, SideRight)
				convey.So(board, convey.ShouldResemble, Scoreboard{Right: 1})
			})
		})

		convey.Convey("When FinishReset is called without a goal", func() {
			ref.FinishReset()

			convey.Convey("Then the referee keeps playing", func() {
				convey.So(ref.Phase(), convey.ShouldEqual, PhasePlaying)
			})
		})
	})
}

func TestRefereeGraceWindow(t *testing.T) {
	convey.Convey("Given a referee with a two tick grace window", t, func() {
		r := DefaultRules()
		r.GraceTicks = 2
		ref := NewReferee(r)
		var board Scoreboard

		_, ok := ref.Observe(ballAt(526, 0, 175, 0), &board, 10)
		convey.So(ok, convey.ShouldBeTrue)
		ref.BeginReset()
		ref.FinishReset()

		convey.Convey("When the ball is still past the line on the next tick", func() {
			_, again := ref.Observe(ballAt(530, 0, 175, 0), &board, 11)

			convey.Convey("Then it is not scored again", func() {
				convey.So(again, convey.ShouldBeFalse)
				convey.So(board.Left, convey.ShouldEqual, uint32(1))
			})
		})

		convey.Convey("When the window has closed", func() {
			_, again := ref.Observe(ballAt(530, 0, 175, 0), &board, 12)

			convey.Convey("Then a new goal counts", func() {
				convey.So(again, convey.ShouldBeTrue)
				convey.So(board.Left, convey.ShouldEqual, uint32(2))
			})
		})
	})
}

func TestKickoffVelocity(t *testing.T) {
	convey.Convey("Given a seeded random source", t, func() {
		rng := rand.New(rand.NewSource(42))

		convey.Convey("When many serves are drawn", func() {
			const draws = 4000
			quadrants := map[[2]bool]int{}
			for i := 0; i < draws; i++ {
				v := KickoffVelocity(rng, 175)
				convey.So(math.Abs(v.X), convey.ShouldEqual, 175.0)
				convey.So(math.Abs(v.Y), convey.ShouldEqual, 87.5)
				quadrants[[2]bool{v.X > 0, v.Y > 0}]++
			}

			convey.Convey("Then every direction shows up about equally", func() {
				convey.So(len(quadrants), convey.ShouldEqual, 4)
				for _, n := range quadrants {
					convey.So(n, convey.ShouldBeBetween, draws/4-200, draws/4+200)
				}
			})
		})
	})
}
