package advanced

import (
	"math"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	e, err := NewEvaluator(DefaultProfile())
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()
	e.Log = logger
	return e
}

func TestNewEvaluator(t *testing.T) {
	e, err := NewEvaluator(DefaultProfile())
	require.NoError(t, err)
	// Everything the zero value lacks
	assert.Same(t, logrus.StandardLogger(), e.Log)
	require.NotNil(t, e.references)
	assert.Equal(t, 0, e.references.len())
	assert.Equal(t, DefaultProfile(), e.Profile)
}

func evaluate(t *testing.T, e *Evaluator, offset, height, cant, radius float64) Result {
	result, err := e.Evaluate(MeasurementPoint{
		OffsetMM: offset,
		HeightMM: height,
		Track:    TrackParameters{CantMM: cant, CurveRadiusM: radius},
	})
	require.NoError(t, err)
	return result
}

func TestEvaluateScenarios(t *testing.T) {
	e := newTestEvaluator(t)

	t.Run("canted point on tangent track", func(t *testing.T) {
		result := evaluate(t, e, 1950, 3560, 100, 0)
		assert.True(t, result.IsInterference)
		assert.Equal(t, 15, result.MarginMM)
		assert.InDelta(t, 14.151634120504605, result.AG2DistanceMM, 1e-6)
		assert.InDelta(t, 1968.6375170579724, result.RequiredClearanceMM, 1e-6)
		assert.InDelta(t, 1628.5660176440417, result.NearestPoint.X, 1e-6)
		assert.InDelta(t, 3553.664036076663, result.NearestPoint.Y, 1e-6)
		assert.InDelta(t, 1617.809982135367, result.RailPoint.X, 1e-6)
		assert.InDelta(t, 3544.4674906156347, result.RailPoint.Y, 1e-6)
		assert.True(t, result.IsInsideClearance)
		assert.Equal(t, Direct, result.Correction)
		assert.Equal(t, "interference", result.Verdict())
	})

	t.Run("canted point on a sharp curve", func(t *testing.T) {
		result := evaluate(t, e, 2110, 3150, 105, 160)
		assert.True(t, result.IsInterference)
		assert.Equal(t, 222, result.MarginMM)
		assert.InDelta(t, 2352.2411577368275, result.RequiredClearanceMM, 1e-6)
		assert.InDelta(t, 221.76032258378453, result.AG2DistanceMM, 1e-6)
		assert.Equal(t, 143.75, result.WideningMM)
		assert.Equal(t, 20.0, result.SlackMM)
		assert.InDelta(t, math.Atan(105.0/1067), result.CantAngle, 1e-15)
	})

	t.Run("reverse cant moves the point outward", func(t *testing.T) {
		result := evaluate(t, e, 1950, 3560, -100, 0)
		assert.False(t, result.IsInterference)
		assert.Equal(t, 524, result.MarginMM)
		assert.InDelta(t, 2282.190017864633, result.RailPoint.X, 1e-6)
	})

	t.Run("clear beside the body", func(t *testing.T) {
		result := evaluate(t, e, 2000, 1000, 0, 0)
		assert.False(t, result.IsInterference)
		assert.Equal(t, 100, result.MarginMM)
		assert.Equal(t, 1900.0, result.NearestPoint.X)
		assert.InDelta(t, 999.2671927846674, result.NearestPoint.Y, 1e-9)
		assert.Equal(t, "clear", result.Verdict())
	})

	t.Run("deep inside", func(t *testing.T) {
		result := evaluate(t, e, 1500, 2000, 0, 0)
		assert.True(t, result.IsInsideClearance)
		assert.True(t, result.IsInterference)
		assert.Equal(t, 401, result.MarginMM)
	})

	t.Run("above the envelope top", func(t *testing.T) {
		result := evaluate(t, e, 0, 6000, 0, 0)
		assert.False(t, result.IsInsideClearance)
		assert.False(t, result.IsInterference)
		assert.Equal(t, 663, result.MarginMM)
		assert.Equal(t, 0.0, result.RequiredClearanceMM)
	})

	t.Run("on the widened boundary", func(t *testing.T) {
		result := evaluate(t, e, 2000, 1000, 0, 230)
		assert.True(t, result.IsInterference)
		assert.Equal(t, 0, result.MarginMM)
		assert.Equal(t, DeadZone, result.Correction)
	})

	t.Run("left side mirrors the right", func(t *testing.T) {
		right := evaluate(t, e, 1910, 1000, 0, 0)
		left := evaluate(t, e, -1910, 1000, 0, 0)
		assert.Equal(t, 8, left.MarginMM)
		assert.Equal(t, right.MarginMM, left.MarginMM)
		assert.Equal(t, right.AG2DistanceMM, left.AG2DistanceMM)
		assert.Equal(t, right.NearestPoint.Mirror(), left.NearestPoint)
		assert.Less(t, left.NearestPoint.X, 0.0)
	})
}

func TestRequiredClearanceWithoutCantOrCurve(t *testing.T) {
	e := newTestEvaluator(t)
	for _, height := range []float64{0, 10, 25, 100, 375, 500, 920, 2000, 3156, 3500, 3823, 4500, 5190, 5500, 5700} {
		result := evaluate(t, e, 2500, height, 0, 0)
		assert.Equal(t, BaseClearanceAtHeight(height), result.RequiredClearanceMM, "height %v", height)
	}
}

func TestCorrectMargin(t *testing.T) {
	cases := []struct {
		ag2       float64
		corrected float64
		tier      CorrectionTier
	}{
		{0, 0, DeadZone},
		{4.999, 0, DeadZone},
		// Exactly 5 is a notch, and its correction is zero
		{5, 0, Notch},
		{10, math.Sqrt(75), Notch},
		{12.999, math.Sqrt(12.999*12.999 - 25), Notch},
		// Exactly 13 is used directly, where the notch would have given 12
		{13, 13, Direct},
		{14.2, 14.2, Direct},
	}
	for _, c := range cases {
		corrected, tier := correctMargin(c.ag2)
		assert.InDelta(t, c.corrected, corrected, 1e-12, "ag2 %v", c.ag2)
		assert.Equal(t, c.tier, tier, "ag2 %v", c.ag2)
	}
}

func TestRoundingDirection(t *testing.T) {
	assert.Equal(t, 15, finalMargin(14.2, true))
	assert.Equal(t, 14, finalMargin(14.2, false))
	assert.Equal(t, 14, finalMargin(14, true))
	assert.Equal(t, 14, finalMargin(14, false))

	// The same raw margin evaluated both ways
	e := newTestEvaluator(t)
	outside := evaluate(t, e, 1914.2, 1000, 0, 0)
	assert.False(t, outside.IsInterference)
	assert.InDelta(t, 14.2188961039472, outside.CorrectedMarginMM, 1e-6)
	assert.Equal(t, 14, outside.MarginMM)

	inside := evaluate(t, e, 1950, 3560, 100, 0)
	assert.True(t, inside.IsInterference)
	assert.InDelta(t, 14.151634120504605, inside.CorrectedMarginMM, 1e-6)
	assert.Equal(t, 15, inside.MarginMM)
}

func TestDeadZone(t *testing.T) {
	e := newTestEvaluator(t)
	for _, offset := range []float64{1225, 1900, 1902, 1904.9, -1903} {
		height := 1000.0
		if offset == 1225 {
			height = 0
		}
		result := evaluate(t, e, offset, height, 0, 0)
		require.Less(t, result.AG2DistanceMM, 5.0, "offset %v", offset)
		assert.Equal(t, 0, result.MarginMM, "offset %v", offset)
		assert.True(t, result.IsInterference, "offset %v", offset)
	}
}

func TestNotch(t *testing.T) {
	e := newTestEvaluator(t)
	result := evaluate(t, e, 1910, 1000, 0, 0)
	assert.Equal(t, Notch, result.Correction)
	assert.InDelta(t, 10.026814370219665, result.AG2DistanceMM, 1e-6)
	assert.InDelta(t, 8.691202817495606, result.CorrectedMarginMM, 1e-6)
	assert.False(t, result.IsInterference)
	assert.Equal(t, 8, result.MarginMM)
}

func TestEvaluateRoundsRadiusOnce(t *testing.T) {
	e := newTestEvaluator(t)
	tangent := evaluate(t, e, 2000, 1000, 0, 0)
	tiny := evaluate(t, e, 2000, 1000, 0, 1e-12)
	// A radius this small shares the tangent reference set, so it must not
	// pick up the huge widening 23000/1e-12 would give
	assert.Equal(t, 0.0, tiny.WideningMM)
	assert.Equal(t, 0.0, tiny.SlackMM)
	assert.Equal(t, tangent, tiny)
	assert.Equal(t, 1, e.references.len())

	// Radii that round to the same key give the same result
	assert.Equal(t, evaluate(t, e, 2110, 3150, 105, 300), evaluate(t, e, 2110, 3150, 105, 300+1e-9))
}

func TestNearestOnOutline(t *testing.T) {
	e := newTestEvaluator(t)
	measure := func(offset, height, cant, radius float64) OutlineProximity {
		proximity, err := e.NearestOnOutline(MeasurementPoint{
			OffsetMM: offset,
			HeightMM: height,
			Track:    TrackParameters{CantMM: cant, CurveRadiusM: radius},
		})
		require.NoError(t, err)
		return proximity
	}

	t.Run("beside the body", func(t *testing.T) {
		outside := measure(2000, 1000, 0, 0)
		assert.False(t, outside.Inside)
		assert.InDelta(t, 100, outside.DistanceMM, 1e-9)
		assert.InDelta(t, 1900, outside.Nearest.X, 1e-9)
		assert.InDelta(t, 1000, outside.Nearest.Y, 1e-9)

		inside := measure(-1500, 2000, 0, 0)
		assert.True(t, inside.Inside)
		assert.InDelta(t, 400, inside.DistanceMM, 1e-9)
		assert.InDelta(t, -1900, inside.Nearest.X, 1e-9)
	})

	t.Run("widened", func(t *testing.T) {
		// 100 mm of widening on a 230 m curve
		proximity := measure(2100, 1000, 0, 230)
		assert.False(t, proximity.Inside)
		assert.InDelta(t, 100, proximity.DistanceMM, 1e-9)
		assert.InDelta(t, 2000, proximity.Nearest.X, 1e-9)
	})

	t.Run("canted onto the lower arc", func(t *testing.T) {
		proximity := measure(1950, 3560, 100, 0)
		assert.True(t, proximity.Inside)
		// Radial distance to the arc, less a little for the chords
		assert.InDelta(t, 14.151522068875238, proximity.DistanceMM, 0.01)
		result := evaluate(t, e, 1950, 3560, 100, 0)
		assert.Equal(t, result.IsInsideClearance, proximity.Inside)
	})

	t.Run("invalid input", func(t *testing.T) {
		proximity, err := e.NearestOnOutline(MeasurementPoint{OffsetMM: 2000, HeightMM: -1})
		assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
		assert.Equal(t, OutlineProximity{}, proximity)
	})
}

func TestEvaluateInvalidInput(t *testing.T) {
	e := newTestEvaluator(t)
	for name, m := range map[string]MeasurementPoint{
		"below rail level": {OffsetMM: 2000, HeightMM: -1},
		"negative radius":  {OffsetMM: 2000, HeightMM: 1000, Track: TrackParameters{CurveRadiusM: -160}},
		"NaN offset":       {OffsetMM: math.NaN(), HeightMM: 1000},
		"infinite cant":    {OffsetMM: 2000, HeightMM: 1000, Track: TrackParameters{CantMM: math.Inf(-1)}},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := e.Evaluate(m)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
			assert.Equal(t, Result{}, result)
		})
	}
}

func TestEvaluateLogs(t *testing.T) {
	e := newTestEvaluator(t)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	e.Log = logger

	evaluate(t, e, 2000, 1000, 0, 300)
	evaluate(t, e, 2100, 1000, 0, 300)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"built reference set", "clear", "reference set cache hit", "clear"}, messages)

	built := hook.AllEntries()[0]
	assert.Equal(t, 300.0, built.Data["radius_m"])
	assert.Equal(t, DefaultReferenceSamples, built.Data["samples"])
	assert.Equal(t, 1000.0, hook.LastEntry().Data["height_mm"])
}

func TestEvaluateConcurrently(t *testing.T) {
	e := newTestEvaluator(t)
	radii := []float64{0, 160, 300, 600}

	expected := make([]Result, len(radii))
	for i, radius := range radii {
		expected[i] = evaluate(t, e, 2110, 3150, 105, radius)
	}

	var wg sync.WaitGroup
	results := make([][]Result, 8)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, radius := range radii {
				result, err := e.Evaluate(MeasurementPoint{
					OffsetMM: 2110,
					HeightMM: 3150,
					Track:    TrackParameters{CantMM: 105, CurveRadiusM: radius},
				})
				if err != nil {
					panic(err)
				}
				results[g] = append(results[g], result)
			}
		}(g)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, expected, got)
	}
}
