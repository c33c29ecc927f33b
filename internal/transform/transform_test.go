package transform

import (
	"math"
	"testing"

	"github.com/san-kum/tslab/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	x := []float64{1, 4, 9, 16, 25}

	got, err := Diff(x, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 7, 9}, got)

	got, err = Diff(x, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 12, 16}, got)

	assert.Equal(t, []float64{1, 4, 9, 16, 25}, x, "input must not be modified")
}

func TestReturns(t *testing.T) {
	got, err := Returns([]float64{100, 110, 99}, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.1, got[0], 1e-12)
	assert.InDelta(t, -0.1, got[1], 1e-12)
}

func TestLogReturns(t *testing.T) {
	got, err := LogReturns([]float64{1, math.E, math.E * math.E}, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 1.0, got[1], 1e-12)

	got, err = LogReturns([]float64{-1, 2, 4}, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1, "NaN from a negative price should be dropped")
	assert.InDelta(t, math.Log(2), got[0], 1e-12)
}

func TestPeriodsValidation(t *testing.T) {
	for name, fn := range map[string]Func{"diff": Diff, "ret": Returns, "log_ret": LogReturns} {
		t.Run(name, func(t *testing.T) {
			_, err := fn([]float64{1, 2, 3}, 0)
			assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)

			_, err = fn([]float64{1, 2, 3}, 3)
			assert.ErrorIs(t, err, dynamo.ErrInsufficientData)
		})
	}
}

func TestSmoothMean(t *testing.T) {
	got, err := Smooth([]float64{1, 2, 3, 4, 5}, MethodMean, 3)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, []float64{2, 3, 4}, got[2:])
}

func TestSmoothEWMA(t *testing.T) {
	// span 3 -> alpha 0.5
	got, err := Smooth([]float64{1, 2, 3}, MethodEWMA, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, (2+0.5*1)/1.5, got[1], 1e-12)
	assert.InDelta(t, (3+0.5*2+0.25*1)/1.75, got[2], 1e-12)
}

func TestSmoothErrors(t *testing.T) {
	_, err := Smooth([]float64{1, 2}, "median", 2)
	assert.ErrorIs(t, err, dynamo.ErrUnknownMethod)

	_, err = Smooth([]float64{1, 2}, MethodMean, 0)
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestCreateDataset(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}

	dataX, dataY, err := CreateDataset(x, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {1, 2}, {2, 3}, {3, 4}}, dataX)
	assert.Equal(t, [][]float64{{2}, {3}, {4}, {5}}, dataY)

	dataX, dataY, err = CreateDataset(x, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1, 2}, {1, 2, 3}}, dataX)
	assert.Equal(t, [][]float64{{3, 4}, {4, 5}}, dataY)

	dataX[0][0] = 99
	assert.Equal(t, 0.0, x[0], "rows must not alias the input")
}

func TestCreateDatasetErrors(t *testing.T) {
	_, _, err := CreateDataset([]float64{1, 2, 3}, 2, 1)
	assert.ErrorIs(t, err, dynamo.ErrInsufficientData)

	_, _, err = CreateDataset([]float64{1, 2, 3, 4}, 0, 1)
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestApply(t *testing.T) {
	s := &dynamo.Series{Names: []string{"a", "b"}, Columns: [][]float64{{1, 2, 4}, {10, 20, 30}}}

	out, err := Apply("diff", s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_diff", "b_diff"}, out.Names)
	assert.Equal(t, []float64{1, 2}, out.Column("a_diff"))
	assert.Equal(t, []float64{10, 10}, out.Column("b_diff"))

	_, err = Apply("fourier", s, 1)
	assert.ErrorIs(t, err, dynamo.ErrUnknownMethod)

	assert.Contains(t, Names(), "log_ret")
}
