package sweep

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesOrder(t *testing.T) {
	xs := Linspace(0, 10, 101)
	for _, workers := range []int{0, 1, 3, 64} {
		got, err := Map(context.Background(), xs, func(x float64) (float64, error) {
			return x * x, nil
		}, workers)
		require.NoError(t, err)
		require.Len(t, got, len(xs))
		for i, x := range xs {
			assert.Equal(t, x*x, got[i])
		}
	}
}

func TestMapReturnsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Map(context.Background(), []float64{1, 2, 3, 4}, func(x float64) (int, error) {
		if x == 3 {
			return 0, boom
		}
		return int(x), nil
	}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "x=3")
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := Map(ctx, Linspace(0, 1, 50), func(x float64) (float64, error) {
		calls.Add(1)
		return x, nil
	}, 4)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestMapEmpty(t *testing.T) {
	got, err := Map(context.Background(), nil, func(x float64) (float64, error) { return x, nil }, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLinspace(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		n      int
		want   []float64
	}{
		{"zero", 0, 1, 0, nil},
		{"single", 2, 5, 1, []float64{2}},
		{"two", -1, 1, 2, []float64{-1, 1}},
		{"five", 0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tt.want, Linspace(tt.lo, tt.hi, tt.n), 1e-15)
		})
	}
}
