package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "hadirku_backend/internals/features/attendance/face/model"
)

func makeDescriptor(fill float64) []float64 {
	d := make([]float64, model.FaceDescriptorDim)
	for i := range d {
		d[i] = fill
	}
	return d
}

func TestAverageDescriptors(t *testing.T) {
	t.Run("mean per komponen untuk 3 capture", func(t *testing.T) {
		captures := [][]float64{
			makeDescriptor(0.0),
			makeDescriptor(0.3),
			makeDescriptor(0.6),
		}
		avg, err := AverageDescriptors(captures)
		require.NoError(t, err)
		require.Len(t, avg, model.FaceDescriptorDim)
		for _, v := range avg {
			assert.InDelta(t, 0.3, v, 1e-9)
		}
	})

	t.Run("kurang dari 3 capture ditolak", func(t *testing.T) {
		_, err := AverageDescriptors([][]float64{makeDescriptor(0.1), makeDescriptor(0.2)})
		assert.ErrorIs(t, err, ErrInsufficientCaptures)
	})

	t.Run("dimensi salah ditolak", func(t *testing.T) {
		captures := [][]float64{
			makeDescriptor(0.1),
			makeDescriptor(0.2),
			make([]float64, 100), // 100 ≠ 128
		}
		_, err := AverageDescriptors(captures)
		assert.ErrorIs(t, err, ErrInvalidDescriptor)
	})

	t.Run("mean of means konsisten antar partisi", func(t *testing.T) {
		a := [][]float64{makeDescriptor(0.1), makeDescriptor(0.2), makeDescriptor(0.3)}
		b := [][]float64{makeDescriptor(0.3), makeDescriptor(0.2), makeDescriptor(0.1)}

		avgA, err := AverageDescriptors(a)
		require.NoError(t, err)
		avgB, err := AverageDescriptors(b)
		require.NoError(t, err)

		// kedua partisi punya multiset nilai yang sama → mean identik
		for i := range avgA {
			assert.InDelta(t, avgA[i], avgB[i], 1e-12)
		}
	})
}

func TestMatchScore(t *testing.T) {
	t.Run("identitas: distance 0, match", func(t *testing.T) {
		v := makeDescriptor(0.42)
		res, err := MatchScore(v, v, 0.55)
		require.NoError(t, err)
		assert.Zero(t, res.Distance)
		assert.True(t, res.IsMatch)
	})

	t.Run("di atas threshold → bukan match", func(t *testing.T) {
		ref := makeDescriptor(0.0)
		probe := makeDescriptor(0.1) // dist = sqrt(128 * 0.01) ≈ 1.13
		res, err := MatchScore(ref, probe, 0.55)
		require.NoError(t, err)
		assert.False(t, res.IsMatch)
		assert.InDelta(t, 1.1314, res.Distance, 1e-3)
	})

	t.Run("threshold longgar → match", func(t *testing.T) {
		ref := makeDescriptor(0.0)
		probe := makeDescriptor(0.1)
		res, err := MatchScore(ref, probe, 2.0)
		require.NoError(t, err)
		assert.True(t, res.IsMatch)
	})

	t.Run("dimensi probe salah ditolak", func(t *testing.T) {
		_, err := MatchScore(makeDescriptor(0.1), make([]float64, 64), 0.55)
		assert.ErrorIs(t, err, ErrInvalidDescriptor)
	})
}
