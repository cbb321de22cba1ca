package vectorindex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidDimension(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestIndex_AddDimensionCheck(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)

	err = idx.Add([]float32{1, 2}, []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, 0, idx.Len(), "a rejected batch must not be partially added")

	require.NoError(t, idx.Add([]float32{1, 2}, []float32{3, 4}))
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 2, idx.Dim())
}

func TestIndex_Search(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add(
		[]float32{5, 5},
		[]float32{1, 0},
		[]float32{0, 1}, // same distance to origin as position 1
		[]float32{0, 0},
	))

	tests := []struct {
		name  string
		query []float32
		k     int
		want  []int
	}{
		{"nearest first", []float32{0, 0}, 1, []int{3}},
		{"ties keep insertion order", []float32{0, 0}, 3, []int{3, 1, 2}},
		{"k larger than index", []float32{5, 5}, 10, []int{0, 1, 2, 3}},
		{"k zero", []float32{0, 0}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := idx.Search(tt.query, tt.k)
			require.NoError(t, err)
			var got []int
			for _, h := range hits {
				got = append(got, h.Position)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	hits, err := idx.Search([]float32{0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(0), hits[0].Distance)
	assert.Equal(t, float32(1), hits[1].Distance)

	_, err = idx.Search([]float32{0}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestIndex_EmptySearch(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)
	hits, err := idx.Search([]float32{1, 2, 3}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFromVectors(t *testing.T) {
	flat := []float32{1, 2, 3, 4, 5, 6}
	idx, err := FromVectors(3, flat)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	flat[0] = 99
	v, ok := idx.Vector(0)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, v, "FromVectors must copy its input")
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, idx.Flat())

	_, ok = idx.Vector(2)
	assert.False(t, ok)

	_, err = FromVectors(4, []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestIndex_ConcurrentAddAndSearch(t *testing.T) {
	x, err := New(2)
	require.NoError(t, err)
	require.NoError(t, x.Add([]float32{0, 0}))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, x.Add([]float32{float32(i), 1}))
		}()
		go func() {
			defer wg.Done()
			hits, err := x.Search([]float32{0, 0}, 1)
			assert.NoError(t, err)
			assert.Equal(t, 0, hits[0].Position)
		}()
	}
	wg.Wait()
	assert.Equal(t, 9, x.Len())
}
