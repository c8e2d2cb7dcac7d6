package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedLeveler(t *testing.T) {
	l := FixedLeveler{}

	t.Run("non-positive counts map to level 0", func(t *testing.T) {
		assert.Equal(t, Level(0), l.Level(0))
		assert.Equal(t, Level(0), l.Level(-1))
		assert.Equal(t, Level(0), l.Level(-100))
	})

	t.Run("breakpoints at 2, 5 and 10", func(t *testing.T) {
		assert.Equal(t, Level(1), l.Level(1))
		assert.Equal(t, Level(1), l.Level(2))
		assert.Equal(t, Level(2), l.Level(3))
		assert.Equal(t, Level(2), l.Level(5))
		assert.Equal(t, Level(3), l.Level(6))
		assert.Equal(t, Level(3), l.Level(10))
		assert.Equal(t, Level(4), l.Level(11))
		assert.Equal(t, Level(4), l.Level(1000))
	})

	t.Run("monotonic non-decreasing", func(t *testing.T) {
		prev := l.Level(0)
		for c := 1; c <= 50; c++ {
			cur := l.Level(c)
			assert.GreaterOrEqual(t, cur, prev, "count %d", c)
			prev = cur
		}
	})
}

func TestQuantileLeveler(t *testing.T) {
	t.Run("non-positive counts map to level 0", func(t *testing.T) {
		q := NewQuantileLeveler([]int{1, 2, 3, 4})
		assert.Equal(t, Level(0), q.Level(0))
		assert.Equal(t, Level(0), q.Level(-3))
	})

	t.Run("all non-zero counts equal populate a single level", func(t *testing.T) {
		q := NewQuantileLeveler([]int{7, 7, 0, 7, 7, 0})
		// All three thresholds equal 7, so 7 lands on level 1 and
		// nothing can reach levels 2-4.
		assert.Equal(t, Level(1), q.Level(7))
		assert.Equal(t, Level(4), q.Level(8))
	})

	t.Run("all-zero counts yield level 0 only for zeros", func(t *testing.T) {
		q := NewQuantileLeveler([]int{0, 0, 0})
		// Thresholds are floored to 1; no division by zero.
		assert.Equal(t, Level(0), q.Level(0))
		assert.Equal(t, Level(1), q.Level(1))
	})

	t.Run("interpolates between order statistics", func(t *testing.T) {
		// Sorted non-zero counts: 1 2 3 4. q25 = 1.75, q50 = 2.5, q75 = 3.25.
		q := NewQuantileLeveler([]int{4, 1, 3, 2})
		assert.Equal(t, Level(1), q.Level(1))
		assert.Equal(t, Level(2), q.Level(2))
		assert.Equal(t, Level(3), q.Level(3))
		assert.Equal(t, Level(4), q.Level(4))
	})

	t.Run("counts equal to a threshold take the lower level", func(t *testing.T) {
		// Sorted non-zero counts: 1 2 3 4 5. q25 = 2, q50 = 3, q75 = 4.
		q := NewQuantileLeveler([]int{1, 2, 3, 4, 5})
		assert.Equal(t, Level(1), q.Level(2))
		assert.Equal(t, Level(2), q.Level(3))
		assert.Equal(t, Level(3), q.Level(4))
		assert.Equal(t, Level(4), q.Level(5))
	})
}

func TestForPolicy(t *testing.T) {
	l, err := ForPolicy(PolicyFixed, nil)
	require.NoError(t, err)
	assert.Equal(t, PolicyFixed, l.Name())

	l, err = ForPolicy(PolicyQuantile, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, PolicyQuantile, l.Name())

	_, err = ForPolicy("median", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "median")
}
