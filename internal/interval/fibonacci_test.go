package interval_test

import (
	"testing"

	"github.com/fireminder/fireminder/internal/interval"
	"github.com/stretchr/testify/assert"
)

func TestIndexOf_RoundTrip(t *testing.T) {
	for i, v := range interval.Fibonacci {
		assert.Equal(t, i, interval.IndexOf(v))
		assert.Equal(t, v, interval.ValueAt(interval.IndexOf(v)))
	}
}

func TestIndexOf_UnknownValueDefaultsToIndexOne(t *testing.T) {
	for _, v := range []int{0, 4, 6, 7, 100, -1, 400} {
		assert.Equal(t, 1, interval.IndexOf(v), "unknown value %d should resolve to index 1", v)
	}
}

func TestValueAt_Clamps(t *testing.T) {
	assert.Equal(t, 1, interval.ValueAt(-1))
	assert.Equal(t, 1, interval.ValueAt(-100))
	assert.Equal(t, 377, interval.ValueAt(13))
	assert.Equal(t, 377, interval.ValueAt(1000))
}

func TestStepUpStepDown_Inverses(t *testing.T) {
	// Inverse everywhere except the boundaries.
	for _, v := range interval.Fibonacci[1 : len(interval.Fibonacci)-1] {
		assert.Equal(t, v, interval.StepDown(interval.StepUp(v)))
		assert.Equal(t, v, interval.StepUp(interval.StepDown(v)))
	}
}

func TestStepUpStepDown_Saturate(t *testing.T) {
	assert.Equal(t, 1, interval.StepDown(1))
	assert.Equal(t, 377, interval.StepUp(377))
}

func TestStepUp_UnknownValue(t *testing.T) {
	// Unknown values resolve to index 1 first, so stepping up lands on 3.
	assert.Equal(t, 3, interval.StepUp(7))
	assert.Equal(t, 1, interval.StepDown(7))
}
