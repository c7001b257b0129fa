package fibonacci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetracements(t *testing.T) {
	levels, err := Retracements(100, 200)
	require.NoError(t, err)
	require.Len(t, levels, 5)

	assert.InDelta(t, 150.0, levels["Fib 0.5"], 1e-9)
	assert.InDelta(t, 161.8, levels["Fib 0.618"], 1e-9)
	assert.InDelta(t, 123.6, levels["Fib 0.236"], 1e-9)
	assert.InDelta(t, 178.6, levels["Fib 0.786"], 1e-9)
}

func TestRetracements_InvalidSwing(t *testing.T) {
	_, err := Retracements(200, 100)
	assert.Error(t, err)
}

func TestExtensions(t *testing.T) {
	levels, err := Extensions(100, 200, 210)
	require.NoError(t, err)
	require.Len(t, levels, 3)

	assert.InDelta(t, 371.8, levels["Fib 1.618 ext"], 1e-9)
	assert.InDelta(t, 471.8, levels["Fib 2.618 ext"], 1e-9)
	assert.InDelta(t, 571.8, levels["Fib 3.618 ext"], 1e-9)
}

func TestAllLevels(t *testing.T) {
	levels, err := AllLevels(100, 200, 205)
	require.NoError(t, err)
	assert.Len(t, levels, 8)
	assert.Contains(t, levels, "Fib 0.5")
	assert.Contains(t, levels, "Fib 1.618 ext")
}

func TestSortedNames(t *testing.T) {
	levels, err := AllLevels(100, 200, 205)
	require.NoError(t, err)

	names := SortedNames(levels)
	require.Len(t, names, 8)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, levels[names[i-1]], levels[names[i]],
			"names should be ordered by price")
	}
	assert.Equal(t, "Fib 0.236", names[0])
	assert.Equal(t, "Fib 3.618 ext", names[len(names)-1])
}

func TestZeroRange(t *testing.T) {
	levels, err := Retracements(100, 100)
	require.NoError(t, err)
	for name, price := range levels {
		assert.InDelta(t, 100.0, price, 1e-9, name)
	}
}
