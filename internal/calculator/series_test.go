package calculator

import "testing"

func TestRollingExtremaIndices(t *testing.T) {
	values := []float64{1, 3, 2, 5, 4, 1, 6, 2}

	maxes := RollingMaxIndices(values, 3)
	wantContains(t, maxes, 3, "rolling max")
	wantContains(t, maxes, 6, "rolling max")

	mins := RollingMinIndices(values, 3)
	wantContains(t, mins, 2, "rolling min")
	wantContains(t, mins, 5, "rolling min")
}

func TestRollingExtremaIndices_SkipsEdges(t *testing.T) {
	// A rising series has no interior pivots, and the bars at either end
	// must not register against a truncated window.
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i)
	}
	if maxes := RollingMaxIndices(values, 10); len(maxes) != 0 {
		t.Errorf("rising series should yield no peaks, got %v", maxes)
	}
	if mins := RollingMinIndices(values, 10); len(mins) != 0 {
		t.Errorf("rising series should yield no troughs, got %v", mins)
	}

	// A peak inside the complete-window region is still found.
	values[15] = 100
	maxes := RollingMaxIndices(values, 10)
	wantContains(t, maxes, 15, "rolling max")
}

func wantContains(t *testing.T, got []int, idx int, what string) {
	t.Helper()
	for _, g := range got {
		if g == idx {
			return
		}
	}
	t.Errorf("%s indices %v should contain %d", what, got, idx)
}

func TestLocalMinimaIndices(t *testing.T) {
	values := []float64{5, 3, 4, 2, 6, 1, 7}
	mins := LocalMinimaIndices(values, 0, len(values))
	want := []int{1, 3, 5}
	if len(mins) != len(want) {
		t.Fatalf("expected %v, got %v", want, mins)
	}
	for i := range want {
		if mins[i] != want[i] {
			t.Errorf("expected %v, got %v", want, mins)
			break
		}
	}
}

func TestFitLine(t *testing.T) {
	xs := []int{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7} // y = 2x + 1
	slope, intercept, err := FitLine(xs, ys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(slope, 2) || !almostEqual(intercept, 1) {
		t.Errorf("expected slope 2 intercept 1, got %f and %f", slope, intercept)
	}

	if _, _, err := FitLine([]int{1}, []float64{1}); err == nil {
		t.Error("expected error for a single point")
	}
	if _, _, err := FitLine([]int{2, 2}, []float64{1, 5}); err == nil {
		t.Error("expected error for vertical points")
	}
}

func TestRangeHighLow(t *testing.T) {
	highs := []float64{10, 12, 11, 15, 9}
	lows := []float64{8, 9, 7, 12, 6}
	high, low, err := RangeHighLow(highs, lows, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 15 || low != 7 {
		t.Errorf("expected 15/7, got %f/%f", high, low)
	}

	if _, _, err := RangeHighLow(highs, lows, 3, 3); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestMaxMinIndex(t *testing.T) {
	values := []float64{4, 9, 2, 7, 1}
	if idx := MaxIndex(values, 0, len(values)); idx != 1 {
		t.Errorf("expected max index 1, got %d", idx)
	}
	if idx := MinIndex(values, 0, len(values)); idx != 4 {
		t.Errorf("expected min index 4, got %d", idx)
	}
	// Restricted range excludes the global extremes
	if idx := MaxIndex(values, 2, 4); idx != 3 {
		t.Errorf("expected max index 3 in [2,4), got %d", idx)
	}
}
