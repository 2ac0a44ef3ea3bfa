package core

import (
	"math"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		a, b         Vec
		sizeA, sizeB float64
		expected     bool
	}{
		{"same center", V(10, 10), V(10, 10), 20, 25, true},
		{"just inside", V(0, 0), V(22, 0), 20, 25, true},
		{"exactly touching (no overlap)", V(0, 0), V(22.5, 0), 20, 25, false},
		{"far apart", V(0, 0), V(100, 100), 20, 25, false},
		{"diagonal inside", V(0, 0), V(10, 10), 20, 20, true},
		{"zero sizes same point", V(5, 5), V(5, 5), 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Overlaps(tc.a, tc.sizeA, tc.b, tc.sizeB)
			if result != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := Overlaps(tc.b, tc.sizeB, tc.a, tc.sizeA)
			if resultReverse != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestVecNormalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("Normalize() length = %f, expected 1", n.Len())
	}
	if n.X != 0.6 || n.Y != 0.8 {
		t.Errorf("Normalize() = %+v, expected (0.6, 0.8)", n)
	}

	if !V(0, 0).Normalize().IsZero() {
		t.Error("Zero vector should normalize to zero")
	}
}

func TestVecFinite(t *testing.T) {
	tests := []struct {
		v        Vec
		expected bool
	}{
		{V(1, 2), true},
		{V(math.NaN(), 0), false},
		{V(0, math.Inf(1)), false},
		{V(math.Inf(-1), math.NaN()), false},
	}

	for _, tc := range tests {
		if tc.v.Finite() != tc.expected {
			t.Errorf("Finite(%v) = %v, expected %v", tc.v, tc.v.Finite(), tc.expected)
		}
	}
}

func TestDist(t *testing.T) {
	if d := Dist(V(0, 0), V(30, 40)); d != 50 {
		t.Errorf("Dist() = %f, expected 50", d)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{150, 0.0, 100.0, 100.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
