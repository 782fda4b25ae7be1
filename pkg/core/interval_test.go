package core

import (
	"math"
	"testing"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	iv := NewInterval(0, 1)

	tests := []struct {
		x         float64
		contains  bool
		surrounds bool
	}{
		{-0.5, false, false},
		{0, true, false},
		{0.5, true, true},
		{1, true, false},
		{1.5, false, false},
		{math.NaN(), false, false},
	}

	for _, tt := range tests {
		if got := iv.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%f) = %t, expected %t", tt.x, got, tt.contains)
		}
		if got := iv.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%f) = %t, expected %t", tt.x, got, tt.surrounds)
		}
	}
}

func TestInterval_EmptyAndUniverse(t *testing.T) {
	if EmptyInterval.Contains(0) {
		t.Error("Empty interval should contain nothing")
	}
	if !UniverseInterval.Contains(1e300) || !UniverseInterval.Surrounds(-1e300) {
		t.Error("Universe interval should contain everything finite")
	}
	if EmptyInterval.Size() >= 0 {
		t.Errorf("Empty interval should have negative size, got %f", EmptyInterval.Size())
	}
}

func TestInterval_Clamp(t *testing.T) {
	iv := NewInterval(0, 0.999)
	tests := []struct{ in, expected float64 }{
		{-1, 0},
		{0.5, 0.5},
		{2, 0.999},
	}
	for _, tt := range tests {
		if got := iv.Clamp(tt.in); got != tt.expected {
			t.Errorf("Clamp(%f) = %f, expected %f", tt.in, got, tt.expected)
		}
	}
}

func TestInterval_Random(t *testing.T) {
	iv := NewInterval(0.5, 1)
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		x := iv.Random(sampler)
		if x < iv.Min || x >= iv.Max {
			t.Fatalf("Random draw %f outside [%f, %f)", x, iv.Min, iv.Max)
		}
	}
}
