package mathutil

import (
	"math"
	"testing"
)

func TestWrapDegrees(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-6, 354},
		{-360, 0},
		{719, 359},
	}
	for _, c := range cases {
		if got := WrapDegrees(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrapDegrees(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestDegToRad(t *testing.T) {
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Expected pi, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp returned a value outside its bounds")
	}
}

func TestIntMinMax(t *testing.T) {
	if IntMin(3, 4) != 3 || IntMax(3, 4) != 4 {
		t.Error("IntMin/IntMax returned the wrong operand")
	}
}
