package noise

import (
	"errors"
	"math"
	"testing"
)

func TestImprovedPerlinRange(t *testing.T) {
	p := NewImprovedPerlin(42)

	for i := 0; i < 2000; i++ {
		x := float64(i) * 0.137
		y := float64(i) * 0.071
		s := p.Sample(x, y)
		if s < 0 || s > 1 {
			t.Fatalf("Sample(%f, %f) = %f, expected value in [0,1]", x, y, s)
		}
	}
}

func TestImprovedPerlinDeterministic(t *testing.T) {
	a := NewImprovedPerlin(7)
	b := NewImprovedPerlin(7)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.31
		if a.Sample(x, 3.3) != b.Sample(x, 3.3) {
			t.Fatalf("Expected identical samples for identical seeds at x=%f", x)
		}
	}
}

func TestImprovedPerlinLatticeIsMidpoint(t *testing.T) {
	p := NewImprovedPerlin(1)

	if s := p.Sample(3, 5); s != 0.5 {
		t.Errorf("Expected 0.5 on integer lattice, got %f", s)
	}
}

func TestImprovedPerlinContinuous(t *testing.T) {
	p := NewImprovedPerlin(99)
	const step = 1e-4

	for i := 0; i < 500; i++ {
		x := float64(i)*0.173 + 0.01
		y := float64(i)*0.029 + 0.02
		d := math.Abs(p.Sample(x+step, y) - p.Sample(x, y))
		if d > 0.01 {
			t.Fatalf("Sample jumped by %f over a %g step at (%f, %f)", d, step, x, y)
		}
	}
}

func TestImprovedPerlinHandlesNegativeCoordinates(t *testing.T) {
	p := NewImprovedPerlin(3)

	s := p.Sample(-12.5, -0.25)
	if s < 0 || s > 1 || math.IsNaN(s) {
		t.Errorf("Expected value in [0,1] for negative input, got %f", s)
	}
}

func TestFractalRange(t *testing.T) {
	p := NewImprovedPerlin(5)

	for i := 0; i < 300; i++ {
		s := p.Fractal(float64(i)*0.21, 1.7, 4, 0.5)
		if s < 0 || s > 1 {
			t.Fatalf("Fractal returned %f, expected value in [0,1]", s)
		}
	}
	if p.Fractal(2.5, 2.5, 0, 0.5) != p.Sample(2.5, 2.5) {
		t.Error("Fractal with zero octaves should fall back to a single octave")
	}
}

func TestLibraryRangeAndDeterminism(t *testing.T) {
	a := NewLibrary(DefaultAlpha, DefaultBeta, DefaultOctaves, 11)
	b := NewLibrary(DefaultAlpha, DefaultBeta, DefaultOctaves, 11)

	for i := 0; i < 500; i++ {
		x := float64(i) * 0.113
		sa := a.Sample(x, 0.5)
		if sa < 0 || sa > 1 {
			t.Fatalf("Library sample %f out of [0,1]", sa)
		}
		if sa != b.Sample(x, 0.5) {
			t.Fatalf("Expected deterministic library samples at x=%f", x)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"", false},
		{KindImproved, false},
		{KindPerlin, false},
		{KindFractal, false},
		{"simplex", true},
	}

	for _, tt := range tests {
		src, err := New(tt.kind, 1)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("New(%q): expected ErrUnknownKind, got %v", tt.kind, err)
			}
			continue
		}
		if err != nil || src == nil {
			t.Errorf("New(%q): unexpected error %v", tt.kind, err)
		}
	}
}

func TestSigned(t *testing.T) {
	p := NewImprovedPerlin(1)

	if s := Signed(p, 2, 2); s != 0 {
		t.Errorf("Expected signed lattice sample 0, got %f", s)
	}
}

func TestFractalSource(t *testing.T) {
	src, err := New(KindFractal, 3)
	if err != nil {
		t.Fatal(err)
	}
	base := NewImprovedPerlin(3)

	for i := 0; i < 50; i++ {
		x, y := float64(i)*0.37, float64(i)*0.11
		got := src.Sample(x, y)
		if got < 0 || got > 1 {
			t.Fatalf("Sample returned %f, expected value in [0,1]", got)
		}
		if want := base.Fractal(x, y, DefaultOctaves, DefaultPersistence); got != want {
			t.Fatalf("Expected fractal source to match Fractal, got %f want %f", got, want)
		}
	}
}
