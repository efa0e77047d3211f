package canvas

import (
	"math"
	"testing"

	"snyfter/pkg/geometry"
)

func TestFitScale(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		panel geometry.Size
		page  geometry.Size
		fit   FitStrategy
		want  float64
	}{
		{"letter page exact panel", geometry.NewSize(612, 792), geometry.NewSize(612, 792), FitUniform, 1.0},
		{"wide panel limited by height", geometry.NewSize(1224, 792), geometry.NewSize(612, 792), FitUniform, 1.0},
		{"tall panel limited by width", geometry.NewSize(612, 1584), geometry.NewSize(612, 792), FitUniform, 1.0},
		{"half-size panel", geometry.NewSize(306, 396), geometry.NewSize(612, 792), FitUniform, 0.5},
		{"width-only ignores height", geometry.NewSize(1224, 100), geometry.NewSize(612, 792), FitWidthOnly, 2.0},
		{"degenerate page", geometry.NewSize(612, 792), geometry.NewSize(0, 0), FitUniform, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Fit = tt.fit
			v := View{PanelSize: tt.panel, PageSize: tt.page, Zoom: 1}
			if got := v.FitScale(cfg); got != tt.want {
				t.Errorf("FitScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToScreenWorkedExample(t *testing.T) {
	// Letter page in a letter-sized panel: fit scale 1, margins only.
	cfg := DefaultConfig()
	v := View{
		PanelSize: geometry.NewSize(612, 792),
		PageSize:  geometry.NewSize(612, 792),
		Zoom:      1,
	}

	got := v.ToScreen(geometry.NewPoint2D(0, 0), cfg)
	if got.X != 20 || got.Y != 50 {
		t.Errorf("origin maps to (%v,%v), want (20,50)", got.X, got.Y)
	}

	got = v.ToScreen(geometry.NewPoint2D(612, 792), cfg)
	if got.X != 632 || got.Y != 842 {
		t.Errorf("far corner maps to (%v,%v), want (632,842)", got.X, got.Y)
	}
}

func TestRoundTrip(t *testing.T) {
	const tol = 1e-9
	points := []geometry.Point2D{
		geometry.NewPoint2D(0, 0),
		geometry.NewPoint2D(612, 792),
		geometry.NewPoint2D(72.5, 100.25),
		geometry.NewPoint2D(306, 396),
	}
	zooms := []float64{0.5, 1, 1.44, 3}
	pans := []geometry.Point2D{
		{},
		geometry.NewPoint2D(120, -45),
		geometry.NewPoint2D(-300.5, 77.7),
	}

	for _, origin := range []OriginConvention{OriginTopLeft, OriginBottomLeft} {
		cfg := DefaultConfig()
		cfg.Origin = origin
		for _, zoom := range zooms {
			for _, pan := range pans {
				v := View{
					PanelSize: geometry.NewSize(1024, 768),
					PageSize:  geometry.NewSize(612, 792),
					Zoom:      zoom,
					Pan:       pan,
				}
				for _, p := range points {
					back := v.ToDoc(v.ToScreen(p, cfg), cfg)
					if math.Abs(back.X-p.X) > tol || math.Abs(back.Y-p.Y) > tol {
						t.Fatalf("origin=%v zoom=%v pan=%v: %v round-trips to %v",
							origin, zoom, pan, p, back)
					}
				}
			}
		}
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.1, 0.5},
		{0.5, 0.5},
		{1.7, 1.7},
		{3.0, 3.0},
		{9.9, 3.0},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStepZoom(t *testing.T) {
	if got := StepZoom(1.0, true); math.Abs(got-1.2) > 1e-12 {
		t.Errorf("StepZoom in = %v, want 1.2", got)
	}
	if got := StepZoom(1.2, false); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("StepZoom out = %v, want 1.0", got)
	}
	// Steps never escape the clamp range.
	z := 3.0
	for i := 0; i < 10; i++ {
		z = StepZoom(z, true)
	}
	if z != 3.0 {
		t.Errorf("repeated zoom in drifted to %v", z)
	}
}

func TestWheelZoom(t *testing.T) {
	got := WheelZoom(1.0, 100)
	if math.Abs(got-1.1) > 1e-12 {
		t.Errorf("WheelZoom(1, 100) = %v, want 1.1", got)
	}
	if got := WheelZoom(3.0, 500); got != 3.0 {
		t.Errorf("WheelZoom above max = %v, want clamped 3.0", got)
	}
	if got := WheelZoom(0.5, -500); got != 0.5 {
		t.Errorf("WheelZoom below min = %v, want clamped 0.5", got)
	}
}

func TestBottomLeftOriginFlip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Origin = OriginBottomLeft
	v := View{
		PanelSize: geometry.NewSize(612, 792),
		PageSize:  geometry.NewSize(612, 792),
		Zoom:      1,
	}

	// Document origin is the bottom-left corner under this convention, so
	// it lands at the bottom of the page on screen.
	got := v.ToScreen(geometry.NewPoint2D(0, 0), cfg)
	if got.Y != 50+792 {
		t.Errorf("bottom-left origin Y = %v, want %v", got.Y, 50+792)
	}
}
