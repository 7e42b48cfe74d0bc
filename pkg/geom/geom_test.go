package geom

import "testing"

func TestCurveClone(t *testing.T) {
	c := Curve{{X: 1}, {Y: 2}}
	cp := c.Clone()
	cp[0].X = 5
	if c[0].X != 1 {
		t.Errorf("Clone shares storage: original X = %v, want 1", c[0].X)
	}
	if Curve(nil).Clone() != nil {
		t.Error("Clone of nil curve should be nil")
	}
}

func TestCurveTranslate(t *testing.T) {
	c := Curve{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}}
	got := c.Translate(Point3{Y: 2})
	want := Curve{{X: 0, Y: 2, Z: 0}, {X: 1, Y: 2, Z: 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Translate()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if c[0].Y != 0 {
		t.Error("Translate mutated its receiver")
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point3
		min, max Point3
	}{
		{"empty", nil, Point3{}, Point3{}},
		{"single", []Point3{{X: 1, Y: 2, Z: 3}}, Point3{X: 1, Y: 2, Z: 3}, Point3{X: 1, Y: 2, Z: 3}},
		{
			"spread",
			[]Point3{{X: -1, Y: 4, Z: 0}, {X: 2, Y: -3, Z: 5}},
			Point3{X: -1, Y: -3, Z: 0},
			Point3{X: 2, Y: 4, Z: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bounds(tt.points)
			if b.Min != tt.min || b.Max != tt.max {
				t.Errorf("Bounds() = %v..%v, want %v..%v", b.Min, b.Max, tt.min, tt.max)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Point3{}, Point3{X: 3, Y: 4}); d != 5 {
		t.Errorf("Distance() = %v, want 5", d)
	}
}

func TestApproxEqual(t *testing.T) {
	a := Point3{X: 1, Y: 1, Z: 1}
	if !ApproxEqual(a, Point3{X: 1.0005, Y: 1, Z: 0.9995}, 0.001) {
		t.Error("expected points within tolerance to be equal")
	}
	if ApproxEqual(a, Point3{X: 1.01, Y: 1, Z: 1}, 0.001) {
		t.Error("expected points outside tolerance to differ")
	}
}
