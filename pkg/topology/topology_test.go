package topology

import (
	"errors"
	"testing"
)

func TestBuildTriangleCounts(t *testing.T) {
	tests := []struct {
		name     string
		rings    int
		ringSize int
		closed   bool
		want     int
	}{
		{"open square along 3-point path", 3, 4, false, 12},
		{"closed triangle with 4 spans", 4, 3, true, 16},
		{"open single ring", 1, 5, false, 0},
		{"closed single ring", 1, 3, true, 4},
		{"open two rings of two", 2, 2, false, 2},
		{"closed many", 12, 40, true, 12 * 39 * 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Build(tt.rings, tt.ringSize, tt.closed)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := len(idx) / 3; got != tt.want {
				t.Errorf("triangles = %d, want %d", got, tt.want)
			}
			if got := TriangleCount(tt.rings, tt.ringSize, tt.closed); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
			limit := uint32(tt.rings * tt.ringSize)
			for i, v := range idx {
				if v >= limit {
					t.Fatalf("index[%d] = %d, want < %d", i, v, limit)
				}
			}
		})
	}
}

func TestBuildOpenLayout(t *testing.T) {
	idx, err := Build(2, 3, false)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []uint32{
		0, 1, 3, 1, 3, 4,
		1, 2, 4, 2, 4, 5,
	}
	if len(idx) != len(want) {
		t.Fatalf("len = %d, want %d", len(idx), len(want))
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Errorf("idx[%d] = %d, want %d", i, idx[i], want[i])
		}
	}
}

func TestBuildClosedWrapsToFirstRing(t *testing.T) {
	idx, err := Build(3, 2, true)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// Last pair stitches ring 2 (4,5) back to ring 0 (0,1).
	tail := idx[len(idx)-6:]
	want := []uint32{4, 5, 0, 5, 0, 1}
	for i := range want {
		if tail[i] != want[i] {
			t.Errorf("tail[%d] = %d, want %d", i, tail[i], want[i])
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		rings    int
		ringSize int
	}{
		{"no rings", 0, 4},
		{"single point rings", 3, 1},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.rings, tt.ringSize, false)
			if !errors.Is(err, ErrDegenerateGrid) {
				t.Errorf("error = %v, want ErrDegenerateGrid", err)
			}
		})
	}
}

func TestBuildOverflow(t *testing.T) {
	_, err := Build(1<<17, 1<<16, false)
	if !errors.Is(err, ErrIndexOverflow) {
		t.Errorf("error = %v, want ErrIndexOverflow", err)
	}
}

func TestAppendKeepsPrefix(t *testing.T) {
	dst := []uint32{99}
	out, err := Append(dst, 2, 2, false)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if out[0] != 99 || len(out) != 7 {
		t.Errorf("Append() = %v", out)
	}
}
