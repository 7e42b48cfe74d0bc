package document

import (
	"fmt"
	"strings"
)

// Stage is the editing stage of a document.
type Stage uint8

const (
	// StageProfile collects profile control points.
	StageProfile Stage = iota
	// StageTrajectory collects trajectory control points (translational only).
	StageTrajectory
	// StageMesh holds a generated mesh; control points are frozen.
	StageMesh
)

func (s Stage) String() string {
	switch s {
	case StageProfile:
		return "profile"
	case StageTrajectory:
		return "trajectory"
	case StageMesh:
		return "mesh"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// RenderMode selects how a consumer draws the mesh. It has no effect on
// the generated data.
type RenderMode uint8

const (
	RenderPoints RenderMode = iota
	RenderLines
	RenderTriangles
)

func (m RenderMode) String() string {
	switch m {
	case RenderPoints:
		return "points"
	case RenderLines:
		return "lines"
	case RenderTriangles:
		return "triangles"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseRenderMode parses "points", "lines" or "triangles".
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "points":
		return RenderPoints, nil
	case "lines":
		return RenderLines, nil
	case "triangles":
		return RenderTriangles, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}
