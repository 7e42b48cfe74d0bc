package viewer

import (
	gomath "math"

	"github.com/Faultbox/sweepcad/pkg/math"
)

// DefaultRotateStep is the model rotation per key press, in degrees.
const DefaultRotateStep = 0.2

// ModelRotation holds the model's orientation as two angles in degrees,
// each kept inside (-360, 360).
type ModelRotation struct {
	X, Y float64
	Step float64
}

// Rotate adds dx and dy steps about X and Y. Only the sign of each
// argument matters.
func (r *ModelRotation) Rotate(dx, dy int) {
	step := r.Step
	if step == 0 {
		step = DefaultRotateStep
	}
	r.X = gomath.Mod(r.X+sign(dx)*step, 360)
	r.Y = gomath.Mod(r.Y+sign(dy)*step, 360)
}

func sign(v int) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Matrix returns the model transform: rotate about Y, then about X.
func (r ModelRotation) Matrix() math.Mat4 {
	return math.RotateX(radians(r.X)).Mul(math.RotateY(radians(r.Y)))
}

func radians(deg float64) float32 {
	return float32(deg * gomath.Pi / 180)
}
