// Package camera provides the viewer's free-flying camera.
package camera

import (
	"github.com/Faultbox/sweepcad/pkg/math"
)

// DefaultSpeed is the distance moved per key press.
const DefaultSpeed = 0.025

// FlyCamera moves on its own axes and always looks along Front.
type FlyCamera struct {
	Eye   math.Vec3
	Front math.Vec3 // unit view direction
	Up    math.Vec3
	Speed float32
}

// NewFlyCamera returns a camera three units in front of the origin,
// looking down -Z.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Eye:   math.Vec3{Z: 3},
		Front: math.Vec3{Z: -1},
		Up:    math.Vec3{Y: 1},
		Speed: DefaultSpeed,
	}
}

func (c *FlyCamera) right() math.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

func (c *FlyCamera) MoveForward()  { c.Eye = c.Eye.Add(c.Front.Scale(c.Speed)) }
func (c *FlyCamera) MoveBackward() { c.Eye = c.Eye.Sub(c.Front.Scale(c.Speed)) }
func (c *FlyCamera) MoveRight()    { c.Eye = c.Eye.Add(c.right().Scale(c.Speed)) }
func (c *FlyCamera) MoveLeft()     { c.Eye = c.Eye.Sub(c.right().Scale(c.Speed)) }

// ViewMatrix returns the world-to-view transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Eye.Add(c.Front), c.Up)
}
