package render

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/meshfolder/pkg/math3d"
)

// Turntable spins a model with velocities that decay smoothly to rest.
type Turntable struct {
	Pitch, Yaw float64

	pitchVel, yawVel     float64
	pitchAccel, yawAccel float64 // spring state for the velocity decay
	spring               harmonica.Spring
	fps                  int
}

// NewTurntable creates a turntable updated fps times per second.
func NewTurntable(fps int) *Turntable {
	return &Turntable{
		// Critically damped: velocity settles without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		fps:    fps,
	}
}

// Nudge adds angular velocity in radians per frame.
func (t *Turntable) Nudge(pitch, yaw float64) {
	t.pitchVel += pitch
	t.yawVel += yaw
}

// Update advances one frame.
func (t *Turntable) Update() {
	t.Pitch += t.pitchVel
	t.Yaw += t.yawVel
	t.pitchVel, t.pitchAccel = t.spring.Update(t.pitchVel, t.pitchAccel, 0)
	t.yawVel, t.yawAccel = t.spring.Update(t.yawVel, t.yawAccel, 0)
}

// Moving reports whether any velocity is still noticeable.
func (t *Turntable) Moving() bool {
	const eps = 1e-4
	return t.pitchVel > eps || t.pitchVel < -eps || t.yawVel > eps || t.yawVel < -eps
}

// Reset returns the turntable to rest at the initial orientation.
func (t *Turntable) Reset() {
	*t = *NewTurntable(t.fps)
}

// Transform returns the current model rotation.
func (t *Turntable) Transform() math3d.Mat4 {
	return math3d.RotateX(t.Pitch).Mul(math3d.RotateY(t.Yaw))
}
