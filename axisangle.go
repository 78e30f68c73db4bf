package rotor3d

import "fmt"

// AxisAngle represents a rotation in radians around a given 3D axis. This being the case, an AxisAngle can easily also be stored in a
// 4-dimensional vector; it's separated here into a Vector and angle for simplicity and readability.
type AxisAngle struct {
	Axis  Vector  // 3 dimensional axis to rotate around
	Angle float64 // Rotation in radians
}

// NewAxisAngle creates a new AxisAngle out of the given 3D vector axis and angular rotation (in radians).
// The axis is normalized on the way in.
func NewAxisAngle(axis Vector, angle float64) AxisAngle {
	return AxisAngle{
		Axis:  axis.Unit(),
		Angle: angle,
	}
}

// ToQuaternion returns the Quaternion that performs the same rotation as the AxisAngle.
func (aa AxisAngle) ToQuaternion() Quaternion {
	return NewQuaternionFromAxisAngle(aa.Axis, aa.Angle)
}

// RotateVector rotates the given Vector by the axis and angle given, returning a rotated copy of it. For example, assuming the AxisAngle had an Axis
// of [0, 1, 0] (+Y, or "Up") and an Angle of pi / 2, axisAngle.RotateVector(rotor3d.NewVector(1, 0, 0)) would return a Vector of [0, 0, -1].
func (aa AxisAngle) RotateVector(vec Vector) Vector {
	return aa.ToQuaternion().RotateVector(vec)
}

// String returns a string representation of the AxisAngle, formatted nicely for printing.
func (aa AxisAngle) String() string {
	return fmt.Sprintf("{%s, %.4f}", aa.Axis, aa.Angle)
}
