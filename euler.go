package rotor3d

import "fmt"

// RotationOrder indicates the order in which the three single-axis rotations of a set of Euler angles are
// applied, using the world (fixed) axes. RotationOrderXYZ, for example, rotates around the global X axis
// first, then the global Y axis, and finally the global Z axis. The same three angles produce six distinct
// rotations depending on the order, so the order tag travels with the angles.
type RotationOrder int

const (
	RotationOrderXYZ RotationOrder = iota
	RotationOrderYXZ
	RotationOrderZXY
	RotationOrderZYX
	RotationOrderYZX
	RotationOrderXZY
)

// axisX, axisY, and axisZ index into the [3]float64 / [3]Vector tables used when composing per-axis rotations.
const (
	axisX = iota
	axisY
	axisZ
)

// axes returns the axis indices of the order's rotations, first-applied first.
func (order RotationOrder) axes() [3]int {
	switch order {
	case RotationOrderYXZ:
		return [3]int{axisY, axisX, axisZ}
	case RotationOrderZXY:
		return [3]int{axisZ, axisX, axisY}
	case RotationOrderZYX:
		return [3]int{axisZ, axisY, axisX}
	case RotationOrderYZX:
		return [3]int{axisY, axisZ, axisX}
	case RotationOrderXZY:
		return [3]int{axisX, axisZ, axisY}
	default:
		return [3]int{axisX, axisY, axisZ}
	}
}

func (order RotationOrder) String() string {
	switch order {
	case RotationOrderXYZ:
		return "XYZ"
	case RotationOrderYXZ:
		return "YXZ"
	case RotationOrderZXY:
		return "ZXY"
	case RotationOrderZYX:
		return "ZYX"
	case RotationOrderYZX:
		return "YZX"
	case RotationOrderXZY:
		return "XZY"
	}
	return "Unknown RotationOrder"
}

// EulerAngles represents a rotation as three angles (in radians) around the world X, Y, and Z axes, applied
// in the sequence given by Order. The X field always holds the angle of the rotation around the X axis,
// regardless of where X falls in the order.
type EulerAngles struct {
	X     float64 // Angle of rotation around the world X axis, in radians
	Y     float64 // Angle of rotation around the world Y axis, in radians
	Z     float64 // Angle of rotation around the world Z axis, in radians
	Order RotationOrder
}

// NewEulerAngles creates a new set of EulerAngles out of the x, y, and z angles provided (in radians),
// applied in the rotation order provided.
func NewEulerAngles(x, y, z float64, order RotationOrder) EulerAngles {
	return EulerAngles{X: x, Y: y, Z: z, Order: order}
}

// ToQuaternion returns the Quaternion that performs the same rotation as the EulerAngles.
func (euler EulerAngles) ToQuaternion() Quaternion {
	return NewQuaternionFromEuler(euler)
}

// String returns a string representation of the EulerAngles, formatted nicely for printing.
func (euler EulerAngles) String() string {
	return fmt.Sprintf("{%.4f, %.4f, %.4f, %s}", euler.X, euler.Y, euler.Z, euler.Order)
}
