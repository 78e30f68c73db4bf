package rotor3d

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
)

// Quaternion represents a rotation in 3D space as the four-component number w + x*i + y*j + z*k.
// When the Quaternion is of unit length, it represents a proper rotation; the algebraic functions
// (Add(), Sub(), Scale(), and so on) can transiently produce non-unit Quaternions, which should be
// passed through Unit() before being used as rotations again. Note that a Quaternion and its negation
// represent the same rotation (the "double cover"), so comparisons of rotations should use
// SameRotation(), rather than Equals().
// Any Quaternion functions that modify the calling Quaternion return copies of the modified Quaternion,
// so method chaining never aliases the original value.
type Quaternion struct {
	X float64 // The X (i) component of the Quaternion
	Y float64 // The Y (j) component of the Quaternion
	Z float64 // The Z (k) component of the Quaternion
	W float64 // The W (real) component of the Quaternion
}

// QuatIdentity is the identity Quaternion, representing no rotation.
var QuatIdentity = NewQuaternion(0, 0, 0, 1)

// NewQuaternion creates a new Quaternion with the specified x, y, z, and w components.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

// NewQuaternionIdentity creates a new identity Quaternion (no rotation).
func NewQuaternionIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

// NewQuaternionFromAxisAngle creates a new Quaternion, rotating by the angle given (in radians) around the
// axis given, counter-clockwise when viewed down the axis. The axis is assumed to already be of unit length;
// pass it through Vector.Unit() first if it might not be.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {
	s := math.Sin(angle / 2)
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(angle / 2),
	}
}

// NewQuaternionFromEuler creates a new Quaternion performing the same rotation as the EulerAngles provided -
// the three single-axis rotations are applied around the world axes in the sequence the angles' Order
// specifies. The six orders all flow through the same axis-quaternion composition rather than six separate
// closed forms, so a single set of tests covers them all.
func NewQuaternionFromEuler(euler EulerAngles) Quaternion {

	angles := [3]float64{euler.X, euler.Y, euler.Z}
	axes := [3]Vector{VecX, VecY, VecZ}

	quat := NewQuaternionIdentity()

	// Each successive rotation applies after the ones accumulated so far, so it multiplies on the left.
	for _, axis := range euler.Order.axes() {
		quat = NewQuaternionFromAxisAngle(axes[axis], angles[axis]).Mult(quat)
	}

	return quat

}

// NewQuaternionFromMatrix4 creates a new Quaternion representative of the rotation held in the upper-left
// 3x3 block of the Matrix4 provided (which is assumed to be orthonormal, i.e. purely rotational).
// The conversion branches on the trace and the largest diagonal element (Shepperd's method) so that the
// divisor stays large in every branch; a single-formula conversion divides by a near-zero value for
// rotations near 180 degrees and falls apart there.
func NewQuaternionFromMatrix4(matrix Matrix4) Quaternion {

	// rotor3d matrices act on row vectors, so the classical column-vector m11..m33 terms read transposed.
	m11, m12, m13 := matrix[0][0], matrix[1][0], matrix[2][0]
	m21, m22, m23 := matrix[0][1], matrix[1][1], matrix[2][1]
	m31, m32, m33 := matrix[0][2], matrix[1][2], matrix[2][2]

	trace := m11 + m22 + m33

	if trace > 0 {

		s := 0.5 / math.Sqrt(trace+1.0)

		return Quaternion{
			X: (m32 - m23) * s,
			Y: (m13 - m31) * s,
			Z: (m21 - m12) * s,
			W: 0.25 / s,
		}

	} else if m11 > m22 && m11 > m33 {

		s := 2.0 * math.Sqrt(1.0+m11-m22-m33)

		return Quaternion{
			X: 0.25 * s,
			Y: (m12 + m21) / s,
			Z: (m13 + m31) / s,
			W: (m32 - m23) / s,
		}

	} else if m22 > m33 {

		s := 2.0 * math.Sqrt(1.0+m22-m11-m33)

		return Quaternion{
			X: (m12 + m21) / s,
			Y: 0.25 * s,
			Z: (m23 + m32) / s,
			W: (m13 - m31) / s,
		}

	}

	s := 2.0 * math.Sqrt(1.0+m33-m11-m22)

	return Quaternion{
		X: (m13 + m31) / s,
		Y: (m23 + m32) / s,
		Z: 0.25 * s,
		W: (m21 - m12) / s,
	}

}

// NewQuaternionBetweenVectors creates a new Quaternion representing the minimal-angle rotation that takes the
// unit vector from onto the unit vector to. Both vectors are assumed to already be of unit length.
// When the vectors are antiparallel, the cross product vanishes and no unique axis falls out of it, so an
// axis perpendicular to from is chosen explicitly instead; the result is then a 180-degree rotation around
// that axis.
func NewQuaternionBetweenVectors(from, to Vector) Quaternion {

	eps := 1e-6

	var axis Vector

	r := from.Dot(to) + 1

	if r < eps {
		r = 0
		if math.Abs(from.X) > math.Abs(from.Z) {
			axis = Vector{X: -from.Y, Y: from.X, Z: 0}
		} else {
			axis = Vector{X: 0, Y: -from.Z, Z: from.Y}
		}
	} else {
		axis = from.Cross(to)
	}

	return Quaternion{X: axis.X, Y: axis.Y, Z: axis.Z, W: r}.Unit()

}

// NewQuaternionFromFloats creates a new Quaternion from the [4]float64 array provided, ordered x, y, z, w.
func NewQuaternionFromFloats(floats [4]float64) Quaternion {
	return Quaternion{X: floats[0], Y: floats[1], Z: floats[2], W: floats[3]}
}

// NewQuaternionRandom creates a new unit Quaternion, uniformly distributed over the space of rotations
// (sampled from three independent uniform variates; Shoemake's subgroup algorithm). Useful for randomized
// testing or procedural variation.
func NewQuaternionRandom() Quaternion {

	u1 := rand.Float64()
	u2 := rand.Float64() * 2 * math.Pi
	u3 := rand.Float64() * 2 * math.Pi

	a := math.Sqrt(1 - u1)
	b := math.Sqrt(u1)

	return Quaternion{
		X: a * math.Sin(u2),
		Y: a * math.Cos(u2),
		Z: b * math.Sin(u3),
		W: b * math.Cos(u3),
	}

}

// Clone returns a copy of the Quaternion. This isn't necessary for a value-based struct like this, but is
// kept for familiarity.
func (quat Quaternion) Clone() Quaternion {
	return quat
}

// Set sets the values in the Quaternion to the x, y, z, and w values provided.
func (quat Quaternion) Set(x, y, z, w float64) Quaternion {
	quat.X = x
	quat.Y = y
	quat.Z = z
	quat.W = w
	return quat
}

// Add returns a copy of the calling Quaternion, added together with the other Quaternion provided,
// component-wise. The result is generally not a unit Quaternion; pass it through Unit() before using it as
// a rotation.
func (quat Quaternion) Add(other Quaternion) Quaternion {
	quat.X += other.X
	quat.Y += other.Y
	quat.Z += other.Z
	quat.W += other.W
	return quat
}

// Sub returns a copy of the calling Quaternion, with the other Quaternion subtracted from it,
// component-wise. The result is generally not a unit Quaternion; pass it through Unit() before using it as
// a rotation.
func (quat Quaternion) Sub(other Quaternion) Quaternion {
	quat.X -= other.X
	quat.Y -= other.Y
	quat.Z -= other.Z
	quat.W -= other.W
	return quat
}

// Mult returns the Hamilton product of the calling Quaternion with the other Quaternion provided. This
// composes the two rotations: rotating a Vector by quat.Mult(other) performs other's rotation first, and
// quat's second. The product is not commutative - quat.Mult(other) and other.Mult(quat) are different
// rotations in general, so take care with the ordering when composing (e.g. parent-then-local vs
// local-then-parent).
func (quat Quaternion) Mult(other Quaternion) Quaternion {
	return Quaternion{
		X: quat.X*other.W + quat.W*other.X + quat.Y*other.Z - quat.Z*other.Y,
		Y: quat.Y*other.W + quat.W*other.Y + quat.Z*other.X - quat.X*other.Z,
		Z: quat.Z*other.W + quat.W*other.Z + quat.X*other.Y - quat.Y*other.X,
		W: quat.W*other.W - quat.X*other.X - quat.Y*other.Y - quat.Z*other.Z,
	}
}

// Scale scales a Quaternion by the given scalar, component-wise. The result is generally not a unit
// Quaternion; pass it through Unit() before using it as a rotation.
func (quat Quaternion) Scale(scalar float64) Quaternion {
	quat.X *= scalar
	quat.Y *= scalar
	quat.Z *= scalar
	quat.W *= scalar
	return quat
}

// Divide divides a Quaternion by the given scalar, component-wise. Dividing by exactly zero returns the
// Quaternion unmodified.
func (quat Quaternion) Divide(scalar float64) Quaternion {
	if scalar == 0 {
		return quat
	}
	return quat.Scale(1 / scalar)
}

// Conjugate returns a copy of the Quaternion with the x, y, and z components flipped. For a unit Quaternion,
// this is the inverse rotation.
func (quat Quaternion) Conjugate() Quaternion {
	quat.X = -quat.X
	quat.Y = -quat.Y
	quat.Z = -quat.Z
	return quat
}

// Negated returns a copy of the Quaternion with all four components flipped. The negation represents the
// exact same rotation as the original (see SameRotation()).
func (quat Quaternion) Negated() Quaternion {
	quat.X = -quat.X
	quat.Y = -quat.Y
	quat.Z = -quat.Z
	quat.W = -quat.W
	return quat
}

// Inverted returns the inverse of the Quaternion (the conjugate divided by the squared magnitude); for a unit
// Quaternion this is the same as Conjugate(). A zero Quaternion has no inverse and is returned unmodified.
func (quat Quaternion) Inverted() Quaternion {
	lengthSq := quat.MagnitudeSquared()
	if lengthSq == 0 {
		return quat
	}
	return quat.Conjugate().Divide(lengthSq)
}

// Magnitude returns the length of the Quaternion.
func (quat Quaternion) Magnitude() float64 {
	return math.Sqrt(quat.X*quat.X + quat.Y*quat.Y + quat.Z*quat.Z + quat.W*quat.W)
}

// MagnitudeSquared returns the squared length of the Quaternion; this is faster than Magnitude() as it
// avoids using math.Sqrt().
func (quat Quaternion) MagnitudeSquared() float64 {
	return quat.X*quat.X + quat.Y*quat.Y + quat.Z*quat.Z + quat.W*quat.W
}

// Unit returns a copy of the Quaternion, normalized (set to be of unit length).
// A zero-length Quaternion is returned unmodified.
func (quat Quaternion) Unit() Quaternion {
	l := quat.Magnitude()
	if l == 0 {
		return quat
	}
	return quat.Scale(1 / l)
}

// Dot returns the four-component dot product of a Quaternion and another Quaternion. For unit Quaternions,
// this is the cosine of half the angle between the two rotations.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// RotateVector returns a new Vector, equal to the Vector provided rotated by the calling Quaternion (which
// is assumed to be of unit length). Neither the Quaternion nor the Vector provided are modified.
// This is the q * v * q^-1 sandwich product, expanded into two cross products so no intermediate Quaternions
// or matrices are constructed.
func (quat Quaternion) RotateVector(vec Vector) Vector {
	qv := Vector{X: quat.X, Y: quat.Y, Z: quat.Z}
	t := qv.Cross(vec).Scale(2)
	return vec.Add(t.Scale(quat.W)).Add(qv.Cross(t))
}

// Lerp returns the linear blend between the calling Quaternion and the other Quaternion provided, where a
// percentage of 0 is the calling Quaternion and 1 is the other. The blend is a plain component-wise mix and
// is NOT renormalized - the result dips inside the unit sphere, so pass it through Unit() before using it as
// a rotation (Slerp() does this itself when it falls back to Lerp()).
func (quat Quaternion) Lerp(other Quaternion, percent float64) Quaternion {
	quat.X += (other.X - quat.X) * percent
	quat.Y += (other.Y - quat.Y) * percent
	quat.Z += (other.Z - quat.Z) * percent
	quat.W += (other.W - quat.W) * percent
	return quat
}

// Slerp returns the spherical blend between the calling Quaternion and the other Quaternion provided, where
// a percentage of 0 is the calling Quaternion and 1 is the other. The blend runs along the shortest arc
// between the two rotations at constant angular velocity. Both Quaternions are assumed to be of unit length.
func (quat Quaternion) Slerp(other Quaternion, percent float64) Quaternion {

	if percent <= 0 {
		return quat
	} else if percent >= 1 {
		return other
	}

	dot := quat.Dot(other)

	// The negation is the same rotation, but interpolating towards it runs the long way around the
	// 4-sphere; flipping it keeps the arc short.
	if dot < 0 {
		other = other.Negated()
		dot = -dot
	}

	// Nearly identical rotations; sin(theta) below would be close enough to zero to blow up the ratios,
	// and a straight-line blend is indistinguishable at this range.
	if dot > 0.9995 {
		return quat.Lerp(other, percent).Unit()
	}

	theta := math.Acos(clamp(dot, -1, 1))
	sinTheta := math.Sin(theta)

	ratioA := math.Sin((1-percent)*theta) / sinTheta
	ratioB := math.Sin(percent*theta) / sinTheta

	return quat.Scale(ratioA).Add(other.Scale(ratioB))

}

// Squad returns the spherical cubic blend across the segment from the calling Quaternion to the other
// Quaternion provided, shaped by the control Quaternions a and b - the cubic analogue of Slerp(), used to
// pass smoothly through rotation keyframes instead of changing angular velocity abruptly at each one.
// The blend is slerp(slerp(quat, other, t), slerp(a, b, t), 2t(1-t)).
func (quat Quaternion) Squad(other, a, b Quaternion, percent float64) Quaternion {
	return quat.Slerp(other, percent).Slerp(a.Slerp(b, percent), 2*percent*(1-percent))
}

// ToMatrix4 returns a Matrix4 performing the same rotation as the calling Quaternion (which is assumed to be
// of unit length).
func (quat Quaternion) ToMatrix4() Matrix4 {

	xx := quat.X * quat.X
	yy := quat.Y * quat.Y
	zz := quat.Z * quat.Z
	xy := quat.X * quat.Y
	xz := quat.X * quat.Z
	yz := quat.Y * quat.Z
	wx := quat.W * quat.X
	wy := quat.W * quat.Y
	wz := quat.W * quat.Z

	return Matrix4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}

}

// ToAxisAngle returns the AxisAngle performing the same rotation as the calling Quaternion (which is assumed
// to be of unit length). An identity Quaternion has no meaningful axis, and returns +X with an angle of 0.
func (quat Quaternion) ToAxisAngle() AxisAngle {

	w := clamp(quat.W, -1, 1)
	s := math.Sqrt(1 - w*w)

	if s < 1e-8 {
		return AxisAngle{Axis: VecX, Angle: 0}
	}

	return AxisAngle{
		Axis:  Vector{X: quat.X / s, Y: quat.Y / s, Z: quat.Z / s},
		Angle: 2 * math.Acos(w),
	}

}

// ToEuler returns EulerAngles performing the same rotation as the calling Quaternion (which is assumed to be
// of unit length), decomposed in the rotation order provided. At gimbal lock (when the middle rotation of
// the order reaches +/-90 degrees), the remaining two rotations share an axis and only their sum is
// determined; one of them is folded to 0.
func (quat Quaternion) ToEuler(order RotationOrder) EulerAngles {

	const cutoff = 0.9999999

	// Same transposed read as NewQuaternionFromMatrix4; m11..m33 are the classical column-vector terms.
	matrix := quat.ToMatrix4()
	m11, m12, m13 := matrix[0][0], matrix[1][0], matrix[2][0]
	m21, m22, m23 := matrix[0][1], matrix[1][1], matrix[2][1]
	m31, m32, m33 := matrix[0][2], matrix[1][2], matrix[2][2]

	euler := EulerAngles{Order: order}

	switch order {

	case RotationOrderXYZ:

		euler.Y = math.Asin(-clamp(m31, -1, 1))
		if math.Abs(m31) < cutoff {
			euler.X = math.Atan2(m32, m33)
			euler.Z = math.Atan2(m21, m11)
		} else {
			euler.X = 0
			euler.Z = math.Atan2(-m12, m22)
		}

	case RotationOrderYXZ:

		euler.X = math.Asin(clamp(m32, -1, 1))
		if math.Abs(m32) < cutoff {
			euler.Y = math.Atan2(-m31, m33)
			euler.Z = math.Atan2(-m12, m22)
		} else {
			euler.Y = 0
			euler.Z = math.Atan2(m21, m11)
		}

	case RotationOrderZXY:

		euler.X = math.Asin(-clamp(m23, -1, 1))
		if math.Abs(m23) < cutoff {
			euler.Y = math.Atan2(m13, m33)
			euler.Z = math.Atan2(m21, m22)
		} else {
			euler.Y = math.Atan2(-m31, m11)
			euler.Z = 0
		}

	case RotationOrderZYX:

		euler.Y = math.Asin(clamp(m13, -1, 1))
		if math.Abs(m13) < cutoff {
			euler.X = math.Atan2(-m23, m33)
			euler.Z = math.Atan2(-m12, m11)
		} else {
			euler.X = math.Atan2(m32, m22)
			euler.Z = 0
		}

	case RotationOrderYZX:

		euler.Z = math.Asin(-clamp(m12, -1, 1))
		if math.Abs(m12) < cutoff {
			euler.X = math.Atan2(m32, m22)
			euler.Y = math.Atan2(m13, m11)
		} else {
			euler.X = math.Atan2(-m23, m33)
			euler.Y = 0
		}

	case RotationOrderXZY:

		euler.Z = math.Asin(clamp(m21, -1, 1))
		if math.Abs(m21) < cutoff {
			euler.X = math.Atan2(-m23, m22)
			euler.Y = math.Atan2(-m31, m11)
		} else {
			euler.X = 0
			euler.Y = math.Atan2(m13, m33)
		}

	}

	return euler

}

// Equals returns true if the two Quaternions have exactly equal components. Note that a Quaternion and its
// negation compare as unequal here despite representing the same rotation; see SameRotation().
func (quat Quaternion) Equals(other Quaternion) bool {
	return quat.X == other.X && quat.Y == other.Y && quat.Z == other.Z && quat.W == other.W
}

// ApproxEquals returns true if the two Quaternions are within epsilon of each other in all four components.
func (quat Quaternion) ApproxEquals(other Quaternion, epsilon float64) bool {
	return math.Abs(quat.X-other.X) <= epsilon &&
		math.Abs(quat.Y-other.Y) <= epsilon &&
		math.Abs(quat.Z-other.Z) <= epsilon &&
		math.Abs(quat.W-other.W) <= epsilon
}

// SameRotation returns true if the two unit Quaternions perform the same rotation, within epsilon - unlike
// ApproxEquals(), this treats a Quaternion and its negation as equal (the double cover).
func (quat Quaternion) SameRotation(other Quaternion, epsilon float64) bool {
	return math.Abs(quat.Dot(other)) >= 1-epsilon
}

// IsIdentity returns true if this is exactly the identity Quaternion.
func (quat Quaternion) IsIdentity() bool {
	return quat.X == 0 && quat.Y == 0 && quat.Z == 0 && quat.W == 1
}

// IsNormalized returns true if the Quaternion is of unit length, within epsilon.
func (quat Quaternion) IsNormalized(epsilon float64) bool {
	return math.Abs(quat.Magnitude()-1) <= epsilon
}

// ToFloats returns a [4]float64 array consisting of the Quaternion's contents, ordered x, y, z, w.
func (quat Quaternion) ToFloats() [4]float64 {
	return [4]float64{quat.X, quat.Y, quat.Z, quat.W}
}

// ToFloats32 returns a [4]float32 array consisting of the Quaternion's contents, ordered x, y, z, w; this is
// the form GPU APIs generally upload.
func (quat Quaternion) ToFloats32() [4]float32 {
	return [4]float32{float32(quat.X), float32(quat.Y), float32(quat.Z), float32(quat.W)}
}

type quaternionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// MarshalJSON marshals the Quaternion as an object with named x, y, z, and w fields.
func (quat Quaternion) MarshalJSON() ([]byte, error) {
	return json.Marshal(quaternionJSON{X: quat.X, Y: quat.Y, Z: quat.Z, W: quat.W})
}

// UnmarshalJSON unmarshals the Quaternion from an object with named x, y, z, and w fields.
func (quat *Quaternion) UnmarshalJSON(data []byte) error {
	parsed := quaternionJSON{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	quat.X = parsed.X
	quat.Y = parsed.Y
	quat.Z = parsed.Z
	quat.W = parsed.W
	return nil
}

// String returns a string representation of the Quaternion, formatted nicely for printing.
func (quat Quaternion) String() string {
	return fmt.Sprintf("{%.4f, %.4f, %.4f, %.4f}", quat.X, quat.Y, quat.Z, quat.W)
}

// log returns the logarithm of a unit Quaternion as a pure (w = 0) Quaternion; the vector part is the
// rotation axis scaled by half the rotation angle.
func (quat Quaternion) log() Quaternion {

	w := clamp(quat.W, -1, 1)
	s := math.Sqrt(1 - w*w)

	if s < 1e-8 {
		return Quaternion{}
	}

	theta := math.Acos(w)

	return Quaternion{
		X: quat.X / s * theta,
		Y: quat.Y / s * theta,
		Z: quat.Z / s * theta,
		W: 0,
	}

}

// exp returns the exponential of a pure (w = 0) Quaternion, producing a unit Quaternion.
func (quat Quaternion) exp() Quaternion {

	theta := math.Sqrt(quat.X*quat.X + quat.Y*quat.Y + quat.Z*quat.Z)

	if theta < 1e-8 {
		return NewQuaternionIdentity()
	}

	s := math.Sin(theta) / theta

	return Quaternion{
		X: quat.X * s,
		Y: quat.Y * s,
		Z: quat.Z * s,
		W: math.Cos(theta),
	}

}
