// Package rotor3d is a quaternion-based 3D rotation library. Rotations are built from whichever
// representation is convenient at the boundary (axis-angle from input devices, Euler angles from design
// tools, matrices from bone hierarchies or physics), composed and interpolated as Quaternions, and converted
// back out to matrices or rotated Vectors for consumption by rendering and animation systems.
//
// The coordinate system is right-handed, with +X right, +Y up, and +Z backwards (towards you); positive
// angles rotate counter-clockwise when viewed down the rotation axis. All the types in rotor3d are plain
// values - every operation returns a modified copy, so sharing a rotation across goroutines is safe as long
// as each goroutine works on its own copy.
package rotor3d
