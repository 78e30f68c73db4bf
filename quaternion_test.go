package rotor3d

import (
	"encoding/json"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func randomUnitVector() Vector {
	for {
		vec := NewVector(rand.Float64()*2-1, rand.Float64()*2-1, rand.Float64()*2-1)
		if l := vec.Magnitude(); l > 1e-4 && l <= 1 {
			return vec.Unit()
		}
	}
}

func TestQuaternionFromAxisAngleIsUnit(t *testing.T) {

	for i := 0; i < 100; i++ {

		axis := randomUnitVector()
		angle := (rand.Float64()*2 - 1) * 4 * math.Pi

		quat := NewQuaternionFromAxisAngle(axis, angle)

		if !quat.IsNormalized(1e-6) {
			t.Fatal("quaternion from axis", axis, "and angle", angle, "is not unit length:", quat.Magnitude())
		}

	}

}

func TestQuaternionMultAssociative(t *testing.T) {

	for i := 0; i < 50; i++ {

		q1 := NewQuaternionRandom()
		q2 := NewQuaternionRandom()
		q3 := NewQuaternionRandom()

		left := q1.Mult(q2.Mult(q3))
		right := q1.Mult(q2).Mult(q3)

		if !left.ApproxEquals(right, 1e-9) {
			t.Fatal("quaternion multiplication is not associative:", left, "vs", right)
		}

	}

}

func TestQuaternionMultNotCommutative(t *testing.T) {

	q1 := NewQuaternionFromAxisAngle(VecX, math.Pi/2)
	q2 := NewQuaternionFromAxisAngle(VecY, math.Pi/2)

	if q1.Mult(q2).ApproxEquals(q2.Mult(q1), 1e-9) {
		t.Fatal("expected q1*q2 and q2*q1 to differ for rotations around different axes")
	}

}

// Composition order contract: rotating by q1.Mult(q2) applies q2 first, then q1.
func TestQuaternionMultComposition(t *testing.T) {

	for i := 0; i < 50; i++ {

		q1 := NewQuaternionRandom()
		q2 := NewQuaternionRandom()
		vec := randomUnitVector()

		composed := q1.Mult(q2).RotateVector(vec)
		sequential := q1.RotateVector(q2.RotateVector(vec))

		if !composed.Equals(sequential) {
			t.Fatal("composed rotation does not match sequential application:", composed, "vs", sequential)
		}

	}

}

func TestQuaternionConjugateInvolution(t *testing.T) {

	quat := NewQuaternion(0.3, -0.2, 0.75, 0.1)

	if !quat.Conjugate().Conjugate().Equals(quat) {
		t.Fatal("conjugating twice did not give back the original quaternion")
	}

}

func TestQuaternionUnit(t *testing.T) {

	quat := NewQuaternion(3, -4, 12, 5)

	normalized := quat.Unit()

	if math.Abs(normalized.Magnitude()-1) > 1e-9 {
		t.Fatal("normalized quaternion is not of unit length:", normalized.Magnitude())
	}

	if !normalized.Unit().ApproxEquals(normalized, 1e-9) {
		t.Fatal("normalizing twice changed the quaternion")
	}

	zero := Quaternion{}
	if !zero.Unit().Equals(zero) {
		t.Fatal("normalizing a zero quaternion should be a no-op")
	}

}

func TestQuaternionInverted(t *testing.T) {

	for i := 0; i < 50; i++ {

		quat := NewQuaternionRandom()

		if !quat.Mult(quat.Inverted()).SameRotation(QuatIdentity, 1e-9) {
			t.Fatal("q * q^-1 is not the identity rotation for", quat)
		}

	}

	// Non-unit quaternions invert through the squared magnitude.
	quat := NewQuaternion(1, 2, 3, 4).Scale(0.5)
	product := quat.Mult(quat.Inverted())
	if !product.ApproxEquals(QuatIdentity, 1e-9) {
		t.Fatal("non-unit quaternion times its inverse is not identity:", product)
	}

	zero := Quaternion{}
	if !zero.Inverted().Equals(zero) {
		t.Fatal("inverting a zero quaternion should be a no-op")
	}

}

func TestQuaternionDivideByZero(t *testing.T) {

	quat := NewQuaternion(1, 2, 3, 4)

	if !quat.Divide(0).Equals(quat) {
		t.Fatal("dividing by zero should be a no-op")
	}

}

// The concrete scenario from the docs: +Y axis, 90 degrees, applied to +X.
func TestQuaternionRotateVector(t *testing.T) {

	quat := NewQuaternionFromAxisAngle(VecY, math.Pi/2)

	expected := NewQuaternion(0, 0.70711, 0, 0.70711)
	if !quat.ApproxEquals(expected, 1e-5) {
		t.Fatal("quaternion for +Y / 90 degrees came out as", quat)
	}

	rotated := quat.RotateVector(NewVector(1, 0, 0))

	if !rotated.Equals(NewVector(0, 0, -1)) {
		t.Fatal("rotating +X by 90 degrees around +Y gave", rotated, "instead of [0, 0, -1]")
	}

}

func TestQuaternionIdentityApplication(t *testing.T) {

	for i := 0; i < 50; i++ {

		vec := NewVector(rand.Float64()*20-10, rand.Float64()*20-10, rand.Float64()*20-10)

		if !QuatIdentity.RotateVector(vec).Equals(vec) {
			t.Fatal("identity rotation moved the vector", vec)
		}

	}

}

func TestQuaternionMatrixRoundTrip(t *testing.T) {

	// Fixed cases chosen to land in each branch of the matrix conversion: identity and small angles keep
	// the trace positive; 180-degree turns around each axis zero out the trace and force the diagonal
	// branches.
	fixed := []Quaternion{
		NewQuaternionIdentity(),
		NewQuaternionFromAxisAngle(VecY, 0.01),
		NewQuaternionFromAxisAngle(VecX, math.Pi),
		NewQuaternionFromAxisAngle(VecY, math.Pi),
		NewQuaternionFromAxisAngle(VecZ, math.Pi),
		NewQuaternionFromAxisAngle(NewVector(1, 1, 1).Unit(), math.Pi-1e-4),
	}

	for _, quat := range fixed {
		back := NewQuaternionFromMatrix4(quat.ToMatrix4())
		if !back.SameRotation(quat, 1e-6) {
			t.Fatal("matrix round trip failed for", quat, "- got", back)
		}
	}

	for i := 0; i < 200; i++ {
		quat := NewQuaternionRandom()
		back := NewQuaternionFromMatrix4(quat.ToMatrix4())
		if !back.SameRotation(quat, 1e-6) {
			t.Fatal("matrix round trip failed for", quat, "- got", back)
		}
		if !back.IsNormalized(1e-6) {
			t.Fatal("matrix round trip denormalized the quaternion:", back.Magnitude())
		}
	}

}

func TestQuaternionBetweenVectors(t *testing.T) {

	for i := 0; i < 100; i++ {

		from := randomUnitVector()
		to := randomUnitVector()

		quat := NewQuaternionBetweenVectors(from, to)

		if !quat.IsNormalized(1e-6) {
			t.Fatal("between-vectors quaternion is not unit length:", quat.Magnitude())
		}

		if rotated := quat.RotateVector(from); !rotated.Equals(to) {
			t.Fatal("rotating", from, "gave", rotated, "instead of", to)
		}

	}

	vec := randomUnitVector()
	if !NewQuaternionBetweenVectors(vec, vec).SameRotation(QuatIdentity, 1e-6) {
		t.Fatal("between-vectors of a vector with itself is not the identity")
	}

}

func TestQuaternionBetweenVectorsAntiparallel(t *testing.T) {

	vectors := []Vector{
		VecX,
		VecY,
		VecZ,
		NewVector(1, 2, 3).Unit(),
		NewVector(-0.5, 0.01, 0.2).Unit(),
	}

	for _, from := range vectors {

		quat := NewQuaternionBetweenVectors(from, from.Invert())

		if !quat.IsNormalized(1e-6) {
			t.Fatal("antiparallel quaternion for", from, "is not unit length:", quat.Magnitude())
		}

		aa := quat.ToAxisAngle()

		if math.Abs(aa.Angle-math.Pi) > 1e-6 {
			t.Fatal("antiparallel rotation angle for", from, "is", aa.Angle, "instead of pi")
		}

		if math.Abs(aa.Axis.Dot(from)) > 1e-6 {
			t.Fatal("antiparallel rotation axis", aa.Axis, "is not orthogonal to", from)
		}

		if rotated := quat.RotateVector(from); !rotated.Equals(from.Invert()) {
			t.Fatal("antiparallel rotation sent", from, "to", rotated)
		}

	}

}

func TestQuaternionSlerpBoundaries(t *testing.T) {

	for i := 0; i < 50; i++ {

		q1 := NewQuaternionRandom()
		q2 := NewQuaternionRandom()

		if !q1.Slerp(q2, 0).Equals(q1) {
			t.Fatal("slerp at 0 did not return the starting quaternion")
		}

		if !q1.Slerp(q2, 1).SameRotation(q2, 1e-9) {
			t.Fatal("slerp at 1 did not return the target rotation")
		}

		for _, percent := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {

			if !q1.Slerp(q1, percent).SameRotation(q1, 1e-9) {
				t.Fatal("slerp of a quaternion with itself drifted at", percent)
			}

			if mid := q1.Slerp(q2, percent); !mid.IsNormalized(1e-6) {
				t.Fatal("slerp result is not unit length at", percent, ":", mid.Magnitude())
			}

		}

	}

}

// Slerp always runs the short way around; interpolating towards the negation of the target must land on the
// same rotation as interpolating towards the target itself.
func TestQuaternionSlerpShortestPath(t *testing.T) {

	for i := 0; i < 50; i++ {

		q1 := NewQuaternionRandom()
		q2 := NewQuaternionRandom()

		a := q1.Slerp(q2, 0.35)
		b := q1.Slerp(q2.Negated(), 0.35)

		if !a.SameRotation(b, 1e-9) {
			t.Fatal("slerp towards q and towards -q landed on different rotations:", a, "vs", b)
		}

	}

}

func TestQuaternionSlerpNearCoincident(t *testing.T) {

	q1 := NewQuaternionFromAxisAngle(VecY, 0.4)
	q2 := NewQuaternionFromAxisAngle(VecY, 0.4001)

	// dot is far above the 0.9995 cutoff here, so this runs through the lerp fallback.
	mid := q1.Slerp(q2, 0.5)

	if !mid.IsNormalized(1e-9) {
		t.Fatal("lerp fallback did not renormalize:", mid.Magnitude())
	}

	if !mid.SameRotation(NewQuaternionFromAxisAngle(VecY, 0.40005), 1e-9) {
		t.Fatal("lerp fallback landed away from the midpoint:", mid)
	}

}

// Lerp's documented contract: the blend is plain and the result is NOT renormalized.
func TestQuaternionLerpDoesNotRenormalize(t *testing.T) {

	q1 := NewQuaternionFromAxisAngle(VecY, 0)
	q2 := NewQuaternionFromAxisAngle(VecY, math.Pi/2)

	mid := q1.Lerp(q2, 0.5)

	if mid.IsNormalized(1e-6) {
		t.Fatal("expected the linear blend of distant rotations to dip inside the unit sphere")
	}

	if !q1.Lerp(q2, 0).Equals(q1) || !q1.Lerp(q2, 1).Equals(q2) {
		t.Fatal("lerp endpoints are off")
	}

}

func TestQuaternionSquadEndpoints(t *testing.T) {

	q1 := NewQuaternionFromAxisAngle(VecX, 0.3)
	q2 := NewQuaternionFromAxisAngle(VecY, 1.2)
	a := NewQuaternionFromAxisAngle(VecZ, 0.5)
	b := NewQuaternionFromAxisAngle(VecZ, -0.5)

	if !q1.Squad(q2, a, b, 0).Equals(q1) {
		t.Fatal("squad at 0 did not return the starting quaternion")
	}

	if !q1.Squad(q2, a, b, 1).SameRotation(q2, 1e-9) {
		t.Fatal("squad at 1 did not return the target rotation")
	}

	for _, percent := range []float64{0.25, 0.5, 0.75} {
		if blended := q1.Squad(q2, a, b, percent); !blended.IsNormalized(1e-6) {
			t.Fatal("squad result is not unit length at", percent, ":", blended.Magnitude())
		}
	}

}

func TestQuaternionRandomIsUniformlyUnit(t *testing.T) {

	positiveW := 0

	for i := 0; i < 500; i++ {

		quat := NewQuaternionRandom()

		if !quat.IsNormalized(1e-9) {
			t.Fatal("random quaternion is not unit length:", quat.Magnitude())
		}

		if quat.W > 0 {
			positiveW++
		}

	}

	// Both hemispheres of the 4-sphere should show up.
	if positiveW == 0 || positiveW == 500 {
		t.Fatal("random quaternions all landed on one hemisphere; W was positive", positiveW, "out of 500 times")
	}

}

func TestQuaternionJSON(t *testing.T) {

	quat := NewQuaternionFromAxisAngle(NewVector(1, 2, -1).Unit(), 0.7)

	data, err := json.Marshal(quat)
	if err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{`"x":`, `"y":`, `"z":`, `"w":`} {
		if !strings.Contains(string(data), field) {
			t.Fatal("marshaled quaternion", string(data), "is missing the", field, "field")
		}
	}

	parsed := Quaternion{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}

	if !parsed.ApproxEquals(quat, 1e-12) {
		t.Fatal("JSON round trip changed the quaternion:", parsed, "vs", quat)
	}

}

func TestQuaternionFloats(t *testing.T) {

	quat := NewQuaternion(0.1, 0.2, 0.3, 0.4)

	if !NewQuaternionFromFloats(quat.ToFloats()).Equals(quat) {
		t.Fatal("float array round trip changed the quaternion")
	}

	floats32 := quat.ToFloats32()
	if floats32[1] != 0.2 || floats32[3] != 0.4 {
		t.Fatal("ToFloats32 reordered the components:", floats32)
	}

}

func BenchmarkQuaternionMult(b *testing.B) {

	b.ReportAllocs()

	q1 := NewQuaternionFromAxisAngle(VecY, 0.3)
	q2 := NewQuaternionFromAxisAngle(VecX, 1.1)

	for i := 0; i < b.N; i++ {
		q1 = q1.Mult(q2)
	}

}

func BenchmarkQuaternionSlerp(b *testing.B) {

	b.ReportAllocs()

	q1 := NewQuaternionFromAxisAngle(VecY, 0.3)
	q2 := NewQuaternionFromAxisAngle(VecX, 1.1)

	for i := 0; i < b.N; i++ {
		q1.Slerp(q2, 0.37)
	}

}

func BenchmarkQuaternionRotateVector(b *testing.B) {

	b.ReportAllocs()

	quat := NewQuaternionFromAxisAngle(NewVector(1, 1, 0).Unit(), 0.76)
	vec := NewVector(1, 2, 3)

	for i := 0; i < b.N; i++ {
		vec = quat.RotateVector(vec)
	}

}
