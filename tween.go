package rotor3d

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RotationTween eases from one rotation to another over a duration, driving Quaternion.Slerp() with a gween
// tween so any of gween's easing curves (ease.Linear, ease.InOutQuad, and so on) can shape the motion.
type RotationTween struct {
	From  Quaternion
	To    Quaternion
	tween *gween.Tween
}

// NewRotationTween creates a new RotationTween easing from the from rotation to the to rotation across the
// duration given (in whatever time unit you pass to Update(), customarily seconds), shaped by the easing
// function provided.
func NewRotationTween(from, to Quaternion, duration float32, easing ease.TweenFunc) *RotationTween {
	return &RotationTween{
		From:  from,
		To:    to,
		tween: gween.New(0, 1, duration, easing),
	}
}

// Update advances the RotationTween by dt and returns the eased rotation for the new position, along with
// whether the tween has finished. Once finished, the returned rotation stays pinned to To.
func (tween *RotationTween) Update(dt float32) (Quaternion, bool) {
	t, finished := tween.tween.Update(dt)
	return tween.From.Slerp(tween.To, float64(t)), finished
}

// Reset rewinds the RotationTween to its starting position.
func (tween *RotationTween) Reset() {
	tween.tween.Reset()
}

// RotationKeyframe is a single keyframed rotation on a RotationTrack.
type RotationKeyframe struct {
	Time     float64 // Time of the keyframe on the track, customarily in seconds
	Rotation Quaternion
}

// RotationTrack is a timeline of rotation keyframes. Sampling the track blends between the surrounding
// keyframes with Quaternion.Squad(), with control rotations derived from the neighboring keyframes, so the
// motion passes through each keyframe without the sudden angular-velocity jumps plain per-segment slerping
// produces.
type RotationTrack struct {
	Keyframes []RotationKeyframe
}

// NewRotationTrack creates a new empty RotationTrack.
func NewRotationTrack() *RotationTrack {
	return &RotationTrack{}
}

// AddKeyframe adds a keyframe to the RotationTrack with the time and rotation given. Keyframes can be added
// in any order; the track keeps them sorted by time.
func (track *RotationTrack) AddKeyframe(time float64, rotation Quaternion) {
	track.Keyframes = append(track.Keyframes, RotationKeyframe{Time: time, Rotation: rotation})
	sort.Slice(track.Keyframes, func(i, j int) bool {
		return track.Keyframes[i].Time < track.Keyframes[j].Time
	})
}

// Duration returns the time of the last keyframe on the RotationTrack.
func (track *RotationTrack) Duration() float64 {
	if len(track.Keyframes) == 0 {
		return 0
	}
	return track.Keyframes[len(track.Keyframes)-1].Time
}

// Rotation samples the RotationTrack at the time given. Times before the first keyframe or after the last
// clamp to the end rotations; an empty track samples as the identity rotation.
func (track *RotationTrack) Rotation(time float64) Quaternion {

	keys := track.Keyframes

	if len(keys) == 0 {
		return NewQuaternionIdentity()
	}

	if first := keys[0]; time <= first.Time {
		return first.Rotation
	}
	if last := keys[len(keys)-1]; time >= last.Time {
		return last.Rotation
	}

	segment := 0
	for i := 0; i < len(keys)-1; i++ {
		if keys[i].Time <= time && time < keys[i+1].Time {
			segment = i
			break
		}
	}

	prev := max(segment-1, 0)
	next := min(segment+2, len(keys)-1)

	q0 := keys[prev].Rotation
	q1 := keys[segment].Rotation
	q2 := keys[segment+1].Rotation
	q3 := keys[next].Rotation

	// Flip signs along the chain so every neighbor pair sits on the same hemisphere of the 4-sphere;
	// otherwise the control rotations below get derived across the long arc.
	if q0.Dot(q1) < 0 {
		q0 = q0.Negated()
	}
	if q1.Dot(q2) < 0 {
		q2 = q2.Negated()
	}
	if q2.Dot(q3) < 0 {
		q3 = q3.Negated()
	}

	t := (time - keys[segment].Time) / (keys[segment+1].Time - keys[segment].Time)

	return q1.Squad(q2, squadControl(q0, q1, q2), squadControl(q1, q2, q3), t)

}

// squadControl derives the inner control rotation for cur on a squad segment from its neighboring keyframe
// rotations: cur * exp(-(log(cur^-1 * next) + log(cur^-1 * prev)) / 4).
func squadControl(prev, cur, next Quaternion) Quaternion {
	inv := cur.Inverted()
	offset := inv.Mult(next).log().Add(inv.Mult(prev).log()).Scale(-0.25)
	return cur.Mult(offset.exp())
}
