package lattice

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// yaw returns a rotation of deg degrees about +y.
func yaw(deg float64) r3.Rotation {
	half := deg * math.Pi / 360
	return r3.Rotation{Real: math.Cos(half), Jmag: math.Sin(half)}
}

func TestOrigin_Defaults(t *testing.T) {
	o := NewOrigin()
	assert.False(t, o.IsAnchored())
	assert.Nil(t, o.Anchor())
	assertVec(t, "position", r3.Vec{}, o.Position())
	assert.Equal(t, Identity, o.Rotation())
	assertVec(t, "scale", One, o.Scale())
}

func TestOrigin_ManualValues(t *testing.T) {
	o := NewOrigin()
	o.SetPosition(vec(1, 2, 3))
	o.SetRotation(yaw(90))
	o.SetScale(vec(2, 2, 2))

	assertVec(t, "position", vec(1, 2, 3), o.Position())
	assert.Equal(t, yaw(90), o.Rotation())
	assertVec(t, "scale", vec(2, 2, 2), o.Scale())
}

func TestOrigin_ZeroRotationBecomesIdentity(t *testing.T) {
	o := NewOrigin()
	o.SetRotation(r3.Rotation{})
	assert.Equal(t, Identity, o.Rotation())
	assertVec(t, "rotated", vec(1, 2, 3), o.Rotation().Rotate(vec(1, 2, 3)))
}

func TestOrigin_TracksAnchorLive(t *testing.T) {
	o := NewOrigin()
	o.SetPosition(vec(-1, -1, -1))

	anchor := NewTransform()
	anchor.SetPosition(vec(5, 0, 0))
	o.AttachAnchor(anchor)
	require.True(t, o.IsAnchored())
	assertVec(t, "anchored position", vec(5, 0, 0), o.Position())

	// Changes to the anchor are seen on the next read without notification.
	anchor.SetPosition(vec(6, 1, 0))
	anchor.SetRotation(yaw(180))
	anchor.SetScale(vec(3, 3, 3))
	assertVec(t, "moved position", vec(6, 1, 0), o.Position())
	assert.Equal(t, yaw(180), o.Rotation())
	assertVec(t, "anchored scale", vec(3, 3, 3), o.Scale())

	// Manual values are retained untouched.
	assertVec(t, "manual position", vec(-1, -1, -1), o.ManualPosition())
	assert.Equal(t, Identity, o.ManualRotation())
	assertVec(t, "manual scale", One, o.ManualScale())
}

func TestOrigin_ExpiredAnchorFallsBack(t *testing.T) {
	o := NewOrigin()
	o.SetPosition(vec(1, 1, 1))

	anchor := NewTransform()
	anchor.SetPosition(vec(9, 9, 9))
	o.AttachAnchor(anchor)
	assertVec(t, "live", vec(9, 9, 9), o.Position())

	anchor.Destroy()
	assert.True(t, anchor.Expired())
	assert.False(t, o.IsAnchored())
	assert.Same(t, anchor, o.Anchor(), "expired anchor stays referenced")
	assertVec(t, "fallback", vec(1, 1, 1), o.Position())
	assertVec(t, "fallback again", vec(1, 1, 1), o.Position())
}

func TestOrigin_TypedNilAnchor(t *testing.T) {
	var anchor *Transform
	o := NewOrigin()
	o.AttachAnchor(anchor)
	assert.False(t, o.IsAnchored())
	assertVec(t, "scale", One, o.Scale())
}

func TestOrigin_DetachAnchor(t *testing.T) {
	o := NewOrigin()
	anchor := NewTransform()
	anchor.SetScale(vec(4, 4, 4))
	o.AttachAnchor(anchor)
	assertVec(t, "anchored", vec(4, 4, 4), o.Scale())

	o.DetachAnchor()
	assert.Nil(t, o.Anchor())
	assertVec(t, "detached", One, o.Scale())
}

func TestOrigin_SettersNotify(t *testing.T) {
	o := NewOrigin()
	n := counter(o.Subscribe)

	o.SetPosition(vec(1, 0, 0))
	o.SetRotation(yaw(45))
	o.SetScale(vec(2, 2, 2))
	o.AttachAnchor(NewTransform())
	o.DetachAnchor()
	assert.Equal(t, 5, *n)

	_ = o.Position()
	_ = o.Rotation()
	_ = o.Scale()
	_ = o.IsAnchored()
	assert.Equal(t, 5, *n, "reads must not notify")
}

func TestNewOriginFrom(t *testing.T) {
	_, err := NewOriginFrom(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	src := NewOrigin()
	src.SetPosition(vec(1, 2, 3))
	src.SetRotation(yaw(30))
	src.SetScale(vec(2, 1, 1))
	anchor := NewTransform()
	src.AttachAnchor(anchor)
	n := counter(src.Subscribe)

	cp, err := NewOriginFrom(src)
	require.NoError(t, err)
	assert.Same(t, anchor, cp.Anchor(), "anchor reference is shared")
	assertVec(t, "manual position", vec(1, 2, 3), cp.ManualPosition())
	assert.Equal(t, yaw(30), cp.ManualRotation())
	assertVec(t, "manual scale", vec(2, 1, 1), cp.ManualScale())

	cp.SetPosition(vec(0, 0, 0))
	assertVec(t, "template untouched", vec(1, 2, 3), src.ManualPosition())
	assert.Equal(t, 0, *n, "subscribers are not copied")
}

func TestTransform_NewHasIdentity(t *testing.T) {
	a, b := NewTransform(), NewTransform()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, Identity, a.Rotation())
	assertVec(t, "scale", One, a.Scale())
	assert.False(t, a.Expired())
}
