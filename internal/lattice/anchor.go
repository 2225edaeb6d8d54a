package lattice

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Anchor is an external object whose live position, rotation and scale an
// Origin may track. Origin only ever reads from it.
type Anchor interface {
	Position() r3.Vec
	Rotation() r3.Rotation
	Scale() r3.Vec
}

// Expirer is implemented by anchors that can be destroyed while still
// referenced. An expired anchor is treated as absent.
type Expirer interface {
	Expired() bool
}

// Transform is a plain anchor for hosts without a scene graph. The caller
// owns it and moves it by calling the setters; every Origin attached to it
// sees the new values on its next read.
type Transform struct {
	ID uuid.UUID

	position r3.Vec
	rotation r3.Rotation
	scale    r3.Vec
	expired  bool
}

// NewTransform returns an identity transform with a fresh ID.
func NewTransform() *Transform {
	return &Transform{
		ID:       uuid.New(),
		rotation: Identity,
		scale:    One,
	}
}

func (t *Transform) Position() r3.Vec      { return t.position }
func (t *Transform) Rotation() r3.Rotation { return t.rotation }
func (t *Transform) Scale() r3.Vec         { return t.scale }

func (t *Transform) SetPosition(p r3.Vec)      { t.position = p }
func (t *Transform) SetRotation(q r3.Rotation) { t.rotation = q }
func (t *Transform) SetScale(s r3.Vec)         { t.scale = s }

// Destroy marks the transform as gone. Origins referencing it fall back to
// their manual values.
func (t *Transform) Destroy() { t.expired = true }

// Expired reports whether Destroy has been called. A nil transform counts as
// expired.
func (t *Transform) Expired() bool { return t == nil || t.expired }

// anchorLive reports whether a refers to a usable anchor.
func anchorLive(a Anchor) bool {
	if a == nil {
		return false
	}
	if e, ok := a.(Expirer); ok && e.Expired() {
		return false
	}
	return true
}
