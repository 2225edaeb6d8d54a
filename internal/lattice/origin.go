package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Origin resolves the lattice position, rotation and scale, either live from
// an attached Anchor or from manually specified fallback values.
type Origin struct {
	anchor Anchor

	position r3.Vec
	rotation r3.Rotation
	scale    r3.Vec

	// expiredLogged is set once the expired anchor has been reported.
	expiredLogged bool

	changed Signal
}

// NewOrigin returns a manual origin at zero with identity rotation and unit
// scale.
func NewOrigin() *Origin {
	return &Origin{rotation: Identity, scale: One}
}

// NewOriginFrom copies template, including its anchor reference. Subscribers
// are not copied.
func NewOriginFrom(template *Origin) (*Origin, error) {
	if template == nil {
		return nil, fmt.Errorf("%w: origin template is nil", ErrInvalidArgument)
	}
	return &Origin{
		anchor:   template.anchor,
		position: template.position,
		rotation: template.rotation,
		scale:    template.scale,
	}, nil
}

// Subscribe registers fn to run after every mutating setter.
func (o *Origin) Subscribe(fn func()) (unsubscribe func()) {
	return o.changed.Subscribe(fn)
}

// IsAnchored reports whether values are read from a live anchor.
func (o *Origin) IsAnchored() bool {
	return anchorLive(o.anchor)
}

// noteExpiry logs, once per attached anchor, that the anchor has expired.
// Only mutating paths call it so reads stay side-effect free.
func (o *Origin) noteExpiry() {
	if o.anchor == nil || o.expiredLogged || anchorLive(o.anchor) {
		return
	}
	opsf("origin anchor %s expired, using manual values", anchorName(o.anchor))
	o.expiredLogged = true
}

// emit records anchor expiry and notifies subscribers.
func (o *Origin) emit() {
	o.noteExpiry()
	o.changed.Emit()
}

// Anchor returns the attached anchor, which may have expired.
func (o *Origin) Anchor() Anchor { return o.anchor }

// AttachAnchor makes the origin track a. No values are copied; passing nil is
// the same as DetachAnchor.
func (o *Origin) AttachAnchor(a Anchor) {
	o.anchor = a
	o.expiredLogged = false
	o.emit()
}

// DetachAnchor switches back to the manual values.
func (o *Origin) DetachAnchor() {
	o.anchor = nil
	o.expiredLogged = false
	o.emit()
}

// Position returns the anchor position, or the manual position.
func (o *Origin) Position() r3.Vec {
	if o.IsAnchored() {
		return o.anchor.Position()
	}
	return o.position
}

// Rotation returns the anchor rotation, or the manual rotation.
func (o *Origin) Rotation() r3.Rotation {
	if o.IsAnchored() {
		return o.anchor.Rotation()
	}
	return o.rotation
}

// Scale returns the anchor scale, or the manual scale.
func (o *Origin) Scale() r3.Vec {
	if o.IsAnchored() {
		return o.anchor.Scale()
	}
	return o.scale
}

// ManualPosition returns the fallback position used when not anchored.
func (o *Origin) ManualPosition() r3.Vec { return o.position }

// ManualRotation returns the fallback rotation used when not anchored.
func (o *Origin) ManualRotation() r3.Rotation { return o.rotation }

// ManualScale returns the fallback scale used when not anchored.
func (o *Origin) ManualScale() r3.Vec { return o.scale }

// SetPosition sets the manual position.
func (o *Origin) SetPosition(p r3.Vec) {
	o.position = p
	o.emit()
}

// SetRotation sets the manual rotation. The zero quaternion is replaced by
// Identity.
func (o *Origin) SetRotation(q r3.Rotation) {
	if isZeroRotation(q) {
		opsf("origin rotation is the zero quaternion, using identity")
		q = Identity
	}
	o.rotation = q
	o.emit()
}

// SetScale sets the manual scale.
func (o *Origin) SetScale(s r3.Vec) {
	o.scale = s
	o.emit()
}

func anchorName(a Anchor) string {
	if t, ok := a.(*Transform); ok && t != nil {
		return t.ID.String()
	}
	return fmt.Sprintf("%T", a)
}
