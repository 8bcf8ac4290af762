package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Space selects the frame a rotation is applied in
type Space int

const (
	SpaceSelf Space = iota
	SpaceWorld
)

// Transform holds a local pose relative to Parent
type Transform struct {
	BaseComponent
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Parent   *Transform
	Children []*Transform
}

func NewTransform() *Transform {
	return &Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetParent reparents t, keeping its local pose. A nil parent detaches it.
func (t *Transform) SetParent(parent *Transform) {
	if t.Parent == parent {
		return
	}
	if t.Parent != nil {
		siblings := t.Parent.Children
		for i, c := range siblings {
			if c == t {
				t.Parent.Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	t.Parent = parent
	if parent != nil {
		parent.Children = append(parent.Children, t)
	}
}

// Root walks up to the topmost ancestor
func (t *Transform) Root() *Transform {
	r := t
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

func (t *Transform) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

func (t *Transform) WorldMatrix() mgl32.Mat4 {
	if t.Parent == nil {
		return t.LocalMatrix()
	}
	return t.Parent.WorldMatrix().Mul4(t.LocalMatrix())
}

func (t *Transform) WorldPosition() mgl32.Vec3 {
	if t.Parent == nil {
		return t.Position
	}
	return mgl32.TransformCoordinate(t.Position, t.Parent.WorldMatrix())
}

// SetWorldPosition converts p into the parent's frame
func (t *Transform) SetWorldPosition(p mgl32.Vec3) {
	if t.Parent == nil {
		t.Position = p
		return
	}
	t.Position = mgl32.TransformCoordinate(p, t.Parent.WorldMatrix().Inv())
}

func (t *Transform) WorldRotation() mgl32.Quat {
	if t.Parent == nil {
		return t.Rotation
	}
	return t.Parent.WorldRotation().Mul(t.Rotation)
}

func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	rotation := mgl32.QuatRotate(angle, axis)
	t.Rotation = t.Rotation.Mul(rotation)
}

// EulerQuat builds the rotation for Euler angles in degrees, applied Z
// first, then X, then Y.
func EulerQuat(degrees mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(degrees[0]), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(mgl32.DegToRad(degrees[1]), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(mgl32.DegToRad(degrees[2]), mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// RotateEuler composes an incremental rotation given in degrees. SpaceSelf
// rotates about the object's own axes, SpaceWorld about the world axes.
func (t *Transform) RotateEuler(degrees mgl32.Vec3, space Space) {
	q := EulerQuat(degrees)
	if space == SpaceSelf {
		t.Rotation = t.Rotation.Mul(q).Normalize()
		return
	}
	if t.Parent == nil {
		t.Rotation = q.Mul(t.Rotation).Normalize()
		return
	}
	pw := t.Parent.WorldRotation()
	t.Rotation = pw.Inverse().Mul(q).Mul(pw).Mul(t.Rotation).Normalize()
}

func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.Position = pos
}

func (t *Transform) SetRotation(rot mgl32.Quat) {
	t.Rotation = rot
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}
