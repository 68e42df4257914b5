package models

import "slices"

// CollisionKind names the variant held by a CollisionShape.
type CollisionKind string

const (
	CollisionCuboid      CollisionKind = "cuboid"
	CollisionBall        CollisionKind = "ball"
	CollisionCapsule     CollisionKind = "capsule"
	CollisionHeightfield CollisionKind = "heightfield"
	CollisionConvexHull  CollisionKind = "convex_hull"
)

// Heightfield is a grid of heights sampled over the XZ plane.
type Heightfield struct {
	Width   uint32    `json:"width"`
	Height  uint32    `json:"height"`
	Heights []float32 `json:"heights"`
	Scale   Vec3      `json:"scale"`
}

// CollisionShape is a tagged variant describing the physical boundary of an
// object. Only the fields belonging to Kind are meaningful; geometry is
// produced elsewhere and treated here as an opaque comparable value.
type CollisionShape struct {
	Kind CollisionKind `json:"kind"`

	// HalfExtents is set for cuboids.
	HalfExtents *Vec3 `json:"half_extents,omitempty"`

	// Radius is set for balls and capsules.
	Radius float32 `json:"radius,omitempty"`

	// HalfHeight is set for capsules.
	HalfHeight float32 `json:"half_height,omitempty"`

	// Heightfield is set for heightfields.
	Heightfield *Heightfield `json:"heightfield,omitempty"`

	// Points is set for convex hulls.
	Points []Vec3 `json:"points,omitempty"`
}

func Cuboid(halfExtents Vec3) *CollisionShape {
	return &CollisionShape{Kind: CollisionCuboid, HalfExtents: &halfExtents}
}

func Ball(radius float32) *CollisionShape {
	return &CollisionShape{Kind: CollisionBall, Radius: radius}
}

func Capsule(halfHeight, radius float32) *CollisionShape {
	return &CollisionShape{Kind: CollisionCapsule, HalfHeight: halfHeight, Radius: radius}
}

func HeightfieldShape(hf Heightfield) *CollisionShape {
	return &CollisionShape{Kind: CollisionHeightfield, Heightfield: &hf}
}

func ConvexHull(points ...Vec3) *CollisionShape {
	return &CollisionShape{Kind: CollisionConvexHull, Points: points}
}

// Equal reports whether two shapes are the same. Two nil shapes are equal.
func (s *CollisionShape) Equal(other *CollisionShape) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	if s.Kind != other.Kind || s.Radius != other.Radius || s.HalfHeight != other.HalfHeight {
		return false
	}
	if (s.HalfExtents == nil) != (other.HalfExtents == nil) {
		return false
	}
	if s.HalfExtents != nil && *s.HalfExtents != *other.HalfExtents {
		return false
	}
	if (s.Heightfield == nil) != (other.Heightfield == nil) {
		return false
	}
	if s.Heightfield != nil {
		a, b := s.Heightfield, other.Heightfield
		if a.Width != b.Width || a.Height != b.Height || a.Scale != b.Scale || !slices.Equal(a.Heights, b.Heights) {
			return false
		}
	}
	return slices.Equal(s.Points, other.Points)
}

// Clone returns a deep copy of s.
func (s *CollisionShape) Clone() *CollisionShape {
	if s == nil {
		return nil
	}
	c := *s
	if s.HalfExtents != nil {
		he := *s.HalfExtents
		c.HalfExtents = &he
	}
	if s.Heightfield != nil {
		hf := *s.Heightfield
		hf.Heights = slices.Clone(s.Heightfield.Heights)
		c.Heightfield = &hf
	}
	c.Points = slices.Clone(s.Points)
	return &c
}
