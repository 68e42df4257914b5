// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// Vec3 is a three-component vector. It is serialized as a JSON array
// [x, y, z] to match the snapshot file layout.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// Quat is a rotation quaternion serialized as a JSON array [x, y, z, w].
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

var (
	// Vec3Zero is the origin.
	Vec3Zero = Vec3{}
	// Vec3One is the unit scale.
	Vec3One = Vec3{X: 1, Y: 1, Z: 1}
	// QuatIdentity is the identity rotation.
	QuatIdentity = Quat{W: 1}
)

func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float32{v.X, v.Y, v.Z})
}

func (v *Vec3) UnmarshalJSON(b []byte) error {
	var arr []float32
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	if len(arr) != 3 {
		return fmt.Errorf("vec3: expected 3 components, got %d", len(arr))
	}
	*v = Vec3{X: arr[0], Y: arr[1], Z: arr[2]}
	return nil
}

func (q Quat) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float32{q.X, q.Y, q.Z, q.W})
}

func (q *Quat) UnmarshalJSON(b []byte) error {
	var arr []float32
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	if len(arr) != 4 {
		return fmt.Errorf("quat: expected 4 components, got %d", len(arr))
	}
	*q = Quat{X: arr[0], Y: arr[1], Z: arr[2], W: arr[3]}
	return nil
}

// Transform is the placement of an object in world space.
type Transform struct {
	// Translation is the position of the object.
	Translation Vec3 `json:"translation"`

	// Rotation is the orientation of the object.
	Rotation Quat `json:"rotation"`

	// Scale holds the scale factors along the X, Y, and Z axes.
	Scale Vec3 `json:"scale"`
}

// IdentityTransform places an object at the origin with no rotation and unit
// scale.
func IdentityTransform() Transform {
	return Transform{Translation: Vec3Zero, Rotation: QuatIdentity, Scale: Vec3One}
}

// WorldObject is a single row of the remote world-object table.
//
// The embedded Transform is flattened into translation/rotation/scale when
// serialized, which is the layout of the snapshot file.
type WorldObject struct {
	// ID is the stable, client-generated identifier of the object.
	ID string `json:"id"`

	// AssetPath is the path of the visual asset relative to the configured
	// asset root, e.g. "models/FlightHelmet.gltf".
	AssetPath string `json:"asset_path"`

	Transform

	// CollisionShape is the optional physical boundary of the object.
	CollisionShape *CollisionShape `json:"collision_shape"`
}

// Equal reports whether o and other carry the same semantic content.
func (o WorldObject) Equal(other WorldObject) bool {
	return o.ID == other.ID &&
		o.AssetPath == other.AssetPath &&
		o.Transform == other.Transform &&
		o.CollisionShape.Equal(other.CollisionShape)
}

// Clone returns a deep copy of o.
func (o WorldObject) Clone() WorldObject {
	o.CollisionShape = o.CollisionShape.Clone()
	return o
}

// CloneObjects returns a deep copy of objects.
func CloneObjects(objects []WorldObject) []WorldObject {
	if objects == nil {
		return nil
	}
	out := make([]WorldObject, len(objects))
	for i, obj := range objects {
		out[i] = obj.Clone()
	}
	return out
}
