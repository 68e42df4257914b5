package validators

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/MKhiriev/worldsync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the object identifier.
	FieldID = "id"

	// FieldAssetPath targets the asset path relative to the asset root.
	FieldAssetPath = "asset_path"

	// FieldTransform targets translation, rotation, and scale.
	FieldTransform = "transform"

	// FieldCollisionShape targets the optional collision variant.
	FieldCollisionShape = "collision_shape"
)

var allFields = []string{FieldID, FieldAssetPath, FieldTransform, FieldCollisionShape}

// WorldObjectValidator validates world objects and the reducer requests that
// carry them.
type WorldObjectValidator struct {
}

func NewWorldObjectValidator() Validator {
	return &WorldObjectValidator{}
}

func (v *WorldObjectValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.WorldObject:
		return v.validateObject(value, fields...)
	case *models.WorldObject:
		return v.validateObject(*value, fields...)

	case models.Transform:
		return ValidateTransform(value)
	case *models.CollisionShape:
		return ValidateCollisionShape(value)

	case models.InsertObjectRequest:
		return v.validateObject(value.Object)
	case models.SetTransformRequest:
		return v.validateObject(models.WorldObject{ID: value.ID, Transform: value.Transform}, FieldID, FieldTransform)
	case models.SetCollisionRequest:
		return v.validateObject(models.WorldObject{ID: value.ID, CollisionShape: value.CollisionShape}, FieldID, FieldCollisionShape)
	case models.DeleteObjectRequest:
		return v.validateObject(models.WorldObject{ID: value.ID}, FieldID)
	case models.ReplaceAllRequest:
		return v.validateObjects(value.Objects)
	case []models.WorldObject:
		return v.validateObjects(value)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *WorldObjectValidator) validateObject(obj models.WorldObject, fields ...string) error {
	if len(fields) == 0 {
		fields = allFields
	}

	for _, field := range fields {
		switch field {
		case FieldID:
			if obj.ID == "" {
				return ErrInvalidID
			}
		case FieldAssetPath:
			if _, err := NormalizeAssetPath(obj.AssetPath); err != nil {
				return err
			}
		case FieldTransform:
			if err := ValidateTransform(obj.Transform); err != nil {
				return err
			}
		case FieldCollisionShape:
			if err := ValidateCollisionShape(obj.CollisionShape); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *WorldObjectValidator) validateObjects(objects []models.WorldObject) error {
	seen := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		if err := v.validateObject(obj); err != nil {
			return fmt.Errorf("object %q: %w", obj.ID, err)
		}
		if _, dup := seen[obj.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, obj.ID)
		}
		seen[obj.ID] = struct{}{}
	}
	return nil
}

// ValidateTransform requires finite components, a non-zero rotation
// quaternion, and non-zero scale factors.
func ValidateTransform(t models.Transform) error {
	components := []float32{
		t.Translation.X, t.Translation.Y, t.Translation.Z,
		t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W,
		t.Scale.X, t.Scale.Y, t.Scale.Z,
	}
	if slices.ContainsFunc(components, notFinite) {
		return fmt.Errorf("%w: non-finite component", ErrInvalidTransform)
	}

	r := t.Rotation
	if r.X == 0 && r.Y == 0 && r.Z == 0 && r.W == 0 {
		return fmt.Errorf("%w: zero rotation quaternion", ErrInvalidTransform)
	}
	if t.Scale.X == 0 || t.Scale.Y == 0 || t.Scale.Z == 0 {
		return fmt.Errorf("%w: zero scale", ErrInvalidTransform)
	}
	return nil
}

// ValidateCollisionShape checks that a shape carries the fields of its kind
// with finite, positive dimensions. A nil shape is valid.
func ValidateCollisionShape(s *models.CollisionShape) error {
	if s == nil {
		return nil
	}

	positive := func(f float32) bool { return !notFinite(f) && f > 0 }

	switch s.Kind {
	case models.CollisionCuboid:
		he := s.HalfExtents
		if he == nil || !positive(he.X) || !positive(he.Y) || !positive(he.Z) {
			return fmt.Errorf("%w: cuboid needs positive half extents", ErrInvalidCollisionShape)
		}
	case models.CollisionBall:
		if !positive(s.Radius) {
			return fmt.Errorf("%w: ball needs a positive radius", ErrInvalidCollisionShape)
		}
	case models.CollisionCapsule:
		if !positive(s.Radius) || !positive(s.HalfHeight) {
			return fmt.Errorf("%w: capsule needs positive radius and half height", ErrInvalidCollisionShape)
		}
	case models.CollisionHeightfield:
		hf := s.Heightfield
		if hf == nil || hf.Width == 0 || hf.Height == 0 || uint64(len(hf.Heights)) != uint64(hf.Width)*uint64(hf.Height) {
			return fmt.Errorf("%w: heightfield needs width*height samples", ErrInvalidCollisionShape)
		}
		if slices.ContainsFunc(hf.Heights, notFinite) {
			return fmt.Errorf("%w: non-finite height", ErrInvalidCollisionShape)
		}
	case models.CollisionConvexHull:
		if len(s.Points) < 4 {
			return fmt.Errorf("%w: convex hull needs at least 4 points", ErrInvalidCollisionShape)
		}
		for _, p := range s.Points {
			if notFinite(p.X) || notFinite(p.Y) || notFinite(p.Z) {
				return fmt.Errorf("%w: non-finite hull point", ErrInvalidCollisionShape)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCollisionShape, s.Kind)
	}
	return nil
}

func notFinite(f float32) bool {
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}
