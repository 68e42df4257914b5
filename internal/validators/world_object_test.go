package validators

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/worldsync/models"
)

func TestNormalizeAssetPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "file at root", input: "FlightHelmet.gltf", want: "FlightHelmet.gltf"},
		{name: "nested", input: "models/FlightHelmet.gltf", want: "models/FlightHelmet.gltf"},
		{name: "trimmed", input: "  models/a.gltf  ", want: "models/a.gltf"},
		{name: "backslashes", input: `models\props\crate.gltf`, want: "models/props/crate.gltf"},
		{name: "nfc", input: "models/cafe\u0301.gltf", want: "models/caf\u00e9.gltf"},
		{name: "dot segment allowed", input: "./a.gltf", want: "./a.gltf"},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "unix absolute", input: "/etc/passwd", wantErr: true},
		{name: "unc", input: `\\server\share\a.gltf`, wantErr: true},
		{name: "drive letter", input: `C:\assets\a.gltf`, wantErr: true},
		{name: "drive letter lower", input: "d:a.gltf", wantErr: true},
		{name: "traversal", input: "models/../../secret", wantErr: true},
		{name: "traversal backslash", input: `models\..\x`, wantErr: true},
		{name: "double slash", input: "models//a.gltf", wantErr: true},
		{name: "trailing slash", input: "models/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAssetPath(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAssetPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTransform(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name    string
		t       models.Transform
		wantErr bool
	}{
		{name: "identity", t: models.IdentityTransform()},
		{name: "moved", t: models.Transform{Translation: models.Vec3{X: 5}, Rotation: models.QuatIdentity, Scale: models.Vec3One}},
		{name: "nan translation", t: models.Transform{Translation: models.Vec3{X: nan}, Rotation: models.QuatIdentity, Scale: models.Vec3One}, wantErr: true},
		{name: "inf scale", t: models.Transform{Rotation: models.QuatIdentity, Scale: models.Vec3{X: inf, Y: 1, Z: 1}}, wantErr: true},
		{name: "zero quaternion", t: models.Transform{Scale: models.Vec3One}, wantErr: true},
		{name: "zero scale", t: models.Transform{Rotation: models.QuatIdentity, Scale: models.Vec3{X: 1, Y: 0, Z: 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransform(tt.t)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransform)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateCollisionShape(t *testing.T) {
	tests := []struct {
		name    string
		shape   *models.CollisionShape
		wantErr bool
	}{
		{name: "none", shape: nil},
		{name: "cuboid", shape: models.Cuboid(models.Vec3One)},
		{name: "ball", shape: models.Ball(0.5)},
		{name: "capsule", shape: models.Capsule(1, 0.25)},
		{name: "heightfield", shape: models.HeightfieldShape(models.Heightfield{Width: 2, Height: 2, Heights: []float32{0, 1, 1, 0}, Scale: models.Vec3One})},
		{name: "hull", shape: models.ConvexHull(models.Vec3{}, models.Vec3{X: 1}, models.Vec3{Y: 1}, models.Vec3{Z: 1})},
		{name: "cuboid without extents", shape: &models.CollisionShape{Kind: models.CollisionCuboid}, wantErr: true},
		{name: "negative ball", shape: models.Ball(-1), wantErr: true},
		{name: "flat capsule", shape: models.Capsule(0, 1), wantErr: true},
		{name: "short heightfield", shape: models.HeightfieldShape(models.Heightfield{Width: 2, Height: 2, Heights: []float32{0}}), wantErr: true},
		{name: "degenerate hull", shape: models.ConvexHull(models.Vec3{}, models.Vec3{X: 1}), wantErr: true},
		{name: "unknown kind", shape: &models.CollisionShape{Kind: "mesh"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCollisionShape(tt.shape)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCollisionShape)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWorldObjectValidator_Validate(t *testing.T) {
	v := NewWorldObjectValidator()
	ctx := context.Background()
	good := models.WorldObject{ID: "obj-1", AssetPath: "a.gltf", Transform: models.IdentityTransform()}

	assert.NoError(t, v.Validate(ctx, good))
	assert.NoError(t, v.Validate(ctx, &good))
	assert.NoError(t, v.Validate(ctx, models.InsertObjectRequest{Object: good}))
	assert.NoError(t, v.Validate(ctx, models.SetTransformRequest{ID: "obj-1", Transform: models.IdentityTransform()}))
	assert.NoError(t, v.Validate(ctx, models.SetCollisionRequest{ID: "obj-1"}))
	assert.NoError(t, v.Validate(ctx, models.DeleteObjectRequest{ID: "obj-1"}))
	assert.NoError(t, v.Validate(ctx, models.ReplaceAllRequest{}))

	noID := good
	noID.ID = ""
	assert.ErrorIs(t, v.Validate(ctx, noID), ErrInvalidID)

	badPath := good
	badPath.AssetPath = "/abs.gltf"
	assert.ErrorIs(t, v.Validate(ctx, badPath), ErrInvalidAssetPath)
	assert.NoError(t, v.Validate(ctx, badPath, FieldID, FieldTransform), "fields restrict validation")

	assert.ErrorIs(t, v.Validate(ctx, models.ReplaceAllRequest{Objects: []models.WorldObject{good, good}}), ErrDuplicateID)
	assert.ErrorIs(t, v.Validate(ctx, good, "colour"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}
