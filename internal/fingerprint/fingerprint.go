// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fingerprint computes canonical content hashes of world-object sets.
//
// A fingerprint depends only on the semantic fields of each row (id,
// asset_path, transform, collision_shape) and never on input order or on
// snapshot metadata such as saved_at or schema_version. Two sets with equal
// fingerprints are treated as the same committed state.
package fingerprint

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"

	"github.com/MKhiriev/worldsync/models"
)

// Domain separates world-set fingerprints from any other hash computed over
// the same bytes. The version suffix allows the encoding to evolve.
const Domain = "worldsync/fingerprint/v1"

// Size is the length of a Hash in bytes.
const Size = blake2b.Size256

// Hash is the fingerprint of a world-object set.
type Hash [Size]byte

// String returns the lowercase hex form of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters of h for display.
func (h Hash) Short() string {
	return h.String()[:12]
}

// IsZero reports whether h is the zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Parse decodes a hex fingerprint produced by Hash.String.
func Parse(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("decode fingerprint: %w", err)
	}
	if len(b) != Size {
		return h, fmt.Errorf("decode fingerprint: want %d bytes, got %d", Size, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Canonicalize returns a deep copy of objects sorted by id ascending with
// NFC-normalized asset paths. The input is not modified.
func Canonicalize(objects []models.WorldObject) []models.WorldObject {
	out := models.CloneObjects(objects)
	if out == nil {
		out = []models.WorldObject{}
	}
	for i := range out {
		out[i].AssetPath = norm.NFC.String(out[i].AssetPath)
	}
	slices.SortStableFunc(out, func(a, b models.WorldObject) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Of returns the fingerprint of objects. The result is independent of the
// order of objects.
func Of(objects []models.WorldObject) Hash {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(Domain))
	h.Write([]byte{0x00})
	h.Write(Encode(objects))

	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Compare reports whether two fingerprints denote the same state.
func Compare(a, b Hash) models.ComparisonResult {
	if a == b {
		return models.ComparisonMatch
	}
	return models.ComparisonDivergent
}

// Encode returns the canonical byte form of objects: a uvarint row count
// followed by each row of the canonicalized set in fixed field order.
func Encode(objects []models.WorldObject) []byte {
	canon := Canonicalize(objects)

	var buf bytes.Buffer
	writeUvarint(&buf, uint64(len(canon)))
	for _, obj := range canon {
		encodeRow(&buf, obj)
	}
	return buf.Bytes()
}

// Diff lists the ids that only one side holds and the ids whose semantic
// content differs. Rows are compared through their canonical encoding, so
// Diff is empty exactly when the fingerprints of both sets match.
func Diff(snapshot, remote []models.WorldObject) models.Divergence {
	snap := rowEncodings(snapshot)
	rem := rowEncodings(remote)

	d := models.Divergence{
		OnlyInSnapshot: []string{},
		OnlyInRemote:   []string{},
		Differing:      []string{},
	}
	for id, enc := range snap {
		other, ok := rem[id]
		switch {
		case !ok:
			d.OnlyInSnapshot = append(d.OnlyInSnapshot, id)
		case !bytes.Equal(enc, other):
			d.Differing = append(d.Differing, id)
		}
	}
	for id := range rem {
		if _, ok := snap[id]; !ok {
			d.OnlyInRemote = append(d.OnlyInRemote, id)
		}
	}

	slices.Sort(d.OnlyInSnapshot)
	slices.Sort(d.OnlyInRemote)
	slices.Sort(d.Differing)
	return d
}

func rowEncodings(objects []models.WorldObject) map[string][]byte {
	out := make(map[string][]byte, len(objects))
	for _, obj := range objects {
		obj.AssetPath = norm.NFC.String(obj.AssetPath)
		var buf bytes.Buffer
		encodeRow(&buf, obj)
		out[obj.ID] = buf.Bytes()
	}
	return out
}

func encodeRow(buf *bytes.Buffer, obj models.WorldObject) {
	writeString(buf, obj.ID)
	writeString(buf, obj.AssetPath)
	writeVec3(buf, obj.Translation)
	writeFloat(buf, obj.Rotation.X)
	writeFloat(buf, obj.Rotation.Y)
	writeFloat(buf, obj.Rotation.Z)
	writeFloat(buf, obj.Rotation.W)
	writeVec3(buf, obj.Scale)
	encodeShape(buf, obj.CollisionShape)
}

func encodeShape(buf *bytes.Buffer, s *models.CollisionShape) {
	if s == nil {
		buf.WriteByte(0)
		return
	}
	buf.WriteByte(1)
	writeString(buf, string(s.Kind))

	switch s.Kind {
	case models.CollisionCuboid:
		var he models.Vec3
		if s.HalfExtents != nil {
			he = *s.HalfExtents
		}
		writeVec3(buf, he)
	case models.CollisionBall:
		writeFloat(buf, s.Radius)
	case models.CollisionCapsule:
		writeFloat(buf, s.HalfHeight)
		writeFloat(buf, s.Radius)
	case models.CollisionHeightfield:
		var hf models.Heightfield
		if s.Heightfield != nil {
			hf = *s.Heightfield
		}
		writeUvarint(buf, uint64(hf.Width))
		writeUvarint(buf, uint64(hf.Height))
		writeUvarint(buf, uint64(len(hf.Heights)))
		for _, v := range hf.Heights {
			writeFloat(buf, v)
		}
		writeVec3(buf, hf.Scale)
	case models.CollisionConvexHull:
		writeUvarint(buf, uint64(len(s.Points)))
		for _, p := range s.Points {
			writeVec3(buf, p)
		}
	default:
		// Unknown variants still participate through every field.
		writeFloat(buf, s.Radius)
		writeFloat(buf, s.HalfHeight)
		writeUvarint(buf, uint64(len(s.Points)))
		for _, p := range s.Points {
			writeVec3(buf, p)
		}
	}
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeVec3(buf *bytes.Buffer, v models.Vec3) {
	writeFloat(buf, v.X)
	writeFloat(buf, v.Y)
	writeFloat(buf, v.Z)
}

// writeFloat writes f big-endian. Negative zero is folded into zero and every
// NaN into a single quiet NaN so that equal values always encode equally.
func writeFloat(buf *bytes.Buffer, f float32) {
	var bits uint32
	switch {
	case f == 0:
		bits = 0
	case math.IsNaN(float64(f)):
		bits = 0x7fc00000
	default:
		bits = math.Float32bits(f)
	}
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], bits)
	buf.Write(tmp[:])
}
