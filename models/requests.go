// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// InsertObjectRequest is the body of the insert_object reducer call.
type InsertObjectRequest struct {
	// Object is the full row to insert. Its ID is generated by the client.
	Object WorldObject `json:"object"`
}

// SetTransformRequest is the body of the set_transform reducer call.
type SetTransformRequest struct {
	ID        string    `json:"id"`
	Transform Transform `json:"transform"`
}

// DeleteObjectRequest is the body of the delete_object reducer call.
type DeleteObjectRequest struct {
	ID string `json:"id"`
}

// SetCollisionRequest is the body of the set_collision reducer call.
// A nil CollisionShape clears the shape.
type SetCollisionRequest struct {
	ID             string          `json:"id"`
	CollisionShape *CollisionShape `json:"collision_shape"`
}

// ReplaceAllRequest is the body of the replace_all reducer call. The remote
// store clears the table and reinserts Objects in one transaction.
type ReplaceAllRequest struct {
	Objects []WorldObject `json:"objects"`
}

// RowsResponse is the full table at sequence number Seq. A subscriber
// applies it as its initial row set and then polls events after Seq.
type RowsResponse struct {
	Rows []WorldObject `json:"rows"`
	Seq  uint64        `json:"seq"`
}

// EventsResponse carries committed row events after a requested sequence
// number. Seq is the sequence number of the last event included, or the
// requested one when Events is empty.
type EventsResponse struct {
	Events []RowEvent `json:"events"`
	Seq    uint64     `json:"seq"`
}

// WipeResponse reports how many rows a dev wipe deleted and the table
// sequence number after it.
type WipeResponse struct {
	Deleted int    `json:"deleted"`
	Seq     uint64 `json:"seq"`
}

// ErrorResponse is the body written for failed gateway requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReducerResponse acknowledges an applied reducer call. Seq is the table
// sequence number observed right after the call; the committed events
// themselves arrive through the events stream.
type ReducerResponse struct {
	Seq uint64 `json:"seq"`
}
