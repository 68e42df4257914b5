// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync agent runtime.
//
// It wires the snapshot and journal storages, the remote adapter, the sync
// session, the terminal sync monitor, and the optional metrics and status
// listener into a single process lifecycle.
package client
