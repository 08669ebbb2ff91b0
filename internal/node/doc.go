// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package node implements the recursive, ordered, symbolically-keyed value
// tree that the settings engine is built on.
//
// Core concepts:
//   - Node: one level (or an entire tree) of configuration. Keys are of the
//     distinct Key type; values are scalars, sequences, nested *Node trees,
//     or Deferred computations.
//   - Deferred: a zero-argument computation stored as a value and evaluated
//     on every read, never at assignment time and never cached.
//
// Any mapping assigned into a Node is recursively converted into a new owned
// *Node tree, so a Node never aliases caller-provided structures. Reads of
// absent keys fail with ErrNotFound; probing for optional values goes
// through [Node.Present] instead.
package node
