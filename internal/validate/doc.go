// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validate implements the declarative validation contract enforced
// on a settings tree before it is exposed to the rest of the application.
//
// Core concepts:
//   - Rule: a single assertion scoped to a key — required, one-of, boolean,
//     non-empty, or a nested rule set that recurses into a sub-node.
//   - Target: the environment context the tree is validated for. An empty
//     environment means early-configuration mode; rules marked ConcreteOnly
//     are skipped both in early mode and for the build environment.
//   - Validator: walks a node.Node against an ordered rule set and fails on
//     the first violated assertion with a descriptive *Error.
//
// Nested rule sets run against an empty node when the sub-tree is absent,
// so missing optional blocks only fail the rules that actually require
// their keys.
package validate
