// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package settings implements the application's configuration pipeline: it
// discovers the settings file, expands embedded template expressions, parses
// the YAML into a node tree, decrypts embedded database passwords, merges the
// common section with an environment-specific section, computes derived
// values, and validates the result against the declarative contract in
// rules.go.
//
// A Loader exposes three independently memoized views:
//   - Config: the full tree merged for the current runtime environment;
//   - EarlyConfig: the environment-agnostic tree, usable during bootstrap
//     before the runtime environment is known;
//   - DatabaseConfigs: per-environment database settings as string maps,
//     built for the fixed list of known environments.
//
// Each view is computed at most once per Loader; concurrent first requests
// run the pipeline only once, and both results and failures are memoized.
// A tree that fails validation is never exposed.
package settings
