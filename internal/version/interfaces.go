// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package version resolves the running application's version string for the
// settings tree.
//
// Resolution is two-tier: installed package metadata is queried first, and
// on failure the source-control revision of the working tree is used. Each
// tier fails independently under its own timeout; only total failure of all
// tiers yields the Unknown sentinel, never an error.
package version

import "context"

// Source yields a version string from one backing system. Implementations
// must treat an inability to answer as an error, not as an empty string.
type Source interface {
	// Version returns the version string, honoring ctx cancellation.
	Version(ctx context.Context) (string, error)
}
