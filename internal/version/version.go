// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package version

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MKhiriev/go-settings/internal/logger"
)

// Unknown is the sentinel version string returned when every source fails.
const Unknown = "Unknown"

// sourceTimeout bounds each individual source query. Both backing commands
// are local and point-in-time, so a few seconds is generous.
const sourceTimeout = 5 * time.Second

// commandRunner executes an external command and returns its trimmed stdout.
// Injected in tests.
type commandRunner func(ctx context.Context, name string, args ...string) (string, error)

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// PackageSource queries the installed package metadata (rpm database) for
// the version of the named package.
type PackageSource struct {
	pkg string
	run commandRunner
}

// NewPackageSource constructs a [PackageSource] for pkg.
func NewPackageSource(pkg string) *PackageSource {
	return &PackageSource{pkg: pkg, run: runCommand}
}

// Version implements [Source] via `rpm -q --queryformat`.
func (s *PackageSource) Version(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "rpm", "-q", "--queryformat", "%{VERSION}-%{RELEASE}", s.pkg)
	if err != nil {
		return "", fmt.Errorf("query package %q: %w", s.pkg, err)
	}
	if out == "" {
		return "", fmt.Errorf("package %q reported an empty version", s.pkg)
	}
	return out, nil
}

// SCMSource queries the current source-control revision of a checkout,
// used on development hosts where no package is installed.
type SCMSource struct {
	dir string
	run commandRunner
}

// NewSCMSource constructs a [SCMSource] for the checkout at dir.
func NewSCMSource(dir string) *SCMSource {
	return &SCMSource{dir: dir, run: runCommand}
}

// Version implements [Source] via `git rev-parse --short HEAD`.
func (s *SCMSource) Version(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "git", "-C", s.dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("query revision of %q: %w", s.dir, err)
	}
	if out == "" {
		return "", errors.New("source control reported an empty revision")
	}
	return out, nil
}

// Resolver tries its sources in order and returns the first answer.
type Resolver struct {
	sources []Source
	log     *logger.Logger
}

// NewResolver constructs a [Resolver] over sources, tried in the given
// order. log may not be nil; use logger.Nop in tests.
func NewResolver(log *logger.Logger, sources ...Source) *Resolver {
	return &Resolver{sources: sources, log: log}
}

// Resolve returns the first version string any source yields, or Unknown if
// all of them fail. Individual source failures are logged at debug level
// and never propagate.
func (r *Resolver) Resolve(ctx context.Context) string {
	for _, src := range r.sources {
		sctx, cancel := context.WithTimeout(ctx, sourceTimeout)
		v, err := src.Version(sctx)
		cancel()

		if err != nil {
			r.log.Debug().Err(err).Type("source", src).Msg("version source failed")
			continue
		}
		return v
	}

	return Unknown
}
