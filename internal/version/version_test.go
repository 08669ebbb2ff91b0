package version

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-settings/internal/logger"
)

type stubSource struct {
	version string
	err     error
	calls   int
}

func (s *stubSource) Version(_ context.Context) (string, error) {
	s.calls++
	return s.version, s.err
}

// ── Resolver ──────────────────────────────────────────────────────────────────

// TestResolve_FirstSourceWins verifies that a successful first source stops
// the chain.
func TestResolve_FirstSourceWins(t *testing.T) {
	pkg := &stubSource{version: "4.5.0-1"}
	scm := &stubSource{version: "abc1234"}

	got := NewResolver(logger.Nop(), pkg, scm).Resolve(context.Background())

	assert.Equal(t, "4.5.0-1", got)
	assert.Equal(t, 1, pkg.calls)
	assert.Zero(t, scm.calls)
}

// TestResolve_FallsBackToNextSource verifies that a failing source does not
// propagate its error and the next source is tried.
func TestResolve_FallsBackToNextSource(t *testing.T) {
	pkg := &stubSource{err: errors.New("package not installed")}
	scm := &stubSource{version: "abc1234"}

	got := NewResolver(logger.Nop(), pkg, scm).Resolve(context.Background())

	assert.Equal(t, "abc1234", got)
	assert.Equal(t, 1, pkg.calls)
	assert.Equal(t, 1, scm.calls)
}

// TestResolve_AllSourcesFail verifies the Unknown sentinel when every
// source errors out.
func TestResolve_AllSourcesFail(t *testing.T) {
	pkg := &stubSource{err: errors.New("rpm missing")}
	scm := &stubSource{err: errors.New("not a git checkout")}

	got := NewResolver(logger.Nop(), pkg, scm).Resolve(context.Background())

	assert.Equal(t, Unknown, got)
}

// TestResolve_NoSources verifies that an empty resolver yields Unknown.
func TestResolve_NoSources(t *testing.T) {
	assert.Equal(t, Unknown, NewResolver(logger.Nop()).Resolve(context.Background()))
}

// ── PackageSource / SCMSource ─────────────────────────────────────────────────

func TestPackageSource_Version(t *testing.T) {
	src := NewPackageSource("katello")
	src.run = func(_ context.Context, name string, args ...string) (string, error) {
		assert.Equal(t, "rpm", name)
		assert.Contains(t, args, "katello")
		return "4.5.0-1.el8", nil
	}

	got, err := src.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.5.0-1.el8", got)
}

func TestPackageSource_EmptyOutput(t *testing.T) {
	src := NewPackageSource("katello")
	src.run = func(_ context.Context, _ string, _ ...string) (string, error) {
		return "", nil
	}

	_, err := src.Version(context.Background())
	assert.Error(t, err)
}

func TestSCMSource_Version(t *testing.T) {
	src := NewSCMSource("/srv/katello")
	src.run = func(_ context.Context, name string, args ...string) (string, error) {
		assert.Equal(t, "git", name)
		assert.Equal(t, []string{"-C", "/srv/katello", "rev-parse", "--short", "HEAD"}, args)
		return "abc1234", nil
	}

	got, err := src.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc1234", got)
}

func TestSCMSource_CommandFailure(t *testing.T) {
	src := NewSCMSource(t.TempDir())
	src.run = func(_ context.Context, _ string, _ ...string) (string, error) {
		return "", errors.New("fatal: not a git repository")
	}

	_, err := src.Version(context.Background())
	assert.Error(t, err)
}
