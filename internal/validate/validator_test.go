package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-settings/internal/node"
)

func mustNode(t *testing.T, m map[string]any) *node.Node {
	t.Helper()
	n, err := node.FromMap(m)
	require.NoError(t, err)
	return n
}

// ── single assertions ─────────────────────────────────────────────────────────

func TestValidate_Required(t *testing.T) {
	n := mustNode(t, map[string]any{"host": "localhost", "empty": nil})
	target := Target{Env: "production", BuildEnv: "build"}

	assert.NoError(t, New(n, target, "", []Rule{Required("host")}).Validate())
	// an explicit nil entry still counts as defined
	assert.NoError(t, New(n, target, "", []Rule{Required("empty")}).Validate())

	err := New(n, target, "", []Rule{Required("port")}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Key: 'port' in 'production' environment is not set")
}

func TestValidate_OneOf(t *testing.T) {
	n := mustNode(t, map[string]any{
		"app_mode": "headpin",
		"bad_mode": "sam",
		"maybe":    nil,
	})
	target := Target{Env: "production"}

	assert.NoError(t, New(n, target, "", []Rule{
		OneOf("app_mode", "katello", "headpin"),
	}).Validate())

	err := New(n, target, "", []Rule{
		OneOf("bad_mode", "katello", "headpin"),
	}).Validate()
	require.Error(t, err)
	assert.EqualError(t, err,
		"Key: 'bad_mode' in 'production' environment must be one of [katello, headpin]")

	assert.NoError(t, New(n, target, "", []Rule{
		OneOfOrNil("maybe", "debug", "info"),
	}).Validate())
	assert.Error(t, New(n, target, "", []Rule{
		OneOf("maybe", "debug", "info"),
	}).Validate())
}

func TestValidate_Boolean(t *testing.T) {
	n := mustNode(t, map[string]any{"use_ssl": true, "use_cp": "yes"})
	target := Target{Env: "production"}

	assert.NoError(t, New(n, target, "", []Rule{Boolean("use_ssl")}).Validate())

	err := New(n, target, "", []Rule{Boolean("use_cp")}).Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Key: 'use_cp' in 'production' environment must be true or false")
}

func TestValidate_NonEmpty(t *testing.T) {
	target := Target{Env: "test"}
	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{"string", "en", true},
		{"empty string", "", false},
		{"sequence", []any{"en"}, true},
		{"empty sequence", []any{}, false},
		{"nil", nil, false},
		{"number", 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := node.New()
			require.NoError(t, n.Set("value", tt.value))
			err := New(n, target, "", []Rule{NonEmpty("value")}).Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// ── nested rule sets ──────────────────────────────────────────────────────────

// TestValidate_NestedPath verifies that nested validators prefix the dotted
// key path in failure messages.
func TestValidate_NestedPath(t *testing.T) {
	n := mustNode(t, map[string]any{
		"database": map[string]any{"adapter": "postgresql"},
	})
	target := Target{Env: "production", BuildEnv: "build"}

	err := New(n, target, "", []Rule{
		Nested("database", Required("adapter"), Required("password")),
	}).Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Key: 'database.password' in 'production' environment is not set")
}

// TestValidate_NestedAbsentSubtree verifies that a missing optional subtree
// does not crash validation: nested rules run against an empty node, so only
// explicit requirements fail.
func TestValidate_NestedAbsentSubtree(t *testing.T) {
	n := node.New()
	target := Target{Env: "production"}

	assert.NoError(t, New(n, target, "", []Rule{Nested("ldap")}).Validate())

	err := New(n, target, "", []Rule{Nested("ldap", Required("host"))}).Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Key: 'ldap.host' in 'production' environment is not set")
}

// ── environment guards ────────────────────────────────────────────────────────

// TestValidate_ConcreteOnly verifies that guarded rules run only for a
// concrete, non-build environment.
func TestValidate_ConcreteOnly(t *testing.T) {
	n := node.New()
	rules := []Rule{
		Nested("database", Required("password")).ConcreteOnly(),
	}

	assert.NoError(t, New(n, Target{Env: "", BuildEnv: "build"}, "", rules).Validate(),
		"early mode skips guarded rules")
	assert.NoError(t, New(n, Target{Env: "build", BuildEnv: "build"}, "", rules).Validate(),
		"build environment skips guarded rules")

	err := New(n, Target{Env: "production", BuildEnv: "build"}, "", rules).Validate()
	require.Error(t, err)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "database.password", verr.Path)
}

// TestValidate_EarlyModeMessage verifies the message wording when no
// environment is selected.
func TestValidate_EarlyModeMessage(t *testing.T) {
	err := New(node.New(), Target{}, "", []Rule{Required("host")}).Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Key: 'host' in early configuration is not set")
}

// TestValidate_FirstFailureWins verifies that rules run in order and the
// first violation is reported.
func TestValidate_FirstFailureWins(t *testing.T) {
	err := New(node.New(), Target{Env: "test"}, "", []Rule{
		Required("first"),
		Required("second"),
	}).Validate()
	require.Error(t, err)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "first", verr.Path)
}
