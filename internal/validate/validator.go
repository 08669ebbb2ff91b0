// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validate

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-settings/internal/node"
)

type check int

const (
	checkRequired check = iota
	checkOneOf
	checkBoolean
	checkNonEmpty
	checkNested
)

// Rule is one declarative assertion scoped to a key. Rules are built via
// the constructor functions below and optionally restricted with
// [Rule.ConcreteOnly].
type Rule struct {
	key          node.Key
	kind         check
	allowed      []any
	allowNil     bool
	nested       []Rule
	concreteOnly bool
}

// Required asserts that key is defined.
func Required(key node.Key) Rule {
	return Rule{key: key, kind: checkRequired}
}

// OneOf asserts that key is defined and its value is one of allowed.
func OneOf(key node.Key, allowed ...any) Rule {
	return Rule{key: key, kind: checkOneOf, allowed: allowed}
}

// OneOfOrNil is OneOf, additionally accepting an explicit nil value.
func OneOfOrNil(key node.Key, allowed ...any) Rule {
	return Rule{key: key, kind: checkOneOf, allowed: allowed, allowNil: true}
}

// Boolean asserts that key is defined and holds a boolean value.
func Boolean(key node.Key) Rule {
	return Rule{key: key, kind: checkBoolean}
}

// NonEmpty asserts that key is defined and holds a non-empty value
// (a non-nil scalar, a non-empty string, sequence, or sub-node).
func NonEmpty(key node.Key) Rule {
	return Rule{key: key, kind: checkNonEmpty}
}

// Nested recurses into the sub-node at key with its own rule set. An absent
// or non-node value is treated as an empty node, so only rules that require
// specific keys fail.
func Nested(key node.Key, rules ...Rule) Rule {
	return Rule{key: key, kind: checkNested, nested: rules}
}

// ConcreteOnly restricts the rule to runs where a concrete, non-build
// environment is selected. The rule is skipped in early mode and for the
// build environment.
func (r Rule) ConcreteOnly() Rule {
	r.concreteOnly = true
	return r
}

// Target identifies what a tree is being validated for.
type Target struct {
	// Env is the environment the configuration was merged for. Empty means
	// early-configuration mode.
	Env string
	// BuildEnv names the bootstrap/build environment exempt from
	// ConcreteOnly rules.
	BuildEnv string
}

func (t Target) concrete() bool {
	return t.Env != "" && t.Env != t.BuildEnv
}

// Validator checks a node tree against an ordered rule set. It evaluates
// rules eagerly and fails the whole validation on the first violation.
type Validator struct {
	node   *node.Node
	target Target
	prefix string
	rules  []Rule
}

// New constructs a Validator for n scoped under the dotted key-path prefix
// (empty for the tree root).
func New(n *node.Node, target Target, prefix string, rules []Rule) *Validator {
	return &Validator{node: n, target: target, prefix: prefix, rules: rules}
}

// Validate runs every applicable rule in order and returns the first
// violation as a *Error, or nil if all assertions hold.
func (v *Validator) Validate() error {
	for _, r := range v.rules {
		if r.concreteOnly && !v.target.concrete() {
			continue
		}
		if err := v.check(r); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) check(r Rule) error {
	path := v.path(r.key)

	if r.kind == checkNested {
		child := node.New()
		if v.node.HasKey(r.key) {
			val, err := v.node.Get(r.key)
			if err != nil {
				return err
			}
			if sub, ok := val.(*node.Node); ok {
				child = sub
			}
		}
		return New(child, v.target, path, r.nested).Validate()
	}

	if !v.node.HasKey(r.key) {
		return v.fail(path, "is not set")
	}
	val, err := v.node.Get(r.key)
	if err != nil {
		return err
	}

	switch r.kind {
	case checkRequired:
		// existence already established
	case checkOneOf:
		if val == nil && r.allowNil {
			return nil
		}
		for _, a := range r.allowed {
			if a == val {
				return nil
			}
		}
		return v.fail(path, fmt.Sprintf("must be one of [%s]", joinAllowed(r.allowed)))
	case checkBoolean:
		if _, ok := val.(bool); !ok {
			return v.fail(path, "must be true or false")
		}
	case checkNonEmpty:
		if empty(val) {
			return v.fail(path, "must not be empty")
		}
	}
	return nil
}

func (v *Validator) path(key node.Key) string {
	if v.prefix == "" {
		return string(key)
	}
	return v.prefix + "." + string(key)
}

func (v *Validator) fail(path, problem string) error {
	return &Error{Path: path, Env: v.target.Env, Problem: problem}
}

func empty(val any) bool {
	switch t := val.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case *node.Node:
		return t.Len() == 0
	default:
		return false
	}
}

func joinAllowed(allowed []any) string {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ", ")
}
