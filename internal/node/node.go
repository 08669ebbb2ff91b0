// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package node

import (
	"fmt"
	"sort"
)

// Key is the symbolic key type used for every entry in a Node. Using a
// distinct string type keeps ad-hoc strings out of the direct API; the
// open-ended conversion path (parsed YAML mappings) is checked at runtime
// instead and fails with ErrInvalidKeyType.
type Key string

// Deferred is a zero-argument computation stored as a value. It is evaluated
// on every read through [Node.Get] (and during [Node.ToMap]), never at
// assignment time, and its result is never cached.
type Deferred func() any

// Entry is a single (key, value) pair produced by [Node.Entries].
type Entry struct {
	Key   Key
	Value any
}

// Node is one level of the configuration tree: an ordered mapping from Key
// to scalar, sequence, nested *Node, or Deferred value.
//
// A Node owns its entire subtree. Mutation happens only through Set and
// DeepMerge during the load pipeline; afterwards the tree is treated as
// read-only and may be read concurrently.
type Node struct {
	order  []Key
	values map[Key]any
}

// New returns an empty Node.
func New() *Node {
	return &Node{values: make(map[Key]any)}
}

// FromMap converts a parsed mapping (map[string]any, map[any]any, or an
// existing *Node) into a new owned *Node tree. Nested mappings are converted
// recursively, sequence elements individually, and Deferred values are kept
// as-is. The result never aliases the input.
//
// Returns ErrInvalidStructure if m is not a mapping, or ErrInvalidKeyType if
// any mapping key is not a string.
func FromMap(m any) (*Node, error) {
	v, err := convert(m)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf("%w: expected a mapping, got %T", ErrInvalidStructure, m)
	}
	return n, nil
}

// convert normalizes a value for storage per the data-model rules.
// Mappings converted from Go maps are ordered by sorted key, since Go map
// iteration order is unspecified; document order is preserved by the YAML
// layer, which builds nodes entry by entry.
func convert(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case Deferred:
		return v, nil
	case func() any:
		return Deferred(v), nil
	case *Node:
		return v.clone(), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := New()
		for _, k := range keys {
			if err := n.Set(Key(k), v[k]); err != nil {
				return nil, err
			}
		}
		return n, nil
	case map[any]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			s, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: mapping key %v (%T) is not a string", ErrInvalidKeyType, k, k)
			}
			keys = append(keys, s)
		}
		sort.Strings(keys)
		n := New()
		for _, k := range keys {
			if err := n.Set(Key(k), v[k]); err != nil {
				return nil, err
			}
		}
		return n, nil
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			c, err := convert(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	default:
		return v, nil
	}
}

// Len returns the number of entries in the node.
func (n *Node) Len() int {
	return len(n.order)
}

// Get returns the value stored under key. A Deferred value is evaluated on
// this call and its result returned; the evaluation is repeated on every
// subsequent Get. Returns ErrNotFound (wrapped with the key) if the key is
// not defined.
func (n *Node) Get(key Key) (any, error) {
	v, ok := n.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, string(key))
	}
	if d, ok := v.(Deferred); ok {
		return d(), nil
	}
	return v, nil
}

// String returns the value under key asserted to a string.
func (n *Node) String(key Key) (string, error) {
	v, err := n.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("key %q: expected a string, got %T", string(key), v)
	}
	return s, nil
}

// Bool returns the value under key asserted to a bool.
func (n *Node) Bool(key Key) (bool, error) {
	v, err := n.Get(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("key %q: expected a boolean, got %T", string(key), v)
	}
	return b, nil
}

// Set converts value per the data-model rules and stores it under key.
// An existing entry keeps its original position in the insertion order.
func (n *Node) Set(key Key, value any) error {
	c, err := convert(value)
	if err != nil {
		return err
	}
	n.put(key, c)
	return nil
}

// HasKey reports whether key is defined. It never evaluates Deferred values.
func (n *Node) HasKey(key Key) bool {
	_, ok := n.values[key]
	return ok
}

// Present probes a nested key path without raising: it returns true only if
// every segment of the path exists and resolves to a truthy value, with all
// intermediate segments being nested nodes. Absent keys, nil, and false at
// any point along the path yield false, as does a non-node intermediate
// value when the path continues past it.
func (n *Node) Present(path ...Key) bool {
	cur := n
	for i, key := range path {
		raw, ok := cur.values[key]
		if !ok {
			return false
		}
		if d, ok := raw.(Deferred); ok {
			raw = d()
		}
		if !truthy(raw) {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		child, ok := raw.(*Node)
		if !ok {
			return false
		}
		cur = child
	}
	return true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	default:
		return true
	}
}

// Entries returns a snapshot of the node's (key, value) pairs in insertion
// order. Deferred values are returned as stored, not evaluated. Each call
// produces a fresh snapshot of the current contents.
func (n *Node) Entries() []Entry {
	out := make([]Entry, 0, len(n.order))
	for _, key := range n.order {
		out = append(out, Entry{Key: key, Value: n.values[key]})
	}
	return out
}

// DeepMerge merges other (a mapping or *Node) into the receiver in place and
// returns the receiver, so override sources can be folded left to right.
//
// Merge rules, per key of the incoming side:
//   - both values are nodes: merge recursively;
//   - incoming value is nil and the existing value is a node: keep the
//     existing node unchanged;
//   - otherwise the incoming value wins outright (sequences and scalars are
//     replaced, never concatenated).
func (n *Node) DeepMerge(other any) (*Node, error) {
	src, err := FromMap(other)
	if err != nil {
		return nil, err
	}
	n.mergeNode(src)
	return n, nil
}

// mergeNode folds src into n. src is always a freshly converted, owned tree,
// so its values can be adopted without copying again.
func (n *Node) mergeNode(src *Node) {
	for _, key := range src.order {
		incoming := src.values[key]
		existing, exists := n.values[key]

		existingNode, existingIsNode := existing.(*Node)
		incomingNode, incomingIsNode := incoming.(*Node)

		switch {
		case exists && existingIsNode && incomingIsNode:
			existingNode.mergeNode(incomingNode)
		case incoming == nil && exists && existingIsNode:
			// explicit nil override keeps the existing subtree
		default:
			n.put(key, incoming)
		}
	}
}

// ToMap materializes the tree into a plain nested map[string]any: nested
// nodes recurse, sequence elements are materialized individually, and
// Deferred values are evaluated during the conversion. Keys holding nil are
// preserved explicitly.
func (n *Node) ToMap() map[string]any {
	out := make(map[string]any, len(n.order))
	for _, key := range n.order {
		out[string(key)] = materialize(n.values[key])
	}
	return out
}

func materialize(v any) any {
	switch t := v.(type) {
	case Deferred:
		return materialize(t())
	case *Node:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = materialize(e)
		}
		return out
	default:
		return v
	}
}

func (n *Node) put(key Key, v any) {
	if _, ok := n.values[key]; !ok {
		n.order = append(n.order, key)
	}
	n.values[key] = v
}

func (n *Node) clone() *Node {
	c := New()
	for _, key := range n.order {
		c.put(key, cloneValue(n.values[key]))
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Node:
		return t.clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
