// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-settings/internal/node"
)

// discover returns the first candidate path that exists. When none does, it
// fails with ErrSourceNotFound listing every path that was tried.
func (l *Loader) discover() (string, error) {
	for _, path := range l.opts.CandidatePaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s",
		ErrSourceNotFound, strings.Join(l.opts.CandidatePaths, ", "))
}

// parseSource runs the source half of the pipeline: discovery, template
// expansion, YAML parsing, and conversion into a node tree.
func (l *Loader) parseSource() (*node.Node, error) {
	path, err := l.discover()
	if err != nil {
		return nil, err
	}
	l.log.Debug().Str("path", path).Msg("settings file selected")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading settings file %q: %w", path, err)
	}

	expanded, err := expandTemplate(path, string(raw))
	if err != nil {
		return nil, err
	}

	return parseYAML(expanded)
}

// expandTemplate runs the raw settings text through text/template before
// structural parsing. Only simple substitution helpers are provided; the
// settings format is not a scripting surface.
func expandTemplate(name, text string) (string, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"env": os.Getenv,
		"default": func(fallback, value string) string {
			if value == "" {
				return fallback
			}
			return value
		},
	}).Parse(text)
	if err != nil {
		return "", fmt.Errorf("error parsing settings template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("error expanding settings template: %w", err)
	}
	return buf.String(), nil
}

// parseYAML parses a YAML document into a node tree, preserving the
// document order of mapping keys. The document root must be a mapping;
// an empty document parses to an empty node.
func parseYAML(text string) (*node.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("error parsing settings file: %w", err)
	}

	if len(doc.Content) == 0 {
		return node.New(), nil
	}

	v, err := fromYAML(doc.Content[0])
	if err != nil {
		return nil, err
	}
	root, ok := v.(*node.Node)
	if !ok {
		return nil, fmt.Errorf("%w: settings document root must be a mapping",
			node.ErrInvalidStructure)
	}
	return root, nil
}

// fromYAML converts one YAML node into a tree value: mappings become nodes
// entry by entry (keeping document order), sequences convert element-wise,
// scalars decode to their natural Go type.
func fromYAML(y *yaml.Node) (any, error) {
	switch y.Kind {
	case yaml.MappingNode:
		n := node.New()
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode, valNode := y.Content[i], y.Content[i+1]
			if keyNode.Tag != "!!str" {
				return nil, fmt.Errorf("%w: line %d: mapping key %q is not a string",
					node.ErrInvalidKeyType, keyNode.Line, keyNode.Value)
			}
			v, err := fromYAML(valNode)
			if err != nil {
				return nil, err
			}
			if err := n.Set(node.Key(keyNode.Value), v); err != nil {
				return nil, err
			}
		}
		return n, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(y.Content))
		for _, item := range y.Content {
			v, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.AliasNode:
		return fromYAML(y.Alias)

	default:
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, fmt.Errorf("error decoding settings value at line %d: %w", y.Line, err)
		}
		return v, nil
	}
}
