// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-settings/internal/node"
	"github.com/MKhiriev/go-settings/internal/validate"
)

const (
	keyDatabase node.Key = "database"
	keyPassword node.Key = "password"
)

// load runs the full pipeline for one environment. An empty environment
// produces the early configuration: only the common section is merged and
// environment-guarded validation rules are skipped.
func (l *Loader) load(ctx context.Context, environment string) (*node.Node, error) {
	raw, err := l.parseSource()
	if err != nil {
		return nil, err
	}

	if err := l.decryptPasswords(raw); err != nil {
		return nil, err
	}

	merged, err := mergeEnvironment(raw, environment)
	if err != nil {
		return nil, err
	}

	if err := l.derive(ctx, merged); err != nil {
		return nil, err
	}

	target := validate.Target{Env: environment, BuildEnv: l.opts.BuildEnvironment}
	if err := validate.New(merged, target, "", rules()).Validate(); err != nil {
		return nil, err
	}

	l.log.Debug().Str("environment", environment).Msg("settings loaded")
	return merged, nil
}

// decryptPasswords is the secret pre-pass: it walks every top-level section
// of the raw parsed tree and replaces database.password values in place with
// their decrypted plaintext. Running before the merge means every
// environment's own credentials are decrypted independently.
func (l *Loader) decryptPasswords(raw *node.Node) error {
	for _, entry := range raw.Entries() {
		section, ok := entry.Value.(*node.Node)
		if !ok || !section.HasKey(keyDatabase) {
			continue
		}

		dbValue, err := section.Get(keyDatabase)
		if err != nil {
			return err
		}
		db, ok := dbValue.(*node.Node)
		if !ok || !db.HasKey(keyPassword) {
			continue
		}

		stored, err := db.Get(keyPassword)
		if err != nil {
			return err
		}
		ciphertext, ok := stored.(string)
		if !ok || ciphertext == "" {
			continue
		}

		plaintext, err := l.opts.Secrets.Decrypt(ciphertext)
		if err != nil {
			return fmt.Errorf("error decrypting database password for %q: %w",
				string(entry.Key), err)
		}
		if err := db.Set(keyPassword, plaintext); err != nil {
			return err
		}
	}
	return nil
}

// mergeEnvironment folds the common section and, when an environment is
// selected, that environment's section into a fresh tree. A missing or nil
// environment section leaves the common values as they are.
func mergeEnvironment(raw *node.Node, environment string) (*node.Node, error) {
	merged := node.New()

	if sub := section(raw, CommonEnv); sub != nil {
		if _, err := merged.DeepMerge(sub); err != nil {
			return nil, err
		}
	}
	if environment != "" {
		if sub := section(raw, node.Key(environment)); sub != nil {
			if _, err := merged.DeepMerge(sub); err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}

// section returns the sub-node under key, or nil if the key is absent or
// holds anything but a node.
func section(raw *node.Node, key node.Key) *node.Node {
	if !raw.HasKey(key) {
		return nil
	}
	v, err := raw.Get(key)
	if err != nil {
		return nil
	}
	sub, ok := v.(*node.Node)
	if !ok {
		return nil
	}
	return sub
}

// DatabaseConfigs builds the per-environment database settings mapping for
// the fixed list of known environments: each environment's database block is
// merged on top of the common one and stringified. Environments that define
// no database override at all are skipped. The result is memoized.
func (l *Loader) DatabaseConfigs() (map[string]map[string]string, error) {
	return l.dbs.do(func() (map[string]map[string]string, error) {
		raw, err := l.parseSource()
		if err != nil {
			return nil, err
		}
		if err := l.decryptPasswords(raw); err != nil {
			return nil, err
		}

		common := databaseBlock(raw, CommonEnv)

		out := make(map[string]map[string]string, len(l.opts.Environments))
		for _, environment := range l.opts.Environments {
			override := databaseBlock(raw, node.Key(environment))
			if override == nil {
				continue
			}

			merged := node.New()
			if common != nil {
				if _, err := merged.DeepMerge(common); err != nil {
					return nil, err
				}
			}
			if _, err := merged.DeepMerge(override); err != nil {
				return nil, err
			}

			out[environment] = stringify(merged)
		}
		return out, nil
	})
}

// databaseBlock returns the database sub-node of the named top-level
// section, or nil if either level is absent.
func databaseBlock(raw *node.Node, env node.Key) *node.Node {
	sub := section(raw, env)
	if sub == nil {
		return nil
	}
	return section(sub, keyDatabase)
}

// stringify flattens one merged database block into string-valued fields.
// Nil values become empty strings.
func stringify(n *node.Node) map[string]string {
	out := make(map[string]string, n.Len())
	for key, value := range n.ToMap() {
		if value == nil {
			out[key] = ""
			continue
		}
		out[key] = fmt.Sprint(value)
	}
	return out
}
