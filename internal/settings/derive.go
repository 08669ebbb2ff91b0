// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"context"

	"github.com/MKhiriev/go-settings/internal/node"
)

// Application modes.
const (
	ModeKatello = "katello"
	ModeHeadpin = "headpin"
)

const (
	keyAppMode    node.Key = "app_mode"
	keyIsKatello  node.Key = "katello?"
	keyIsHeadpin  node.Key = "headpin?"
	keyAppName    node.Key = "app_name"
	keyHost       node.Key = "host"
	keyEmailReply node.Key = "email_reply_address"
	keyVersion    node.Key = "katello_version"
)

// featureDefault pairs an optional boolean feature flag with its
// mode-dependent default.
type featureDefault struct {
	key   node.Key
	value bool
}

func featureDefaults(mode string) []featureDefault {
	headpin := mode == ModeHeadpin
	return []featureDefault{
		{"use_cp", true},
		{"use_foreman", !headpin},
		{"use_pulp", !headpin},
		{"use_elasticsearch", true},
		{"use_ssl", false},
	}
}

// derive applies the post-merge derivation steps, in order: mode predicate
// flags, the default application name, mode-dependent feature-flag defaults,
// the default email reply address, and the resolved version string. It must
// run before validation, since validation requires several of the keys it
// fills in.
func (l *Loader) derive(ctx context.Context, cfg *node.Node) error {
	mode := func() string {
		v, err := cfg.Get(keyAppMode)
		if err != nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	// Mode predicates stay deferred so they track app_mode on every read.
	if err := cfg.Set(keyIsKatello, node.Deferred(func() any { return mode() == ModeKatello })); err != nil {
		return err
	}
	if err := cfg.Set(keyIsHeadpin, node.Deferred(func() any { return mode() == ModeHeadpin })); err != nil {
		return err
	}

	if !cfg.Present(keyAppName) {
		name := "Katello"
		if mode() == ModeHeadpin {
			name = "Headpin"
		}
		if err := cfg.Set(keyAppName, name); err != nil {
			return err
		}
	}

	for _, fd := range featureDefaults(mode()) {
		if cfg.HasKey(fd.key) {
			continue // an explicit value, including false, is never overridden
		}
		if err := cfg.Set(fd.key, fd.value); err != nil {
			return err
		}
	}

	if !cfg.Present(keyEmailReply) {
		if host, err := cfg.String(keyHost); err == nil && host != "" {
			if err := cfg.Set(keyEmailReply, "no-reply@"+host); err != nil {
				return err
			}
		}
	}

	return cfg.Set(keyVersion, l.opts.Resolver.Resolve(ctx))
}
