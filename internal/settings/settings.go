// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"context"
	"fmt"
	"sync"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-settings/internal/crypto"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/node"
	"github.com/MKhiriev/go-settings/internal/version"
)

// Reserved top-level keys of the settings file.
const (
	// CommonEnv is the section merged into every environment.
	CommonEnv = "common"
	// BuildEnv is the bootstrap/build environment, exempt from the database
	// requirement because packaging hosts never connect to a live database.
	BuildEnv = "build"
)

// Options configures a Loader. Zero-valued fields are filled from the
// process environment and from built-in defaults; see New.
type Options struct {
	// CandidatePaths is the ordered list of settings file locations; the
	// first existing file wins.
	CandidatePaths []string

	// Environments is the fixed list of environment names DatabaseConfigs
	// builds settings for.
	Environments []string

	// BuildEnvironment names the environment exempt from the database
	// validation contract.
	BuildEnvironment string

	// AppPackage is the installed package queried first for the version
	// string.
	AppPackage string

	// SCMDir is the checkout queried for a revision when no package is
	// installed.
	SCMDir string

	// KeyFile is the passphrase file for decrypting embedded database
	// passwords. Ignored when Secrets is set; when both are empty the
	// passwords are taken as plaintext.
	KeyFile string

	// Secrets decrypts embedded database passwords.
	Secrets crypto.SecretService

	// Resolver produces the application version string.
	Resolver *version.Resolver

	// Environment resolves the current runtime environment. It is called
	// only by Config, never by EarlyConfig, so it may depend on the hosting
	// system being fully initialized.
	Environment func() (string, error)

	// Logger receives pipeline diagnostics.
	Logger *logger.Logger
}

// Loader runs the settings pipeline and memoizes its three output views.
// A Loader is safe for concurrent use; each view is computed at most once.
type Loader struct {
	opts Options
	log  *logger.Logger

	config memo[*node.Node]
	early  memo[*node.Node]
	dbs    memo[map[string]map[string]string]
}

// memo is a compute-once slot. Both the value and the error are retained,
// so a failed pipeline is not retried.
type memo[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (m *memo[T]) do(compute func() (T, error)) (T, error) {
	m.once.Do(func() {
		m.value, m.err = compute()
	})
	return m.value, m.err
}

// New constructs a Loader. Caller-set Options fields win over process
// environment variables (SETTINGS_PATH, SETTINGS_ENV, SETTINGS_KEY_FILE),
// which in turn win over the built-in defaults.
func New(opts Options) (*Loader, error) {
	pe, err := parseProcessEnv()
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(&opts, defaultOptions(pe)); err != nil {
		return nil, fmt.Errorf("error merging loader options: %w", err)
	}

	if opts.Secrets == nil {
		if opts.KeyFile != "" {
			svc, err := crypto.NewSecretServiceFromFile(opts.KeyFile)
			if err != nil {
				return nil, err
			}
			opts.Secrets = svc
		} else {
			opts.Secrets = crypto.Plaintext()
		}
	}

	if opts.Resolver == nil {
		opts.Resolver = version.NewResolver(opts.Logger,
			version.NewPackageSource(opts.AppPackage),
			version.NewSCMSource(opts.SCMDir),
		)
	}

	return &Loader{opts: opts, log: opts.Logger}, nil
}

func defaultOptions(pe processEnv) Options {
	paths := []string{"config/settings.yml", "/etc/katello/settings.yml"}
	if pe.SettingsPath != "" {
		paths = []string{pe.SettingsPath}
	}

	return Options{
		CandidatePaths:   paths,
		Environments:     []string{"production", "development", "test", BuildEnv},
		BuildEnvironment: BuildEnv,
		AppPackage:       "katello",
		SCMDir:           ".",
		KeyFile:          pe.KeyFile,
		Environment: func() (string, error) {
			if pe.Environment == "" {
				return "", ErrEnvironmentUnknown
			}
			return pe.Environment, nil
		},
		Logger: logger.Nop(),
	}
}

// Config returns the full settings tree merged and validated for the
// current runtime environment. The first call runs the whole pipeline;
// subsequent calls (and concurrent first calls) return the memoized result.
func (l *Loader) Config(ctx context.Context) (*node.Node, error) {
	return l.config.do(func() (*node.Node, error) {
		environment, err := l.opts.Environment()
		if err != nil {
			return nil, err
		}
		return l.load(ctx, environment)
	})
}

// EarlyConfig returns the environment-agnostic settings tree, usable before
// the runtime environment is determined. It never calls the environment
// resolver.
func (l *Loader) EarlyConfig(ctx context.Context) (*node.Node, error) {
	return l.early.do(func() (*node.Node, error) {
		return l.load(ctx, "")
	})
}
