// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// processEnv captures the process-environment overrides recognized by the
// loader. All of them are optional; explicit Options fields set by the
// caller take precedence.
type processEnv struct {
	// SettingsPath replaces the candidate path list with a single path.
	// Env: SETTINGS_PATH
	SettingsPath string `env:"SETTINGS_PATH"`

	// Environment names the runtime environment for [Loader.Config].
	// Env: SETTINGS_ENV
	Environment string `env:"SETTINGS_ENV"`

	// KeyFile is the path to the passphrase file used to decrypt embedded
	// database passwords.
	// Env: SETTINGS_KEY_FILE
	KeyFile string `env:"SETTINGS_KEY_FILE"`
}

// parseProcessEnv populates a processEnv from environment variables using
// the caarlos0/env library.
func parseProcessEnv() (processEnv, error) {
	var pe processEnv
	if err := env.Parse(&pe); err != nil {
		return processEnv{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return pe, nil
}
