// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dbconn turns the per-environment database settings produced by the
// settings loader into ready pgx pool configurations.
package dbconn

import (
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig builds a *pgxpool.Config from one environment's stringified
// database settings (the adapter, host, encoding, username, password, and
// name keys of the validated settings contract). Only the postgresql adapter
// is supported.
func PoolConfig(db map[string]string) (*pgxpool.Config, error) {
	if adapter := db["adapter"]; adapter != "postgresql" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAdapter, adapter)
	}

	host := db["host"]
	if host == "" {
		host = "localhost"
	}
	name := db["name"]
	if name == "" {
		return nil, ErrMissingDatabaseName
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db["username"], db["password"]),
		Host:   host,
		Path:   "/" + name,
	}
	if port := db["port"]; port != "" {
		dsn.Host = host + ":" + port
	}
	if encoding := db["encoding"]; encoding != "" {
		q := url.Values{}
		q.Set("client_encoding", encoding)
		dsn.RawQuery = q.Encode()
	}

	cfg, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("error building pool config: %w", err)
	}
	return cfg, nil
}
