// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"github.com/MKhiriev/go-settings/internal/validate"
)

var logLevels = []any{"debug", "info", "warn", "error", "fatal"}

// rules is the declarative validation contract every merged settings tree
// must satisfy before it is exposed. The database block is only required for
// concrete, non-build environments; everything else applies in early mode
// as well.
func rules() []validate.Rule {
	return []validate.Rule{
		validate.NonEmpty(keyAppName),
		validate.OneOf(keyAppMode, ModeKatello, ModeHeadpin),

		validate.Nested("candlepin",
			validate.NonEmpty("url"),
			validate.Required("oauth_key"),
			validate.Required("oauth_secret"),
		),
		validate.Nested("pulp",
			validate.NonEmpty("url"),
			validate.Required("oauth_key"),
			validate.Required("oauth_secret"),
		),
		validate.Nested("foreman",
			validate.NonEmpty("url"),
		),

		validate.Required("notification"),
		validate.Boolean("debug_cp_proxies"),
		validate.Boolean("debug_pulp_proxies"),
		validate.NonEmpty("available_locales"),

		validate.Boolean("use_cp"),
		validate.Boolean("use_foreman"),
		validate.Boolean("use_pulp"),
		validate.Boolean("use_elasticsearch"),
		validate.Boolean("use_ssl"),

		validate.NonEmpty("search_tokens"),

		validate.Nested(keyDatabase,
			validate.Required("adapter"),
			validate.Required("host"),
			validate.Required("encoding"),
			validate.Required("username"),
			validate.Required(keyPassword),
			validate.Required("name"),
		).ConcreteOnly(),

		validate.Required("warden"),
		validate.NonEmpty(keyHost),
		validate.Required("port"),
		validate.OneOf("url_prefix", "/katello", "/headpin", "/sam", "/pulp"),
		validate.Required("password_reset_expiration"),
		validate.NonEmpty("redhat_repository_url"),
		validate.Required("rest_client_timeout"),
		validate.NonEmpty("elastic_url"),
		validate.NonEmpty("elastic_index"),
		validate.Boolean("allow_roles_logging"),
		validate.Required(keyVersion),
		validate.Boolean("log_events"),
		validate.OneOf("log_level", logLevels...),
		validate.OneOf("log_level_sql", logLevels...),
		validate.Required(keyEmailReply),
		validate.Boolean("embed_docs"),
	}
}
