// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"fmt"
	"time"
)

const redacted = "[REDACTED]"

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port    int    `envconfig:"port" default:"8080"`
	BaseURL string `envconfig:"base_url" default:"http://localhost:8080"`
	// Router is the framework driving the interceptor chain, chi or gin
	Router string `envconfig:"router" default:"chi"`

	KratosAdminURL string `envconfig:"kratos_admin_url" required:"true"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	SessionSecret string `envconfig:"session_secret" required:"true"`
	SessionMaxAge int    `envconfig:"session_max_age" default:"86400"`
	SessionStore  string `envconfig:"session_store" default:"cookie"`
	RedisAddr     string `envconfig:"redis_addr" default:"localhost:6379"`
	RedisPassword string `envconfig:"redis_password"`
	RedisDB       int    `envconfig:"redis_db" default:"0"`

	OAuth2ClientID     string   `envconfig:"oauth2_client_id"`
	OAuth2ClientSecret string   `envconfig:"oauth2_client_secret"`
	OAuth2AuthURL      string   `envconfig:"oauth2_auth_url" default:"http://localhost:9000/authorize"`
	OAuth2TokenURL     string   `envconfig:"oauth2_token_url" default:"http://localhost:9000/token"`
	OAuth2VerifyURL    string   `envconfig:"oauth2_verify_url" default:"http://localhost:9000/verify"`
	OAuth2Scopes       []string `envconfig:"oauth2_scopes"`

	FacebookClientID     string `envconfig:"facebook_client_id"`
	FacebookClientSecret string `envconfig:"facebook_client_secret"`

	OIDCIssuer       string   `envconfig:"oidc_issuer"`
	OIDCClientID     string   `envconfig:"oidc_client_id"`
	OIDCClientSecret string   `envconfig:"oidc_client_secret"`
	OIDCScopes       []string `envconfig:"oidc_scopes" default:"openid,email,profile"`
}

// String renders the spec with every secret masked, so it is safe to log
func (s EnvSpec) String() string {
	type plain EnvSpec

	p := plain(s)
	for _, secret := range []*string{&p.SessionSecret, &p.RedisPassword, &p.OAuth2ClientSecret, &p.FacebookClientSecret, &p.OIDCClientSecret, &p.DSN} {
		if *secret != "" {
			*secret = redacted
		}
	}

	return fmt.Sprintf("%+v", p)
}
