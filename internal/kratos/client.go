// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

const defaultSchemaID = "default"

var ErrIdentityNotFound = errors.New("identity not found")

type ClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email, name string) (string, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
}

type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, httpClient *http.Client, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	if httpClient != nil {
		conf.HTTPClient = httpClient
	}

	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentityIDByEmail")
	defer span.End()

	// NOTE: we are setting an empty page token because of https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	c.reportAvailability(r, err)
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0].Id, nil
}

func (c *Client) CreateIdentity(ctx context.Context, email, name string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.CreateIdentity")
	defer span.End()

	traits := map[string]interface{}{
		"email": email,
	}
	if name != "" {
		traits["name"] = name
	}

	body := ory.CreateIdentityBody{
		SchemaId: defaultSchemaID,
		Traits:   traits,
	}

	identity, r, err := c.client.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	c.reportAvailability(r, err)
	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return identity.Id, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetUser")
	defer span.End()

	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	c.reportAvailability(r, err)
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identityToUser(identity), nil
}

func (c *Client) reportAvailability(r *http.Response, err error) {
	available := 1.0
	if err != nil && (r == nil || r.StatusCode >= http.StatusInternalServerError) {
		available = 0
	}

	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": "kratos"}, available); mErr != nil {
		c.logger.Debugf("failed to set kratos availability: %v", mErr)
	}
}

func identityToUser(identity *ory.Identity) *types.User {
	user := &types.User{ID: identity.Id}

	traits, ok := identity.Traits.(map[string]interface{})
	if !ok {
		return user
	}

	user.Email, _ = traits["email"].(string)
	user.Username, _ = traits["username"].(string)

	switch name := traits["name"].(type) {
	case string:
		user.Name = name
	case map[string]interface{}:
		first, _ := name["first"].(string)
		last, _ := name["last"].(string)
		user.Name = first
		if last != "" {
			user.Name = first + " " + last
		}
	}

	return user
}
