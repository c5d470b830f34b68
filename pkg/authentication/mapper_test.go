// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/canonical/oauth2-login/internal/types"
)

func TestMapProfile(t *testing.T) {
	user := &types.User{ID: "user-1", Email: "jane@example.com", Name: "Jane", Username: "jane"}

	first := MapProfile(user)
	second := MapProfile(user)

	if first.SecurityID != "user-1" {
		t.Errorf("expected security id user-1, got %q", first.SecurityID)
	}

	if first.Profile != *user {
		t.Errorf("expected profile %+v, got %+v", *user, first.Profile)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected equal results, got %+v and %+v", first, second)
	}

	user.Name = "changed"
	if first.Profile.Name != "Jane" {
		t.Error("expected the mapped profile not to alias the user")
	}

	first.Profile.Email = "changed@example.com"
	if user.Email != "jane@example.com" {
		t.Error("expected the user not to be mutated")
	}
}

func TestMapProfile_Nil(t *testing.T) {
	if got := MapProfile(nil); *got != (UserProfile{}) {
		t.Errorf("expected empty profile, got %+v", got)
	}
}

func TestMapProfile_JSON(t *testing.T) {
	b, err := json.Marshal(MapProfile(&types.User{ID: "user-1", Email: "jane@example.com"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got["securityId"] != "user-1" {
		t.Errorf("expected securityId, got %v", got)
	}

	profile, ok := got["profile"].(map[string]interface{})
	if !ok || profile["email"] != "jane@example.com" {
		t.Errorf("expected nested profile, got %v", got["profile"])
	}
}
