// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-image-keeper/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestWithUser_RoundTrip(t *testing.T) {
	user := models.User{UserID: 42, Username: "alice"}
	session := models.Session{ID: "sid", UserID: 42}

	ctx := WithUser(context.Background(), user, session)

	gotUser, ok := GetUserFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true for user, got false")
	}
	if gotUser.UserID != 42 || gotUser.Username != "alice" {
		t.Errorf("unexpected user %+v", gotUser)
	}

	gotSession, ok := GetSessionFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true for session, got false")
	}
	if gotSession.ID != "sid" {
		t.Errorf("expected session id 'sid', got '%s'", gotSession.ID)
	}
}

func TestGetUserFromContext_Missing(t *testing.T) {
	if _, ok := GetUserFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
	if _, ok := GetSessionFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "not-a-user")

	if _, ok := GetUserFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetUserFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), models.User{UserID: 1})

	if _, ok := GetUserFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
