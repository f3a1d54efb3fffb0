package models

import (
	"strings"
	"testing"
)

func TestNewIDIsRoleScoped(t *testing.T) {
	id := NewID(RoleUser)
	if !strings.HasPrefix(id, "user") {
		t.Fatalf("expected user prefix, got %s", id)
	}
	if NewID(RoleOwner) == NewID(RoleOwner) {
		t.Fatal("consecutive ids must differ")
	}
}
