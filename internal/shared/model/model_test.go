package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRoleTitles(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{RoleTitleViewer, "viewer"},
		{RoleTitleStaff, "staff"},
		{RoleTitleAdmin, "admin"},
		{DefaultRoleTitle, "viewer"},
	}

	for _, tt := range tests {
		if tt.title != tt.want {
			t.Errorf("role title = %q, want %q", tt.title, tt.want)
		}
	}
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := &User{
		ID:           "user-1",
		Username:     "jsnow",
		Name:         Name{First: "John", Last: "Snow"},
		Email:        "jsnow@winterfell.org",
		PasswordHash: "$2a$12$secret",
		RoleTitle:    RoleTitleViewer,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Failed to marshal user: %v", err)
	}
	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "password") {
		t.Errorf("serialized user leaks password hash: %s", data)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal user: %v", err)
	}
	name, ok := decoded["name"].(map[string]interface{})
	if !ok {
		t.Fatal("name should serialize as a nested object")
	}
	if name["first"] != "John" || name["last"] != "Snow" {
		t.Errorf("name = %v, want first=John last=Snow", name)
	}
}

func TestDocumentJSONSerialization(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	doc := &Document{
		ID:          "doc-1",
		OwnerID:     "user-1",
		RoleTitle:   RoleTitleViewer,
		Title:       "Doc1",
		Content:     "1Doc",
		DateCreated: now,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal document: %v", err)
	}
	if decoded.OwnerID != "user-1" || decoded.RoleTitle != "viewer" {
		t.Errorf("decoded = %+v, want ownerId=user-1 role=viewer", decoded)
	}
}
