package auth

import (
	"testing"

	"docs-admin/internal/shared/model"
)

var (
	viewer = &Identity{ID: "user-a", RoleTitle: model.RoleTitleViewer}
	staff  = &Identity{ID: "user-b", RoleTitle: model.RoleTitleStaff}
	admin  = &Identity{ID: "user-c", RoleTitle: model.RoleTitleAdmin}
)

func TestCanViewProfile(t *testing.T) {
	tests := []struct {
		name     string
		actor    *Identity
		targetID string
		want     bool
	}{
		{"own profile", viewer, "user-a", true},
		{"someone else's profile", viewer, "user-b", false},
		{"staff is not admin", staff, "user-a", false},
		{"admin views anyone", admin, "user-a", true},
		{"unauthenticated", nil, "user-a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewProfile(tt.actor, tt.targetID); got != tt.want {
				t.Errorf("CanViewProfile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanUpdateProfile(t *testing.T) {
	tests := []struct {
		name     string
		actor    *Identity
		targetID string
		want     bool
	}{
		{"self", viewer, "user-a", true},
		{"other user", viewer, "user-b", false},
		// admin 也不能替他人改资料，更新只限本人
		{"admin on other user", admin, "user-a", false},
		{"unauthenticated", nil, "user-a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUpdateProfile(tt.actor, tt.targetID); got != tt.want {
				t.Errorf("CanUpdateProfile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteProfile(t *testing.T) {
	// 规则为「本人或 admin」，两个放行分支都要覆盖
	tests := []struct {
		name     string
		actor    *Identity
		targetID string
		want     bool
	}{
		{"owner deletes self", viewer, "user-a", true},
		{"admin deletes other", admin, "user-a", true},
		{"admin deletes self", admin, "user-c", true},
		{"non-owner non-admin", staff, "user-a", false},
		{"unauthenticated", nil, "user-a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDeleteProfile(tt.actor, tt.targetID); got != tt.want {
				t.Errorf("CanDeleteProfile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanListAllUsers(t *testing.T) {
	if CanListAllUsers(viewer) || CanListAllUsers(staff) {
		t.Error("non-admin should not list all users")
	}
	if !CanListAllUsers(admin) {
		t.Error("admin should list all users")
	}
	if CanListAllUsers(nil) {
		t.Error("unauthenticated should not list all users")
	}
}

func TestCanListDocumentsOf(t *testing.T) {
	// 保留源系统行为：任何已认证用户均可查看任意用户的文档
	if !CanListDocumentsOf(viewer, "user-b") {
		t.Error("authenticated user should list any user's documents")
	}
	if CanListDocumentsOf(nil, "user-b") {
		t.Error("unauthenticated should be denied")
	}
}

func TestCanModifyDocument(t *testing.T) {
	doc := &model.Document{ID: "doc-1", OwnerID: "user-a"}

	tests := []struct {
		name  string
		actor *Identity
		want  bool
	}{
		{"owner", viewer, true},
		{"admin", admin, true},
		{"other user", staff, false},
		{"unauthenticated", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyDocument(tt.actor, doc); got != tt.want {
				t.Errorf("CanModifyDocument = %v, want %v", got, tt.want)
			}
		})
	}
}
