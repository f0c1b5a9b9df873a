package memstore

import (
	"context"
	"testing"
	"time"

	"docs-admin/internal/shared/model"
	"docs-admin/internal/shared/storage"
)

func TestUserUniqueness(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	mk := func(id, username, email string) *model.User {
		return &model.User{ID: id, Username: username, Email: email, CreatedAt: time.Now()}
	}

	if err := s.CreateUser(ctx, mk("u1", "jsnow", "jsnow@winterfell.org")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tests := []struct {
		name string
		user *model.User
		want error
	}{
		{"duplicate username", mk("u2", "jsnow", "other@winterfell.org"), storage.ErrDuplicate},
		{"duplicate email", mk("u3", "other", "jsnow@winterfell.org"), storage.ErrDuplicate},
		{"distinct user", mk("u4", "nstark", "nstark@winterfell.org"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.CreateUser(ctx, tt.user); err != tt.want {
				t.Errorf("CreateUser error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateUserUniquenessAndIsolation(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a := &model.User{ID: "a", Username: "jsnow", Email: "jsnow@winterfell.org"}
	b := &model.User{ID: "b", Username: "nstark", Email: "nstark@winterfell.org"}
	s.CreateUser(ctx, a)
	s.CreateUser(ctx, b)

	// 更新为他人的 username 应失败
	b2, _ := s.GetUserByID(ctx, "b")
	b2.Username = "jsnow"
	if err := s.UpdateUser(ctx, b2); err != storage.ErrDuplicate {
		t.Errorf("UpdateUser error = %v, want ErrDuplicate", err)
	}

	// 返回值应是副本：调用方修改不影响存储内容
	got, _ := s.GetUserByID(ctx, "a")
	got.Username = "mutated"
	again, _ := s.GetUserByID(ctx, "a")
	if again.Username != "jsnow" {
		t.Errorf("stored user mutated through returned copy: %q", again.Username)
	}

	if err := s.UpdateUser(ctx, &model.User{ID: "missing"}); err != storage.ErrNotFound {
		t.Errorf("UpdateUser(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDocumentOrdering(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	base := time.Now()
	for i, title := range []string{"Doc1", "Doc2", "Doc3"} {
		s.CreateDocument(ctx, &model.Document{
			ID:          title,
			OwnerID:     "owner-1",
			Title:       title,
			DateCreated: base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	s.CreateDocument(ctx, &model.Document{ID: "x", OwnerID: "owner-2", Title: "X", DateCreated: base})

	byOwner, err := s.ListDocumentsByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListDocumentsByOwner: %v", err)
	}
	if len(byOwner) != 3 || byOwner[0].Title != "Doc1" || byOwner[2].Title != "Doc3" {
		t.Errorf("ListDocumentsByOwner order wrong: %+v", byOwner)
	}

	all, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(all) != 4 || all[0].Title != "Doc3" {
		t.Errorf("ListDocuments order wrong, first = %q", all[0].Title)
	}
}

func TestRoleLookup(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	s.CreateRole(ctx, &model.Role{ID: "r1", Title: "viewer", AccessLevel: 0})
	s.CreateRole(ctx, &model.Role{ID: "r2", Title: "admin", AccessLevel: 2})

	if err := s.CreateRole(ctx, &model.Role{ID: "r3", Title: "viewer"}); err != storage.ErrDuplicate {
		t.Errorf("duplicate role error = %v, want ErrDuplicate", err)
	}

	role, err := s.GetRoleByTitle(ctx, "missing")
	if err != nil || role != nil {
		t.Errorf("GetRoleByTitle(missing) = (%v, %v), want (nil, nil)", role, err)
	}

	roles, _ := s.ListRoles(ctx)
	if len(roles) != 2 || roles[0].Title != "viewer" || roles[1].Title != "admin" {
		t.Errorf("ListRoles = %+v, want viewer then admin", roles)
	}
}
