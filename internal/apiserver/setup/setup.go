// Package setup 启动时的种子数据：内置角色与引导管理员
package setup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"docs-admin/internal/apiserver/auth"
	"docs-admin/internal/shared/model"
	"docs-admin/internal/shared/storage"

	"github.com/google/uuid"
)

// Store 种子数据所需的存储接口
type Store interface {
	CreateRole(ctx context.Context, role *model.Role) error
	GetRoleByTitle(ctx context.Context, title string) (*model.Role, error)
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// EnsureDefaultRoles 确保内置角色存在（幂等，启动时调用）
//
// viewer(0) / staff(1) / admin(2)。已存在的角色不做任何修改。
func EnsureDefaultRoles(store Store) error {
	ctx := context.Background()

	defaults := []model.Role{
		{Title: model.RoleTitleViewer, AccessLevel: 0},
		{Title: model.RoleTitleStaff, AccessLevel: 1},
		{Title: model.RoleTitleAdmin, AccessLevel: 2},
	}

	for _, r := range defaults {
		existing, err := store.GetRoleByTitle(ctx, r.Title)
		if err != nil {
			return fmt.Errorf("check role %s: %w", r.Title, err)
		}
		if existing != nil {
			continue
		}
		r.ID = uuid.NewString()
		if err := store.CreateRole(ctx, &r); err != nil {
			// 并发启动的另一实例可能刚好创建了同名角色
			if errors.Is(err, storage.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("create role %s: %w", r.Title, err)
		}
		log.Printf("[setup] Created role: %s (level %d)", r.Title, r.AccessLevel)
	}

	return nil
}

// EnsureAdminUser 确保管理员用户存在（启动时调用）
//
// 未配置 username/password 时跳过。已存在同名用户时不做修改。
func EnsureAdminUser(store Store, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if email == "" {
		email = username + "@localhost"
	}

	ctx := context.Background()
	existing, err := store.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if existing != nil {
		log.Printf("[setup] Admin user already exists: %s (%s)", username, existing.ID)
		return nil
	}

	role, err := store.GetRoleByTitle(ctx, model.RoleTitleAdmin)
	if err != nil {
		return fmt.Errorf("resolve admin role: %w", err)
	}
	if role == nil {
		return fmt.Errorf("admin role missing, run EnsureDefaultRoles first")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         model.Name{First: "Admin", Last: "User"},
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		RoleTitle:    role.Title,
		LoggedIn:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("[setup] Created admin user: %s (%s)", username, user.ID)
	return nil
}
