package storage

import (
	"context"

	"docs-admin/internal/shared/model"
)

// Store 持久化存储接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：mongostore/（生产）、memstore/（测试/无数据库模式）
//   - 初始化时通过依赖注入传入实现，不使用包级全局句柄
type Store interface {
	// 用户
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// FindUserByUsernameOrEmail 按 username 或 email 任一匹配查找（注册查重用）
	// 未找到时返回 (nil, nil)
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	SetUserLoggedIn(ctx context.Context, id string, loggedIn bool) error
	DeleteUser(ctx context.Context, id string) error
	// ListUsers 按创建顺序返回全部用户
	ListUsers(ctx context.Context) ([]*model.User, error)

	// 角色
	CreateRole(ctx context.Context, role *model.Role) error
	// GetRoleByTitle 未找到时返回 (nil, nil)
	GetRoleByTitle(ctx context.Context, title string) (*model.Role, error)
	ListRoles(ctx context.Context) ([]*model.Role, error)

	// 文档
	CreateDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	UpdateDocument(ctx context.Context, doc *model.Document) error
	DeleteDocument(ctx context.Context, id string) error
	// ListDocuments 按创建时间倒序返回全部文档
	ListDocuments(ctx context.Context) ([]*model.Document, error)
	// ListDocumentsByOwner 按创建时间正序返回指定所有者的文档
	ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*model.Document, error)

	Close() error
}
