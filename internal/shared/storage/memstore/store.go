// Package memstore 实现基于内存的 storage.Store
//
// 用于 Handler 单元测试和无数据库的本地开发模式。
// 与 mongostore 保持相同的语义：唯一性约束、(nil, nil) 未找到约定、排序规则。
package memstore

import (
	"context"
	"sort"
	"sync"

	"docs-admin/internal/shared/model"
	"docs-admin/internal/shared/storage"
)

// Store 内存存储，所有操作由互斥锁保护
type Store struct {
	mu        sync.Mutex
	users     map[string]*model.User
	roles     map[string]*model.Role
	documents map[string]*model.Document
}

// Compile-time interface check
var _ storage.Store = (*Store)(nil)

// NewStore 创建空的内存存储
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*model.User),
		roles:     make(map[string]*model.Role),
		documents: make(map[string]*model.Document),
	}
}

// Close 实现 storage.Store，无资源需要释放
func (s *Store) Close() error {
	return nil
}

// ============================================================================
// UserStore
// ============================================================================

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return storage.ErrDuplicate
	}
	// 与 mongostore 的唯一索引行为一致
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *Store) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return storage.ErrNotFound
	}
	for id, u := range s.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	existing.Username = user.Username
	existing.Name = user.Name
	existing.Email = user.Email
	return nil
}

func (s *Store) SetUserLoggedIn(ctx context.Context, id string, loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.LoggedIn = loggedIn
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ListUsers 按创建顺序（created_at 升序）返回全部用户
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// ============================================================================
// RoleStore
// ============================================================================

func (s *Store) CreateRole(ctx context.Context, role *model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.roles {
		if r.Title == role.Title {
			return storage.ErrDuplicate
		}
	}
	clone := *role
	s.roles[role.ID] = &clone
	return nil
}

func (s *Store) GetRoleByTitle(ctx context.Context, title string) (*model.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.roles {
		if r.Title == title {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]*model.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles := make([]*model.Role, 0, len(s.roles))
	for _, r := range s.roles {
		clone := *r
		roles = append(roles, &clone)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].AccessLevel < roles[j].AccessLevel
	})
	return roles, nil
}

// ============================================================================
// DocumentStore
// ============================================================================

func (s *Store) CreateDocument(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[doc.ID]; ok {
		return storage.ErrDuplicate
	}
	clone := *doc
	s.documents[doc.ID] = &clone
	return nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[id]
	if !ok {
		return nil, nil
	}
	clone := *d
	return &clone, nil
}

func (s *Store) UpdateDocument(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.ID]
	if !ok {
		return storage.ErrNotFound
	}
	existing.Title = doc.Title
	existing.Content = doc.Content
	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

// ListDocuments 按创建时间倒序返回全部文档
func (s *Store) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.allDocuments(func(*model.Document) bool { return true })
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].DateCreated.After(docs[j].DateCreated)
	})
	return docs, nil
}

// ListDocumentsByOwner 按创建时间正序返回指定所有者的文档
func (s *Store) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.allDocuments(func(d *model.Document) bool { return d.OwnerID == ownerID })
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].DateCreated.Before(docs[j].DateCreated)
	})
	return docs, nil
}

// allDocuments 调用方必须持有 s.mu
func (s *Store) allDocuments(keep func(*model.Document) bool) []*model.Document {
	docs := []*model.Document{}
	for _, d := range s.documents {
		if keep(d) {
			clone := *d
			docs = append(docs, &clone)
		}
	}
	return docs
}
